package export

// KITTI specific functionality.

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteKitti writes the annotations of files to dirPath, one KITTI label
// file per image, named after the sample ID. Fields the dataset does not
// carry (truncation, occlusion, alpha, 3D extents, score) are zeroed.
func WriteKitti(dirPath string, files []AnnotatedFile) error {
	dirInfo, err := os.Stat(dirPath)
	if err != nil || !dirInfo.IsDir() {
		return fmt.Errorf("cannot access directory %q: %v", dirPath, err)
	}

	for _, fileData := range files {
		filePath := filepath.Join(dirPath, string(fileData.ID)+".txt")
		file, err := os.Create(filePath)
		if err != nil {
			return err
		}

		for _, a := range fileData.Annotations {
			_, err = fmt.Fprintf(file,
				"%s 0.0 0 0.0 %.2f %.2f %.2f %.2f 0.0 0.0 0.0 0.0 0.0 0.0 0.0 0.0\n",
				a.Label, a.Coords[0], a.Coords[1], a.Coords[2], a.Coords[3])
			if err != nil {
				file.Close()
				return err
			}
		}

		if err := file.Close(); err != nil {
			return err
		}
	}

	return nil
}
