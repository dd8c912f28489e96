// Package export writes dataset annotations in interchange formats consumed
// by labeling and training tools.
package export

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/menta2k/hoiview/pkg/dataset"
	"github.com/menta2k/hoiview/pkg/geometry"
)

// Annotation is a single exported object label.
type Annotation struct {
	Coords [4]float64 // Absolute x1, y1, x2, y2 offsets from the top-left corner.
	Label  string
}

// AnnotatedFile groups the exported annotations of one image.
type AnnotatedFile struct {
	ID          dataset.SampleID
	FilePath    string
	Annotations []Annotation
}

// Flatten converts every sample of ds to the exchange representation.
// Boxes are denormalized against each image's pixel size, so the image files
// referenced by the dataset must exist on disk.
func Flatten(ds dataset.Dataset) ([]AnnotatedFile, error) {
	files := make([]AnnotatedFile, 0, ds.Len())
	for _, id := range ds.IDs() {
		sample, err := ds.Get(id)
		if err != nil {
			return nil, fmt.Errorf("failed to read sample %s: %w", id, err)
		}

		cfg, _, err := decodeImageConfig(sample.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to decode the image metadata for sample %s: %v", id, err)
		}
		size := geometry.Size{W: float64(cfg.Width), H: float64(cfg.Height)}

		file := AnnotatedFile{
			ID:          id,
			FilePath:    sample.ImagePath,
			Annotations: make([]Annotation, len(sample.Entities)),
		}
		for i, ent := range sample.Entities {
			xyxy := ent.BBox.Denormalize(size).ToXYXY()
			file.Annotations[i] = Annotation{Coords: xyxy.Coords, Label: ent.Category}
		}
		files = append(files, file)
	}
	return files, nil
}

// decodeImageConfig reads the image header at path.
func decodeImageConfig(path string) (image.Config, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer f.Close()

	return image.DecodeConfig(f)
}

// readFile reads the whole file at path.
func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
