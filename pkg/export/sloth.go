package export

// Sloth specific functionality.

import (
	"encoding/json"
	"fmt"
	"os"
)

// SlothAnnotation is a single annotation within a Sloth file.
type SlothAnnotation struct {
	Class  string  `json:"class,omitempty"`
	Type   string  `json:"type,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// SlothAnnotatedFile defines the Sloth annotation structure for a single file.
type SlothAnnotatedFile struct {
	Annotations []SlothAnnotation `json:"annotations"`
	Class       string            `json:"class,omitempty"`
	FilePath    string            `json:"filename,omitempty"`
}

// ToSloth converts the exchange representation to Sloth format.
func ToSloth(files []AnnotatedFile) []SlothAnnotatedFile {
	slothData := make([]SlothAnnotatedFile, 0, len(files))
	for _, fileData := range files {
		slothFileData := SlothAnnotatedFile{
			Annotations: make([]SlothAnnotation, len(fileData.Annotations)),
			Class:       "image",
			FilePath:    fileData.FilePath,
		}
		for i, a := range fileData.Annotations {
			slothFileData.Annotations[i] = SlothAnnotation{
				Class:  a.Label,
				Type:   "rect",
				X:      a.Coords[0],
				Y:      a.Coords[1],
				Width:  a.Coords[2] - a.Coords[0],
				Height: a.Coords[3] - a.Coords[1],
			}
		}
		slothData = append(slothData, slothFileData)
	}
	return slothData
}

// WriteSloth writes the annotations of files to outFile in Sloth format.
func WriteSloth(outFile string, files []AnnotatedFile) error {
	enc, err := json.MarshalIndent(ToSloth(files), "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(outFile, enc, 0o644); err != nil {
		return fmt.Errorf("cannot write file %q: %v", outFile, err)
	}
	return nil
}
