// Package hoiview provides data model, inspection and export tooling for
// human-object interaction image datasets.
//
// The package combines an immutable bounding box geometry with a read-only
// dataset model so that annotated samples can be rendered, summarized and
// exported without mutating the source data.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		"github.com/menta2k/hoiview"
//	)
//
//	func main() {
//		// Open a dataset in the H2O directory layout
//		viewer, err := hoiview.Open("datasets/h2o")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		ds := viewer.Dataset()
//		fmt.Printf("Dataset: %d samples, %d categories\n", ds.Len(), len(ds.Categories()))
//
//		// Draw the annotations of the first sample
//		annotated, err := viewer.Annotated(ds.IDs()[0])
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		if err := viewer.SaveImage(annotated, "sample.jpg", "jpg"); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of four main components:
//
// 1. Geometry (pkg/geometry): Immutable bounding boxes with format and
// normalization conversions
// 2. Dataset (pkg/dataset): The sample model and the H2O directory loader
// 3. Render (pkg/render): Annotation overlays, entity crops and contact sheets
// 4. Stats and Export (pkg/stats, pkg/export): Annotation summaries and
// interchange format writers
//
// Features:
//
//   - Bounding boxes in xyxy, xywh and cxcywh layouts, normalized or absolute
//   - Read-only sample access keyed by stable sample IDs
//   - Per-category color palettes and entity index labels
//   - Contact sheets for quick visual dataset review
//   - HTML statistics reports and Sloth, KITTI and TFRecord export
package hoiview

import (
	"fmt"
	"image"
	"io"

	"github.com/menta2k/hoiview/pkg/dataset"
	"github.com/menta2k/hoiview/pkg/render"
	"github.com/menta2k/hoiview/pkg/stats"
)

// Version of the hoiview library
const Version = "1.0.0"

// Viewer provides a high-level interface for dataset inspection
type Viewer struct {
	ds      dataset.Dataset
	palette render.Palette
	opts    render.Options
}

// Open loads the dataset in the H2O directory layout at root and builds a
// viewer for it.
func Open(root string) (*Viewer, error) {
	ds, err := dataset.OpenH2O(root)
	if err != nil {
		return nil, err
	}
	return New(ds), nil
}

// New creates a viewer over an already opened dataset with default drawing
// options and a palette derived from the dataset's categories.
func New(ds dataset.Dataset) *Viewer {
	return &Viewer{
		ds:      ds,
		palette: render.NewPalette(ds.Categories()),
		opts:    render.DefaultOptions(),
	}
}

// SetOptions replaces the drawing options.
func (v *Viewer) SetOptions(opts render.Options) {
	v.opts = opts
}

// Dataset returns the underlying dataset.
func (v *Viewer) Dataset() dataset.Dataset {
	return v.ds
}

// Palette returns the category color palette.
func (v *Viewer) Palette() render.Palette {
	return v.palette
}

// Annotated loads the image of the sample with id and draws its entity boxes.
func (v *Viewer) Annotated(id dataset.SampleID) (*image.NRGBA, error) {
	sample, err := v.ds.Get(id)
	if err != nil {
		return nil, err
	}

	img, err := render.LoadImage(sample.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load image for sample %s: %w", id, err)
	}

	return render.Overlay(img, sample, v.palette, v.opts), nil
}

// Crops loads the image of the sample with id and cuts out every entity,
// expanded by padding on each side.
func (v *Viewer) Crops(id dataset.SampleID, padding float64) ([]image.Image, error) {
	sample, err := v.ds.Get(id)
	if err != nil {
		return nil, err
	}

	img, err := render.LoadImage(sample.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load image for sample %s: %w", id, err)
	}

	return render.CropEntities(img, sample, padding)
}

// ContactSheet draws annotated thumbnails of the given samples on a grid.
// Non-positive layout values fall back to the render defaults.
func (v *Viewer) ContactSheet(ids []dataset.SampleID, columns, cellSize, thumbSize int) (*image.NRGBA, error) {
	images := make([]image.Image, 0, len(ids))
	for _, id := range ids {
		annotated, err := v.Annotated(id)
		if err != nil {
			return nil, err
		}
		images = append(images, annotated)
	}
	return render.ContactSheet(images, columns, cellSize, thumbSize), nil
}

// Summary aggregates annotation statistics over the whole dataset.
func (v *Viewer) Summary() (stats.Summary, error) {
	return stats.Collect(v.ds)
}

// WriteStatsReport collects statistics and renders the HTML report to w.
func (v *Viewer) WriteStatsReport(w io.Writer) error {
	summary, err := stats.Collect(v.ds)
	if err != nil {
		return err
	}
	return stats.WriteReport(w, v.ds, summary)
}

// SaveImage saves an image to a file with the specified format, using the
// default quality.
func (v *Viewer) SaveImage(img image.Image, path, format string) error {
	return render.SaveImage(img, path, format, 85, false)
}

// RenderSample is a convenience that loads, annotates and saves one sample.
func (v *Viewer) RenderSample(id dataset.SampleID, outputPath, format string) error {
	annotated, err := v.Annotated(id)
	if err != nil {
		return err
	}
	if err := v.SaveImage(annotated, outputPath, format); err != nil {
		return fmt.Errorf("failed to save sample %s: %w", id, err)
	}
	return nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
