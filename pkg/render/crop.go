package render

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/menta2k/hoiview/pkg/dataset"
	"github.com/menta2k/hoiview/pkg/geometry"
)

// CropEntity cuts the region of a single entity out of img. The box is
// expanded on every side by padding, a fraction of the box's own width and
// height, then clamped to the image bounds.
func CropEntity(img image.Image, ent dataset.Entity, padding float64) (image.Image, error) {
	bounds := img.Bounds()
	size := geometry.Size{W: float64(bounds.Dx()), H: float64(bounds.Dy())}

	xyxy := ent.BBox.Denormalize(size).ToXYXY()
	padX := padding * xyxy.Width()
	padY := padding * xyxy.Height()

	x0 := int(clamp(xyxy.Coords[0]-padX, 0, size.W) + 0.5)
	y0 := int(clamp(xyxy.Coords[1]-padY, 0, size.H) + 0.5)
	x1 := int(clamp(xyxy.Coords[2]+padX, 0, size.W) + 0.5)
	y1 := int(clamp(xyxy.Coords[3]+padY, 0, size.H) + 0.5)

	rect := image.Rect(x0, y0, x1, y1).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("empty crop rectangle for category %s", ent.Category)
	}
	return imaging.Crop(img, rect), nil
}

// CropEntities crops every entity of sample out of img, in entity order.
func CropEntities(img image.Image, sample dataset.Sample, padding float64) ([]image.Image, error) {
	crops := make([]image.Image, 0, len(sample.Entities))
	for i, ent := range sample.Entities {
		crop, err := CropEntity(img, ent, padding)
		if err != nil {
			return nil, fmt.Errorf("failed to crop entity %d: %w", i, err)
		}
		crops = append(crops, crop)
	}
	return crops, nil
}
