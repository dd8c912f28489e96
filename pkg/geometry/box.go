// Package geometry provides the bounding box value type shared by the dataset
// model, the renderer and the exporters.
//
// A BoundingBox carries four coordinates, a coordinate Format and a Normalized
// flag. Format and normalization are independent axes: converting between
// formats never touches the flag, and normalizing never changes the format.
// All operations are pure and return a new value, so boxes can be shared
// freely between consumers.
package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalidBoundingBox is returned when a box is constructed with a
// coordinate count other than four.
var ErrInvalidBoundingBox = errors.New("invalid bounding box")

// Size holds image dimensions in pixels, used to move boxes between
// normalized and absolute coordinate space.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// BoundingBox is an immutable rectangular region. The meaning of Coords
// depends on Format; Normalized reports whether the coordinates are relative
// to the image size (in [0,1]) or absolute pixels.
type BoundingBox struct {
	Coords     [4]float64 `json:"coords"`
	Format     Format     `json:"format"`
	Normalized bool       `json:"normalized"`
}

// New creates a BoundingBox from a coordinate slice. It fails with
// ErrInvalidBoundingBox unless exactly four coordinates are given, and with
// ErrInvalidFormat for an unknown format.
func New(coords []float64, format Format, normalized bool) (BoundingBox, error) {
	if len(coords) != 4 {
		return BoundingBox{}, fmt.Errorf("%w: got %d coordinates, want 4", ErrInvalidBoundingBox, len(coords))
	}
	if !format.IsValid() {
		return BoundingBox{}, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}

	var b BoundingBox
	copy(b.Coords[:], coords)
	b.Format = format
	b.Normalized = normalized
	return b, nil
}

// with returns a copy of b carrying new coordinates and format. The
// Normalized flag is preserved.
func (b BoundingBox) with(coords [4]float64, format Format) BoundingBox {
	return BoundingBox{Coords: coords, Format: format, Normalized: b.Normalized}
}

// Normalize divides every x-coordinate by the image width and every
// y-coordinate by the image height and marks the box normalized. An already
// normalized box is returned unchanged. The format is preserved; in every
// supported format the even coordinate slots are x-axis quantities and the
// odd slots are y-axis quantities.
func (b BoundingBox) Normalize(size Size) BoundingBox {
	if b.Normalized {
		return b
	}
	return BoundingBox{
		Coords: [4]float64{
			b.Coords[0] / size.W,
			b.Coords[1] / size.H,
			b.Coords[2] / size.W,
			b.Coords[3] / size.H,
		},
		Format:     b.Format,
		Normalized: true,
	}
}

// Denormalize is the inverse of Normalize: it multiplies the coordinates by
// the matching image dimension. An already absolute box is returned unchanged.
func (b BoundingBox) Denormalize(size Size) BoundingBox {
	if !b.Normalized {
		return b
	}
	return BoundingBox{
		Coords: [4]float64{
			b.Coords[0] * size.W,
			b.Coords[1] * size.H,
			b.Coords[2] * size.W,
			b.Coords[3] * size.H,
		},
		Format:     b.Format,
		Normalized: false,
	}
}

// ToXYXY converts the box to min/max corner form without touching the
// Normalized flag. A box already in XYXY form is returned unchanged.
func (b BoundingBox) ToXYXY() BoundingBox {
	switch b.Format {
	case XYXY:
		return b
	case XYWH:
		x, y, w, h := b.Coords[0], b.Coords[1], b.Coords[2], b.Coords[3]
		return b.with([4]float64{x, y, x + w, y + h}, XYXY)
	case CXCYWH:
		cx, cy, w, h := b.Coords[0], b.Coords[1], b.Coords[2], b.Coords[3]
		return b.with([4]float64{cx - w/2, cy - h/2, cx + w/2, cy + h/2}, XYXY)
	default:
		panic("geometry: unknown bounding box format " + string(b.Format))
	}
}

// ToXYWH converts the box to top-left plus extents form.
func (b BoundingBox) ToXYWH() BoundingBox {
	switch b.Format {
	case XYWH:
		return b
	case XYXY:
		xmin, ymin, xmax, ymax := b.Coords[0], b.Coords[1], b.Coords[2], b.Coords[3]
		return b.with([4]float64{xmin, ymin, xmax - xmin, ymax - ymin}, XYWH)
	case CXCYWH:
		cx, cy, w, h := b.Coords[0], b.Coords[1], b.Coords[2], b.Coords[3]
		return b.with([4]float64{cx - w/2, cy - h/2, w, h}, XYWH)
	default:
		panic("geometry: unknown bounding box format " + string(b.Format))
	}
}

// ToCXCYWH converts the box to center plus extents form.
func (b BoundingBox) ToCXCYWH() BoundingBox {
	switch b.Format {
	case CXCYWH:
		return b
	case XYXY:
		xmin, ymin, xmax, ymax := b.Coords[0], b.Coords[1], b.Coords[2], b.Coords[3]
		return b.with([4]float64{(xmin + xmax) / 2, (ymin + ymax) / 2, xmax - xmin, ymax - ymin}, CXCYWH)
	case XYWH:
		x, y, w, h := b.Coords[0], b.Coords[1], b.Coords[2], b.Coords[3]
		return b.with([4]float64{x + w/2, y + h/2, w, h}, CXCYWH)
	default:
		panic("geometry: unknown bounding box format " + string(b.Format))
	}
}

// Convert dispatches to the converter matching the target format. The switch
// is exhaustive over the closed set of formats; reaching the default branch
// means a Format value was forged outside New/ParseFormat.
func (b BoundingBox) Convert(target Format) BoundingBox {
	switch target {
	case XYXY:
		return b.ToXYXY()
	case XYWH:
		return b.ToXYWH()
	case CXCYWH:
		return b.ToCXCYWH()
	default:
		panic("geometry: unknown bounding box format " + string(target))
	}
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 {
	return b.ToXYWH().Coords[2]
}

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 {
	return b.ToXYWH().Coords[3]
}

// Area returns the area of the box in its current coordinate space.
func (b BoundingBox) Area() float64 {
	return b.Width() * b.Height()
}

// Center returns the center point of the box.
func (b BoundingBox) Center() (float64, float64) {
	c := b.ToCXCYWH()
	return c.Coords[0], c.Coords[1]
}
