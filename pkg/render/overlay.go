package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/menta2k/hoiview/pkg/dataset"
	"github.com/menta2k/hoiview/pkg/geometry"
)

// Options controls annotation drawing.
type Options struct {
	// StrokeRatio sets the box stroke as a fraction of the shorter image
	// side. MinStroke is the lower bound in pixels.
	StrokeRatio float64
	MinStroke   int
	// DrawLabels draws the entity index at the top-left corner of each box,
	// matching the indices used by action subject/target/instrument roles.
	DrawLabels bool
}

// DefaultOptions returns the drawing defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		StrokeRatio: 0.004, // ~0.4% of min side
		MinStroke:   2,
		DrawLabels:  true,
	}
}

// Overlay draws every entity of sample onto a copy of img and returns it.
// Boxes are colored by category via palette; the input image is not modified.
func Overlay(img image.Image, sample dataset.Sample, palette Palette, opts Options) *image.NRGBA {
	nrgba := imaging.Clone(img)
	w := nrgba.Bounds().Dx()
	h := nrgba.Bounds().Dy()

	stroke := int(math.Max(float64(opts.MinStroke), opts.StrokeRatio*float64(minInt(w, h))))
	size := geometry.Size{W: float64(w), H: float64(h)}

	for i, ent := range sample.Entities {
		x0, y0, x1, y1 := boxToPixels(ent.BBox, size)
		c := palette.Color(ent.Category)
		drawBox(nrgba, x0, y0, x1, y1, c, stroke)
		if opts.DrawLabels {
			drawIndexLabel(nrgba, x0, y0, i, c)
		}
	}
	return nrgba
}

// boxToPixels converts a bounding box to clamped pixel corner coordinates.
func boxToPixels(box geometry.BoundingBox, size geometry.Size) (int, int, int, int) {
	xyxy := box.Denormalize(size).ToXYXY()
	x0 := int(clamp(xyxy.Coords[0], 0, size.W) + 0.5)
	y0 := int(clamp(xyxy.Coords[1], 0, size.H) + 0.5)
	x1 := int(clamp(xyxy.Coords[2], 0, size.W) + 0.5)
	y1 := int(clamp(xyxy.Coords[3], 0, size.H) + 0.5)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

func drawBox(img *image.NRGBA, x0, y0, x1, y1 int, color color.NRGBA, stroke int) {
	for s := 0; s < stroke; s++ {
		drawHLine(img, y0+s, x0, x1, color)
		drawHLine(img, y1-1-s, x0, x1, color)
		drawVLine(img, x0+s, y0, y1, color)
		drawVLine(img, x1-1-s, y0, y1, color)
	}
}

// drawIndexLabel writes the entity index on a color-backed rectangle anchored
// at the box's top-left corner.
func drawIndexLabel(img *image.NRGBA, x0, y0, index int, c color.NRGBA) {
	label := strconv.Itoa(index)
	face := basicfont.Face7x13

	const pad = 2
	textW := font.MeasureString(face, label).Ceil()
	textH := face.Metrics().Height.Ceil()

	back := image.Rect(x0, y0, x0+textW+2*pad, y0+textH+2*pad).Intersect(img.Bounds())
	if back.Empty() {
		return
	}
	draw.Draw(img, back, image.NewUniform(c), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{0, 0, 0, 255}),
		Face: face,
		Dot:  fixed.P(x0+pad, y0+pad+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(label)
}

// Helper functions
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	i := y0*img.Stride + x*4
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}
