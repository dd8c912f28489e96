package render

import (
	"image/color"
	"math"
)

// Palette maps entity categories to stable drawing colors.
type Palette map[string]color.NRGBA

// NewPalette assigns a fully saturated color to every category by spacing
// hues evenly around the HSV wheel. The assignment depends only on the
// category order, so the same category list always yields the same colors.
func NewPalette(categories []string) Palette {
	p := make(Palette, len(categories))
	if len(categories) == 0 {
		return p
	}
	step := 360.0 / float64(len(categories))
	for i, cat := range categories {
		p[cat] = hsvToNRGBA(step*float64(i), 1, 1)
	}
	return p
}

// Color returns the color assigned to category. Unknown categories draw
// in white so they remain visible on most photographs.
func (p Palette) Color(category string) color.NRGBA {
	if c, ok := p[category]; ok {
		return c
	}
	return color.NRGBA{255, 255, 255, 255}
}

// hsvToNRGBA converts a hue in degrees with saturation and value in [0, 1].
func hsvToNRGBA(h, s, v float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.NRGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}
