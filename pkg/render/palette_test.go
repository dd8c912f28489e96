package render

import (
	"image/color"
	"testing"
)

func TestNewPalette(t *testing.T) {
	palette := NewPalette([]string{"person", "ball", "boot"})

	if len(palette) != 3 {
		t.Fatalf("Expected 3 palette entries, got %d", len(palette))
	}

	// Hues are spaced 120 degrees apart for three categories.
	tests := []struct {
		category string
		want     color.NRGBA
	}{
		{"person", color.NRGBA{255, 0, 0, 255}},
		{"ball", color.NRGBA{0, 255, 0, 255}},
		{"boot", color.NRGBA{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		if got := palette.Color(tt.category); got != tt.want {
			t.Errorf("Color(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}

func TestNewPaletteIsDeterministic(t *testing.T) {
	categories := []string{"person", "ball", "boot", "table"}

	first := NewPalette(categories)
	second := NewPalette(categories)

	for _, cat := range categories {
		if first.Color(cat) != second.Color(cat) {
			t.Errorf("Color(%q) differs between identical palettes", cat)
		}
	}
}

func TestPaletteUnknownCategory(t *testing.T) {
	palette := NewPalette([]string{"person"})

	white := color.NRGBA{255, 255, 255, 255}
	if got := palette.Color("unknown"); got != white {
		t.Errorf("Color(unknown) = %v, want %v", got, white)
	}
}

func TestNewPaletteEmpty(t *testing.T) {
	palette := NewPalette(nil)

	if len(palette) != 0 {
		t.Errorf("Expected empty palette, got %d entries", len(palette))
	}

	white := color.NRGBA{255, 255, 255, 255}
	if got := palette.Color("anything"); got != white {
		t.Errorf("Color on empty palette = %v, want %v", got, white)
	}
}
