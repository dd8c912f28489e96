package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Contact sheet layout defaults, matching the viewer's gallery geometry.
const (
	DefaultColumns   = 5
	DefaultCellSize  = 350
	DefaultThumbSize = 300
)

// ContactSheet arranges thumbnails of images on a fixed grid, left to right
// and top to bottom. Each image is scaled to fit thumbSize while preserving
// its aspect ratio, then centered in a cellSize square. Non-positive layout
// values fall back to the defaults.
func ContactSheet(images []image.Image, columns, cellSize, thumbSize int) *image.NRGBA {
	if columns <= 0 {
		columns = DefaultColumns
	}
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	if thumbSize <= 0 || thumbSize > cellSize {
		thumbSize = DefaultThumbSize
		if thumbSize > cellSize {
			thumbSize = cellSize
		}
	}

	background := color.NRGBA{245, 245, 245, 255}
	if len(images) == 0 {
		return imaging.New(cellSize, cellSize, background)
	}

	rows := (len(images) + columns - 1) / columns
	sheet := imaging.New(columns*cellSize, rows*cellSize, background)

	for i, img := range images {
		thumb := imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)

		col := i % columns
		row := i / columns
		x := col*cellSize + (cellSize-thumb.Bounds().Dx())/2
		y := row*cellSize + (cellSize-thumb.Bounds().Dy())/2
		sheet = imaging.Paste(sheet, thumb, image.Pt(x, y))
	}
	return sheet
}
