// Package testimage renders the deterministic 100x100 fixture image used to
// exercise the ASCII art pipeline: a black rectangle, a gray ellipse and a
// thick diagonal line on a white background.
package testimage

import (
	"image"
	"image/png"
	"os"

	"github.com/fogleman/gg"
)

const (
	width  = 100
	height = 100
)

// Render draws the fixture onto a fresh canvas. The shape coordinates are
// inclusive bounding boxes: the rectangle covers pixels 10..50 on both axes
// and the ellipse is inscribed in pixels 60..90.
func Render() *image.RGBA {
	dc := gg.NewContext(width, height)

	dc.SetRGB255(255, 255, 255)
	dc.Clear()

	dc.SetRGB255(0, 0, 0)
	dc.DrawRectangle(10, 10, 41, 41)
	dc.Fill()

	dc.SetRGB255(128, 128, 128)
	dc.DrawEllipse(75.5, 75.5, 15.5, 15.5)
	dc.Fill()

	dc.SetRGB255(0, 0, 0)
	dc.SetLineWidth(3)
	dc.DrawLine(0, 0, width, height)
	dc.Stroke()

	return dc.Image().(*image.RGBA)
}

// WriteFile renders the fixture and writes it as a PNG, overwriting any
// existing file at path.
func WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, Render())
}
