// Package export writes finished ASCII art to disk as plain text, SVG or a
// rasterized PNG, chosen by output file extension.
package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo"

	"asciigen/internal/imaging"
)

// Write saves the art at path, picking the format from the extension:
// .svg and .png get dedicated renditions, everything else is plain text.
// raster is the black-on-white or white-on-black pixel rendition used for
// PNG output.
func Write(path, art string, raster *image.Gray, cellW, cellH int, whiteBackground bool) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return WriteSVG(path, art, cellW, cellH, whiteBackground)
	case ".png":
		return imaging.SavePNG(path, raster)
	default:
		return WriteText(path, art)
	}
}

// WriteText writes the art string verbatim.
func WriteText(path, art string) error {
	return os.WriteFile(path, []byte(art), 0644)
}

// WriteSVG renders the art as monospace text lines over a background
// rectangle. Leading spaces are significant, so the text nodes preserve
// whitespace.
func WriteSVG(path, art string, cellW, cellH int, whiteBackground bool) error {
	lines := strings.Split(art, "\n")
	cols := 0
	for _, l := range lines {
		if len(l) > cols {
			cols = len(l)
		}
	}
	w, h := cols*cellW, len(lines)*cellH

	bg, fg := "black", "white"
	if whiteBackground {
		bg, fg = "white", "black"
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	canvas := svg.New(f)
	canvas.Start(w, h)
	canvas.Rect(0, 0, w, h, "fill:"+bg)
	style := fmt.Sprintf("font-family:monospace;font-size:%dpx;fill:%s", cellH-3, fg)
	for i, line := range lines {
		canvas.Text(0, (i+1)*cellH-3, line, style, `xml:space="preserve"`)
	}
	canvas.End()
	return nil
}
