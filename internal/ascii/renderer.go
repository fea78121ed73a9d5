// Package ascii renders character grids to pixels using the embedded Go Mono
// face, so candidate ASCII art can be compared against a raster target.
package ascii

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	fontSize    = 12
	fontDPI     = 72
	lineSpacing = 1.2

	firstChar = 0x20
	lastChar  = 0x7f
)

// Ramp orders characters by increasing ink coverage, for direct luminance
// mapping. Every ramp character is a member of the search charset.
const Ramp = " .:-=+*#%@"

// Renderer rasterizes 7-bit characters into fixed-size grayscale cells. All
// glyphs are pre-rendered at construction; afterwards a Renderer only copies
// cached cells and is safe for concurrent use.
type Renderer struct {
	cellW, cellH int
	cells        map[byte]*image.Gray
}

// NewRenderer builds a renderer over Go Mono at 12pt. The cell width is the
// advance of 'M' and the cell height includes the usual 1.2 line spacing.
func NewRenderer() (*Renderer, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, errors.New("font has no glyph for 'M'")
	}

	r := &Renderer{
		cellW: adv.Ceil(),
		cellH: int(math.Ceil(fontSize * lineSpacing)),
		cells: make(map[byte]*image.Gray, lastChar-firstChar+1),
	}

	ascent := face.Metrics().Ascent.Ceil()
	for ch := byte(firstChar); ; ch++ {
		r.cells[ch] = renderCell(face, ch, r.cellW, r.cellH, ascent)
		if ch == lastChar {
			break
		}
	}
	return r, nil
}

// renderCell draws one white-on-black glyph into a fresh cell.
func renderCell(face font.Face, ch byte, w, h, ascent int) *image.Gray {
	cell := image.NewGray(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  cell,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(string(rune(ch)))
	return cell
}

// CellSize reports the pixel dimensions of one character cell.
func (r *Renderer) CellSize() (w, h int) {
	return r.cellW, r.cellH
}

// Cell returns the cached white-on-black cell for ch, or the space cell for
// characters outside the printable 7-bit range. Callers must not mutate it.
func (r *Renderer) Cell(ch byte) *image.Gray {
	if cell, ok := r.cells[ch]; ok {
		return cell
	}
	return r.cells[' ']
}

// Render composes chars into a cols x rows grid of white-on-black cells.
func (r *Renderer) Render(chars []byte, cols, rows int) *image.Gray {
	return r.RenderWithBackground(chars, cols, rows, false)
}

// RenderWithBackground is Render with an optional black-on-white rendition,
// produced by inverting each cell as it is copied.
func (r *Renderer) RenderWithBackground(chars []byte, cols, rows int, whiteBackground bool) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, cols*r.cellW, rows*r.cellH))
	if whiteBackground {
		for i := range img.Pix {
			img.Pix[i] = 0xff
		}
	}

	for i, ch := range chars {
		col, row := i%cols, i/cols
		if row >= rows {
			break
		}
		cell, ok := r.cells[ch]
		if !ok {
			continue
		}
		r.blit(img, cell, col*r.cellW, row*r.cellH, whiteBackground)
	}
	return img
}

func (r *Renderer) blit(dst, cell *image.Gray, x0, y0 int, invert bool) {
	for y := 0; y < r.cellH; y++ {
		for x := 0; x < r.cellW; x++ {
			v := cell.GrayAt(x, y).Y
			if invert {
				v = 255 - v
			}
			dst.SetGray(x0+x, y0+y, color.Gray{Y: v})
		}
	}
}

// MapLuminance maps each character cell of target directly onto the density
// ramp by its mean luminance. In white-background mode dark pixels count as
// ink, so the luminance is inverted before mapping.
func (r *Renderer) MapLuminance(target *image.Gray, cols, rows int, whiteBackground bool) []byte {
	out := make([]byte, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			mean := r.cellMean(target, col*r.cellW, row*r.cellH)
			if whiteBackground {
				mean = 255 - mean
			}
			idx := int(float64(mean) / 255 * float64(len(Ramp)-1))
			if idx >= len(Ramp) {
				idx = len(Ramp) - 1
			}
			out[row*cols+col] = Ramp[idx]
		}
	}
	return out
}

func (r *Renderer) cellMean(target *image.Gray, x0, y0 int) uint8 {
	b := target.Bounds()
	var sum, n int
	for y := y0; y < y0+r.cellH && y < b.Max.Y; y++ {
		for x := x0; x < x0+r.cellW && x < b.Max.X; x++ {
			sum += int(target.GrayAt(x, y).Y)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return uint8(sum / n)
}

// ArtString renders chars as text, rows separated by newlines.
func ArtString(chars []byte, cols int) string {
	var b strings.Builder
	b.Grow(len(chars) + len(chars)/cols)
	for i, ch := range chars {
		if i > 0 && i%cols == 0 {
			b.WriteByte('\n')
		}
		b.WriteByte(ch)
	}
	return b.String()
}
