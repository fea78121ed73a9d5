// Package imaging prepares raster input for the ASCII generator: decoding,
// resizing, grayscale conversion and optional border trimming.
package imaging

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Load decodes the image at path and reports the registered format name.
// On a decode failure the error names the sniffed content type so the user
// can tell an unsupported format from a corrupt file.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s (%s): %w", path, sniffContentType(f), err)
	}
	return img, format, nil
}

// sniffContentType reads the first 512 bytes, which is all
// http.DetectContentType ever looks at.
func sniffContentType(f *os.File) string {
	buf := make([]byte, 512)
	n, err := f.ReadAt(buf, 0)
	if n == 0 && err != nil {
		return "unknown"
	}
	return http.DetectContentType(buf[:n])
}

// Resize scales img to exactly w x h pixels with a Catmull-Rom kernel.
func Resize(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// ToGray converts img to 8-bit grayscale using the standard Rec.601 weights.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Invert flips every pixel of g in place.
func Invert(g *image.Gray) {
	for i, v := range g.Pix {
		g.Pix[i] = 255 - v
	}
}

// PrepareTarget produces the grayscale reference image the search strategies
// score against: resized to w x h, converted to grayscale and optionally
// inverted.
func PrepareTarget(img image.Image, w, h int, invert bool) *image.Gray {
	g := ToGray(Resize(img, w, h))
	if invert {
		Invert(g)
	}
	return g
}

// SavePNG writes img to path in PNG format, overwriting an existing file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
