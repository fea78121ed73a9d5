package imaging

import (
	"image"
	"image/draw"
)

// Thresholds for "black-ish" and "white-ish" pixels. The black threshold is
// generous (60) to catch dark gray shadows around screenshots.
const (
	blackThreshold = 60
	whiteThreshold = 195

	// A row or column is removable when at least this share of its pixels
	// matches the detected background color.
	noiseTolerance = 0.95

	// A non-background line is still skipped when this many background lines
	// follow it, so thin noise lines do not stop the scan.
	lookaheadGap = 5
)

type background int

const (
	backgroundNone background = iota
	backgroundBlack
	backgroundWhite
)

func isBlackPixel(r, g, b uint32) bool {
	return r <= blackThreshold && g <= blackThreshold && b <= blackThreshold
}

func isWhitePixel(r, g, b uint32) bool {
	return r >= whiteThreshold && g >= whiteThreshold && b >= whiteThreshold
}

func pixel8(img image.Image, x, y int) (uint32, uint32, uint32) {
	r, g, b, _ := img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8
}

// detectBackground votes with the four corner pixels. Ties with at least one
// vote resolve toward the color that got any votes at all; corners that are
// neither black nor white mean there is no trimmable border.
func detectBackground(img image.Image) background {
	b := img.Bounds()
	corners := [4]image.Point{
		{b.Min.X, b.Min.Y},
		{b.Max.X - 1, b.Min.Y},
		{b.Min.X, b.Max.Y - 1},
		{b.Max.X - 1, b.Max.Y - 1},
	}

	var blacks, whites int
	for _, p := range corners {
		r, g, bl := pixel8(img, p.X, p.Y)
		switch {
		case isBlackPixel(r, g, bl):
			blacks++
		case isWhitePixel(r, g, bl):
			whites++
		}
	}

	switch {
	case blacks > whites:
		return backgroundBlack
	case whites > blacks:
		return backgroundWhite
	case blacks > 0:
		return backgroundBlack
	case whites > 0:
		return backgroundWhite
	}
	return backgroundNone
}

// ContentBounds returns the rectangle left after stripping uniform dark or
// light borders from img. It returns the full bounds when no border color is
// detected at the corners, and an empty rectangle when the whole image is
// background.
func ContentBounds(img image.Image) image.Rectangle {
	b := img.Bounds()
	bg := detectBackground(img)
	if bg == backgroundNone {
		return b
	}

	matches := func(x, y int) bool {
		r, g, bl := pixel8(img, x, y)
		if bg == backgroundBlack {
			return isBlackPixel(r, g, bl)
		}
		return isWhitePixel(r, g, bl)
	}

	rowRemovable := func(y int) bool {
		n := 0
		for x := b.Min.X; x < b.Max.X; x++ {
			if matches(x, y) {
				n++
			}
		}
		return float64(n)/float64(b.Dx()) >= noiseTolerance
	}
	colRemovable := func(x int) bool {
		n := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			if matches(x, y) {
				n++
			}
		}
		return float64(n)/float64(b.Dy()) >= noiseTolerance
	}

	minY := trimForward(b.Min.Y, b.Max.Y, rowRemovable)
	if minY >= b.Max.Y {
		return image.Rectangle{}
	}
	maxY := trimBackward(b.Max.Y, minY, rowRemovable)
	minX := trimForward(b.Min.X, b.Max.X, colRemovable)
	maxX := trimBackward(b.Max.X, minX, colRemovable)

	return image.Rect(minX, minY, maxX, maxY)
}

// trimForward advances from `from` toward `limit` past removable lines,
// skipping over a non-removable line when the next lookaheadGap lines are
// all removable.
func trimForward(from, limit int, removable func(int) bool) int {
	edge := from
	for i := from; i < limit; i++ {
		if removable(i) {
			edge = i + 1
			continue
		}
		if i+lookaheadGap >= limit || !allRemovable(i+1, i+lookaheadGap, removable) {
			break
		}
		edge = i + 1
	}
	return edge
}

// trimBackward is the mirror scan from `from` (exclusive) down to `limit`.
func trimBackward(from, limit int, removable func(int) bool) int {
	edge := from
	for i := from - 1; i >= limit; i-- {
		if removable(i) {
			edge = i
			continue
		}
		if i-lookaheadGap < limit || !allRemovable(i-lookaheadGap, i-1, removable) {
			break
		}
		edge = i
	}
	return edge
}

func allRemovable(lo, hi int, removable func(int) bool) bool {
	for i := lo; i <= hi; i++ {
		if !removable(i) {
			return false
		}
	}
	return true
}

// Crop returns the subregion rect of img, sharing pixels when the underlying
// type supports SubImage.
func Crop(img image.Image, rect image.Rectangle) image.Image {
	if sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(rect)
	}

	dst := image.NewRGBA(rect.Sub(rect.Min))
	draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
	return dst
}
