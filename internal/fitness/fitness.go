// Package fitness scores rendered ASCII art against a grayscale target.
package fitness

import "image"

const (
	// Tolerance is the maximum absolute intensity difference for an art
	// pixel to count as matching a target pixel.
	Tolerance = 30

	// Background thresholds: pixels above the threshold are "lit". The
	// white-background threshold only changes which pixels count as
	// background when the target is measured.
	darkThreshold  = 50
	lightThreshold = 200

	// GeneticPenalty is the false-positive deduction for whole-image
	// scoring; BrutePenalty the smaller one used for per-cell search.
	GeneticPenalty = 0.01
	BrutePenalty   = 0.005
)

// Evaluator scores art against one prepared target image. The non-background
// pixel count is precomputed so Score runs in a single pass.
type Evaluator struct {
	target          *image.Gray
	threshold       uint8
	penalty         float64
	whiteBackground bool
	nonBackground   float64
}

// NewEvaluator binds a target image. In white-background mode dark pixels
// are the content, which flips both the threshold and the counting
// direction.
func NewEvaluator(target *image.Gray, whiteBackground bool, penalty float64) *Evaluator {
	e := &Evaluator{
		target:          target,
		penalty:         penalty,
		whiteBackground: whiteBackground,
		threshold:       darkThreshold,
	}
	if whiteBackground {
		e.threshold = lightThreshold
	}

	for _, v := range target.Pix {
		if whiteBackground {
			if v < e.threshold {
				e.nonBackground++
			}
		} else if v > e.threshold {
			e.nonBackground++
		}
	}
	return e
}

// Threshold reports the background threshold in effect.
func (e *Evaluator) Threshold() uint8 { return e.threshold }

// NonBackground reports how many target pixels count as content.
func (e *Evaluator) NonBackground() float64 { return e.nonBackground }

// BackgroundProb is the share of background pixels in the target, used to
// bias random character generation toward spaces.
func (e *Evaluator) BackgroundProb() float64 {
	total := float64(e.target.Bounds().Dx() * e.target.Bounds().Dy())
	if total == 0 {
		return 0
	}
	return (total - e.nonBackground) / total
}

// Score compares art against the whole target over their overlap: every lit
// target pixel matched within Tolerance awards one point, every lit art
// pixel over target background deducts the penalty. The result is normalized
// by the non-background count and clamped at zero.
func (e *Evaluator) Score(art *image.Gray) float64 {
	if e.nonBackground == 0 {
		return 0
	}

	ab, tb := art.Bounds(), e.target.Bounds()
	w := min(ab.Dx(), tb.Dx())
	h := min(ab.Dy(), tb.Dy())

	var score float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := art.GrayAt(ab.Min.X+x, ab.Min.Y+y).Y
			t := e.target.GrayAt(tb.Min.X+x, tb.Min.Y+y).Y
			if t > e.threshold {
				if absDiff(a, t) < Tolerance {
					score++
				}
			} else if a > e.threshold {
				score -= e.penalty
			}
		}
	}

	if f := score / e.nonBackground; f > 0 {
		return f
	}
	return 0
}

// ScoreCell applies the Score rule to the target region starting at origin,
// the size of cell, normalized by that region's lit pixel count. The second
// return value reports whether the region had any lit pixels at all; callers
// generally prefer a space when it did not.
func (e *Evaluator) ScoreCell(cell *image.Gray, origin image.Point) (float64, bool) {
	cb, tb := cell.Bounds(), e.target.Bounds()

	var score, relevant float64
	for y := 0; y < cb.Dy(); y++ {
		ty := origin.Y + y
		if ty >= tb.Max.Y {
			break
		}
		for x := 0; x < cb.Dx(); x++ {
			tx := origin.X + x
			if tx >= tb.Max.X {
				break
			}
			a := cell.GrayAt(cb.Min.X+x, cb.Min.Y+y).Y
			t := e.target.GrayAt(tx, ty).Y
			if t > e.threshold {
				relevant++
				if absDiff(a, t) < Tolerance {
					score++
				}
			} else if a > e.threshold {
				score -= e.penalty
			}
		}
	}

	if relevant == 0 {
		return 0, false
	}
	if f := score / relevant; f > 0 {
		return f, true
	}
	return 0, true
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
