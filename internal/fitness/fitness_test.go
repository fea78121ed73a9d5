package fitness

import (
	"image"
	"testing"
)

func grayImage(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestThresholds(t *testing.T) {
	target := grayImage(4, 4, 0)

	if got := NewEvaluator(target, false, GeneticPenalty).Threshold(); got != 50 {
		t.Errorf("dark threshold = %d, want 50", got)
	}
	if got := NewEvaluator(target, true, GeneticPenalty).Threshold(); got != 200 {
		t.Errorf("white-background threshold = %d, want 200", got)
	}
}

func TestNonBackgroundCounting(t *testing.T) {
	target := grayImage(4, 4, 0)
	target.Pix[0] = 255
	target.Pix[1] = 255

	e := NewEvaluator(target, false, GeneticPenalty)
	if e.NonBackground() != 2 {
		t.Errorf("NonBackground() = %v, want 2", e.NonBackground())
	}
	if got, want := e.BackgroundProb(), 14.0/16.0; got != want {
		t.Errorf("BackgroundProb() = %v, want %v", got, want)
	}

	// In white-background mode the dark pixels are the content.
	inverted := NewEvaluator(target, true, GeneticPenalty)
	if inverted.NonBackground() != 14 {
		t.Errorf("white-background NonBackground() = %v, want 14", inverted.NonBackground())
	}
}

func TestScore(t *testing.T) {
	target := grayImage(4, 4, 0)
	target.Pix[0] = 255

	t.Run("perfect match", func(t *testing.T) {
		e := NewEvaluator(target, false, GeneticPenalty)
		if got := e.Score(target); got != 1.0 {
			t.Errorf("Score(target) = %v, want 1.0", got)
		}
	})

	t.Run("false positives deduct the penalty", func(t *testing.T) {
		e := NewEvaluator(target, false, GeneticPenalty)
		art := grayImage(4, 4, 255)
		// One match plus fifteen false positives.
		want := 1.0 - 15*GeneticPenalty
		if got := e.Score(art); got != want {
			t.Errorf("Score() = %v, want %v", got, want)
		}
	})

	t.Run("empty target scores zero", func(t *testing.T) {
		e := NewEvaluator(grayImage(4, 4, 0), false, GeneticPenalty)
		if got := e.Score(grayImage(4, 4, 255)); got != 0 {
			t.Errorf("Score() = %v, want 0", got)
		}
	})

	t.Run("clamped at zero", func(t *testing.T) {
		big := grayImage(20, 20, 0)
		big.Pix[0] = 255
		e := NewEvaluator(big, false, GeneticPenalty)
		// Art misses the one lit pixel and lights everything else.
		art := grayImage(20, 20, 255)
		art.Pix[0] = 0
		if got := e.Score(art); got != 0 {
			t.Errorf("Score() = %v, want 0 after clamping", got)
		}
	})

	t.Run("tolerance boundary", func(t *testing.T) {
		e := NewEvaluator(target, false, GeneticPenalty)
		near := grayImage(4, 4, 0)
		near.Pix[0] = 255 - Tolerance + 1
		if got := e.Score(near); got != 1.0 {
			t.Errorf("Score() = %v, want 1.0 for a diff inside the tolerance", got)
		}
		far := grayImage(4, 4, 0)
		far.Pix[0] = 255 - Tolerance
		if got := e.Score(far); got != 0 {
			t.Errorf("Score() = %v, want 0 for a diff at the tolerance", got)
		}
	})
}

func TestScoreCell(t *testing.T) {
	target := grayImage(4, 4, 0)
	target.Pix[0] = 255 // only (0,0) is lit

	e := NewEvaluator(target, false, BrutePenalty)

	t.Run("lit region", func(t *testing.T) {
		cell := grayImage(2, 2, 255)
		score, ok := e.ScoreCell(cell, image.Pt(0, 0))
		if !ok {
			t.Fatal("region with a lit pixel should be relevant")
		}
		// One match, three false positives, one relevant pixel.
		if want := 1.0 - 3*BrutePenalty; score != want {
			t.Errorf("ScoreCell() = %v, want %v", score, want)
		}
	})

	t.Run("background region", func(t *testing.T) {
		cell := grayImage(2, 2, 255)
		if _, ok := e.ScoreCell(cell, image.Pt(2, 2)); ok {
			t.Error("region with no lit target pixels should not be relevant")
		}
	})

	t.Run("clipped at the target edge", func(t *testing.T) {
		cell := grayImage(3, 3, 0)
		if _, ok := e.ScoreCell(cell, image.Pt(3, 3)); ok {
			t.Error("clipped background region should not be relevant")
		}
	})
}
