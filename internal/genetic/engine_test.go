package genetic

import (
	"image"
	"image/color"
	"testing"

	"asciigen/internal/ascii"
	"asciigen/internal/fitness"
)

func testSetup(t *testing.T, cols, rows int) (*ascii.Renderer, *fitness.Evaluator) {
	t.Helper()
	r, err := ascii.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}
	w, h := r.CellSize()

	// A target with a lit block in the top-left cell.
	target := image.NewGray(image.Rect(0, 0, cols*w, rows*h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			target.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return r, fitness.NewEvaluator(target, false, fitness.GeneticPenalty)
}

func TestNewEngine(t *testing.T) {
	r, eval := testSetup(t, 3, 2)
	e := NewEngine(3, 2, 20, 2, r, eval, 0)

	if len(e.Population()) != 20 {
		t.Fatalf("population size = %d, want 20", len(e.Population()))
	}
	for _, in := range e.Population() {
		if len(in.Chars) != 6 {
			t.Fatalf("individual size = %d, want 6", len(in.Chars))
		}
	}
}

func TestNewEngineSeeded(t *testing.T) {
	r, eval := testSetup(t, 3, 3)
	e := NewEngine(3, 3, 5, 1, r, eval, '#')

	for _, in := range e.Population() {
		seeded := 0
		for _, c := range in.Chars {
			if c == '#' {
				seeded++
			}
		}
		// 95% seed rate with nine positions still leaves room for noise.
		if seeded < len(in.Chars)*7/10 {
			t.Errorf("only %d of %d positions carry the seed character", seeded, len(in.Chars))
		}
	}
}

func TestEvolve(t *testing.T) {
	r, eval := testSetup(t, 2, 2)
	e := NewEngine(2, 2, 20, 2, r, eval, 0)

	var calls int
	best := e.Evolve(3, Options{
		Progress: func(p Progress) bool {
			calls++
			if p.Generations != 3 {
				t.Errorf("Progress.Generations = %d, want 3", p.Generations)
			}
			return true
		},
	})

	if calls != 3 {
		t.Errorf("progress callback ran %d times, want 3", calls)
	}
	if best == nil || len(best.Chars) != 4 {
		t.Fatalf("best individual has %d chars, want 4", len(best.Chars))
	}
	if best.Fitness < 0 || best.Fitness > 1 {
		t.Errorf("fitness = %v, want within [0,1]", best.Fitness)
	}
}

func TestEvolveStopsOnCallback(t *testing.T) {
	r, eval := testSetup(t, 2, 2)
	e := NewEngine(2, 2, 20, 1, r, eval, 0)

	calls := 0
	e.Evolve(0, Options{ // continuous mode
		Progress: func(Progress) bool {
			calls++
			return calls < 5
		},
	})

	if calls != 5 {
		t.Errorf("continuous run made %d callbacks, want 5", calls)
	}
}

func TestEvolveSortsPopulation(t *testing.T) {
	r, eval := testSetup(t, 2, 2)
	e := NewEngine(2, 2, 10, 2, r, eval, 0)

	e.Evolve(2, Options{Progress: func(Progress) bool { return true }})

	pop := e.Population()
	for i := 1; i < len(pop); i++ {
		if pop[i].Fitness > pop[i-1].Fitness {
			t.Fatal("population is not sorted by descending fitness")
		}
	}
}
