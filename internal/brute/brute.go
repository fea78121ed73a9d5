// Package brute generates ASCII art greedily, picking the best-scoring
// character for each cell position in row-major order.
package brute

import (
	"fmt"
	"image"
	"time"

	"asciigen/internal/ascii"
	"asciigen/internal/fitness"
	"asciigen/internal/genetic"
)

// Progress is the per-position report passed to a progress callback.
type Progress struct {
	Position int
	Total    int
	Elapsed  time.Duration
	Art      string // filled only in verbose mode
}

// Generator holds the fixed inputs of one brute-force run. The evaluator
// should carry fitness.BrutePenalty.
type Generator struct {
	cols, rows int
	renderer   *ascii.Renderer
	eval       *fitness.Evaluator
}

func New(cols, rows int, renderer *ascii.Renderer, eval *fitness.Evaluator) *Generator {
	return &Generator{cols: cols, rows: rows, renderer: renderer, eval: eval}
}

// Generate fills the grid position by position and returns the result with
// its whole-image fitness. A non-nil progress callback is invoked after each
// position and can cancel the run; without one, progress prints to stdout
// every ten positions.
func (g *Generator) Generate(verbose bool, progress func(Progress) bool) *genetic.Individual {
	start := time.Now()
	total := g.cols * g.rows
	chars := make([]byte, total)
	for i := range chars {
		chars[i] = ' '
	}

	for pos := 0; pos < total; pos++ {
		row, col := pos/g.cols, pos%g.cols
		chars[pos] = g.bestCharAt(col, row)

		if progress != nil {
			var art string
			if verbose {
				art = ascii.ArtString(chars, g.cols)
			}
			p := Progress{Position: pos + 1, Total: total, Elapsed: time.Since(start), Art: art}
			if !progress(p) {
				break
			}
		} else if (pos+1)%10 == 0 || pos+1 == total {
			pct := float64(pos+1) / float64(total) * 100
			fmt.Printf("Progress: %d/%d positions (%.1f%%) - elapsed: %.1fs\n",
				pos+1, total, pct, time.Since(start).Seconds())
		}
	}

	ind := &genetic.Individual{Chars: chars}
	ind.Fitness = g.eval.Score(g.renderer.Render(chars, g.cols, g.rows))

	if progress == nil {
		fmt.Printf("Brute force generation complete! Final fitness: %.2f%% (total time: %.1fs)\n",
			ind.Fitness*100, time.Since(start).Seconds())
	}
	return ind
}

// bestCharAt tries every charset character against one cell region. Regions
// without any lit target pixels keep a space.
func (g *Generator) bestCharAt(col, row int) byte {
	cellW, cellH := g.renderer.CellSize()
	origin := image.Pt(col*cellW, row*cellH)

	best := byte(' ')
	bestScore := 0.0
	for _, ch := range genetic.Charset {
		score, ok := g.eval.ScoreCell(g.renderer.Cell(ch), origin)
		if !ok {
			return ' '
		}
		if score > bestScore {
			bestScore = score
			best = ch
		}
	}
	return best
}
