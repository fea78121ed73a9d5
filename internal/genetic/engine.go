package genetic

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"asciigen/internal/ascii"
	"asciigen/internal/fitness"
)

const (
	mutationRate   = 0.01
	crossoverRate  = 0.8
	tournamentSize = 3
)

// Progress is the per-generation report passed to a progress callback.
type Progress struct {
	Generation  int
	Generations int // 0 in continuous mode
	BestFitness float64
	Best        *Individual
	Elapsed     time.Duration
}

// Options controls how Evolve reports progress. When Progress is nil the
// engine prints to stdout, throttled by StatusInterval.
type Options struct {
	StatusInterval time.Duration
	Verbose        bool
	Progress       func(Progress) bool
}

// Engine runs the evolutionary search. Fitness evaluation is spread over a
// fixed-size worker pool; everything else runs on the calling goroutine.
type Engine struct {
	cols, rows     int
	popSize        int
	jobs           int
	renderer       *ascii.Renderer
	eval           *fitness.Evaluator
	population     []*Individual
	rng            *rand.Rand
	eliteSize      int
	backgroundProb float64
}

// NewEngine builds the initial population. A zero initChar means random
// initialization biased by the target's background share.
func NewEngine(cols, rows, popSize, jobs int, renderer *ascii.Renderer, eval *fitness.Evaluator, initChar byte) *Engine {
	if jobs < 1 {
		jobs = 1
	}
	e := &Engine{
		cols:           cols,
		rows:           rows,
		popSize:        popSize,
		jobs:           jobs,
		renderer:       renderer,
		eval:           eval,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		eliteSize:      popSize / 10,
		backgroundProb: eval.BackgroundProb(),
	}

	size := cols * rows
	e.population = make([]*Individual, popSize)
	for i := range e.population {
		if initChar != 0 {
			e.population[i] = NewSeeded(size, initChar, e.rng)
		} else {
			e.population[i] = NewRandom(size, e.backgroundProb, e.rng)
		}
	}
	return e
}

// Population exposes the current generation, sorted by descending fitness
// after each evaluation.
func (e *Engine) Population() []*Individual { return e.population }

// Evolve runs the search for the given number of generations and returns a
// copy of the best individual. generations == 0 means continuous mode: the
// loop runs until the progress callback returns false, so a callback is
// required there.
func (e *Engine) Evolve(generations int, opts Options) *Individual {
	start := time.Now()
	last := start
	interval := opts.StatusInterval
	if interval <= 0 {
		interval = time.Second
	}

	continuous := generations == 0
	for gen := 0; continuous || gen < generations; gen++ {
		e.evaluate()
		best := e.population[0]
		elapsed := time.Since(start)

		if opts.Progress != nil {
			p := Progress{
				Generation:  gen,
				Generations: generations,
				BestFitness: best.Fitness,
				Best:        best,
				Elapsed:     elapsed,
			}
			if !opts.Progress(p) {
				break
			}
		} else {
			if now := time.Now(); now.Sub(last) >= interval {
				fmt.Printf("Generation %d: Best fitness = %.2f%% (elapsed: %.1fs)\n",
					gen, best.Fitness*100, elapsed.Seconds())
				if opts.Verbose {
					fmt.Printf("Current best ASCII art:\n%s\n\n", ascii.ArtString(best.Chars, e.cols))
				}
				last = now
			}
		}

		if continuous || gen < generations-1 {
			e.nextGeneration()
		}
	}

	e.evaluate()
	if opts.Progress == nil {
		fmt.Printf("Final best fitness = %.2f%% (total time: %.1fs)\n",
			e.population[0].Fitness*100, time.Since(start).Seconds())
	}
	return e.population[0].Clone()
}

// evaluate scores the whole population in parallel and sorts it by
// descending fitness. The renderer is safe to share once built.
func (e *Engine) evaluate() {
	work := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				ind := e.population[i]
				ind.Fitness = e.eval.Score(e.renderer.Render(ind.Chars, e.cols, e.rows))
			}
		}()
	}
	for i := range e.population {
		work <- i
	}
	close(work)
	wg.Wait()

	sort.Slice(e.population, func(i, j int) bool {
		return e.population[i].Fitness > e.population[j].Fitness
	})
}

// nextGeneration keeps the elite and fills the rest with mutated crossover
// children of tournament-selected parents.
func (e *Engine) nextGeneration() {
	next := make([]*Individual, 0, e.popSize)
	for i := 0; i < e.eliteSize; i++ {
		next = append(next, e.population[i].Clone())
	}

	for len(next) < e.popSize {
		p1 := e.tournament()
		p2 := e.tournament()
		c1, c2 := p1.Crossover(p2, crossoverRate, e.rng)
		c1.Mutate(mutationRate, e.backgroundProb, e.rng)
		c2.Mutate(mutationRate, e.backgroundProb, e.rng)

		next = append(next, c1)
		if len(next) < e.popSize {
			next = append(next, c2)
		}
	}
	e.population = next
}

func (e *Engine) tournament() *Individual {
	best := e.population[e.rng.Intn(len(e.population))]
	for i := 1; i < tournamentSize; i++ {
		if cand := e.population[e.rng.Intn(len(e.population))]; cand.Fitness > best.Fitness {
			best = cand
		}
	}
	return best
}
