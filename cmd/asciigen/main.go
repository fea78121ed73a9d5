// asciigen converts a raster image into ASCII art by rendering candidate
// character grids to pixels and scoring them against the prepared input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"asciigen/internal/ascii"
	"asciigen/internal/brute"
	"asciigen/internal/config"
	"asciigen/internal/export"
	"asciigen/internal/fitness"
	"asciigen/internal/genetic"
	"asciigen/internal/imaging"
	"asciigen/internal/monitor"
	"asciigen/internal/tui"
)

type options struct {
	width           int
	height          int
	generations     int
	jobs            int
	initChar        string
	output          string
	debug           bool
	verbose         bool
	whiteBackground bool
	statusInterval  float64
	population      int
	mode            string
	ui              bool
	trim            bool
	invert          bool
	configPath      string
	saveConfig      bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (*options, error) {
	var opts options
	flag.IntVar(&opts.width, "width", 0, "width in characters")
	flag.IntVar(&opts.width, "w", 0, "width in characters (shorthand)")
	flag.IntVar(&opts.height, "height", 0, "height in characters")
	flag.IntVar(&opts.height, "H", 0, "height in characters (shorthand)")
	flag.IntVar(&opts.generations, "generations", 100, "number of generations, 0 for continuous mode")
	flag.IntVar(&opts.generations, "g", 100, "number of generations (shorthand)")
	flag.IntVar(&opts.jobs, "jobs", 4, "number of workers for parallel fitness evaluation")
	flag.IntVar(&opts.jobs, "j", 4, "number of workers (shorthand)")
	flag.StringVar(&opts.initChar, "init-char", "", "character to initialize art buffers with (95% of positions, 5% random)")
	flag.StringVar(&opts.initChar, "i", "", "initialization character (shorthand)")
	flag.StringVar(&opts.output, "output", "", "output file path; .svg and .png select those formats, anything else is text")
	flag.StringVar(&opts.output, "o", "", "output file path (shorthand)")
	flag.BoolVar(&opts.debug, "debug", false, "save debug images (converted input and final ASCII art as PNG files)")
	flag.BoolVar(&opts.debug, "d", false, "save debug images (shorthand)")
	flag.BoolVar(&opts.verbose, "verbose", false, "display fittest ASCII art after each progress update")
	flag.BoolVar(&opts.verbose, "v", false, "verbose output (shorthand)")
	flag.BoolVar(&opts.whiteBackground, "white-background", false, "use white background with black characters")
	flag.BoolVar(&opts.whiteBackground, "W", false, "white background (shorthand)")
	flag.Float64Var(&opts.statusInterval, "status-interval", 1.0, "status update interval in seconds")
	flag.Float64Var(&opts.statusInterval, "s", 1.0, "status update interval (shorthand)")
	flag.IntVar(&opts.population, "population", 80, "population size (20-1000)")
	flag.IntVar(&opts.population, "p", 80, "population size (shorthand)")
	flag.StringVar(&opts.mode, "mode", "genetic", "generation strategy: genetic, brute or luma")
	flag.StringVar(&opts.mode, "m", "genetic", "generation strategy (shorthand)")
	flag.BoolVar(&opts.ui, "ui", false, "show a live progress UI")
	flag.BoolVar(&opts.trim, "trim", false, "strip uniform dark or light borders from the input before processing")
	flag.BoolVar(&opts.invert, "invert", false, "invert the prepared target image")
	flag.StringVar(&opts.configPath, "config", config.DefaultFilename, "config file path")
	flag.BoolVar(&opts.saveConfig, "save-config", false, "persist the effective settings to the config file")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if !set["generations"] && !set["g"] {
		opts.generations = cfg.Generations
	}
	if !set["population"] && !set["p"] {
		opts.population = cfg.Population
	}
	if !set["jobs"] && !set["j"] {
		opts.jobs = cfg.Jobs
	}
	if !set["status-interval"] && !set["s"] {
		opts.statusInterval = cfg.StatusInterval
	}
	if !set["white-background"] && !set["W"] {
		opts.whiteBackground = cfg.WhiteBackground
	}
	if !set["mode"] && !set["m"] {
		opts.mode = cfg.Mode
	}

	if opts.saveConfig {
		effective := &config.Config{
			Generations:     opts.generations,
			Population:      opts.population,
			Jobs:            opts.jobs,
			StatusInterval:  opts.statusInterval,
			WhiteBackground: opts.whiteBackground,
			Mode:            opts.mode,
		}
		if err := config.Save(effective, opts.configPath); err != nil {
			return nil, err
		}
		fmt.Printf("Configuration saved to: %s\n", opts.configPath)
	}

	return &opts, nil
}

func validate(opts *options) error {
	if opts.width == 0 && opts.height == 0 {
		return errors.New("must specify either width or height")
	}
	if opts.width != 0 && opts.height != 0 {
		return errors.New("specify only width OR height, not both")
	}
	if opts.width < 0 || opts.height < 0 {
		return errors.New("dimensions must be positive")
	}
	if opts.population < 20 || opts.population > 1000 {
		return errors.New("population size must be between 20 and 1000")
	}
	if len(opts.initChar) > 1 {
		return errors.New("init character must be a single ASCII character")
	}
	switch opts.mode {
	case "genetic", "brute", "luma":
	default:
		return fmt.Errorf("unknown mode %q (want genetic, brute or luma)", opts.mode)
	}
	if opts.generations < 0 {
		return errors.New("generations must not be negative")
	}
	if opts.generations == 0 && opts.mode == "genetic" && !opts.ui {
		return errors.New("continuous mode (generations = 0) requires -ui")
	}
	return nil
}

func run() error {
	opts, err := parseFlags()
	if err != nil {
		return err
	}
	if flag.NArg() != 1 {
		return errors.New("usage: asciigen [flags] <input image>")
	}
	if err := validate(opts); err != nil {
		return err
	}

	input := flag.Arg(0)
	fmt.Printf("Loading image: %s\n", input)
	img, _, err := imaging.Load(input)
	if err != nil {
		return err
	}

	if opts.trim {
		if b := imaging.ContentBounds(img); !b.Empty() && b != img.Bounds() {
			img = imaging.Crop(img, b)
			fmt.Printf("Trimmed borders, content bounds: %dx%d\n", b.Dx(), b.Dy())
		}
	}
	ib := img.Bounds()
	fmt.Printf("Input image size: %dx%d\n", ib.Dx(), ib.Dy())

	cols, rows := calculateDimensions(ib.Dx(), ib.Dy(), opts.width, opts.height)
	fmt.Printf("Target ASCII dimensions: %dx%d\n", cols, rows)

	renderer, err := ascii.NewRenderer()
	if err != nil {
		return err
	}
	cellW, cellH := renderer.CellSize()
	fmt.Printf("Character dimensions: %dx%d\n", cellW, cellH)

	pw, ph := cols*cellW, rows*cellH
	fmt.Printf("Target pixel dimensions: %dx%d\n", pw, ph)

	target := imaging.PrepareTarget(img, pw, ph, opts.invert)
	tb := target.Bounds()
	fmt.Printf("Post-processed input image size: %dx%d\n", tb.Dx(), tb.Dy())

	best, err := generate(opts, renderer, target, cols, rows)
	if err != nil {
		return err
	}

	out := renderer.Render(best.Chars, cols, rows)
	ob := out.Bounds()
	fmt.Printf("Output ASCII image buffer size: %dx%d\n", ob.Dx(), ob.Dy())

	art := ascii.ArtString(best.Chars, cols)
	fmt.Printf("\nBest ASCII art (fitness: %.2f%%):\n%s\n", best.Fitness*100, art)

	if opts.output != "" {
		raster := renderer.RenderWithBackground(best.Chars, cols, rows, opts.whiteBackground)
		if err := export.Write(opts.output, art, raster, cellW, cellH, opts.whiteBackground); err != nil {
			return err
		}
		fmt.Printf("ASCII art saved to: %s\n", opts.output)
	}

	if opts.debug {
		stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

		inputPath := fmt.Sprintf("debug_input_%s.png", stem)
		if err := imaging.SavePNG(inputPath, target); err != nil {
			return err
		}
		fmt.Printf("Debug input image saved to: %s\n", inputPath)

		asciiPath := fmt.Sprintf("debug_ascii_%s.png", stem)
		raster := renderer.RenderWithBackground(best.Chars, cols, rows, opts.whiteBackground)
		if err := imaging.SavePNG(asciiPath, raster); err != nil {
			return err
		}
		fmt.Printf("Debug ASCII image saved to: %s\n", asciiPath)
	}
	return nil
}

// generate dispatches to the selected search strategy.
func generate(opts *options, renderer *ascii.Renderer, target *image.Gray, cols, rows int) (*genetic.Individual, error) {
	switch opts.mode {
	case "luma":
		chars := renderer.MapLuminance(target, cols, rows, opts.whiteBackground)
		eval := fitness.NewEvaluator(target, opts.whiteBackground, fitness.GeneticPenalty)
		return &genetic.Individual{
			Chars:   chars,
			Fitness: eval.Score(renderer.Render(chars, cols, rows)),
		}, nil

	case "brute":
		eval := fitness.NewEvaluator(target, opts.whiteBackground, fitness.BrutePenalty)
		fmt.Printf("Background threshold: %d, Total non-background pixels: %.0f\n",
			eval.Threshold(), eval.NonBackground())
		gen := brute.New(cols, rows, renderer, eval)
		fmt.Printf("Starting brute force generation for %d positions...\n", cols*rows)
		if opts.ui {
			return runBruteUI(gen, opts, cols, rows)
		}
		return gen.Generate(opts.verbose, nil), nil

	default: // genetic
		eval := fitness.NewEvaluator(target, opts.whiteBackground, fitness.GeneticPenalty)
		fmt.Printf("Background threshold: %d, Total non-background pixels: %.0f, Background probability: %.1f%%\n",
			eval.Threshold(), eval.NonBackground(), eval.BackgroundProb()*100)

		var initChar byte
		if opts.initChar != "" {
			initChar = opts.initChar[0]
		}
		engine := genetic.NewEngine(cols, rows, opts.population, opts.jobs, renderer, eval, initChar)
		fmt.Printf("Running genetic algorithm for %d generations with population size %d...\n",
			opts.generations, opts.population)
		if opts.ui {
			return runGeneticUI(engine, opts, cols, rows)
		}
		best := engine.Evolve(opts.generations, genetic.Options{
			StatusInterval: time.Duration(opts.statusInterval * float64(time.Second)),
			Verbose:        opts.verbose,
		})
		return best, nil
	}
}

// runGeneticUI runs the engine in the background while the terminal UI owns
// the screen. The engine result is safe to read after ctrl.Wait.
func runGeneticUI(engine *genetic.Engine, opts *options, cols, rows int) (*genetic.Individual, error) {
	monitor.Start()
	ctrl := tui.NewControl()

	var best *genetic.Individual
	go func() {
		defer ctrl.Finish()
		best = engine.Evolve(opts.generations, genetic.Options{
			Progress: func(p genetic.Progress) bool {
				var art string
				if opts.verbose {
					art = ascii.ArtString(p.Best.Chars, cols)
				}
				ctrl.Publish(tui.Stats{
					Generation:  p.Generation,
					Total:       p.Generations,
					BestFitness: p.BestFitness,
					Elapsed:     p.Elapsed,
					Population:  opts.population,
					Workers:     opts.jobs,
					Cols:        cols,
					Rows:        rows,
					Art:         art,
				})
				return holdWhilePaused(ctrl)
			},
		})
	}()

	if err := tui.Run(ctrl, opts.generations, opts.verbose); err != nil {
		ctrl.RequestStop()
		ctrl.Wait()
		return nil, err
	}
	ctrl.Wait()
	return best, nil
}

func runBruteUI(gen *brute.Generator, opts *options, cols, rows int) (*genetic.Individual, error) {
	monitor.Start()
	ctrl := tui.NewControl()

	var best *genetic.Individual
	go func() {
		defer ctrl.Finish()
		best = gen.Generate(opts.verbose, func(p brute.Progress) bool {
			ctrl.Publish(tui.Stats{
				Generation: p.Position,
				Total:      p.Total,
				Elapsed:    p.Elapsed,
				Workers:    1,
				Cols:       cols,
				Rows:       rows,
				Art:        p.Art,
			})
			return holdWhilePaused(ctrl)
		})
	}()

	if err := tui.Run(ctrl, cols*rows, opts.verbose); err != nil {
		ctrl.RequestStop()
		ctrl.Wait()
		return nil, err
	}
	ctrl.Wait()
	return best, nil
}

// holdWhilePaused blocks the engine goroutine while the UI is paused and
// reports whether the run should continue.
func holdWhilePaused(ctrl *tui.Control) bool {
	for ctrl.Paused() && !ctrl.Stopped() {
		time.Sleep(100 * time.Millisecond)
	}
	return !ctrl.Stopped()
}

// calculateDimensions derives the missing character dimension from the image
// aspect ratio, corrected for character cells being roughly twice as tall as
// they are wide.
func calculateDimensions(imgW, imgH, width, height int) (cols, rows int) {
	aspect := float64(imgW) / float64(imgH)
	if width > 0 {
		rows = int(float64(width) / aspect * 0.5)
		if rows < 1 {
			rows = 1
		}
		return width, rows
	}
	cols = int(float64(height) * aspect * 2.0)
	if cols < 1 {
		cols = 1
	}
	return cols, height
}
