package tui

import (
	"strings"
	"testing"
	"time"
)

func TestControlPublishNeverBlocks(t *testing.T) {
	c := NewControl()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			c.Publish(Stats{Generation: i})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no consumer")
	}
}

func TestControlFlags(t *testing.T) {
	c := NewControl()

	if c.Stopped() || c.Paused() || c.finished() {
		t.Fatal("fresh control should have no flags set")
	}

	c.RequestStop()
	if !c.Stopped() {
		t.Error("Stopped() = false after RequestStop")
	}

	c.TogglePause()
	if !c.Paused() {
		t.Error("Paused() = false after TogglePause")
	}
	c.TogglePause()
	if c.Paused() {
		t.Error("Paused() = true after second TogglePause")
	}

	c.Finish()
	if !c.finished() {
		t.Error("finished() = false after Finish")
	}

	waited := make(chan struct{})
	go func() {
		c.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Wait() did not return after Finish")
	}
}

func TestViewBounded(t *testing.T) {
	m := NewModel(NewControl(), 100, false)
	m.stats = Stats{
		Generation:  40,
		Total:       100,
		BestFitness: 0.42,
		Elapsed:     10 * time.Second,
		Population:  80,
		Workers:     4,
		Cols:        60,
		Rows:        20,
	}

	view := m.View()
	for _, want := range []string{
		"ASCIIGen",
		"40/100",
		"Best Fitness:",
		"60x20 chars",
		"ETA:",
		"Progress: [",
		"Controls: 'q' to quit, 'p' to pause/resume",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewContinuous(t *testing.T) {
	m := NewModel(NewControl(), 0, true)
	m.stats = Stats{Generation: 7, BestFitness: 0.8, Art: "ooo\noxo"}

	view := m.View()
	for _, want := range []string{
		"7 (continuous)",
		"Press 'q' to stop",
		"Fitness:  [",
		"Current Best ASCII Art:",
		"ooo",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestBar(t *testing.T) {
	if got := bar('#', '-', 0.5); strings.Count(got, "#") != barWidth/2 {
		t.Errorf("bar at 50%% has %d filled cells, want %d", strings.Count(got, "#"), barWidth/2)
	}
	if got := bar('#', '-', 2.0); strings.Count(got, "#") != barWidth {
		t.Error("bar should clamp progress above 1.0")
	}
	if got := bar('#', '-', -1); strings.Count(got, "-") != barWidth {
		t.Error("bar should clamp progress below 0")
	}
}

func TestGensPerSec(t *testing.T) {
	if got := gensPerSec(0, time.Second); got != 0 {
		t.Errorf("gensPerSec(0, 1s) = %v, want 0", got)
	}
	if got := gensPerSec(10, 2*time.Second); got != 5 {
		t.Errorf("gensPerSec(10, 2s) = %v, want 5", got)
	}
}
