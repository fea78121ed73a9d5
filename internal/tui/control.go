// Package tui shows live search progress in the terminal and relays the
// user's stop and pause requests back to the engine.
package tui

import (
	"sync/atomic"
	"time"
)

// Stats is one progress frame published by the running engine. For the
// brute-force strategy Generation carries the cell position instead.
type Stats struct {
	Generation  int
	Total       int // 0 means continuous mode
	BestFitness float64
	Elapsed     time.Duration
	Population  int
	Workers     int
	Cols, Rows  int
	Art         string
}

// Control is the channel between the engine goroutine and the UI. The engine
// publishes frames and polls the stop/pause flags from its progress
// callback; the UI drains frames and flips the flags on key presses.
type Control struct {
	stats chan Stats
	done  chan struct{}
	stop  atomic.Bool
	pause atomic.Bool
}

func NewControl() *Control {
	return &Control{
		stats: make(chan Stats, 8),
		done:  make(chan struct{}),
	}
}

// Publish never blocks; frames are dropped when the UI lags behind.
func (c *Control) Publish(s Stats) {
	select {
	case c.stats <- s:
	default:
	}
}

// RequestStop asks the engine to finish with its current best.
func (c *Control) RequestStop() { c.stop.Store(true) }

// Stopped reports whether a stop was requested.
func (c *Control) Stopped() bool { return c.stop.Load() }

// TogglePause flips the pause flag.
func (c *Control) TogglePause() { c.pause.Store(!c.pause.Load()) }

// Paused reports whether the engine should hold.
func (c *Control) Paused() bool { return c.pause.Load() }

// Finish marks the engine as done. The engine goroutine must call it exactly
// once, after the result is safe to read.
func (c *Control) Finish() { close(c.done) }

// Wait blocks until Finish.
func (c *Control) Wait() { <-c.done }

func (c *Control) finished() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
