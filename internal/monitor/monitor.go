// Package monitor samples system CPU and memory usage in the background for
// display in the progress UI.
package monitor

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const sampleInterval = 2 * time.Second

var (
	cpuPercent atomic.Uint64
	memPercent atomic.Uint64
	running    atomic.Bool
)

// Start launches the sampling goroutine. Calling it again is a no-op.
func Start() {
	if !running.CompareAndSwap(false, true) {
		return
	}
	go func() {
		for {
			sample()
			time.Sleep(sampleInterval)
		}
	}()
}

// Stats returns the most recent CPU and memory usage percentages.
func Stats() (cpuPct, memPct float64) {
	return math.Float64frombits(cpuPercent.Load()), math.Float64frombits(memPercent.Load())
}

func sample() {
	if v, err := mem.VirtualMemory(); err == nil {
		memPercent.Store(math.Float64bits(round1(v.UsedPercent)))
	}
	// Interval 0 measures against the previous call instead of blocking the
	// sampling goroutine.
	if c, err := cpu.Percent(0, false); err == nil && len(c) > 0 {
		cpuPercent.Store(math.Float64bits(round1(c[0])))
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
