package monitor

import (
	"testing"
	"time"
)

func TestStats(t *testing.T) {
	Start()
	Start() // second call must be a no-op

	time.Sleep(100 * time.Millisecond)

	cpuPct, memPct := Stats()
	if cpuPct < 0 || cpuPct > 100 {
		t.Errorf("cpu percent = %v, want within [0,100]", cpuPct)
	}
	if memPct < 0 || memPct > 100 {
		t.Errorf("mem percent = %v, want within [0,100]", memPct)
	}
}
