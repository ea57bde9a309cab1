package meter

import (
	"math"
	"testing"
)

func TestClickRate_ThresholdAndCap(t *testing.T) {
	for _, v := range []float64{0, 0.01, 0.0499} {
		if rate := ClickRate(v); rate != 0 {
			t.Errorf("ClickRate(%v) = %v, want 0 below threshold", v, rate)
		}
	}
	if rate := ClickRate(1.0); rate != 80 {
		t.Errorf("ClickRate(1) = %v, want capped at 80", rate)
	}
	for v := 0.0; v <= 1.0; v += 0.001 {
		if rate := ClickRate(v); rate > 80 {
			t.Fatalf("ClickRate(%v) = %v exceeds max", v, rate)
		}
	}
}

func TestClickRate_SegmentValues(t *testing.T) {
	tests := []struct {
		v    float64
		want float64
	}{
		{0.05, 1},
		{0.2, 5},
		{0.5, 20},
		{0.8, 50},
		{0.35, 5 + 0.15*50},   // 12.5
		{0.65, 20 + 0.15*100}, // 35
		{0.9, 50 + 0.1*150},   // 65
	}
	for _, tt := range tests {
		got := ClickRate(tt.v)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ClickRate(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestClickRate_NonDecreasing(t *testing.T) {
	prev := 0.0
	for v := 0.0; v <= 1.0; v += 0.0005 {
		rate := ClickRate(v)
		if rate < prev {
			t.Fatalf("ClickRate decreased at %v: %v -> %v", v, prev, rate)
		}
		prev = rate
	}
}

func TestClickInterval(t *testing.T) {
	if _, ok := ClickInterval(0.01); ok {
		t.Error("ClickInterval below threshold should report no interval")
	}
	interval, ok := ClickInterval(0.5)
	if !ok {
		t.Fatal("ClickInterval(0.5) should exist")
	}
	if math.Abs(interval-1.0/20.0) > 1e-9 {
		t.Errorf("ClickInterval(0.5) = %v, want %v", interval, 1.0/20.0)
	}
}

func TestShouldClick_Gating(t *testing.T) {
	// Immediately after a click (elapsed reset to 0) nothing fires.
	if ShouldClick(0.9, 0) {
		t.Error("ShouldClick(0.9, 0) fired with no elapsed time")
	}

	interval, _ := ClickInterval(0.9)
	if ShouldClick(0.9, interval/2) {
		t.Error("fired before the interval elapsed")
	}
	if !ShouldClick(0.9, interval) {
		t.Error("did not fire at exactly the interval")
	}
	if !ShouldClick(0.9, interval*3) {
		t.Error("did not fire past the interval")
	}

	// Quiet input never fires, however long we wait.
	if ShouldClick(0.01, 1e9) {
		t.Error("fired below threshold")
	}
}

func TestClicker_FiresAtCadence(t *testing.T) {
	// Frame quantization rounds each interval up to whole frames, so the
	// realized cadence sits between rate/2 and rate. What matters is that
	// it scales with intensity and never exceeds the requested rate.
	countClicks := func(normalized float64, frames int) int {
		var c Clicker
		clicks := 0
		for i := 0; i < frames; i++ {
			if c.Tick(normalized, 1.0/60.0) {
				clicks++
			}
		}
		return clicks
	}

	low := countClicks(0.3, 120)  // 10 Hz requested
	mid := countClicks(0.5, 120)  // 20 Hz requested
	high := countClicks(0.9, 120) // 65 Hz requested

	if low == 0 || mid == 0 || high == 0 {
		t.Fatalf("expected clicks at every level: low=%d mid=%d high=%d", low, mid, high)
	}
	if !(low < mid && mid < high) {
		t.Errorf("cadence not increasing with intensity: low=%d mid=%d high=%d", low, mid, high)
	}
	if mid > 40 {
		t.Errorf("20 Hz cadence produced %d clicks in 2s, exceeds requested rate", mid)
	}
	if high > 130 {
		t.Errorf("65 Hz cadence produced %d clicks in 2s, exceeds requested rate", high)
	}
}

func TestClicker_ResetsAfterFire(t *testing.T) {
	var c Clicker
	interval, _ := ClickInterval(0.9)

	if !c.Tick(0.9, interval) {
		t.Fatal("expected a click after a full interval")
	}
	// Counter was reset: the very next frame must not fire.
	if c.Tick(0.9, interval/10) {
		t.Error("clicker fired again immediately after reset")
	}
}

func TestClicker_SilentBelowThreshold(t *testing.T) {
	var c Clicker
	for i := 0; i < 600; i++ {
		if c.Tick(0.02, 1.0/60.0) {
			t.Fatal("clicker fired below threshold")
		}
	}
}
