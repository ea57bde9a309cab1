package meter

import "emf-meter.klederson.com/internal/config"

// Click-rate curve breakpoints. Four linear segments map normalized
// intensity onto a click cadence that accelerates toward full scale,
// the way a Geiger counter speeds up near a source.
const (
	clickSeg1Start = 0.05
	clickSeg2Start = 0.2
	clickSeg3Start = 0.5
	clickSeg4Start = 0.8

	clickSeg1Slope = 26.67
	clickSeg2Slope = 50.0
	clickSeg3Slope = 100.0
	clickSeg4Slope = 150.0

	clickSeg1Base = 1.0
	clickSeg2Base = 5.0
	clickSeg3Base = 20.0
	clickSeg4Base = 50.0
)

// ClickRate maps normalized intensity to clicks per second. Zero below the
// threshold, then piecewise linear, capped at config.MaxClickRate.
func ClickRate(normalized float64) float64 {
	v := normalized
	switch {
	case v < config.ClickThreshold:
		return 0
	case v < clickSeg2Start:
		return clickSeg1Base + (v-clickSeg1Start)*clickSeg1Slope
	case v < clickSeg3Start:
		return clickSeg2Base + (v-clickSeg2Start)*clickSeg2Slope
	case v < clickSeg4Start:
		return clickSeg3Base + (v-clickSeg3Start)*clickSeg3Slope
	default:
		rate := clickSeg4Base + (v-clickSeg4Start)*clickSeg4Slope
		if rate > config.MaxClickRate {
			rate = config.MaxClickRate
		}
		return rate
	}
}

// ClickInterval returns the seconds between clicks for the given intensity.
// ok is false when the rate is zero and no click should ever fire.
func ClickInterval(normalized float64) (interval float64, ok bool) {
	rate := ClickRate(normalized)
	if rate <= 0 {
		return 0, false
	}
	return 1 / rate, true
}

// ShouldClick reports whether a click is due given the time elapsed since
// the last one. The caller resets its elapsed counter after a true result.
func ShouldClick(normalized, timeSinceLastClick float64) bool {
	interval, ok := ClickInterval(normalized)
	if !ok {
		return false
	}
	return timeSinceLastClick >= interval
}

// Clicker tracks elapsed time between clicks across animation frames.
type Clicker struct {
	sinceLast float64
}

// Tick advances the elapsed time by deltaTime and reports whether a click
// fires this frame. A fired click resets the elapsed counter.
func (c *Clicker) Tick(normalized, deltaTime float64) bool {
	c.sinceLast += deltaTime
	if ShouldClick(normalized, c.sinceLast) {
		c.sinceLast = 0
		return true
	}
	return false
}

// Reset clears the elapsed-time counter.
func (c *Clicker) Reset() {
	c.sinceLast = 0
}
