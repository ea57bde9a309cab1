package meter

import (
	"math"
	"sync"

	"emf-meter.klederson.com/internal/config"
)

// Processor turns raw samples into readings: calibration, magnitude,
// normalization. It also holds the latest reading and the calibration
// offset behind a lock so the sensor goroutine (writer), the frame loop,
// and telemetry consumers each see a consistent snapshot.
type Processor struct {
	mu   sync.RWMutex
	cal  Calibration
	last Reading
	has  bool
}

// NewProcessor creates a processor with no calibration.
func NewProcessor() *Processor {
	return &Processor{}
}

// Process derives a Reading from a raw sample and stores it as the latest.
// Total over finite inputs; NaN/Inf from a malformed sensor propagates.
func (p *Processor) Process(s Sample) Reading {
	p.mu.Lock()
	defer p.mu.Unlock()

	cal := p.cal.Apply(s)
	mag := math.Sqrt(cal.X*cal.X + cal.Y*cal.Y + cal.Z*cal.Z)
	r := Reading{
		Raw:        s,
		Calibrated: cal,
		Magnitude:  mag,
		Normalized: clamp01(mag / config.FullScaleMicroTesla),
	}
	p.last = r
	p.has = true
	return r
}

// Last returns a copy of the most recent reading, if any.
func (p *Processor) Last() (Reading, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last, p.has
}

// Calibrate sets the zero point to the given sample's axis values and
// returns the new offset. All four fields swap as one unit.
func (p *Processor) Calibrate(s Sample) Calibration {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cal = CalibrationFrom(s)
	return p.cal
}

// ResetCalibration restores the pass-through sentinel.
func (p *Processor) ResetCalibration() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cal = Calibration{}
}

// SetCalibration installs a previously persisted offset.
func (p *Processor) SetCalibration(c Calibration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cal = c
}

// Calibration returns the current offset.
func (p *Processor) Calibration() Calibration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cal
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
