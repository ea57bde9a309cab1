package sensor

import (
	"context"
	"math"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"emf-meter.klederson.com/internal/config"
	"emf-meter.klederson.com/internal/meter"
)

// MockSource generates a synthetic magnetic environment for demo mode:
// an Earth-like ambient field with slow wander and noise, plus occasional
// "hotspot" surges so the gauge, clicker and sparkline all get exercised
// without hardware.
type MockSource struct {
	program *tea.Program
	running bool
	cancel  context.CancelFunc

	// Ambient field vector, roughly Earth strength (~48 µT).
	baseX, baseY, baseZ float64

	// Per-axis wander phase.
	phaseX, phaseY, phaseZ float64

	// Hotspot surge state.
	surgeStrength float64 // extra field at surge peak (µT)
	surgeT        float64 // seconds into the surge; <0 means idle
	surgeLen      float64
}

// NewMockSource creates a demo source with a randomized ambient field.
func NewMockSource() *MockSource {
	return &MockSource{
		baseX:  18 + rand.Float64()*6,
		baseY:  -2 + rand.Float64()*8,
		baseZ:  40 + rand.Float64()*6,
		phaseX: rand.Float64() * 2 * math.Pi,
		phaseY: rand.Float64() * 2 * math.Pi,
		phaseZ: rand.Float64() * 2 * math.Pi,
		surgeT: -1,
	}
}

func (s *MockSource) Name() string { return "demo" }

// Start begins emitting synthetic samples at the sensor rate.
func (s *MockSource) Start(p *tea.Program) error {
	s.program = p
	s.running = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	return nil
}

func (s *MockSource) loop(ctx context.Context) {
	ticker := time.NewTicker(config.SampleInterval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.running {
				return
			}
			t := time.Since(start).Seconds()
			s.emit(t)
		}
	}
}

func (s *MockSource) emit(t float64) {
	dt := 1.0 / config.SensorRateHz

	// Occasionally kick off a surge toward a strong source.
	if s.surgeT < 0 && rand.Float64() < 0.004 {
		s.surgeT = 0
		s.surgeLen = 3 + rand.Float64()*5
		s.surgeStrength = 60 + rand.Float64()*140
	}

	surge := 0.0
	if s.surgeT >= 0 {
		s.surgeT += dt
		if s.surgeT >= s.surgeLen {
			s.surgeT = -1
		} else {
			// Smooth rise and fall over the surge window.
			surge = s.surgeStrength * math.Sin(math.Pi*s.surgeT/s.surgeLen)
		}
	}

	// Slow sinusoidal wander plus white noise per axis.
	x := s.baseX + 3*math.Sin(t*0.31+s.phaseX) + (rand.Float64()-0.5)*1.5
	y := s.baseY + 2.5*math.Sin(t*0.23+s.phaseY) + (rand.Float64()-0.5)*1.5
	z := s.baseZ + 3.5*math.Sin(t*0.17+s.phaseZ) + (rand.Float64()-0.5)*1.5 + surge

	msg := SampleMsg{Sample: meter.Sample{X: x, Y: y, Z: z, Timestamp: t}}
	if s.program != nil {
		s.program.Send(msg)
	}
}

// Stop halts the mock source.
func (s *MockSource) Stop() {
	s.running = false
	if s.cancel != nil {
		s.cancel()
	}
}
