package ui

import (
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"emf-meter.klederson.com/internal/config"
)

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders the recent magnitude history as a bar strip. Each
// column is smoothed through its own spring so the strip eases between
// frames instead of snapping when the history ring advances.
type Sparkline struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

// NewSparkline builds a sparkline tuned for the frame rate.
func NewSparkline() *Sparkline {
	return &Sparkline{
		spring: harmonica.NewSpring(harmonica.FPS(config.TargetFPS), 8.0, 0.9),
	}
}

func (s *Sparkline) resize(n int) {
	if len(s.pos) == n {
		return
	}
	s.pos = make([]float64, n)
	s.vel = make([]float64, n)
}

func (s *Sparkline) step(i int, target float64) float64 {
	p, v := s.spring.Update(s.pos[i], s.vel[i], target)
	s.pos[i] = p
	s.vel[i] = v
	return p
}

// Render draws the history values, newest on the right, into a strip of
// the given width. Values are normalized magnitudes in [0, 1].
func (s *Sparkline) Render(width int, values []float64) string {
	if width < 1 {
		return ""
	}
	s.resize(width)

	// Right-align the history: the newest sample lands in the last column.
	targets := make([]float64, width)
	offset := width - len(values)
	for i, v := range values {
		col := offset + i
		if col < 0 {
			continue
		}
		targets[col] = clampFrac(v)
	}

	var sb strings.Builder
	for col := 0; col < width; col++ {
		level := clampFrac(s.step(col, targets[col]))
		glyph := sparkGlyphs[int(level*float64(len(sparkGlyphs)-1)+0.5)]
		sb.WriteString(sparkStyle(level).Render(string(glyph)))
	}
	return sb.String()
}

func sparkStyle(level float64) lipgloss.Style {
	switch {
	case level >= config.GaugeHotZone:
		return lipgloss.NewStyle().Foreground(ColorHotRed)
	case level > 0.4:
		return lipgloss.NewStyle().Foreground(ColorAmberBright)
	case level > 0.1:
		return lipgloss.NewStyle().Foreground(ColorAmber)
	default:
		return lipgloss.NewStyle().Foreground(ColorAmberDim)
	}
}
