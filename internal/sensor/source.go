package sensor

import (
	tea "github.com/charmbracelet/bubbletea"

	"emf-meter.klederson.com/internal/meter"
)

// Source is a magnetometer sample producer. Implementations run their own
// goroutine and deliver SampleMsg values via program.Send at roughly the
// configured sample rate. Availability is reported once, through Start's
// error, not per sample.
type Source interface {
	// Name identifies the source in the status bar.
	Name() string

	// Start begins sampling. Must be called before program.Run().
	Start(p *tea.Program) error

	// Stop halts sampling.
	Stop()
}

// SampleMsg is sent via tea.Program.Send for every captured sample.
type SampleMsg struct {
	Sample meter.Sample
}

// SourceErrorMsg reports a source failure after startup.
type SourceErrorMsg struct {
	Err error
}
