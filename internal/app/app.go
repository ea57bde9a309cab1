package app

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"emf-meter.klederson.com/internal/audio"
	"emf-meter.klederson.com/internal/config"
	"emf-meter.klederson.com/internal/meter"
	"emf-meter.klederson.com/internal/recorder"
	"emf-meter.klederson.com/internal/sensor"
	"emf-meter.klederson.com/internal/settings"
	"emf-meter.klederson.com/internal/telemetry"
	"emf-meter.klederson.com/internal/ui"
)

// Frames the click marker stays lit after a click fires.
const flashFrames = 6

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	processor *meter.Processor
	needle    *meter.Needle
	clicker   *meter.Clicker
	history   *HistoryRing
	spark     *ui.Sparkline
	bell      *audio.Bell
	source    sensor.Source
	recorder  *recorder.Recorder
	mqtt      *telemetry.MQTTPublisher
	hub       *telemetry.Hub
}

// Options configures the meter app. Telemetry and recording fields are
// optional; nil disables the feature.
type Options struct {
	Unit         meter.Unit
	Seed         int64
	SettingsPath string
	Calibration  meter.Calibration
	Source       sensor.Source
	Recorder     *recorder.Recorder
	MQTT         *telemetry.MQTTPublisher
	Hub          *telemetry.Hub
	Muted        bool
	Recording    bool
}

// AppModel is the root Bubble Tea model for the EMF meter.
type AppModel struct {
	width  int
	height int

	unit      meter.Unit
	paused    bool
	muted     bool
	recording bool

	flash        int
	lastTick     time.Time
	settingsPath string
	sourceErr    string

	shared *shared

	// Cached snapshot
	reading    meter.Reading
	hasReading bool
}

// New creates a new AppModel.
func New(opts Options) AppModel {
	processor := meter.NewProcessor()
	processor.SetCalibration(opts.Calibration)

	m := AppModel{
		unit:         opts.Unit,
		muted:        opts.Muted,
		recording:    opts.Recording && opts.Recorder != nil,
		settingsPath: opts.SettingsPath,
		shared: &shared{
			processor: processor,
			needle:    meter.NewNeedle(opts.Seed),
			clicker:   &meter.Clicker{},
			history:   NewHistoryWindow(config.HistorySeconds, config.SensorRateHz),
			spark:     ui.NewSparkline(),
			bell:      audio.NewBell(),
			source:    opts.Source,
			recorder:  opts.Recorder,
			mqtt:      opts.MQTT,
			hub:       opts.Hub,
		},
	}
	m.shared.bell.SetMuted(m.muted)
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case sensor.SampleMsg:
		if !m.paused {
			m.ingest(msg.Sample)
		}
		return m, nil

	case sensor.SourceErrorMsg:
		m.sourceErr = msg.Err.Error()
		return m, nil
	}

	return m, nil
}

// ingest runs one sample through the pipeline and fans it out.
func (m *AppModel) ingest(s meter.Sample) {
	m.reading = m.shared.processor.Process(s)
	m.hasReading = true
	m.shared.history.Push(m.reading.Normalized)

	if m.shared.mqtt != nil || m.shared.hub != nil {
		frame := telemetry.NewReadingPayload(m.reading, m.unit)
		if m.shared.mqtt != nil {
			m.shared.mqtt.Publish(m.reading, m.unit)
		}
		if m.shared.hub != nil {
			m.shared.hub.Broadcast(frame.Encode())
		}
	}

	if m.recording && m.shared.recorder != nil {
		if err := m.shared.recorder.Record(m.reading, m.unit); err != nil {
			log.Printf("recorder: %v", err)
			m.recording = false
		}
	}
}

// handleTick advances needle physics and click cadence by the real frame
// delta so animation speed survives dropped frames.
func (m AppModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := 1.0 / float64(config.TargetFPS)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
		// A suspended terminal shouldn't catapult the needle on resume.
		if dt > 0.25 {
			dt = 0.25
		}
	}
	m.lastTick = now

	target := 0.0
	if m.hasReading {
		target = m.reading.Normalized
	}
	m.shared.needle.Update(target, dt)

	if m.flash > 0 {
		m.flash--
	}
	if !m.paused && m.shared.clicker.Tick(target, dt) {
		m.shared.bell.Click()
		m.flash = flashFrames
	}

	return m, tickCmd()
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.shutdown()
		return m, tea.Quit

	case "c", "C":
		if m.hasReading {
			m.shared.processor.Calibrate(m.reading.Raw)
			m.saveSettings()
		}

	case "z", "Z":
		m.shared.processor.ResetCalibration()
		m.saveSettings()

	case "u", "U":
		m.unit = m.unit.Next()
		// Snap instead of animating: the field didn't change, only the
		// scale did.
		m.shared.needle.SetPosition(m.reading.Normalized)
		m.saveSettings()

	case "m", "M":
		m.muted = !m.muted
		m.shared.bell.SetMuted(m.muted)

	case "p", "P":
		m.paused = !m.paused
		if m.paused {
			m.shared.clicker.Reset()
		}

	case "l", "L":
		if m.shared.recorder != nil {
			m.recording = !m.recording
		}
	}

	return m, nil
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing EMF meter..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 8 {
		bodyH = 8
	}

	sourceName := "none"
	if m.shared.source != nil {
		sourceName = m.shared.source.Name()
	}
	if m.sourceErr != "" {
		sourceName += " (error)"
	}
	menuBar := ui.RenderMenuBar(m.width, sourceName, m.paused)

	innerW := m.width - 4
	gaugeH := bodyH - 6
	if innerW < 15 {
		innerW = 15
	}
	if gaugeH < 6 {
		gaugeH = 6
	}

	position := m.shared.needle.Position()
	hot := position >= config.GaugeHotZone

	gauge := ui.RenderGauge(innerW, gaugeH, position, m.unit)
	readout := ui.RenderReadout(innerW, m.reading.Magnitude, m.reading.Normalized,
		m.unit, m.shared.processor.Calibration().Active(), m.flash > 0, m.muted)
	spark := m.shared.spark.Render(innerW, m.shared.history.Values())
	body := ui.RenderGaugePanel(m.width, bodyH, hot, gauge, readout, spark)

	rows := 0
	if m.shared.recorder != nil {
		rows = m.shared.recorder.Rows()
	}
	wsClients := 0
	if m.shared.hub != nil {
		wsClients = m.shared.hub.ClientCount()
	}
	statusBar := ui.RenderStatusBar(m.width, m.paused, m.unit,
		m.shared.history.Len(), m.shared.history.Peak(), m.recording, rows,
		wsClients, m.shared.mqtt != nil)

	return ui.ComposeLayout(menuBar, body, statusBar)
}

// StartSource begins sampling. Must be called before p.Run().
func (m *AppModel) StartSource(p *tea.Program) error {
	if m.shared.source == nil {
		return nil
	}
	return m.shared.source.Start(p)
}

func (m AppModel) shutdown() {
	if m.shared.source != nil {
		m.shared.source.Stop()
	}
	if m.shared.recorder != nil {
		if err := m.shared.recorder.Close(); err != nil {
			log.Printf("close recorder: %v", err)
		}
	}
	if m.shared.mqtt != nil {
		m.shared.mqtt.Close()
	}
	m.shared.bell.Close()
}

func (m AppModel) saveSettings() {
	if m.settingsPath == "" {
		return
	}
	s := settings.Settings{
		Unit:        m.unit.Symbol(),
		Calibration: m.shared.processor.Calibration(),
	}
	if err := settings.Save(m.settingsPath, s); err != nil {
		log.Printf("save settings: %v", err)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
