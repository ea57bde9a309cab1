package config

import "time"

const (
	// Reading pipeline
	FullScaleMicroTesla = 200.0 // Fixed full-scale sensor range (µT)
	SensorRateHz        = 30    // Nominal sample cadence for all sources

	// Needle physics
	TargetFPS            = 60 // Animation frames per second
	NeedleDamping        = 0.7
	NeedleSpringConstant = 120.0
	NeedleMass           = 1.0
	NeedleNoiseFactor    = 0.02

	// Click sonification
	ClickThreshold = 0.05 // Normalized intensity below which no clicks fire
	MaxClickRate   = 80.0 // Clicks per second, hard cap

	// Display
	ScaleDivisions = 10  // Gauge tick divisions (ScaleDivisions+1 labels)
	HistorySeconds = 4   // Sparkline/peak window (samples kept = HistorySeconds * SensorRateHz)
	GaugeHotZone   = 0.8 // Fraction of full scale rendered in the hot color

	// Telemetry defaults
	DefaultMQTTTopic  = "emf/reading"
	DefaultListenAddr = ":8080"

	// App
	AppName    = "EMF-METER"
	AppVersion = "1.0"
)

// SampleInterval is the poll period matching SensorRateHz.
const SampleInterval = time.Second / SensorRateHz
