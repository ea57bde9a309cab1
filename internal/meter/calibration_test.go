package meter

import "testing"

func TestCalibration_ZeroPointIdempotence(t *testing.T) {
	s := Sample{X: 12.5, Y: -3.25, Z: 48.0, Timestamp: 7.5}
	cal := CalibrationFrom(s)

	if !cal.Active() {
		t.Fatal("calibration from a timestamped sample should be active")
	}

	// The calibrating sample must read as exactly zero afterwards.
	got := cal.Apply(s)
	if got.X != 0 || got.Y != 0 || got.Z != 0 {
		t.Errorf("Apply(calibrating sample) = {%v %v %v}, want exact zeros", got.X, got.Y, got.Z)
	}
	if got.Timestamp != s.Timestamp {
		t.Errorf("timestamp changed: got %v, want %v", got.Timestamp, s.Timestamp)
	}
}

func TestCalibration_SentinelIsPassThrough(t *testing.T) {
	var cal Calibration
	if cal.Active() {
		t.Fatal("zero-value calibration must not be active")
	}

	s := Sample{X: 1, Y: 2, Z: 3, Timestamp: 4}
	if got := cal.Apply(s); got != s {
		t.Errorf("sentinel Apply(%+v) = %+v, want identity", s, got)
	}
}

func TestCalibration_Offsets(t *testing.T) {
	cal := CalibrationFrom(Sample{X: 10, Y: 0, Z: 0, Timestamp: 1})
	got := cal.Apply(Sample{X: 13, Y: 4, Z: 0, Timestamp: 2})
	if got.X != 3 || got.Y != 4 || got.Z != 0 {
		t.Errorf("Apply = {%v %v %v}, want {3 4 0}", got.X, got.Y, got.Z)
	}
}
