package meter

// Calibration is a user-set zero point subtracted from every sample.
// The zero value (Timestamp == 0) is the "not calibrated" sentinel and
// Apply is then the identity.
type Calibration struct {
	OffsetX   float64 `yaml:"offset_x" json:"offsetX"`
	OffsetY   float64 `yaml:"offset_y" json:"offsetY"`
	OffsetZ   float64 `yaml:"offset_z" json:"offsetZ"`
	Timestamp float64 `yaml:"timestamp" json:"timestamp"`
}

// CalibrationFrom captures a sample's axis values as the new zero point,
// so the calibrating instant reads as magnitude 0 afterwards.
func CalibrationFrom(s Sample) Calibration {
	return Calibration{
		OffsetX:   s.X,
		OffsetY:   s.Y,
		OffsetZ:   s.Z,
		Timestamp: s.Timestamp,
	}
}

// Active reports whether a zero point is set.
func (c Calibration) Active() bool {
	return c.Timestamp > 0
}

// Apply subtracts the offset from each axis. The timestamp passes through
// unchanged.
func (c Calibration) Apply(s Sample) Sample {
	return Sample{
		X:         s.X - c.OffsetX,
		Y:         s.Y - c.OffsetY,
		Z:         s.Z - c.OffsetZ,
		Timestamp: s.Timestamp,
	}
}
