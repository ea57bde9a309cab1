package meter

// Sample is a single raw 3-axis magnetometer measurement in microtesla.
type Sample struct {
	X, Y, Z   float64 // Field strength per axis (µT)
	Timestamp float64 // Seconds; source-defined epoch
}

// Reading is the fully processed form of one Sample.
// It is recomputed on every incoming sample and never mutated afterwards.
type Reading struct {
	Raw        Sample
	Calibrated Sample
	Magnitude  float64 // Euclidean norm of the calibrated axes (µT)
	Normalized float64 // Magnitude rescaled to [0,1] against full scale
}
