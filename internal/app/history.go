package app

// HistoryRing holds the recent normalized field magnitudes behind the
// sparkline and the peak figure. Capacity is a time window at the sensor
// rate, so the strip always shows the same few seconds regardless of
// tuning.
type HistoryRing struct {
	buf   []float64
	pos   int
	count int
}

// NewHistoryWindow creates a ring holding seconds worth of samples at the
// given rate.
func NewHistoryWindow(seconds, rateHz int) *HistoryRing {
	n := seconds * rateHz
	if n < 1 {
		n = 1
	}
	return &HistoryRing{
		buf: make([]float64, n),
	}
}

// Push adds a magnitude, evicting the oldest once the window is full.
func (r *HistoryRing) Push(val float64) {
	r.buf[r.pos] = val
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Values returns the windowed magnitudes in chronological order.
func (r *HistoryRing) Values() []float64 {
	if r.count == 0 {
		return nil
	}
	result := make([]float64, r.count)
	if r.count < len(r.buf) {
		copy(result, r.buf[:r.count])
	} else {
		start := r.pos
		n := copy(result, r.buf[start:])
		copy(result[n:], r.buf[:start])
	}
	return result
}

// Last returns the most recent magnitude, or 0 if empty.
func (r *HistoryRing) Last() float64 {
	if r.count == 0 {
		return 0
	}
	idx := (r.pos - 1 + len(r.buf)) % len(r.buf)
	return r.buf[idx]
}

// Peak returns the strongest magnitude still inside the window, or 0 if
// empty. Surveying is usually about the hottest spot walked past, not
// the current one.
func (r *HistoryRing) Peak() float64 {
	peak := 0.0
	for i := 0; i < r.count; i++ {
		if r.buf[i] > peak {
			peak = r.buf[i]
		}
	}
	return peak
}

// Len returns the number of stored magnitudes.
func (r *HistoryRing) Len() int {
	return r.count
}
