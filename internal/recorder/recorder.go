package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"emf-meter.klederson.com/internal/meter"
)

var csvHeader = []string{
	"time",
	"raw_x_ut", "raw_y_ut", "raw_z_ut",
	"cal_x_ut", "cal_y_ut", "cal_z_ut",
	"magnitude_ut", "normalized",
	"value", "unit",
	"lat", "lon", "speed_knots",
}

// Recorder appends survey rows to a CSV file. Safe for use from the UI
// goroutine while a GPS reader updates fixes concurrently.
type Recorder struct {
	mu   sync.Mutex
	file *os.File
	w    *csv.Writer
	gps  *GPSReader
	rows int
}

// New opens (or creates) the target file and writes the header when the
// file is empty, so a survey can be resumed into the same file.
func New(path string, gps *GPSReader) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open survey file %s: %w", path, err)
	}

	r := &Recorder{file: f, w: csv.NewWriter(f), gps: gps}

	info, err := f.Stat()
	if err == nil && info.Size() == 0 {
		if err := r.w.Write(csvHeader); err != nil {
			f.Close()
			return nil, fmt.Errorf("write survey header: %w", err)
		}
		r.w.Flush()
	}
	return r, nil
}

// Record appends one reading as a row. Position columns are left empty
// when no GPS fix is available.
func (r *Recorder) Record(reading meter.Reading, u meter.Unit) error {
	row := []string{
		time.Now().UTC().Format(time.RFC3339Nano),
		ftoa(reading.Raw.X), ftoa(reading.Raw.Y), ftoa(reading.Raw.Z),
		ftoa(reading.Calibrated.X), ftoa(reading.Calibrated.Y), ftoa(reading.Calibrated.Z),
		ftoa(reading.Magnitude), ftoa(reading.Normalized),
		meter.FormatValue(meter.Convert(reading.Magnitude, meter.UnitMicroTesla, u), u),
		u.Symbol(),
		"", "", "",
	}
	if r.gps != nil {
		if fix, ok := r.gps.Fix(); ok && fix.Valid {
			row[11] = strconv.FormatFloat(fix.Latitude, 'f', 6, 64)
			row[12] = strconv.FormatFloat(fix.Longitude, 'f', 6, 64)
			row[13] = strconv.FormatFloat(fix.SpeedKnots, 'f', 1, 64)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.w.Write(row); err != nil {
		return err
	}
	r.w.Flush()
	r.rows++
	return r.w.Error()
}

// Rows returns how many readings have been written this session.
func (r *Recorder) Rows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows
}

// Close flushes and closes the file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
