package sensor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"emf-meter.klederson.com/internal/config"
	"emf-meter.klederson.com/internal/meter"
)

const iioSysfsRoot = "/sys/bus/iio/devices"

// IIOSource polls a magnetometer exposed through the Linux industrial-I/O
// sysfs interface (in_magn_*_raw plus a scale attribute). No root needed
// on most systems; this is the built-in sensor path on laptops and SBCs.
type IIOSource struct {
	program *tea.Program
	running bool
	cancel  context.CancelFunc

	dir   string // e.g. /sys/bus/iio/devices/iio:device2
	name  string
	scale float64 // raw -> Gauss per the IIO ABI
}

// NewIIOSource creates an IIO source. The device is located at Start.
func NewIIOSource() *IIOSource {
	return &IIOSource{}
}

func (s *IIOSource) Name() string {
	if s.name != "" {
		return "iio:" + s.name
	}
	return "iio"
}

// Start locates the first sysfs magnetometer and begins polling it.
// Returns an error when no magnetometer is present.
func (s *IIOSource) Start(p *tea.Program) error {
	dir, err := findIIOMagnetometer(iioSysfsRoot)
	if err != nil {
		return err
	}
	s.dir = dir
	s.name = readSysfsString(filepath.Join(dir, "name"))
	s.scale = readIIOScale(dir)

	s.program = p
	s.running = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	return nil
}

func (s *IIOSource) loop(ctx context.Context) {
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
			s.poll(time.Since(start).Seconds())
		}
	}
}

func (s *IIOSource) poll(t float64) {
	x, errX := readSysfsFloat(filepath.Join(s.dir, "in_magn_x_raw"))
	y, errY := readSysfsFloat(filepath.Join(s.dir, "in_magn_y_raw"))
	z, errZ := readSysfsFloat(filepath.Join(s.dir, "in_magn_z_raw"))
	if errX != nil || errY != nil || errZ != nil {
		if s.program != nil {
			s.program.Send(SourceErrorMsg{Err: fmt.Errorf("iio read failed on %s", s.dir)})
		}
		return
	}

	// IIO magnetometer scale yields Gauss; the pipeline works in µT.
	toMicroTesla := s.scale * 100
	msg := SampleMsg{Sample: meter.Sample{
		X:         x * toMicroTesla,
		Y:         y * toMicroTesla,
		Z:         z * toMicroTesla,
		Timestamp: t,
	}}
	if s.program != nil {
		s.program.Send(msg)
	}
}

// Stop halts the IIO source.
func (s *IIOSource) Stop() {
	s.running = false
	if s.cancel != nil {
		s.cancel()
	}
}

// IIOAvailable reports whether a sysfs magnetometer exists, for source
// auto-selection.
func IIOAvailable() bool {
	_, err := findIIOMagnetometer(iioSysfsRoot)
	return err == nil
}

// findIIOMagnetometer returns the first iio device directory exposing a
// magnetometer channel.
func findIIOMagnetometer(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("no IIO sysfs tree at %s: %w", root, err)
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "iio:device") {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(dir, "in_magn_x_raw")); err == nil {
			return dir, nil
		}
	}
	return "", fmt.Errorf("no IIO magnetometer found under %s", root)
}

// readIIOScale reads the shared or per-axis scale attribute, falling back
// to 1.0 when the driver doesn't expose one.
func readIIOScale(dir string) float64 {
	for _, attr := range []string{"in_magn_scale", "in_magn_x_scale"} {
		if v, err := readSysfsFloat(filepath.Join(dir, attr)); err == nil && v != 0 {
			return v
		}
	}
	return 1.0
}

func readSysfsFloat(path string) (float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
}

func readSysfsString(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
