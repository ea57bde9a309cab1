// Package settings persists the user-adjustable meter state (selected
// unit and calibration zero point) as a small YAML file in the user
// config directory. The meaning of the values belongs to the meter
// package; this is only their storage.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"emf-meter.klederson.com/internal/meter"
)

// Settings is everything the meter remembers between runs.
type Settings struct {
	Unit        string            `yaml:"unit"`
	Calibration meter.Calibration `yaml:"calibration"`
}

// Default returns the out-of-the-box settings.
func Default() Settings {
	return Settings{Unit: meter.UnitMicroTesla.Symbol()}
}

// DefaultPath returns the per-user settings file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "emf-meter", "settings.yaml"), nil
}

// Load reads settings from path. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read settings: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Default(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	if s.Unit == "" {
		s.Unit = meter.UnitMicroTesla.Symbol()
	}
	return s, nil
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// SelectedUnit resolves the stored unit symbol, defaulting to microtesla
// for unknown values rather than failing startup.
func (s Settings) SelectedUnit() meter.Unit {
	u, err := meter.ParseUnit(s.Unit)
	if err != nil {
		return meter.UnitMicroTesla
	}
	return u
}
