package sensor

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"emf-meter.klederson.com/internal/config"
	"emf-meter.klederson.com/internal/meter"
)

// HMC5983/HMC5883L register map.
const (
	hmcRegCRA  = 0x00
	hmcRegCRB  = 0x01
	hmcRegMode = 0x02
	hmcRegData = 0x03 // X MSB, X LSB, Z MSB, Z LSB, Y MSB, Y LSB
	hmcRegIDA  = 0x0A
)

// HMCDefaultAddr is the fixed I2C address of the HMC598x family.
const HMCDefaultAddr = 0x1E

// hmcLSBPerGauss maps CRB gain codes to digital resolution.
var hmcLSBPerGauss = [8]float64{1370, 1090, 820, 660, 440, 390, 330, 230}

// HMC5983Source reads an HMC5983/HMC5883L magnetometer over I2C via
// periph.io. Wired sensors are the path for SBC installs without a usable
// IIO driver.
type HMC5983Source struct {
	program *tea.Program
	running bool
	cancel  context.CancelFunc

	busName  string
	addr     uint16
	gainCode int

	bus i2c.BusCloser
	dev i2c.Dev
}

// NewHMC5983Source creates an I2C source on the given bus ("1" on most
// Raspberry Pis). addr 0 selects the default address.
func NewHMC5983Source(busName string, addr uint16) *HMC5983Source {
	if addr == 0 {
		addr = HMCDefaultAddr
	}
	return &HMC5983Source{
		busName:  busName,
		addr:     addr,
		gainCode: 1, // ±1.3 Ga range, 1090 LSB/Gauss
	}
}

func (s *HMC5983Source) Name() string { return "hmc5983" }

// Start opens the bus, verifies the chip ID, configures continuous
// measurement and begins polling. Errors here mean "no sensor".
func (s *HMC5983Source) Start(p *tea.Program) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(s.busName)
	if err != nil {
		return fmt.Errorf("i2c open bus %q: %w", s.busName, err)
	}
	s.bus = bus
	s.dev = i2c.Dev{Bus: bus, Addr: s.addr}

	id := make([]byte, 3)
	if err := s.dev.Tx([]byte{hmcRegIDA}, id); err != nil {
		bus.Close()
		return fmt.Errorf("hmc5983 not responding at 0x%X: %w", s.addr, err)
	}
	if string(id) != "H43" {
		bus.Close()
		return fmt.Errorf("unexpected chip ID %q at 0x%X, want \"H43\"", id, s.addr)
	}

	// 8-sample averaging, 30 Hz output, normal measurement; selected gain;
	// continuous conversion mode.
	cra := byte(0x60 | 0x14) // MA=8 samples, DO=30 Hz
	crb := byte(s.gainCode << 5)
	if err := s.dev.Tx([]byte{hmcRegCRA, cra}, nil); err != nil {
		bus.Close()
		return fmt.Errorf("hmc5983 CRA write: %w", err)
	}
	if err := s.dev.Tx([]byte{hmcRegCRB, crb}, nil); err != nil {
		bus.Close()
		return fmt.Errorf("hmc5983 CRB write: %w", err)
	}
	if err := s.dev.Tx([]byte{hmcRegMode, 0x00}, nil); err != nil {
		bus.Close()
		return fmt.Errorf("hmc5983 mode write: %w", err)
	}

	s.program = p
	s.running = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	return nil
}

func (s *HMC5983Source) loop(ctx context.Context) {
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

func (s *HMC5983Source) poll(t float64) {
	raw := make([]byte, 6)
	if err := s.dev.Tx([]byte{hmcRegData}, raw); err != nil {
		if s.program != nil {
			s.program.Send(SourceErrorMsg{Err: fmt.Errorf("hmc5983 read: %w", err)})
		}
		return
	}

	// Registers are big-endian, ordered X, Z, Y.
	x, z, y := hmcCounts(raw[0], raw[1]), hmcCounts(raw[2], raw[3]), hmcCounts(raw[4], raw[5])

	// counts -> Gauss -> µT (1 G = 100 µT).
	scale := 100.0 / hmcLSBPerGauss[s.gainCode]
	msg := SampleMsg{Sample: meter.Sample{
		X:         float64(x) * scale,
		Y:         float64(y) * scale,
		Z:         float64(z) * scale,
		Timestamp: t,
	}}
	if s.program != nil {
		s.program.Send(msg)
	}
}

// Stop halts polling and closes the bus.
func (s *HMC5983Source) Stop() {
	s.running = false
	if s.cancel != nil {
		s.cancel()
	}
	if s.bus != nil {
		_ = s.bus.Close()
	}
}

func hmcCounts(msb, lsb byte) int16 {
	return int16(uint16(msb)<<8 | uint16(lsb))
}
