package sensor

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"tinygo.org/x/bluetooth"

	"emf-meter.klederson.com/internal/meter"
)

// UUIDs of the field-streamer GATT service exposed by the companion phone
// app: one characteristic notifying raw magnetometer frames.
var (
	fieldServiceUUID = mustUUID("8e7c1a40-2f6a-4c8d-9d1e-5b1f0c9a6e01")
	fieldSampleUUID  = mustUUID("8e7c1a41-2f6a-4c8d-9d1e-5b1f0c9a6e01")
)

// sampleFrameLen is the notification payload size: three little-endian
// float32 axis values in µT.
const sampleFrameLen = 12

// BLESource receives magnetometer samples streamed over Bluetooth LE from
// a phone running the field-streamer service.
type BLESource struct {
	adapter   *bluetooth.Adapter
	program   *tea.Program
	running   bool
	connected bool
	device    bluetooth.Device
	started   time.Time
}

// NewBLESource creates a BLE source on the default adapter.
func NewBLESource() *BLESource {
	return &BLESource{
		adapter: bluetooth.DefaultAdapter,
	}
}

func (s *BLESource) Name() string { return "ble" }

// Start enables the adapter and scans for the field-streamer service.
// Once found, it connects and subscribes; every notification becomes a
// SampleMsg stamped with time since Start.
func (s *BLESource) Start(p *tea.Program) error {
	s.program = p

	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}

	s.running = true
	s.started = time.Now()

	go func() {
		err := s.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !s.running {
				return
			}
			if !result.HasServiceUUID(fieldServiceUUID) {
				return
			}
			_ = adapter.StopScan()
			if err := s.connect(result.Address); err != nil && s.program != nil {
				s.program.Send(SourceErrorMsg{Err: err})
			}
		})
		if err != nil && s.running && s.program != nil {
			s.program.Send(SourceErrorMsg{Err: fmt.Errorf("ble scan: %w", err)})
		}
	}()

	return nil
}

func (s *BLESource) connect(addr bluetooth.Address) error {
	device, err := s.adapter.Connect(addr, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("ble connect: %w", err)
	}
	s.device = device
	s.connected = true

	services, err := device.DiscoverServices([]bluetooth.UUID{fieldServiceUUID})
	if err != nil {
		return fmt.Errorf("field service discovery: %w", err)
	}
	if len(services) == 0 {
		return fmt.Errorf("device exposes no field service")
	}
	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{fieldSampleUUID})
	if err != nil {
		return fmt.Errorf("sample characteristic discovery: %w", err)
	}
	if len(chars) == 0 {
		return fmt.Errorf("field service exposes no sample characteristic")
	}

	return chars[0].EnableNotifications(func(buf []byte) {
		if !s.running {
			return
		}
		x, y, z, err := decodeSampleFrame(buf)
		if err != nil {
			return // partial frame; the next notification realigns
		}
		msg := SampleMsg{Sample: meter.Sample{
			X:         x,
			Y:         y,
			Z:         z,
			Timestamp: time.Since(s.started).Seconds(),
		}}
		if s.program != nil {
			s.program.Send(msg)
		}
	})
}

// Stop halts scanning and drops the connection. The zero-value device
// must never see Disconnect: before a connection exists it panics on a
// nil bus object.
func (s *BLESource) Stop() {
	s.running = false
	_ = s.adapter.StopScan()
	if s.connected {
		_ = s.device.Disconnect()
	}
}

// decodeSampleFrame parses a 12-byte little-endian frame of three float32
// axis values in µT.
func decodeSampleFrame(buf []byte) (x, y, z float64, err error) {
	if len(buf) < sampleFrameLen {
		return 0, 0, 0, fmt.Errorf("short sample frame: %d bytes", len(buf))
	}
	x = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	y = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])))
	z = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])))
	return x, y, z, nil
}

func mustUUID(s string) bluetooth.UUID {
	uuid, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return uuid
}
