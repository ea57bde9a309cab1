package recorder

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	nmea "github.com/adrianmo/go-nmea"
	serial "github.com/jacobsa/go-serial/serial"
)

// GPSFix is the subset of an NMEA RMC sentence a survey row needs.
type GPSFix struct {
	Latitude   float64
	Longitude  float64
	SpeedKnots float64
	CourseDeg  float64
	Valid      bool
}

// GPSReader tails a serial NMEA stream and keeps the latest RMC fix for
// the recorder to attach to rows. Single writer (the read goroutine),
// many readers.
type GPSReader struct {
	portName string
	baud     uint

	mu   sync.RWMutex
	fix  GPSFix
	has  bool
	port io.ReadWriteCloser
	done chan struct{}
}

// NewGPSReader creates a reader for the given serial port.
func NewGPSReader(portName string, baud uint) *GPSReader {
	if baud == 0 {
		baud = 9600
	}
	return &GPSReader{portName: portName, baud: baud}
}

// Start opens the port and begins parsing in a goroutine.
func (g *GPSReader) Start() error {
	port, err := serial.Open(serial.OpenOptions{
		PortName:        g.portName,
		BaudRate:        g.baud,
		DataBits:        8,
		StopBits:        1,
		ParityMode:      serial.PARITY_NONE,
		MinimumReadSize: 1,
	})
	if err != nil {
		return fmt.Errorf("open GPS port %s: %w", g.portName, err)
	}
	g.port = port
	g.done = make(chan struct{})

	go g.loop()
	return nil
}

func (g *GPSReader) loop() {
	defer close(g.done)

	scanner := bufio.NewScanner(g.port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "$") {
			continue
		}
		g.ingest(line)
	}
	if err := scanner.Err(); err != nil {
		log.Printf("gps: read ended: %v", err)
	}
}

// ingest parses one NMEA sentence and updates the fix on RMC.
func (g *GPSReader) ingest(line string) {
	sentence, err := nmea.Parse(line)
	if err != nil {
		// Noisy receivers emit partial sentences; skip them.
		return
	}
	rmc, ok := sentence.(nmea.RMC)
	if !ok {
		return
	}

	g.mu.Lock()
	g.fix = GPSFix{
		Latitude:   rmc.Latitude,
		Longitude:  rmc.Longitude,
		SpeedKnots: rmc.Speed,
		CourseDeg:  rmc.Course,
		Valid:      rmc.Validity == nmea.ValidRMC,
	}
	g.has = true
	g.mu.Unlock()
}

// Fix returns the latest fix, if any sentence has arrived yet.
func (g *GPSReader) Fix() (GPSFix, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.fix, g.has
}

// Stop closes the port, ending the read goroutine.
func (g *GPSReader) Stop() {
	if g.port != nil {
		_ = g.port.Close()
	}
}
