package sensor

import (
	"encoding/binary"
	"math"
	"testing"
)

func frameFor(x, y, z float32) []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(z))
	return buf
}

func TestDecodeSampleFrame(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float32
	}{
		{"ambient", 21.5, -3.25, 44.0},
		{"zeros", 0, 0, 0},
		{"negative", -120.5, -0.001, -48.75},
	}
	for _, tt := range tests {
		x, y, z, err := decodeSampleFrame(frameFor(tt.x, tt.y, tt.z))
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if x != float64(tt.x) || y != float64(tt.y) || z != float64(tt.z) {
			t.Errorf("%s: got (%v %v %v), want (%v %v %v)",
				tt.name, x, y, z, tt.x, tt.y, tt.z)
		}
	}
}

func TestDecodeSampleFrame_Short(t *testing.T) {
	for _, n := range []int{0, 1, 4, 11} {
		if _, _, _, err := decodeSampleFrame(make([]byte, n)); err == nil {
			t.Errorf("%d-byte frame should be rejected", n)
		}
	}
}

func TestBLESource_StopBeforeConnect(t *testing.T) {
	// Quitting mid-scan must not touch the zero-value device: its
	// Disconnect panics when no connection was ever made.
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Stop before connect panicked: %v", r)
		}
	}()
	s := NewBLESource()
	s.Stop()
}

func TestDecodeSampleFrame_IgnoresTrailingBytes(t *testing.T) {
	// Some stacks pad notifications to the MTU; extra bytes are harmless.
	buf := append(frameFor(1, 2, 3), 0xAA, 0xBB)
	x, y, z, err := decodeSampleFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	if x != 1 || y != 2 || z != 3 {
		t.Errorf("got (%v %v %v), want (1 2 3)", x, y, z)
	}
}
