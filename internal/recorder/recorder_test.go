package recorder

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"emf-meter.klederson.com/internal/meter"
)

func TestRecorder_WritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	rec, err := New(path, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	p := meter.NewProcessor()
	reading := p.Process(meter.Sample{X: 30, Y: 40, Z: 0, Timestamp: 1})
	if err := rec.Record(reading, meter.UnitMilliGauss); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	if rows[0][0] != "time" || rows[0][7] != "magnitude_ut" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	row := rows[1]
	if row[7] != "50.0000" {
		t.Errorf("magnitude column = %q, want 50.0000", row[7])
	}
	if row[9] != "500.0" || row[10] != "mG" {
		t.Errorf("display columns = %q %q, want 500.0 mG", row[9], row[10])
	}
	// No GPS reader attached: position columns stay empty.
	if row[11] != "" || row[12] != "" || row[13] != "" {
		t.Errorf("position columns not empty: %v", row[11:])
	}
}

func TestRecorder_AppendsWithoutDuplicatingHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	p := meter.NewProcessor()

	for i := 0; i < 2; i++ {
		rec, err := New(path, nil)
		if err != nil {
			t.Fatalf("New (pass %d): %v", i, err)
		}
		reading := p.Process(meter.Sample{X: 10, Timestamp: float64(i)})
		if err := rec.Record(reading, meter.UnitMicroTesla); err != nil {
			t.Fatalf("Record (pass %d): %v", i, err)
		}
		if err := rec.Close(); err != nil {
			t.Fatalf("Close (pass %d): %v", i, err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 1 header + 2 data", len(rows))
	}
	if rows[2][0] == "time" {
		t.Error("header written twice")
	}
}

func TestGPSReader_IngestRMC(t *testing.T) {
	g := NewGPSReader("/dev/null", 9600)
	if _, ok := g.Fix(); ok {
		t.Fatal("fresh reader reported a fix")
	}

	g.ingest("$GPRMC,081836,A,3751.65,S,14507.36,E,000.0,360.0,130998,011.3,E*62")
	fix, ok := g.Fix()
	if !ok {
		t.Fatal("no fix after valid RMC sentence")
	}
	if !fix.Valid {
		t.Error("RMC with validity A reported invalid")
	}
	if fix.Latitude > -37.8 || fix.Latitude < -37.9 {
		t.Errorf("latitude = %v, want about -37.86", fix.Latitude)
	}
	if fix.Longitude < 145.1 || fix.Longitude > 145.2 {
		t.Errorf("longitude = %v, want about 145.12", fix.Longitude)
	}
}

func TestGPSReader_SkipsGarbage(t *testing.T) {
	g := NewGPSReader("/dev/null", 9600)
	g.ingest("$GPRMC,not,even,close")
	g.ingest("random line")
	if _, ok := g.Fix(); ok {
		t.Error("garbage input produced a fix")
	}
}
