package meter

import (
	"math"
	"testing"
)

func TestConvert_RoundTrip(t *testing.T) {
	values := []float64{0, 0.001, 1, 42.5, 50, 199.9, 200, 1234.5}
	for _, u1 := range Units {
		for _, u2 := range Units {
			for _, v := range values {
				got := Convert(Convert(v, u1, u2), u2, u1)
				if v == 0 {
					if got != 0 {
						t.Errorf("round trip %v->%v of 0 = %v, want 0", u1, u2, got)
					}
					continue
				}
				if rel := math.Abs(got-v) / v; rel > 1e-4 {
					t.Errorf("round trip %v->%v of %v = %v (rel err %g)", u1, u2, v, got, rel)
				}
			}
		}
	}
}

func TestConvert_IdentityIsExact(t *testing.T) {
	// Same-unit conversion must not touch the value at all.
	values := []float64{0, 0.1, 1.0 / 3.0, 57.2957795, 200}
	for _, u := range Units {
		for _, v := range values {
			if got := Convert(v, u, u); got != v {
				t.Errorf("Convert(%v, %v, %v) = %v, want exact %v", v, u, u, got, v)
			}
		}
	}
}

func TestConvert_Factors(t *testing.T) {
	tests := []struct {
		v        float64
		from, to Unit
		want     float64
	}{
		{50, UnitMicroTesla, UnitMilliGauss, 500},
		{50, UnitMicroTesla, UnitGauss, 0.5},
		{500, UnitMilliGauss, UnitMicroTesla, 50},
		{0.5, UnitGauss, UnitMicroTesla, 50},
		{1000, UnitMilliGauss, UnitGauss, 1},
	}
	for _, tt := range tests {
		got := Convert(tt.v, tt.from, tt.to)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Convert(%v, %v, %v) = %v, want %v", tt.v, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    float64
		u    Unit
		want string
	}{
		{50, UnitMicroTesla, "50.0"},
		{500, UnitMilliGauss, "500.0"},
		{0.5, UnitGauss, "0.500"},
		{0.1234, UnitGauss, "0.123"},
		{123.456, UnitMicroTesla, "123.5"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v, tt.u); got != tt.want {
			t.Errorf("FormatValue(%v, %v) = %q, want %q", tt.v, tt.u, got, tt.want)
		}
	}
}

func TestDisplayValue(t *testing.T) {
	if got := DisplayValue(500, UnitMilliGauss); got != "500.0 mG" {
		t.Errorf("DisplayValue = %q, want %q", got, "500.0 mG")
	}
	if got := DisplayValue(0.5, UnitGauss); got != "0.500 G" {
		t.Errorf("DisplayValue = %q, want %q", got, "0.500 G")
	}
}

func TestMaxDisplayValue(t *testing.T) {
	tests := []struct {
		u    Unit
		want float64
	}{
		{UnitMicroTesla, 200},
		{UnitMilliGauss, 2000},
		{UnitGauss, 2},
	}
	for _, tt := range tests {
		if got := MaxDisplayValue(tt.u); got != tt.want {
			t.Errorf("MaxDisplayValue(%v) = %v, want %v", tt.u, got, tt.want)
		}
	}
}

func TestScaleLabels(t *testing.T) {
	ut := ScaleLabels(UnitMicroTesla, 4)
	wantUT := []string{"0", "50", "100", "150", "200"}
	if len(ut) != len(wantUT) {
		t.Fatalf("µT labels: got %d, want %d", len(ut), len(wantUT))
	}
	for i := range wantUT {
		if ut[i] != wantUT[i] {
			t.Errorf("µT label[%d] = %q, want %q", i, ut[i], wantUT[i])
		}
	}

	// Gauss axis labels use 1 decimal, coarser than the 3-decimal readout.
	g := ScaleLabels(UnitGauss, 4)
	wantG := []string{"0.0", "0.5", "1.0", "1.5", "2.0"}
	for i := range wantG {
		if g[i] != wantG[i] {
			t.Errorf("G label[%d] = %q, want %q", i, g[i], wantG[i])
		}
	}

	mg := ScaleLabels(UnitMilliGauss, 10)
	if len(mg) != 11 {
		t.Fatalf("mG labels: got %d, want 11", len(mg))
	}
	if mg[0] != "0" || mg[10] != "2000" {
		t.Errorf("mG label ends = %q, %q, want 0 and 2000", mg[0], mg[10])
	}
}

func TestParseUnit(t *testing.T) {
	for _, u := range Units {
		got, err := ParseUnit(u.Symbol())
		if err != nil {
			t.Fatalf("ParseUnit(%q): %v", u.Symbol(), err)
		}
		if got != u {
			t.Errorf("ParseUnit(%q) = %v, want %v", u.Symbol(), got, u)
		}
	}
	if _, err := ParseUnit("parsec"); err == nil {
		t.Error("ParseUnit of garbage should fail")
	}
}

func TestUnitNext_Cycles(t *testing.T) {
	u := UnitMicroTesla
	for i := 0; i < len(Units); i++ {
		u = u.Next()
	}
	if u != UnitMicroTesla {
		t.Errorf("cycling %d times ended on %v, want UnitMicroTesla", len(Units), u)
	}
}
