package meter

import (
	"fmt"
	"strconv"

	"emf-meter.klederson.com/internal/config"
)

// Unit is a display unit for magnetic field strength.
// MicroTesla is the base unit all conversions pivot through.
type Unit int

const (
	UnitMicroTesla Unit = iota
	UnitMilliGauss
	UnitGauss
)

// Units lists all selectable units in cycle order.
var Units = []Unit{UnitMicroTesla, UnitMilliGauss, UnitGauss}

func (u Unit) String() string {
	switch u {
	case UnitMilliGauss:
		return "Milligauss"
	case UnitGauss:
		return "Gauss"
	default:
		return "Microtesla"
	}
}

// Symbol returns the short unit symbol shown next to readings.
func (u Unit) Symbol() string {
	switch u {
	case UnitMilliGauss:
		return "mG"
	case UnitGauss:
		return "G"
	default:
		return "µT"
	}
}

// FromBase converts a value in microtesla into this unit.
// 1 µT = 10 mG = 0.01 G.
func (u Unit) FromBase(v float64) float64 {
	switch u {
	case UnitMilliGauss:
		return v * 10
	case UnitGauss:
		return v / 100
	default:
		return v
	}
}

// ToBase converts a value in this unit back into microtesla.
func (u Unit) ToBase(v float64) float64 {
	switch u {
	case UnitMilliGauss:
		return v / 10
	case UnitGauss:
		return v * 100
	default:
		return v
	}
}

// Next returns the following unit in cycle order, wrapping around.
func (u Unit) Next() Unit {
	return Units[(int(u)+1)%len(Units)]
}

// ParseUnit resolves a unit from its symbol or name (case-sensitive symbol,
// as stored in settings and accepted on the command line).
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "uT", "µT", "microtesla":
		return UnitMicroTesla, nil
	case "mG", "milligauss":
		return UnitMilliGauss, nil
	case "G", "gauss":
		return UnitGauss, nil
	}
	return UnitMicroTesla, fmt.Errorf("unknown unit %q", s)
}

// Convert converts a value between units, pivoting through microtesla.
// Same-unit conversions return the value unchanged so no-op conversions
// never accumulate float round-trip error.
func Convert(v float64, from, to Unit) float64 {
	if from == to {
		return v
	}
	return to.FromBase(from.ToBase(v))
}

// FormatValue renders a value for the primary readout. Microtesla and
// milligauss round to 1 decimal; gauss gets 3 decimals to keep resolution
// over its much smaller numeric range.
func FormatValue(v float64, u Unit) string {
	if u == UnitGauss {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// DisplayValue renders a value with its unit symbol, e.g. "500.0 mG".
func DisplayValue(v float64, u Unit) string {
	return FormatValue(v, u) + " " + u.Symbol()
}

// MaxDisplayValue returns the gauge full-scale value in the given unit.
func MaxDisplayValue(u Unit) float64 {
	return u.FromBase(config.FullScaleMicroTesla)
}

// ScaleLabels produces divisions+1 evenly spaced axis labels from 0 to the
// unit's full scale. Labels are integers for microtesla and milligauss and
// 1 decimal for gauss, coarser than FormatValue so the dial doesn't drown
// in digits.
func ScaleLabels(u Unit, divisions int) []string {
	if divisions < 1 {
		divisions = 1
	}
	max := MaxDisplayValue(u)
	labels := make([]string, divisions+1)
	for i := 0; i <= divisions; i++ {
		v := max * float64(i) / float64(divisions)
		if u == UnitGauss {
			labels[i] = strconv.FormatFloat(v, 'f', 1, 64)
		} else {
			labels[i] = strconv.FormatFloat(v, 'f', 0, 64)
		}
	}
	return labels
}
