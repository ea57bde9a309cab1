package telemetry

import (
	"encoding/json"
	"time"

	"emf-meter.klederson.com/internal/meter"
)

// ReadingPayload is the JSON schema published over MQTT and the websocket.
// Axis values are the calibrated field in µT; value/unit carry the
// user-facing display conversion.
type ReadingPayload struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Magnitude  float64 `json:"magnitude"`
	Normalized float64 `json:"normalized"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Time       string  `json:"time"`
}

// NewReadingPayload builds the wire form of a reading in the given unit.
func NewReadingPayload(r meter.Reading, u meter.Unit) ReadingPayload {
	return ReadingPayload{
		X:          r.Calibrated.X,
		Y:          r.Calibrated.Y,
		Z:          r.Calibrated.Z,
		Magnitude:  r.Magnitude,
		Normalized: r.Normalized,
		Value:      meter.Convert(r.Magnitude, meter.UnitMicroTesla, u),
		Unit:       u.Symbol(),
		Time:       time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// Encode marshals the payload; a reading never fails to encode, so the
// error collapses to nil bytes for the caller to skip.
func (p ReadingPayload) Encode() []byte {
	b, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	return b
}
