package models

import (
	"encoding/json"
	"math"
)

// Float is a float64 that encodes NaN and infinities as JSON null.
// Statistics over empty groups are NaN.
type Float float64

func NaN() Float { return Float(math.NaN()) }

func (f Float) IsNaN() bool { return math.IsNaN(float64(f)) }

// Valid reports whether f is a finite number.
func (f Float) Valid() bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// Or returns f, or def when f is not finite.
func (f Float) Or(def float64) float64 {
	if !f.Valid() {
		return def
	}
	return float64(f)
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = NaN()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}
