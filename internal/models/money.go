package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Cents is a two-decimal fixed-point currency amount stored in integer cents.
// All arithmetic is integer-only; floats appear only at the JSON boundary,
// where amounts are rendered as plain two-decimal numbers (e.g. 50.00).
type Cents int64

// CentsFromFloat converts a dollar amount (as received from JSON) to Cents,
// rounding half away from zero.
func CentsFromFloat(dollars float64) Cents {
	return Cents(math.Round(dollars * 100))
}

// Dollars returns the amount as a float for display math.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// String formats the amount as a signed two-decimal string, e.g. "-12.30".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON renders the amount as a JSON number with two decimals.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a JSON number of dollars.
func (c *Cents) UnmarshalJSON(data []byte) error {
	var v json.Number
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	f, err := v.Float64()
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", v, err)
	}
	*c = CentsFromFloat(f)
	return nil
}
