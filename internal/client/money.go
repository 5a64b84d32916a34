// ABOUTME: Exact currency representation as integer cents
// ABOUTME: Converts the backend's JSON number prices at the wire boundary

package client

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Cents is a currency amount in integer cents. Prices cross the wire as
// JSON numbers; they are rounded to cents exactly once, on decode, and all
// arithmetic afterwards is exact.
type Cents int64

// CentsFromFloat rounds a currency float to the nearest cent.
func CentsFromFloat(f float64) Cents {
	return Cents(math.Round(f * 100))
}

// Float returns the amount as a float for wire encoding. Display formatting
// should use String instead.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// String formats the amount with two decimal places, e.g. "30.00".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// UnmarshalJSON accepts a JSON number and stores it as cents.
func (c *Cents) UnmarshalJSON(data []byte) error {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", string(data), err)
	}
	*c = CentsFromFloat(f)
	return nil
}

// MarshalJSON emits the amount as a JSON number with cent precision.
func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Float())
}
