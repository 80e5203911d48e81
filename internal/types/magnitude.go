// Package types provides type definitions for structured data used throughout the majel crew engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Magnitude is the recorded size of an effect. Unknown is an explicit state: an unknown
// magnitude is not zero and must never take part in arithmetic as if it were.
type Magnitude struct {
	value float64
	known bool
}

// KnownMagnitude returns a Magnitude with a recorded value.
func KnownMagnitude(v float64) Magnitude {
	return Magnitude{value: v, known: true}
}

// UnknownMagnitude returns a Magnitude whose value was never recorded.
func UnknownMagnitude() Magnitude {
	return Magnitude{}
}

// Value returns the recorded value and whether one exists.
func (m Magnitude) Value() (float64, bool) {
	return m.value, m.known
}

// IsKnown reports whether the magnitude was recorded.
func (m Magnitude) IsKnown() bool {
	return m.known
}

// String renders the magnitude for logs and verbose output.
func (m Magnitude) String() string {
	if !m.known {
		return "unknown"
	}
	return strconv.FormatFloat(m.value, 'g', -1, 64)
}

// MarshalJSON encodes an unknown magnitude as null.
func (m Magnitude) MarshalJSON() ([]byte, error) {
	if !m.known {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

// UnmarshalJSON decodes null as unknown and a number as known.
func (m *Magnitude) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = UnknownMagnitude()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("magnitude must be a number or null: %w", err)
	}
	*m = KnownMagnitude(v)
	return nil
}
