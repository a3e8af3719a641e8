package objective

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a key-result metric value as the API transmits it: a decimal
// rendered as a string ("0.00", "1500.00"). Comparisons and arithmetic go
// through Float/Int; raw display strings are never compared numerically.
type Value string

// Float parses the value as a decimal.
func (v Value) Float() (float64, error) {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return 0, fmt.Errorf("empty key result value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid key result value %q: %w", string(v), err)
	}
	return f, nil
}

// Int parses the value and truncates it toward zero. The progress update
// endpoint only accepts integer values.
func (v Value) Int() (int, error) {
	f, err := v.Float()
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// String returns the wire representation.
func (v Value) String() string {
	return string(v)
}
