package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Missing is the field a data source writes when it has no price for a symbol.
const Missing = "-"

// Value is one parsed report field: either missing or a non-negative finite price.
type Value struct {
	price float64
	ok    bool
}

// Some returns a present value.
func Some(price float64) Value {
	return Value{price: price, ok: true}
}

// None returns a missing value.
func None() Value {
	return Value{}
}

// Get returns the price and whether it is present.
func (v Value) Get() (float64, bool) {
	return v.price, v.ok
}

// ParseValue parses a single trimmed report field.
func ParseValue(field string) (Value, error) {
	if field == Missing {
		return None(), nil
	}

	// Only decimal notation is a price; hex floats and digit separators are not.
	if strings.ContainsAny(field, "xX_") {
		return None(), fmt.Errorf("%w: %q is not a decimal number", ErrFormat, field)
	}

	price, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return None(), fmt.Errorf("%w: %q is not a number", ErrFormat, field)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return None(), fmt.Errorf("%w: %q is not finite", ErrFormat, field)
	}
	if price < 0 {
		return None(), fmt.Errorf("%w: %q is negative", ErrFormat, field)
	}

	return Some(price), nil
}

// Parse validates a raw report line and returns one value per field.
// The whole report is rejected if any field is invalid or if the field count differs from expectedLength.
func Parse(raw string, expectedLength int) ([]Value, error) {
	fields := strings.Split(raw, ",")
	values := make([]Value, 0, len(fields))
	for i, field := range fields {
		value, err := ParseValue(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		values = append(values, value)
	}

	if len(values) != expectedLength {
		return nil, fmt.Errorf("%w: got %d fields, expected %d", ErrFormat, len(values), expectedLength)
	}

	return values, nil
}
