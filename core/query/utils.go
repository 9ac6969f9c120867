// Package query provides a set of utility functions to support the query
// builder and processor. These helpers handle common tasks such as numeric
// type conversions.
package query

import "strconv"

// ToFloat64 converts a value of various numeric types (or a numeric string)
// to a float64. It returns the converted float64 and a boolean indicating
// whether the conversion was successful.
func ToFloat64(v any) (float64, bool) {
	if f, ok := ToFloat64Strict(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

// ToFloat64Strict converts genuinely numeric values to float64. Unlike
// ToFloat64 it does not parse strings, so "7" stays a string. Used where
// numeric and textual values must not compare equal.
func ToFloat64Strict(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}
