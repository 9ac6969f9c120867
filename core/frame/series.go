// Package frame implements an immutable, schema-aware tabular data structure:
// an ordered collection of named, typed columns of equal length. Every
// operation returns a new Frame or Series; receivers are never mutated, so a
// loaded frame can be shared freely across readers.
package frame

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Type represents the element type of a Series.
type Type string

// Supported column types.
const (
	Bool   Type = "bool"   // true/false values
	Int    Type = "int"    // integer data
	Float  Type = "float"  // real-valued data
	String Type = "string" // text data
)

// IsNumeric reports whether values of this type can be used in arithmetic
// and statistics.
func (t Type) IsNumeric() bool {
	return t == Int || t == Float
}

// Series is a single named column. The zero value is not usable; construct
// instances with NewSeries.
type Series struct {
	name string
	typ  Type
	vals []any
}

// NewSeries builds a column from a slice of values. Accepted inputs are
// []bool, []int, []float64, []string and []any; values from []any (and
// string inputs for non-string columns) are coerced to the declared type.
// Values that cannot be coerced yield a TypeMismatchError.
func NewSeries(values any, t Type, name string) (*Series, error) {
	var raw []any
	switch vs := values.(type) {
	case []bool:
		raw = make([]any, len(vs))
		for i, v := range vs {
			raw[i] = v
		}
	case []int:
		raw = make([]any, len(vs))
		for i, v := range vs {
			raw[i] = v
		}
	case []float64:
		raw = make([]any, len(vs))
		for i, v := range vs {
			raw[i] = v
		}
	case []string:
		raw = make([]any, len(vs))
		for i, v := range vs {
			raw[i] = v
		}
	case []any:
		raw = make([]any, len(vs))
		copy(raw, vs)
	default:
		return nil, fmt.Errorf("unsupported value slice %T for series %q", values, name)
	}

	out := make([]any, len(raw))
	for i, v := range raw {
		cv, err := coerceValue(v, t)
		if err != nil {
			return nil, &TypeMismatchError{Column: name, Value: v, Want: t}
		}
		out[i] = cv
	}
	return &Series{name: name, typ: t, vals: out}, nil
}

// MustSeries is like NewSeries but panics on error. Intended for static
// test fixtures and examples.
func MustSeries(values any, t Type, name string) *Series {
	s, err := NewSeries(values, t, name)
	if err != nil {
		panic(err)
	}
	return s
}

// coerceValue converts v to the expected column type. Strings are parsed for
// non-string columns; integers widen to float for Float columns. A nil value
// stays nil.
func coerceValue(v any, t Type) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch t {
	case Bool:
		switch val := v.(type) {
		case bool:
			return val, nil
		case string:
			b, err := strconv.ParseBool(val)
			if err == nil {
				return b, nil
			}
		}
	case Int:
		switch val := v.(type) {
		case int:
			return val, nil
		case int64:
			return int(val), nil
		case string:
			n, err := strconv.Atoi(val)
			if err == nil {
				return n, nil
			}
		}
	case Float:
		switch val := v.(type) {
		case float64:
			return val, nil
		case int:
			return float64(val), nil
		case int64:
			return float64(val), nil
		case string:
			f, err := strconv.ParseFloat(val, 64)
			if err == nil {
				return f, nil
			}
		}
	case String:
		switch val := v.(type) {
		case string:
			return val, nil
		default:
			return fmt.Sprintf("%v", val), nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to %s", v, v, t)
}

// Name returns the column name.
func (s *Series) Name() string { return s.name }

// Type returns the column type.
func (s *Series) Type() Type { return s.typ }

// Len returns the number of values in the column.
func (s *Series) Len() int { return len(s.vals) }

// Elem returns the value at index i.
func (s *Series) Elem(i int) any { return s.vals[i] }

// Copy returns an independent copy of the series.
func (s *Series) Copy() *Series {
	vals := make([]any, len(s.vals))
	copy(vals, s.vals)
	return &Series{name: s.name, typ: s.typ, vals: vals}
}

// Rename returns a copy of the series under a new name.
func (s *Series) Rename(name string) *Series {
	c := s.Copy()
	c.name = name
	return c
}

// FloatAt returns the value at index i as a float64. Non-numeric values
// produce a TypeMismatchError.
func (s *Series) FloatAt(i int) (float64, error) {
	switch v := s.vals[i].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, &TypeMismatchError{Column: s.name, Value: s.vals[i], Want: Float}
}

// Floats returns the whole column as a []float64. Fails on the first
// non-numeric value.
func (s *Series) Floats() ([]float64, error) {
	out := make([]float64, len(s.vals))
	for i := range s.vals {
		f, err := s.FloatAt(i)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// Records renders every value as a string.
func (s *Series) Records() []string {
	out := make([]string, len(s.vals))
	for i, v := range s.vals {
		if v == nil {
			out[i] = ""
			continue
		}
		switch val := v.(type) {
		case float64:
			out[i] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			out[i] = fmt.Sprintf("%v", val)
		}
	}
	return out
}

// subset returns a new series holding the values at the given indices.
// Index validity is the caller's responsibility.
func (s *Series) subset(indices []int) *Series {
	vals := make([]any, len(indices))
	for i, idx := range indices {
		vals[i] = s.vals[idx]
	}
	return &Series{name: s.name, typ: s.typ, vals: vals}
}

// Min returns the smallest value of a numeric series.
func (s *Series) Min() (float64, error) {
	fs, err := s.statFloats()
	if err != nil {
		return 0, err
	}
	return floats.Min(fs), nil
}

// Max returns the largest value of a numeric series.
func (s *Series) Max() (float64, error) {
	fs, err := s.statFloats()
	if err != nil {
		return 0, err
	}
	return floats.Max(fs), nil
}

// Mean returns the arithmetic mean of a numeric series.
func (s *Series) Mean() (float64, error) {
	fs, err := s.statFloats()
	if err != nil {
		return 0, err
	}
	return stat.Mean(fs, nil), nil
}

// Quantile returns the empirical p-quantile (0 <= p <= 1) of a numeric
// series. Quantile(0.5) is the median.
func (s *Series) Quantile(p float64) (float64, error) {
	fs, err := s.statFloats()
	if err != nil {
		return 0, err
	}
	sort.Float64s(fs)
	return stat.Quantile(p, stat.Empirical, fs, nil), nil
}

func (s *Series) statFloats() ([]float64, error) {
	if !s.typ.IsNumeric() {
		return nil, &TypeMismatchError{Column: s.name, Want: Float}
	}
	if len(s.vals) == 0 {
		return nil, fmt.Errorf("series %q is empty", s.name)
	}
	return s.Floats()
}
