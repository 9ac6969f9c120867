package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
		ok       bool
	}{
		{"int", 42, 42.0, true},
		{"int64", int64(-7), -7.0, true},
		{"float32", float32(1.5), 1.5, true},
		{"float64", 3.14, 3.14, true},
		{"numeric string", "2.5", 2.5, true},
		{"non-numeric string", "abc", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestToFloat64Strict(t *testing.T) {
	got, ok := ToFloat64Strict(7)
	assert.True(t, ok)
	assert.Equal(t, 7.0, got)

	_, ok = ToFloat64Strict("7")
	assert.False(t, ok, "strings must not convert in strict mode")
}
