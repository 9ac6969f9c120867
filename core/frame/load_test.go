package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRecords(t *testing.T) {
	t.Run("Infers column types", func(t *testing.T) {
		f, err := LoadRecords([][]string{
			{"flag", "n", "x", "s"},
			{"true", "1", "1.5", "hello"},
			{"false", "2", "2", "world"},
		})
		require.NoError(t, err)
		assert.Equal(t, []Type{Bool, Int, Float, String}, f.Types())
		assert.Equal(t, true, f.Row(0)["flag"])
		assert.Equal(t, 2, f.Row(1)["n"])
		assert.Equal(t, 2.0, f.Row(1)["x"])
	})

	t.Run("Empty cells become nil", func(t *testing.T) {
		f, err := LoadRecords([][]string{
			{"n"},
			{"1"},
			{""},
		})
		require.NoError(t, err)
		assert.Equal(t, Int, f.Types()[0])
		assert.Nil(t, f.Row(1)["n"])
	})

	t.Run("Mixed values fall back to string", func(t *testing.T) {
		f, err := LoadRecords([][]string{
			{"v"},
			{"1"},
			{"abc"},
		})
		require.NoError(t, err)
		assert.Equal(t, String, f.Types()[0])
	})

	t.Run("Missing header fails", func(t *testing.T) {
		_, err := LoadRecords(nil)
		assert.Error(t, err)
	})

	t.Run("Ragged rows fail", func(t *testing.T) {
		_, err := LoadRecords([][]string{
			{"a", "b"},
			{"1"},
		})
		assert.ErrorContains(t, err, "fields")
	})
}

func TestLoadStructs(t *testing.T) {
	type record struct {
		Country      string  `json:"country"`
		Year         int     `json:"year"`
		GDPPerCapita float64 `json:"gdp_per_capita"`
	}

	t.Run("Columns follow field order and tags", func(t *testing.T) {
		f, err := LoadStructs([]record{
			{Country: "Kenya", Year: 2007, GDPPerCapita: 1463.25},
			{Country: "Norway", Year: 2007, GDPPerCapita: 49357.19},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"country", "year", "gdp_per_capita"}, f.Names())
		assert.Equal(t, []Type{String, Int, Float}, f.Types())
		assert.Equal(t, "Norway", f.Row(1)["country"])
	})

	t.Run("Rejects non-slices", func(t *testing.T) {
		_, err := LoadStructs(record{})
		assert.Error(t, err)
	})

	t.Run("Rejects empty slices", func(t *testing.T) {
		_, err := LoadStructs([]record{})
		assert.Error(t, err)
	})
}
