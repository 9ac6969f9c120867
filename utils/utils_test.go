package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Country      string  `json:"country"`
	Year         int     `json:"year"`
	GDPPerCapita float64 `json:"gdp_per_capita"`
	Landlocked   bool
	hidden       string
}

func TestStructFieldNames(t *testing.T) {
	names, err := StructFieldNames(testRecord{})
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "year", "gdp_per_capita", "Landlocked"}, names)

	names, err = StructFieldNames(&testRecord{})
	require.NoError(t, err)
	assert.Len(t, names, 4)

	_, err = StructFieldNames(42)
	assert.Error(t, err)
}

func TestStructToMap(t *testing.T) {
	rec := testRecord{
		Country:      "Kenya",
		Year:         2007,
		GDPPerCapita: 1463.25,
		Landlocked:   false,
		hidden:       "x",
	}

	m, err := StructToMap(rec)
	require.NoError(t, err)
	assert.Equal(t, "Kenya", m["country"])
	assert.Equal(t, 2007, m["year"], "ints must stay ints")
	assert.Equal(t, 1463.25, m["gdp_per_capita"])
	assert.Equal(t, false, m["Landlocked"])
	assert.NotContains(t, m, "hidden")
}

func TestStructToMap_Pointer(t *testing.T) {
	m, err := StructToMap(&testRecord{Country: "Norway"})
	require.NoError(t, err)
	assert.Equal(t, "Norway", m["country"])
}

func TestStructToMap_Invalid(t *testing.T) {
	_, err := StructToMap(nil)
	assert.Error(t, err)

	var p *testRecord
	_, err = StructToMap(p)
	assert.Error(t, err)

	_, err = StructToMap("not a struct")
	assert.Error(t, err)
}
