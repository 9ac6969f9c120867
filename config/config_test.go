package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TABULA_SOURCE", "")
	t.Setenv("TABULA_DB", "")
	t.Setenv("TABULA_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "testdata/gapminder.csv", cfg.Source)
	assert.Equal(t, "tabula.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TABULA_SOURCE", "https://example.com/data.csv")
	t.Setenv("TABULA_DB", "/tmp/frames.db")
	t.Setenv("TABULA_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/data.csv", cfg.Source)
	assert.Equal(t, "/tmp/frames.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("TABULA_LOG_LEVEL", "shouting")

	_, err := Load()
	assert.ErrorContains(t, err, "TABULA_LOG_LEVEL")
}
