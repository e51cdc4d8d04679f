package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "info", Format: "json", Output: &buf, ServiceName: "pricecomp"})

	logger.With().Str("build_id", "b1").Logger().Info().Int("rows", 3).Msg("Product table loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "pricecomp", line["service"])
	assert.Equal(t, "b1", line["build_id"])
	assert.Equal(t, float64(3), line["rows"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "Product table loaded", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "warn", Output: &buf})

	logger.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Output: &buf}).WithOperation("getdata")

	logger.Info().Msg("x")
	assert.Contains(t, buf.String(), `"operation":"getdata"`)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNopLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NopLogger().Error().Str("k", "v").Msg("discarded")
	})
}
