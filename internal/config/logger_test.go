package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerTo(t *testing.T) {
	tests := []struct {
		name          string
		cfg           LoggerConfig
		expectedLevel zerolog.Level
	}{
		{name: "debug level", cfg: LoggerConfig{Level: "debug", Format: "json"}, expectedLevel: zerolog.DebugLevel},
		{name: "warn level", cfg: LoggerConfig{Level: "warn", Format: "json"}, expectedLevel: zerolog.WarnLevel},
		{name: "unknown level falls back to info", cfg: LoggerConfig{Level: "loud", Format: "json"}, expectedLevel: zerolog.InfoLevel},
		{name: "empty level falls back to info", cfg: LoggerConfig{Format: "console"}, expectedLevel: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerTo(tt.cfg, &buf)
			assert.Equal(t, tt.expectedLevel, logger.GetLevel())
		})
	}
}

func TestNewLoggerTo_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(LoggerConfig{Level: "info", Format: "json"}, &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Str("component", "test").Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "test", entry["component"])
	assert.Contains(t, entry, "time")
}
