package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamprep/pkg/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	logger.Debug("hidden")
	logger.Info("Dropping column", "column", "TIDAL_Popularity")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Dropping column", entry["msg"])
	assert.Equal(t, "TIDAL_Popularity", entry["column"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "debug", Format: "text"}, &buf)

	logger.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, id := WithRunID(New(config.LoggingConfig{Format: "json"}, &buf))

	_, err := uuid.Parse(id)
	require.NoError(t, err)

	logger.Info("hello")
	assert.Contains(t, buf.String(), `"run_id":"`+id+`"`)
}
