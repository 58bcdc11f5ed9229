package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONFields(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	logger := New(&buf, "json")
	logger.Info("report dropped", "data_source", 715, "error", errors.New("bad field"), 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "report dropped", entry["message"])
	assert.EqualValues(t, 715, entry["data_source"])
	assert.Equal(t, "bad field", entry["error"])
}

func TestLogger_With(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	logger := New(&buf, "json").With("component", "script")
	logger.Debug("executing")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "script", entry["component"])
}

func TestNoopLogger(t *testing.T) {
	logger := NewNoopLogger()
	assert.NotPanics(t, func() {
		logger.Debug("nothing", "key", "value")
		logger.Error("still nothing")
	})
}

func TestGlobal_DefaultsToNoop(t *testing.T) {
	SetGlobal(nil)
	assert.NotNil(t, Global())
	assert.NotPanics(t, func() { Info("no global logger") })
}
