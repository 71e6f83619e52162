package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jwebster45206/casino/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_ProductionUsesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)

	id := uuid.New()
	WithError(WithSessionID(log, id), errors.New("boom")).Info("Player state saved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Player state saved", entry["msg"])
	assert.Equal(t, id.String(), entry["session_id"])
	assert.Equal(t, "boom", entry["error"])
}

func TestSetup_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&config.Config{Environment: "development", LogLevel: slog.LevelWarn}, &buf)

	log.Info("quiet")
	assert.Empty(t, buf.String())

	log.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestOutput(t *testing.T) {
	w, closeFn, err := Output(&config.Config{})
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "casino.log")
	w, closeFn, err = Output(&config.Config{LogFile: path})
	require.NoError(t, err)
	_, err = w.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
