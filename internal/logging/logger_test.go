package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/agrisense/agrisense/internal/config"
)

func TestEmptyPathDiscards(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "debug"}, true)
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agrisense.log")
	logger, err := New(config.LogConfig{Path: path, Level: "warn"}, false)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "kept", entry["msg"])
	require.Equal(t, "agrisense", entry["app"])
	require.Contains(t, entry, "ts")
}

func TestVerboseForcesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agrisense.log")
	logger, err := New(config.LogConfig{Path: path, Level: "error"}, true)
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LogConfig{Path: filepath.Join(t.TempDir(), "x.log"), Level: "loud"}, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "log.level")
}
