package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agrisense/agrisense/internal/nav"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AGRISENSE_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, cfg.UI.ProcessingDelay)
	require.Equal(t, nav.ResultConfirmed, cfg.DefaultResult())
	require.Equal(t, "Udawalawe Region", cfg.UI.Region)
	require.Equal(t, "Kasun Perera", cfg.Profile.Name)
	require.Equal(t, "agrisense", cfg.Catalog.Name)
	require.Empty(t, cfg.Log.Path)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "agrisense.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[ui]
region = "Embilipitiya"
processing_delay = "1500ms"
default_result = "false"

[profile]
name = "Nimali Silva"

[log]
level = "debug"
`), 0o644))
	t.Setenv("AGRISENSE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Embilipitiya", cfg.UI.Region)
	require.Equal(t, 1500*time.Millisecond, cfg.UI.ProcessingDelay)
	require.Equal(t, nav.ResultFalsePositive, cfg.DefaultResult())
	require.Equal(t, "Nimali Silva", cfg.Profile.Name)
	require.Equal(t, "Field Officer", cfg.Profile.Role)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	t.Setenv("AGRISENSE_UI_PROCESSING_DELAY", "250ms")
	t.Setenv("AGRISENSE_PROFILE_LANGUAGE", "Sinhala")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, cfg.UI.ProcessingDelay)
	require.Equal(t, "Sinhala", cfg.Profile.Language)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	isolate(t)
	t.Setenv("AGRISENSE_UI_PROCESSING_DELAY", "0s")
	t.Setenv("AGRISENSE_UI_DEFAULT_RESULT", "maybe")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "processing_delay must be positive")
	require.ErrorIs(t, err, nav.ErrUnknownResult)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	t.Setenv("AGRISENSE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config")
}
