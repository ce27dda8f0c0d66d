package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"

	"github.com/agrisense/agrisense/internal/database/repository"
	"github.com/agrisense/agrisense/internal/nav"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AGRISENSE_CONFIG", "")

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestWalkReachesResultAfterDelay(t *testing.T) {
	out, err := execute(t, "walk", "dashboard", "map", "zoneDetails", "imageUpload", "aiProcessing",
		"--zone", "A-12", "--wait", "--delay", "20ms")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	require.Contains(t, lines[0], "screen=welcome zone=- result=confirmed")
	require.Contains(t, lines[5], "screen=aiProcessing zone=A-12")
	require.Contains(t, lines[6], "after 20ms")
	require.Contains(t, lines[6], "screen=aiResult zone=A-12 result=confirmed")
}

func TestWalkCarriesResultVariant(t *testing.T) {
	out, err := execute(t, "walk", "map", "--result", "false")
	require.NoError(t, err)
	require.Contains(t, out, "screen=map zone=- result=false")
}

func TestWalkWithoutWaitStaysProcessing(t *testing.T) {
	out, err := execute(t, "walk", "aiProcessing", "--zone", "B-08")
	require.NoError(t, err)
	require.NotContains(t, out, "aiResult")
}

func TestWalkRedirectsZoneDetailsWithoutZone(t *testing.T) {
	out, err := execute(t, "walk", "zoneDetails")
	require.NoError(t, err)
	require.Contains(t, out, "welcome -> zoneDetails (redirected)")
	require.Contains(t, out, "screen=map zone=-")
}

func TestWalkStrictRejectsOffTableStep(t *testing.T) {
	_, err := execute(t, "walk", "--strict", "dashboard", "profile")
	require.ErrorContains(t, err, "dashboard -> profile is not a transition")

	_, err = execute(t, "walk", "--strict", "dashboard", "map", "profile")
	require.NoError(t, err)
}

func TestWalkRejectsBadInput(t *testing.T) {
	_, err := execute(t, "walk", "settings")
	require.ErrorIs(t, err, nav.ErrUnknownScreen)

	_, err = execute(t, "walk", "map", "--result", "maybe")
	require.ErrorIs(t, err, nav.ErrUnknownResult)

	_, err = execute(t, "walk", "map", "--zone", "Z-99")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestZonesTable(t *testing.T) {
	out, err := execute(t, "zones")
	require.NoError(t, err)
	require.Contains(t, out, "CONFIDENCE")
	require.Contains(t, out, "Water stress detected")
	for _, id := range []string{"A-12", "B-08", "C-15", "D-03", "E-19"} {
		require.Contains(t, out, id)
	}
}

func TestZonesGeoJSON(t *testing.T) {
	out, err := execute(t, "zones", "--geojson")
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	require.Len(t, fc.Features, 5)
	require.Equal(t, "A-12", fc.Features[0].ID)
	require.Equal(t, "high", fc.Features[0].Properties.MustString("status"))
}

func TestMissingExplicitConfigFails(t *testing.T) {
	_, err := execute(t, "zones", "--config", filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
