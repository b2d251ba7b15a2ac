package config

import (
	"os"
	"path/filepath"
	"testing"

	"XSheetInk/internal/object"
	"XSheetInk/internal/tool"

	"github.com/stretchr/testify/require"
)

func useConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "xsheetink.toml")
	if body != "" {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	t.Setenv("XSHEETINK_CONFIG", path)
	return path
}

func TestLoadDefaults(t *testing.T) {
	useConfig(t, "")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, tool.DefaultSettings().Color, cfg.Settings.Color)
	require.Equal(t, object.SymbolKeyframe, cfg.Settings.SymbolKind)
	require.True(t, cfg.Settings.Smoothing)
	require.Equal(t, 48, cfg.Sheet.Frames)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	useConfig(t, `
[settings]
color = "#ff0000"
text_alignment = "center"
dash_pattern = [4, 2]

[sheet]
frames = 96
`)
	t.Setenv("XSHEETINK_LOG_LEVEL", "debug")
	t.Setenv("XSHEETINK_SETTINGS_STROKE_WIDTH", "5")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "#ff0000", cfg.Settings.Color)
	require.Equal(t, object.AlignCenter, cfg.Settings.TextAlignment)
	require.Equal(t, []float64{4, 2}, cfg.Settings.DashPattern)
	require.Equal(t, 5.0, cfg.Settings.StrokeWidth)
	require.Equal(t, 96, cfg.Sheet.Frames)
	require.Equal(t, 6, cfg.Sheet.Columns)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	useConfig(t, "[sheet]\nframes = 0\n")
	_, err := Load()
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	useConfig(t, "[settings\ncolor =")
	_, err := Load()
	require.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := useConfig(t, "")
	t.Setenv("XSHEETINK_CONFIG", filepath.Join(filepath.Dir(path), "nested", "config.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Settings.Color = "#123456"
	cfg.Settings.Fill = true
	cfg.Settings.SymbolKind = object.SymbolImpact
	cfg.Sheet.Columns = 3
	require.NoError(t, Save(cfg))

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, "#123456", again.Settings.Color)
	require.True(t, again.Settings.Fill)
	require.Equal(t, object.SymbolImpact, again.Settings.SymbolKind)
	require.Equal(t, 3, again.Sheet.Columns)
}
