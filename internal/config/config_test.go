package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/collage-kit/pkg/borderzone"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, borderzone.DefaultDetectOptions(), cfg.DetectOptions())
	assert.False(t, cfg.CenterSnap().Enabled)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
drag:
  min_panel_width_px: 80
  center_snap: true
  snap_threshold_px: 6
render:
  format: webp
  quality: 75
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 80.0, cfg.Drag.MinPanelWidthPx)
	assert.Equal(t, 48.0, cfg.Drag.MinPanelHeightPx)
	assert.Equal(t, "webp", cfg.Render.Format)
	assert.Equal(t, 75, cfg.Render.Quality)

	snap := cfg.CenterSnap()
	assert.True(t, snap.Enabled)
	assert.Equal(t, 6.0, snap.ThresholdPx)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("COLLAGE_DRAG_MIN_PANEL_HEIGHT_PX", "120")
	t.Setenv("COLLAGE_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 120.0, cfg.Drag.MinPanelHeightPx)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Detect.HitPaddingPx = 9
	cfg.Focus.Mode = "none"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9.0, loaded.Detect.HitPaddingPx)
	assert.Equal(t, "none", loaded.Focus.Mode)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadFromFile("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"ratio", func(c *Config) { c.Detect.HitLengthRatio = 2 }},
		{"hit length bounds", func(c *Config) { c.Detect.HitLengthMinPx = 50; c.Detect.HitLengthMaxPx = 10 }},
		{"negative min width", func(c *Config) { c.Drag.MinPanelWidthPx = -1 }},
		{"format", func(c *Config) { c.Render.Format = "gif" }},
		{"quality", func(c *Config) { c.Render.Quality = 0 }},
		{"concurrency", func(c *Config) { c.Render.Concurrency = 0 }},
		{"focus mode", func(c *Config) { c.Focus.Mode = "magic" }},
		{"ollama without model", func(c *Config) { c.Focus.Mode = "ollama"; c.Focus.Model = "" }},
		{"llamacpp without url", func(c *Config) { c.Focus.Mode = "llamacpp"; c.Focus.LlamaCppURL = "" }},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "collage-kit", "config.json"), GetConfigPath())
}
