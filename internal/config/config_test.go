package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencv-filtering/internal/validation"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), SettingsFile))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	content := `
camera:
  device: 2
  width: 1280
filters:
  enabled: [median, canny]
  median_kernel: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Camera.Device)
	assert.Equal(t, 1280, cfg.Camera.Width)
	assert.Equal(t, 480, cfg.Camera.Height)
	assert.Equal(t, []string{"median", "canny"}, cfg.Filters.Enabled)
	assert.Equal(t, 7, cfg.Filters.MedianKernel)
	assert.Equal(t, 1.5, cfg.Filters.GaussianSigma)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	require.NoError(t, os.WriteFile(path, []byte("camera: [unclosed"), 0o644))

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse settings file")
	assert.False(t, validation.Is(err))
}

func TestFromEnv(t *testing.T) {
	t.Setenv("OPENCV_FILTERING_LOG_LEVEL", "DEBUG")
	t.Setenv("OPENCV_FILTERING_JSON_LOGS", "true")
	t.Setenv("OPENCV_FILTERING_LOG_FILE", "run.log")
	t.Setenv("OPENCV_FILTERING_CAMERA", "1")

	cfg := FromEnv(Default())

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "run.log", cfg.Log.File)
	assert.Equal(t, 1, cfg.Camera.Device)
}

func TestFromEnvIgnoresBadCameraIndex(t *testing.T) {
	t.Setenv("OPENCV_FILTERING_CAMERA", "front")

	cfg := FromEnv(Default())

	assert.Equal(t, 0, cfg.Camera.Device)
}

func TestValidateReportsField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"negative device", func(c *Config) { c.Camera.Device = -1 }, "camera.device"},
		{"zero width", func(c *Config) { c.Camera.Width = 0 }, "camera.size"},
		{"zero fps", func(c *Config) { c.Camera.FPS = 0 }, "camera.fps"},
		{"window", func(c *Config) { c.Window.Height = 0 }, "window"},
		{"unknown filter", func(c *Config) { c.Filters.Enabled = []string{"sepia"} }, "filters.enabled"},
		{"duplicate filter", func(c *Config) { c.Filters.Enabled = []string{"median", "median"} }, "filters.enabled"},
		{"even median", func(c *Config) { c.Filters.MedianKernel = 4 }, "filters.median_kernel"},
		{"tiny morphology", func(c *Config) { c.Filters.MorphologyKernel = 1 }, "filters.morphology_kernel"},
		{"canny order", func(c *Config) { c.Filters.CannyHigh = 10 }, "filters.canny"},
		{"even adaptive block", func(c *Config) { c.Filters.AdaptiveBlock = 10 }, "filters.adaptive_block_size"},
		{"snapshot dir", func(c *Config) { c.Output.SnapshotDir = "" }, "output.snapshot_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			verr, ok := validation.As(cfg.Validate())

			require.True(t, ok)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
