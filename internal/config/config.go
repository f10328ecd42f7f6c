// Package config resolves application settings from defaults, an optional
// YAML settings file and environment overrides.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SettingsFile is looked up relative to the working directory.
const SettingsFile = "settings.yaml"

type Config struct {
	Log     LogConfig    `yaml:"log"`
	Camera  CameraConfig `yaml:"camera"`
	Window  WindowConfig `yaml:"window"`
	Filters FilterConfig `yaml:"filters"`
	Output  OutputConfig `yaml:"output"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
	File  string `yaml:"file"`
}

type CameraConfig struct {
	Device        int     `yaml:"device"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	FPS           float64 `yaml:"fps"`
	ProbeAttempts int     `yaml:"probe_attempts"`
	MaxReadErrors int     `yaml:"max_read_errors"`
}

type WindowConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// FilterConfig lists the enabled filters in execution order plus their
// tuning values.
type FilterConfig struct {
	Enabled          []string `yaml:"enabled"`
	GaussianSigma    float64  `yaml:"gaussian_sigma"`
	MedianKernel     int      `yaml:"median_kernel"`
	BilateralD       int      `yaml:"bilateral_diameter"`
	BilateralSigma   float64  `yaml:"bilateral_sigma"`
	CannyLow         float32  `yaml:"canny_low"`
	CannyHigh        float32  `yaml:"canny_high"`
	CLAHEClipLimit   float64  `yaml:"clahe_clip_limit"`
	CLAHETileSize    int      `yaml:"clahe_tile_size"`
	MorphologyKernel int      `yaml:"morphology_kernel"`
	DenoiseStrength  float32  `yaml:"denoise_strength"`
	AdaptiveBlock    int      `yaml:"adaptive_block_size"`
	AdaptiveC        float32  `yaml:"adaptive_c"`
}

type OutputConfig struct {
	SnapshotDir string `yaml:"snapshot_dir"`
}

func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Camera: CameraConfig{
			Device:        0,
			Width:         640,
			Height:        480,
			FPS:           30,
			ProbeAttempts: 10,
			MaxReadErrors: 30,
		},
		Window: WindowConfig{
			Width:  1340,
			Height: 640,
		},
		Filters: FilterConfig{
			Enabled:          []string{"grayscale", "gaussian"},
			GaussianSigma:    1.5,
			MedianKernel:     5,
			BilateralD:       9,
			BilateralSigma:   75,
			CannyLow:         50,
			CannyHigh:        150,
			CLAHEClipLimit:   3.0,
			CLAHETileSize:    8,
			MorphologyKernel: 3,
			DenoiseStrength:  10,
			AdaptiveBlock:    11,
			AdaptiveC:        2,
		},
		Output: OutputConfig{
			SnapshotDir: "snapshots",
		},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "cannot read settings file %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "cannot parse settings file %s", path)
	}

	return cfg, nil
}

// FromEnv applies environment overrides to cfg.
func FromEnv(cfg Config) Config {
	if level := os.Getenv("OPENCV_FILTERING_LOG_LEVEL"); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	} else if os.Getenv("DEBUG") == "1" {
		cfg.Log.Level = "debug"
	}

	if os.Getenv("OPENCV_FILTERING_JSON_LOGS") == "true" {
		cfg.Log.JSON = true
	}

	if file := os.Getenv("OPENCV_FILTERING_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}

	if device := os.Getenv("OPENCV_FILTERING_CAMERA"); device != "" {
		if id, err := strconv.Atoi(device); err == nil {
			cfg.Camera.Device = id
		}
	}

	return cfg
}
