package config

import (
	"github.com/rs/zerolog"

	"opencv-filtering/internal/validation"
)

// KnownFilters is the set of names accepted in filters.enabled.
var KnownFilters = []string{
	"grayscale",
	"gaussian",
	"median",
	"bilateral",
	"canny",
	"clahe",
	"morphology",
	"denoise",
	"otsu",
	"adaptive",
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return validation.New("log.level", c.Log.Level, "unknown log level")
	}
	if err := c.Camera.Validate(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return validation.Newf("window", nil, "size must be positive, got %.0fx%.0f", c.Window.Width, c.Window.Height)
	}
	if c.Output.SnapshotDir == "" {
		return validation.New("output.snapshot_dir", nil, "must not be empty")
	}
	return c.Filters.Validate()
}

func (c CameraConfig) Validate() error {
	switch {
	case c.Device < 0:
		return validation.New("camera.device", c.Device, "device index must not be negative")
	case c.Width <= 0 || c.Height <= 0:
		return validation.Newf("camera.size", nil, "frame size must be positive, got %dx%d", c.Width, c.Height)
	case c.FPS <= 0:
		return validation.New("camera.fps", c.FPS, "frame rate must be positive")
	case c.ProbeAttempts <= 0:
		return validation.New("camera.probe_attempts", c.ProbeAttempts, "must be at least 1")
	case c.MaxReadErrors <= 0:
		return validation.New("camera.max_read_errors", c.MaxReadErrors, "must be at least 1")
	}
	return nil
}

func (f FilterConfig) Validate() error {
	seen := make(map[string]bool, len(f.Enabled))
	for _, name := range f.Enabled {
		if !isKnownFilter(name) {
			return validation.New("filters.enabled", name, "unknown filter")
		}
		if seen[name] {
			return validation.New("filters.enabled", name, "filter listed twice")
		}
		seen[name] = true
	}

	if f.GaussianSigma < 0 {
		return validation.New("filters.gaussian_sigma", f.GaussianSigma, "must not be negative")
	}
	if !isOddKernel(f.MedianKernel) {
		return validation.New("filters.median_kernel", f.MedianKernel, "must be odd and at least 3")
	}
	if !isOddKernel(f.MorphologyKernel) {
		return validation.New("filters.morphology_kernel", f.MorphologyKernel, "must be odd and at least 3")
	}
	if f.BilateralD <= 0 || f.BilateralSigma <= 0 {
		return validation.Newf("filters.bilateral", nil, "diameter and sigma must be positive, got %d and %.1f", f.BilateralD, f.BilateralSigma)
	}
	if f.CannyLow < 0 || f.CannyHigh <= f.CannyLow {
		return validation.Newf("filters.canny", nil, "need 0 <= low < high, got %.1f and %.1f", f.CannyLow, f.CannyHigh)
	}
	if f.CLAHEClipLimit <= 0 || f.CLAHETileSize <= 0 {
		return validation.Newf("filters.clahe", nil, "clip limit and tile size must be positive, got %.1f and %d", f.CLAHEClipLimit, f.CLAHETileSize)
	}
	if !isOddKernel(f.AdaptiveBlock) {
		return validation.New("filters.adaptive_block_size", f.AdaptiveBlock, "must be odd and at least 3")
	}
	if f.DenoiseStrength <= 0 {
		return validation.New("filters.denoise_strength", f.DenoiseStrength, "must be positive")
	}
	return nil
}

func isKnownFilter(name string) bool {
	for _, known := range KnownFilters {
		if known == name {
			return true
		}
	}
	return false
}

func isOddKernel(size int) bool {
	return size >= 3 && size%2 == 1
}
