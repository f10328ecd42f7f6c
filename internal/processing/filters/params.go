package filters

import (
	"opencv-filtering/internal/config"
)

// Params carries filter toggles and tuning values. Toggles are keyed
// "<filter>_enabled"; the GUI flips them while frames are flowing.
type Params map[string]interface{}

func EnabledKey(name string) string {
	return name + "_enabled"
}

// ParamsFromConfig enables the configured filters and copies their settings.
func ParamsFromConfig(cfg config.FilterConfig) Params {
	params := Params{
		"gaussian_sigma":      cfg.GaussianSigma,
		"median_kernel":       cfg.MedianKernel,
		"bilateral_diameter":  cfg.BilateralD,
		"bilateral_sigma":     cfg.BilateralSigma,
		"canny_low":           cfg.CannyLow,
		"canny_high":          cfg.CannyHigh,
		"clahe_clip_limit":    cfg.CLAHEClipLimit,
		"clahe_tile_size":     cfg.CLAHETileSize,
		"morphology_kernel":   cfg.MorphologyKernel,
		"denoise_strength":    cfg.DenoiseStrength,
		"adaptive_block_size": cfg.AdaptiveBlock,
		"adaptive_c":          cfg.AdaptiveC,
	}

	for _, name := range config.KnownFilters {
		params[EnabledKey(name)] = false
	}
	for _, name := range cfg.Enabled {
		params[EnabledKey(name)] = true
	}

	return params
}

// Clone returns a shallow copy safe to hand to another goroutine.
func (p Params) Clone() Params {
	clone := make(Params, len(p))
	for k, v := range p {
		clone[k] = v
	}
	return clone
}

func (p Params) Enabled(name string) bool {
	enabled, ok := p[EnabledKey(name)].(bool)
	return ok && enabled
}

func (p Params) Int(key string, def int) int {
	if val, ok := p[key].(int); ok {
		return val
	}
	return def
}

func (p Params) Float(key string, def float64) float64 {
	switch val := p[key].(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	}
	return def
}

func (p Params) Float32(key string, def float32) float32 {
	switch val := p[key].(type) {
	case float32:
		return val
	case float64:
		return float32(val)
	}
	return def
}
