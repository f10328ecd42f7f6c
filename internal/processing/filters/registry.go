// Package filters holds the OpenCV filters that make up the live processing
// chain.
package filters

import (
	"github.com/pkg/errors"

	"opencv-filtering/internal/config"
	"opencv-filtering/internal/processing/chain"
)

var constructors = map[string]func() chain.ProcessingStep{
	"grayscale":  func() chain.ProcessingStep { return NewGrayscaleConverter() },
	"gaussian":   func() chain.ProcessingStep { return NewGaussianFilter() },
	"median":     func() chain.ProcessingStep { return NewMedianFilter() },
	"bilateral":  func() chain.ProcessingStep { return NewBilateralFilter() },
	"canny":      func() chain.ProcessingStep { return NewCannyFilter() },
	"clahe":      func() chain.ProcessingStep { return NewCLAHEFilter() },
	"morphology": func() chain.ProcessingStep { return NewMorphologyFilter() },
	"denoise":    func() chain.ProcessingStep { return NewNonLocalMeansFilter() },
	"otsu":       func() chain.ProcessingStep { return NewOtsuThreshold() },
	"adaptive":   func() chain.ProcessingStep { return NewAdaptiveThreshold() },
}

// New returns the step registered under name.
func New(name string) (chain.ProcessingStep, error) {
	construct, ok := constructors[name]
	if !ok {
		return nil, errors.Errorf("unknown filter %q", name)
	}
	return construct(), nil
}

// NewChain builds a chain holding every filter in order. Filters that are
// not enabled in the params are skipped at execution time.
func NewChain(order []string) (*chain.ProcessingChain, error) {
	pc := chain.NewProcessingChain(nil)
	for _, name := range order {
		step, err := New(name)
		if err != nil {
			return nil, err
		}
		pc.AddStep(step)
	}
	return pc, nil
}

// Order puts the configured filters first, in their configured order,
// followed by the remaining known filters so they can be switched on later.
func Order(enabled []string) []string {
	order := make([]string, 0, len(config.KnownFilters))
	seen := make(map[string]bool, len(config.KnownFilters))
	for _, name := range enabled {
		if !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}
	for _, name := range config.KnownFilters {
		if !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}
	return order
}
