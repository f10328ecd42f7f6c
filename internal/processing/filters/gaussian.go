package filters

import (
	"context"
	"image"

	"gocv.io/x/gocv"

	"opencv-filtering/internal/opencv/safe"
)

type GaussianFilter struct{}

func NewGaussianFilter() *GaussianFilter {
	return &GaussianFilter{}
}

func (g *GaussianFilter) Name() string {
	return "gaussian"
}

func (g *GaussianFilter) ShouldExecute(params map[string]interface{}) bool {
	return Params(params).Enabled(g.Name())
}

func (g *GaussianFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	sigma := Params(params).Float("gaussian_sigma", 1.0)
	if sigma <= 0.0 {
		return input.Clone()
	}

	kernelSize := GaussianKernelSize(sigma)

	dst := gocv.NewMat()
	gocv.GaussianBlur(input.GetMat(), &dst, image.Point{X: kernelSize, Y: kernelSize}, sigma, sigma, gocv.BorderDefault)

	return safe.Adopt(dst, g.Name())
}

// GaussianKernelSize covers three sigmas on each side, clamped to an odd
// size between 3 and 15.
func GaussianKernelSize(sigma float64) int {
	kernelSize := int(sigma*6) + 1
	if kernelSize%2 == 0 {
		kernelSize++
	}
	return max(3, min(kernelSize, 15))
}
