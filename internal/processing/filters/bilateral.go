package filters

import (
	"context"

	"gocv.io/x/gocv"

	"opencv-filtering/internal/opencv/safe"
)

// BilateralFilter smooths flat regions while keeping edges sharp
type BilateralFilter struct{}

func NewBilateralFilter() *BilateralFilter {
	return &BilateralFilter{}
}

func (b *BilateralFilter) Name() string {
	return "bilateral"
}

func (b *BilateralFilter) ShouldExecute(params map[string]interface{}) bool {
	return Params(params).Enabled(b.Name())
}

func (b *BilateralFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	p := Params(params)
	diameter := p.Int("bilateral_diameter", 9)
	sigma := p.Float("bilateral_sigma", 75)

	dst := gocv.NewMat()
	gocv.BilateralFilter(input.GetMat(), &dst, diameter, sigma, sigma)

	return safe.Adopt(dst, b.Name())
}
