package filters

import (
	"context"

	"gocv.io/x/gocv"

	"opencv-filtering/internal/opencv/safe"
)

// MedianFilter applies median filtering for impulse noise
type MedianFilter struct{}

func NewMedianFilter() *MedianFilter {
	return &MedianFilter{}
}

func (m *MedianFilter) Name() string {
	return "median"
}

func (m *MedianFilter) ShouldExecute(params map[string]interface{}) bool {
	return Params(params).Enabled(m.Name())
}

func (m *MedianFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	kernelSize := Params(params).Int("median_kernel", 3)

	dst := gocv.NewMat()
	gocv.MedianBlur(input.GetMat(), &dst, kernelSize)

	return safe.Adopt(dst, m.Name())
}
