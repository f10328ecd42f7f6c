package filters

import (
	"context"

	"gocv.io/x/gocv"

	"opencv-filtering/internal/opencv/safe"
)

const (
	nlmTemplateWindow = 7
	nlmSearchWindow   = 21
)

// NonLocalMeansFilter applies non-local means denoising. It is by far the
// slowest filter and is off unless configured.
type NonLocalMeansFilter struct{}

func NewNonLocalMeansFilter() *NonLocalMeansFilter {
	return &NonLocalMeansFilter{}
}

func (n *NonLocalMeansFilter) Name() string {
	return "denoise"
}

func (n *NonLocalMeansFilter) ShouldExecute(params map[string]interface{}) bool {
	return Params(params).Enabled(n.Name())
}

func (n *NonLocalMeansFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	strength := Params(params).Float32("denoise_strength", 10)

	dst := gocv.NewMat()
	if input.Channels() == 1 {
		gocv.FastNlMeansDenoisingWithParams(input.GetMat(), &dst, strength, nlmTemplateWindow, nlmSearchWindow)
	} else {
		gocv.FastNlMeansDenoisingColoredWithParams(input.GetMat(), &dst, strength, strength, nlmTemplateWindow, nlmSearchWindow)
	}

	return safe.Adopt(dst, n.Name())
}
