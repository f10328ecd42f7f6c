package filters

import (
	"context"

	"gocv.io/x/gocv"

	"opencv-filtering/internal/opencv/conversion"
	"opencv-filtering/internal/opencv/safe"
)

// CannyFilter produces a binary edge map
type CannyFilter struct{}

func NewCannyFilter() *CannyFilter {
	return &CannyFilter{}
}

func (c *CannyFilter) Name() string {
	return "canny"
}

func (c *CannyFilter) ShouldExecute(params map[string]interface{}) bool {
	return Params(params).Enabled(c.Name())
}

func (c *CannyFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	gray, err := conversion.ConvertToGrayscale(input)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	p := Params(params)
	low := p.Float32("canny_low", 50)
	high := p.Float32("canny_high", 150)

	edges := gocv.NewMat()
	gocv.Canny(gray.GetMat(), &edges, low, high)

	return safe.Adopt(edges, c.Name())
}
