package filters

import (
	"context"
	"image"

	"gocv.io/x/gocv"

	"opencv-filtering/internal/opencv/conversion"
	"opencv-filtering/internal/opencv/safe"
)

// CLAHEFilter applies Contrast Limited Adaptive Histogram Equalization
type CLAHEFilter struct{}

func NewCLAHEFilter() *CLAHEFilter {
	return &CLAHEFilter{}
}

func (c *CLAHEFilter) Name() string {
	return "clahe"
}

func (c *CLAHEFilter) ShouldExecute(params map[string]interface{}) bool {
	return Params(params).Enabled(c.Name())
}

func (c *CLAHEFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// CLAHE only works on a single channel.
	gray, err := conversion.ConvertToGrayscale(input)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	p := Params(params)
	clipLimit := p.Float("clahe_clip_limit", 3.0)
	tileSize := p.Int("clahe_tile_size", 8)

	clahe := gocv.NewCLAHEWithParams(clipLimit, image.Point{X: tileSize, Y: tileSize})
	defer clahe.Close()

	dst := gocv.NewMat()
	clahe.Apply(gray.GetMat(), &dst)

	return safe.Adopt(dst, c.Name())
}
