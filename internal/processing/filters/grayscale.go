package filters

import (
	"context"

	"opencv-filtering/internal/opencv/conversion"
	"opencv-filtering/internal/opencv/safe"
)

// GrayscaleConverter converts frames to single-channel grayscale
type GrayscaleConverter struct{}

func NewGrayscaleConverter() *GrayscaleConverter {
	return &GrayscaleConverter{}
}

func (g *GrayscaleConverter) Name() string {
	return "grayscale"
}

func (g *GrayscaleConverter) ShouldExecute(params map[string]interface{}) bool {
	return Params(params).Enabled(g.Name())
}

func (g *GrayscaleConverter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return conversion.ConvertToGrayscale(input)
}
