package filters

import (
	"context"

	"gocv.io/x/gocv"

	"opencv-filtering/internal/opencv/conversion"
	"opencv-filtering/internal/opencv/safe"
)

// OtsuThreshold binarizes the frame with a global threshold chosen by
// Otsu's method on every frame.
type OtsuThreshold struct{}

func NewOtsuThreshold() *OtsuThreshold {
	return &OtsuThreshold{}
}

func (o *OtsuThreshold) Name() string {
	return "otsu"
}

func (o *OtsuThreshold) ShouldExecute(params map[string]interface{}) bool {
	return Params(params).Enabled(o.Name())
}

func (o *OtsuThreshold) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
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

	dst := gocv.NewMat()
	gocv.Threshold(gray.GetMat(), &dst, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	return safe.Adopt(dst, o.Name())
}

// AdaptiveThreshold binarizes against the mean of each pixel's
// neighbourhood, which copes with uneven lighting.
type AdaptiveThreshold struct{}

func NewAdaptiveThreshold() *AdaptiveThreshold {
	return &AdaptiveThreshold{}
}

func (a *AdaptiveThreshold) Name() string {
	return "adaptive"
}

func (a *AdaptiveThreshold) ShouldExecute(params map[string]interface{}) bool {
	return Params(params).Enabled(a.Name())
}

func (a *AdaptiveThreshold) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
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
	blockSize := p.Int("adaptive_block_size", 11)
	offset := p.Float32("adaptive_c", 2)

	dst := gocv.NewMat()
	gocv.AdaptiveThreshold(gray.GetMat(), &dst, 255, gocv.AdaptiveThresholdMean, gocv.ThresholdBinary, blockSize, offset)

	return safe.Adopt(dst, a.Name())
}
