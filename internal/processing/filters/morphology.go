package filters

import (
	"context"
	"image"

	"gocv.io/x/gocv"

	"opencv-filtering/internal/opencv/safe"
)

// MorphologyFilter opens then closes the frame to remove speckles and fill
// small gaps
type MorphologyFilter struct{}

func NewMorphologyFilter() *MorphologyFilter {
	return &MorphologyFilter{}
}

func (m *MorphologyFilter) Name() string {
	return "morphology"
}

func (m *MorphologyFilter) ShouldExecute(params map[string]interface{}) bool {
	return Params(params).Enabled(m.Name())
}

func (m *MorphologyFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	size := Params(params).Int("morphology_kernel", 3)
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Point{X: size, Y: size})
	defer kernel.Close()

	opened := gocv.NewMat()
	defer opened.Close()
	gocv.MorphologyEx(input.GetMat(), &opened, gocv.MorphOpen, kernel)

	closed := gocv.NewMat()
	gocv.MorphologyEx(opened, &closed, gocv.MorphClose, kernel)

	return safe.Adopt(closed, m.Name())
}
