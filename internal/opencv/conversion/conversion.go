package conversion

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"opencv-filtering/internal/opencv/safe"
)

// ConvertToGrayscale converts multi-channel images to single-channel grayscale
func ConvertToGrayscale(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "grayscale conversion"); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}

	var code gocv.ColorConversionCode
	switch src.Channels() {
	case 1:
		return src.Clone()
	case 4:
		code = gocv.ColorBGRAToGray
	default:
		code = gocv.ColorBGRToGray
	}

	return convert(src, code, "_gray")
}

// ConvertToBGR expands single-channel images so every stage can assume
// three channels.
func ConvertToBGR(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "BGR conversion"); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}

	var code gocv.ColorConversionCode
	switch src.Channels() {
	case 3:
		return src.Clone()
	case 4:
		code = gocv.ColorBGRAToBGR
	default:
		code = gocv.ColorGrayToBGR
	}

	return convert(src, code, "_bgr")
}

func convert(src *safe.Mat, code gocv.ColorConversionCode, suffix string) (*safe.Mat, error) {
	if err := safe.ValidateColorConversion(src, code); err != nil {
		return nil, errors.Wrap(err, "unsupported conversion")
	}

	dst := gocv.NewMat()
	gocv.CvtColor(src.GetMat(), &dst, code)
	return safe.Adopt(dst, src.Tag()+suffix)
}

// MatToImage converts a GoCV Mat to a standard Go image for display.
func MatToImage(src *safe.Mat) (image.Image, error) {
	if err := safe.ValidateMatForOperation(src, "Mat to image conversion"); err != nil {
		return nil, err
	}

	switch src.Channels() {
	case 1, 3, 4:
	default:
		return nil, errors.Errorf("unsupported channel count: %d", src.Channels())
	}

	img, err := src.GetMat().ToImage()
	if err != nil {
		return nil, errors.Wrap(err, "Mat to image conversion failed")
	}
	return img, nil
}
