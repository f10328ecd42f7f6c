package safe

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

func ValidateMatForOperation(mat *Mat, operation string) error {
	if mat == nil {
		return errors.Errorf("Mat is nil for operation: %s", operation)
	}

	if !mat.IsValid() {
		return errors.Errorf("Mat is invalid for operation: %s", operation)
	}

	if mat.Empty() {
		return errors.Errorf("Mat is empty for operation: %s", operation)
	}

	return nil
}

func ValidateColorConversion(src *Mat, code gocv.ColorConversionCode) error {
	if err := ValidateMatForOperation(src, "CvtColor"); err != nil {
		return err
	}

	channels := src.Channels()

	switch code {
	case gocv.ColorBGRToGray, gocv.ColorBGRToRGB, gocv.ColorBGRToRGBA:
		if channels != 3 {
			return errors.Errorf("conversion %d requires 3 channels, got %d", code, channels)
		}
	case gocv.ColorGrayToBGR:
		if channels != 1 {
			return errors.Errorf("Gray to BGR conversion requires 1 channel, got %d", channels)
		}
	case gocv.ColorBGRAToBGR, gocv.ColorBGRAToGray:
		if channels != 4 {
			return errors.Errorf("conversion %d requires 4 channels, got %d", code, channels)
		}
	}

	return nil
}
