// Package camera opens the capture device, checks that it really delivers
// frames and streams them to the GUI.
package camera

import (
	"sync"

	"gocv.io/x/gocv"

	"opencv-filtering/internal/config"
	"opencv-filtering/internal/validation"
)

type Source interface {
	Read(m *gocv.Mat) bool
	Close() error
}

type Device struct {
	capture *gocv.VideoCapture
	once    sync.Once
	err     error
}

// Open validates cfg and opens the capture device. Devices that are missing
// or refuse to open are reported as validation errors.
func Open(cfg config.CameraConfig) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	capture, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, validation.Newf("camera.device", cfg.Device, "cannot open device: %v", err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, validation.New("camera.device", cfg.Device, "device is not available")
	}

	capture.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	capture.Set(gocv.VideoCaptureFPS, cfg.FPS)

	return &Device{capture: capture}, nil
}

func (d *Device) Read(m *gocv.Mat) bool {
	return d.capture.Read(m)
}

func (d *Device) Close() error {
	d.once.Do(func() {
		d.err = d.capture.Close()
	})
	return d.err
}

// Probe reads up to attempts frames and fails with a validation error if
// none of them carries data.
func Probe(src Source, attempts int) error {
	frame := gocv.NewMat()
	defer frame.Close()

	for i := 0; i < attempts; i++ {
		if src.Read(&frame) && !frame.Empty() {
			return nil
		}
	}

	return validation.Newf("camera.frames", nil, "no frame after %d reads", attempts)
}
