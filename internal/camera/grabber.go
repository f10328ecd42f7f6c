package camera

import (
	"context"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"opencv-filtering/internal/logger"
	"opencv-filtering/internal/opencv/safe"
	"opencv-filtering/internal/validation"
)

const retryDelay = 20 * time.Millisecond

// Grabber reads frames in the background. Frames holds at most the latest
// frame; older ones are closed when a newer one arrives. The receiver owns
// every frame it takes off the channel.
type Grabber struct {
	src       Source
	logger    logger.Logger
	maxErrors int

	frames chan *safe.Mat
	done   chan struct{}

	mu  sync.Mutex
	err error
}

func NewGrabber(src Source, maxErrors int, log logger.Logger) *Grabber {
	return &Grabber{
		src:       src,
		logger:    log,
		maxErrors: maxErrors,
		frames:    make(chan *safe.Mat, 1),
		done:      make(chan struct{}),
	}
}

func (g *Grabber) Frames() <-chan *safe.Mat {
	return g.frames
}

// Done is closed when the grabber stops.
func (g *Grabber) Done() <-chan struct{} {
	return g.done
}

// Err reports why the grabber stopped. It is nil after a context
// cancellation.
func (g *Grabber) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

func (g *Grabber) Start(ctx context.Context) {
	go g.loop(ctx)
}

func (g *Grabber) loop(ctx context.Context) {
	defer close(g.done)
	defer g.drain()

	frame := gocv.NewMat()
	defer frame.Close()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !g.src.Read(&frame) || frame.Empty() {
			failures++
			if failures >= g.maxErrors {
				g.fail(validation.Newf("camera.frames", nil,
					"camera stopped delivering frames after %d failed reads", failures))
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
			continue
		}
		failures = 0

		captured, err := safe.NewMatFromMat(frame, "camera_frame")
		if err != nil {
			g.logger.Warning("Camera", "frame copy failed", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		g.publish(captured)
	}
}

func (g *Grabber) publish(frame *safe.Mat) {
	select {
	case g.frames <- frame:
		return
	default:
	}

	select {
	case stale := <-g.frames:
		stale.Close()
	default:
	}

	select {
	case g.frames <- frame:
	default:
		frame.Close()
	}
}

func (g *Grabber) fail(err error) {
	g.mu.Lock()
	g.err = err
	g.mu.Unlock()

	g.logger.Warning("Camera", "frame grabbing stopped", map[string]interface{}{
		"reason": err.Error(),
	})
}

func (g *Grabber) drain() {
	for {
		select {
		case stale := <-g.frames:
			stale.Close()
		default:
			return
		}
	}
}
