package gui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"opencv-filtering/internal/app"
	"opencv-filtering/internal/camera"
	"opencv-filtering/internal/config"
	"opencv-filtering/internal/logger"
	"opencv-filtering/internal/opencv/conversion"
	"opencv-filtering/internal/opencv/safe"
	"opencv-filtering/internal/processing/chain"
	"opencv-filtering/internal/processing/filters"
	"opencv-filtering/internal/processing/timing"
	"opencv-filtering/internal/shutdown"
)

const component = "MainController"

// Opener opens the capture device described by cfg.
type Opener func(cfg config.CameraConfig) (camera.Source, error)

func OpenDevice(cfg config.CameraConfig) (camera.Source, error) {
	device, err := camera.Open(cfg)
	if err != nil {
		return nil, err
	}
	return device, nil
}

// MainController runs the live preview: frames come from the camera, go
// through the filter chain and end up in the view.
type MainController struct {
	root     app.Root
	logger   logger.Logger
	cfg      config.Config
	source   camera.Source
	chain    *chain.ProcessingChain
	view     *View
	timings  *timing.Tracker
	shutdown *shutdown.Manager
	now      func() time.Time

	mu           sync.Mutex
	params       filters.Params
	lastFiltered *safe.Mat
	fps          FrameRate
	frames       int
	failure      error
}

// NewMainController validates cfg, opens and probes the camera and builds
// the view. Configuration and camera problems come back as validation
// errors.
func NewMainController(root app.Root, log logger.Logger, cfg config.Config, open Opener) (*MainController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	source, err := open(cfg.Camera)
	if err != nil {
		return nil, err
	}

	if err := camera.Probe(source, cfg.Camera.ProbeAttempts); err != nil {
		source.Close()
		return nil, err
	}

	order := filters.Order(cfg.Filters.Enabled)
	processingChain, err := filters.NewChain(order)
	if err != nil {
		source.Close()
		return nil, errors.Wrap(err, "cannot build filter chain")
	}

	timings := timing.NewTracker(100)
	processingChain.SetRecorder(timings)

	c := &MainController{
		root:     root,
		logger:   log,
		cfg:      cfg,
		source:   source,
		chain:    processingChain,
		timings:  timings,
		shutdown: shutdown.NewManager(log, shutdown.DefaultTimeout),
		now:      time.Now,
		params:   filters.ParamsFromConfig(cfg.Filters),
	}

	c.view = NewView(root.Window(), order, c.FilterEnabled)
	c.view.SetFilterToggleHandler(c.SetFilterEnabled)
	c.view.SetSnapshotHandler(c.handleSnapshot)

	log.Info(component, "initialized", map[string]interface{}{
		"camera":  cfg.Camera.Device,
		"steps":   processingChain.StepCount(),
		"filters": processingChain.GetStepNames(),
		"enabled": cfg.Filters.Enabled,
	})

	return c, nil
}

// Run shows the window and blocks until the GUI session ends. A camera
// that stops delivering frames ends the session with a rejected outcome.
func (c *MainController) Run(ctx context.Context) (app.Outcome, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	grabber := camera.NewGrabber(c.source, c.cfg.Camera.MaxReadErrors, c.logger)
	stopped := make(chan struct{})

	c.shutdown.Register("camera", shutdown.Func(func() {
		if err := c.source.Close(); err != nil {
			c.logger.Error(component, err, map[string]interface{}{"step": "camera close"})
		}
	}))
	c.shutdown.Register("grabber", shutdown.Func(func() {
		cancel()
		<-grabber.Done()
		<-stopped
	}))
	c.shutdown.Register("window", shutdown.Func(func() {
		fyne.Do(c.root.Quit)
	}))

	grabber.Start(runCtx)
	go func() {
		defer close(stopped)
		c.consume(runCtx, grabber)
	}()
	c.shutdown.Listen(runCtx)

	c.root.Window().SetOnClosed(func() {
		c.logger.Info(component, "window closed", nil)
	})

	c.view.SetStatus(fmt.Sprintf("Streaming from camera %d", c.cfg.Camera.Device))
	c.view.Show()
	c.logger.Info(component, "GUI displayed", nil)

	c.root.App().Run()

	c.shutdown.Shutdown()
	c.release()

	outcome := c.outcome()
	c.logger.Info(component, "session ended", map[string]interface{}{
		"outcome": outcome.String(),
		"frames":  c.FrameCount(),
	})
	return outcome, nil
}

func (c *MainController) consume(ctx context.Context, grabber *camera.Grabber) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-grabber.Frames():
			c.processFrame(ctx, frame)
		case <-grabber.Done():
			if err := grabber.Err(); err != nil {
				c.setFailure(err)
				fyne.Do(c.root.Quit)
			}
			return
		}
	}
}

func (c *MainController) processFrame(ctx context.Context, frame *safe.Mat) {
	defer c.timings.Time("frame")()
	defer func() { frame.Close() }()

	if frame.Channels() != 3 {
		bgr, err := conversion.ConvertToBGR(frame)
		if err != nil {
			c.logger.Warning(component, "unsupported camera frame", map[string]interface{}{
				"error":    err.Error(),
				"channels": frame.Channels(),
			})
			return
		}
		frame.Close()
		frame = bgr
	}

	filtered, err := c.chain.Execute(ctx, frame, c.currentParams())
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Warning(component, "frame processing failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return
	}

	original, err := conversion.MatToImage(frame)
	if err != nil {
		filtered.Close()
		c.logger.Warning(component, "frame conversion failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	result, err := conversion.MatToImage(filtered)
	if err != nil {
		filtered.Close()
		c.logger.Warning(component, "frame conversion failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	fps := c.keepFrame(filtered)

	fyne.Do(func() {
		c.view.SetFrames(original, result)
		c.view.SetFPS(fps)
	})
}

func (c *MainController) keepFrame(filtered *safe.Mat) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastFiltered != nil {
		c.lastFiltered.Close()
	}
	c.lastFiltered = filtered
	c.frames++
	return c.fps.Tick(c.now())
}

// SaveSnapshot writes the latest filtered frame below the snapshot
// directory and returns its path.
func (c *MainController) SaveSnapshot() (string, error) {
	c.mu.Lock()
	if c.lastFiltered == nil {
		c.mu.Unlock()
		return "", errors.New("no filtered frame yet")
	}
	snapshot, err := c.lastFiltered.Clone()
	c.mu.Unlock()
	if err != nil {
		return "", errors.Wrap(err, "cannot copy filtered frame")
	}
	defer snapshot.Close()

	dir := c.cfg.Output.SnapshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "cannot create snapshot directory %s", dir)
	}

	path := filepath.Join(dir, c.now().Format("20060102-150405.000")+".png")
	if !gocv.IMWrite(path, snapshot.GetMat()) {
		return "", errors.Errorf("cannot write snapshot %s", path)
	}

	c.logger.Info(component, "snapshot saved", map[string]interface{}{
		"path": path,
	})
	return path, nil
}

func (c *MainController) handleSnapshot() {
	go func() {
		path, err := c.SaveSnapshot()
		fyne.Do(func() {
			if err != nil {
				c.logger.Error(component, err, map[string]interface{}{"action": "snapshot"})
				c.view.SetStatus("Snapshot failed: " + err.Error())
				return
			}
			c.view.SetStatus("Saved " + path)
		})
	}()
}

func (c *MainController) SetFilterEnabled(name string, enabled bool) {
	c.mu.Lock()
	c.params[filters.EnabledKey(name)] = enabled
	c.mu.Unlock()

	c.logger.Debug(component, "filter toggled", map[string]interface{}{
		"filter":  name,
		"enabled": enabled,
	})
}

func (c *MainController) FilterEnabled(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params.Enabled(name)
}

func (c *MainController) FrameCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

func (c *MainController) currentParams() filters.Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params.Clone()
}

func (c *MainController) setFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failure == nil {
		c.failure = err
	}
}

func (c *MainController) outcome() app.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failure != nil {
		return app.Rejected(c.failure.Error())
	}
	return app.Done()
}

// StepTimings returns the average duration of each filter step.
func (c *MainController) StepTimings() map[string]interface{} {
	return c.timings.Summary()
}

func (c *MainController) release() {
	c.logger.Debug(component, "filter timings", c.timings.Summary())

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastFiltered != nil {
		c.lastFiltered.Close()
		c.lastFiltered = nil
	}
}
