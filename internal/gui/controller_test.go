package gui

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"opencv-filtering/internal/app"
	"opencv-filtering/internal/camera"
	"opencv-filtering/internal/config"
	"opencv-filtering/internal/logger"
	"opencv-filtering/internal/opencv/safe"
	"opencv-filtering/internal/validation"
)

type fakeSource struct {
	mu     sync.Mutex
	frames int
	reads  int
	closed bool
}

// Read delivers frames until the budget runs out; a negative budget never
// runs out.
func (s *fakeSource) Read(m *gocv.Mat) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reads++
	if s.frames == 0 {
		return false
	}
	if s.frames > 0 {
		s.frames--
	}
	m.Close()
	*m = gocv.NewMatWithSize(12, 16, gocv.MatTypeCV8UC3)
	return true
}

func (s *fakeSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSource) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Camera.ProbeAttempts = 2
	cfg.Camera.MaxReadErrors = 2
	cfg.Output.SnapshotDir = filepath.Join(t.TempDir(), "snapshots")
	return cfg
}

func opener(src *fakeSource) Opener {
	return func(config.CameraConfig) (camera.Source, error) {
		return src, nil
	}
}

func newController(t *testing.T, cfg config.Config, src *fakeSource) *MainController {
	t.Helper()
	root := NewRootWithApp(test.NewTempApp(t), cfg.Window)

	c, err := NewMainController(root, logger.Nop{}, cfg, opener(src))
	require.NoError(t, err)
	return c
}

func frame(t *testing.T) *safe.Mat {
	t.Helper()
	m, err := safe.NewMat(12, 16, gocv.MatTypeCV8UC3, "frame")
	require.NoError(t, err)
	return m
}

func TestNewMainControllerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Filters.MedianKernel = 2
	opened := false
	root := NewRootWithApp(test.NewTempApp(t), cfg.Window)

	_, err := NewMainController(root, logger.Nop{}, cfg, func(config.CameraConfig) (camera.Source, error) {
		opened = true
		return nil, nil
	})

	assert.True(t, validation.Is(err))
	assert.False(t, opened)
}

func TestNewMainControllerPassesOpenFailureThrough(t *testing.T) {
	cfg := testConfig(t)
	root := NewRootWithApp(test.NewTempApp(t), cfg.Window)
	openErr := validation.New("camera.device", 0, "device is not available")

	_, err := NewMainController(root, logger.Nop{}, cfg, func(config.CameraConfig) (camera.Source, error) {
		return nil, openErr
	})

	assert.Same(t, openErr, err)
}

func TestNewMainControllerRejectsSilentCamera(t *testing.T) {
	cfg := testConfig(t)
	src := &fakeSource{}
	root := NewRootWithApp(test.NewTempApp(t), cfg.Window)

	_, err := NewMainController(root, logger.Nop{}, cfg, opener(src))

	verr, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "camera.frames", verr.Field)
	assert.True(t, src.isClosed())
}

func TestFilterToggle(t *testing.T) {
	c := newController(t, testConfig(t), &fakeSource{frames: -1})

	assert.True(t, c.FilterEnabled("gaussian"))
	assert.False(t, c.FilterEnabled("canny"))

	c.SetFilterEnabled("canny", true)
	c.SetFilterEnabled("gaussian", false)

	assert.True(t, c.FilterEnabled("canny"))
	assert.False(t, c.FilterEnabled("gaussian"))
}

func TestSnapshotNeedsAFrame(t *testing.T) {
	c := newController(t, testConfig(t), &fakeSource{frames: -1})

	_, err := c.SaveSnapshot()

	assert.Error(t, err)
}

func TestProcessFrameKeepsLatestResultForSnapshot(t *testing.T) {
	cfg := testConfig(t)
	c := newController(t, cfg, &fakeSource{frames: -1})
	c.now = func() time.Time { return time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC) }

	input := frame(t)
	c.processFrame(context.Background(), input)

	assert.False(t, input.IsValid())
	assert.Equal(t, 1, c.FrameCount())
	assert.Contains(t, c.StepTimings(), "gaussian_ms")
	assert.Contains(t, c.StepTimings(), "frame_ms")

	path, err := c.SaveSnapshot()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.Output.SnapshotDir, "20261019-123000.000.png"), path)
	_, err = os.Stat(path)
	assert.NoError(t, err)

	c.release()
	_, err = c.SaveSnapshot()
	assert.Error(t, err)
}

func TestConsumeRejectsWhenCameraStops(t *testing.T) {
	src := &fakeSource{frames: -1}
	c := newController(t, testConfig(t), src)

	src.mu.Lock()
	src.frames = 1
	src.mu.Unlock()

	grabber := camera.NewGrabber(src, 2, logger.Nop{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	grabber.Start(ctx)

	c.consume(ctx, grabber)

	outcome := c.outcome()
	assert.True(t, outcome.IsRejected())
	assert.Contains(t, outcome.Reason, "camera.frames")
}

func TestRunCompletesAndReleasesCamera(t *testing.T) {
	src := &fakeSource{frames: -1}
	c := newController(t, testConfig(t), src)

	outcome, err := c.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, app.Done(), outcome)
	assert.True(t, src.isClosed())
}

// blockingApp keeps Run in the event loop until Quit, like the real driver.
type blockingApp struct {
	fyne.App
	quit chan struct{}
	once sync.Once
}

func (a *blockingApp) Run() {
	<-a.quit
}

func (a *blockingApp) Quit() {
	a.once.Do(func() { close(a.quit) })
}

func TestRunRejectsWhenCameraStopsDuringSession(t *testing.T) {
	cfg := testConfig(t)
	src := &fakeSource{frames: 3}
	fyneApp := &blockingApp{App: test.NewTempApp(t), quit: make(chan struct{})}
	root := NewRootWithApp(fyneApp, cfg.Window)

	c, err := NewMainController(root, logger.Nop{}, cfg, opener(src))
	require.NoError(t, err)

	done := make(chan struct{})
	var outcome app.Outcome
	go func() {
		defer close(done)
		outcome, err = c.Run(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		fyneApp.Quit()
		t.Fatal("Run did not end after the camera stopped")
	}

	require.NoError(t, err)
	assert.True(t, outcome.IsRejected())
	assert.Contains(t, outcome.Reason, "camera.frames")
	assert.True(t, src.isClosed())
}

func TestProcessFrameExpandsGrayFrames(t *testing.T) {
	c := newController(t, testConfig(t), &fakeSource{frames: -1})
	gray, err := safe.NewMat(12, 16, gocv.MatTypeCV8UC1, "gray")
	require.NoError(t, err)

	c.processFrame(context.Background(), gray)

	assert.False(t, gray.IsValid())
	assert.Equal(t, 1, c.FrameCount())
	c.release()
}

func TestFrameRate(t *testing.T) {
	var meter FrameRate
	start := time.Unix(0, 0)

	assert.Equal(t, 0.0, meter.Tick(start))
	assert.InDelta(t, 10.0, meter.Tick(start.Add(100*time.Millisecond)), 0.001)
	assert.InDelta(t, 10.0, meter.Tick(start.Add(200*time.Millisecond)), 0.001)
	assert.InDelta(t, 10.0, meter.Tick(start.Add(200*time.Millisecond)), 0.001)
	assert.InDelta(t, 9.5, meter.Tick(start.Add(400*time.Millisecond)), 0.001)
}

func TestViewShowInstallsContent(t *testing.T) {
	window := test.NewTempApp(t).NewWindow("view")
	view := NewView(window, []string{"gaussian"}, func(string) bool { return true })

	view.Show()

	assert.Same(t, view.GetMainContainer(), window.Content())
}
