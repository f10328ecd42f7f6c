package chain

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"opencv-filtering/internal/opencv/safe"
)

type cloneStep struct {
	name    string
	enabled bool
	err     error
	calls   int
	outputs []*safe.Mat
}

func (s *cloneStep) Name() string { return s.name }

func (s *cloneStep) ShouldExecute(params map[string]interface{}) bool { return s.enabled }

func (s *cloneStep) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out, err := input.Clone()
	if err == nil {
		s.outputs = append(s.outputs, out)
	}
	return out, err
}

func newInput(t *testing.T) *safe.Mat {
	t.Helper()
	m, err := safe.NewMat(3, 3, gocv.MatTypeCV8UC3, "input")
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestExecuteSkipsDisabledAndClosesIntermediates(t *testing.T) {
	first := &cloneStep{name: "first", enabled: true}
	skipped := &cloneStep{name: "skipped"}
	last := &cloneStep{name: "last", enabled: true}
	pc := NewProcessingChain([]ProcessingStep{first, skipped})
	pc.AddStep(last)
	input := newInput(t)

	result, err := pc.Execute(context.Background(), input, nil)
	require.NoError(t, err)
	defer result.Close()

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, skipped.calls)
	assert.Equal(t, 1, last.calls)
	assert.False(t, first.outputs[0].IsValid())
	assert.Same(t, last.outputs[0], result)
	assert.True(t, input.IsValid())
	assert.Equal(t, []string{"first", "skipped", "last"}, pc.GetStepNames())
	assert.Equal(t, 3, pc.StepCount())
}

func TestExecuteWithoutEnabledStepsReturnsCopy(t *testing.T) {
	pc := NewProcessingChain([]ProcessingStep{&cloneStep{name: "off"}})
	input := newInput(t)

	result, err := pc.Execute(context.Background(), input, nil)
	require.NoError(t, err)
	defer result.Close()

	assert.NotSame(t, input, result)
}

func TestExecuteWrapsStepError(t *testing.T) {
	boom := errors.New("bad kernel")
	first := &cloneStep{name: "first", enabled: true}
	pc := NewProcessingChain([]ProcessingStep{first, &cloneStep{name: "broken", enabled: true, err: boom}})

	_, err := pc.Execute(context.Background(), newInput(t), nil)

	require.Error(t, err)
	assert.Equal(t, boom, errors.Cause(err))
	assert.Contains(t, err.Error(), "step broken failed")
	assert.False(t, first.outputs[0].IsValid())
}

func TestExecuteHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	step := &cloneStep{name: "first", enabled: true}

	_, err := NewProcessingChain([]ProcessingStep{step}).Execute(ctx, newInput(t), nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, step.calls)
}

type recorder struct {
	names []string
}

func (r *recorder) Record(operation string, duration time.Duration) {
	r.names = append(r.names, operation)
}

func TestExecuteRecordsExecutedSteps(t *testing.T) {
	rec := &recorder{}
	pc := NewProcessingChain([]ProcessingStep{
		&cloneStep{name: "first", enabled: true},
		&cloneStep{name: "off"},
		&cloneStep{name: "last", enabled: true},
	})
	pc.SetRecorder(rec)

	result, err := pc.Execute(context.Background(), newInput(t), nil)
	require.NoError(t, err)
	result.Close()

	assert.Equal(t, []string{"first", "last"}, rec.names)
}
