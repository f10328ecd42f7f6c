package chain

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"opencv-filtering/internal/opencv/safe"
)

type ProcessingStep interface {
	Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error)
	Name() string
	ShouldExecute(params map[string]interface{}) bool
}

// Recorder receives how long each executed step took.
type Recorder interface {
	Record(operation string, duration time.Duration)
}

type ProcessingChain struct {
	steps    []ProcessingStep
	recorder Recorder
}

func NewProcessingChain(steps []ProcessingStep) *ProcessingChain {
	return &ProcessingChain{
		steps: steps,
	}
}

// Execute runs every step whose ShouldExecute accepts params. The input is
// never closed; the result is always a new Mat owned by the caller.
func (pc *ProcessingChain) Execute(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	current := input

	release := func() {
		if current != input {
			current.Close()
		}
	}

	for _, step := range pc.steps {
		select {
		case <-ctx.Done():
			release()
			return nil, ctx.Err()
		default:
		}

		if !step.ShouldExecute(params) {
			continue
		}

		start := time.Now()
		result, err := step.Apply(ctx, current, params)
		if err != nil {
			release()
			return nil, errors.Wrapf(err, "step %s failed", step.Name())
		}

		if pc.recorder != nil {
			pc.recorder.Record(step.Name(), time.Since(start))
		}

		release()
		current = result
	}

	if current == input {
		return input.Clone()
	}
	return current, nil
}

func (pc *ProcessingChain) SetRecorder(recorder Recorder) {
	pc.recorder = recorder
}

func (pc *ProcessingChain) AddStep(step ProcessingStep) {
	pc.steps = append(pc.steps, step)
}

func (pc *ProcessingChain) StepCount() int {
	return len(pc.steps)
}

func (pc *ProcessingChain) GetStepNames() []string {
	names := make([]string, len(pc.steps))
	for i, step := range pc.steps {
		names[i] = step.Name()
	}
	return names
}
