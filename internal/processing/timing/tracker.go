package timing

import (
	"sync"
	"time"
)

// Tracker keeps a bounded window of durations per operation.
type Tracker struct {
	timings map[string][]time.Duration
	window  int
	mu      sync.RWMutex
}

func NewTracker(window int) *Tracker {
	if window <= 0 {
		window = 100
	}
	return &Tracker{
		timings: make(map[string][]time.Duration),
		window:  window,
	}
}

func (tt *Tracker) Record(operation string, duration time.Duration) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	samples := append(tt.timings[operation], duration)
	if len(samples) > tt.window {
		samples = samples[len(samples)-tt.window:]
	}
	tt.timings[operation] = samples
}

// Time returns a func that records the elapsed time when called.
func (tt *Tracker) Time(operation string) func() {
	start := time.Now()
	return func() {
		tt.Record(operation, time.Since(start))
	}
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) Average(operation string) time.Duration {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range timings {
		total += d
	}
	return total / time.Duration(len(timings))
}

// Summary maps each operation to its average in milliseconds.
func (tt *Tracker) Summary() map[string]interface{} {
	tt.mu.RLock()
	operations := make([]string, 0, len(tt.timings))
	for op := range tt.timings {
		operations = append(operations, op)
	}
	tt.mu.RUnlock()

	summary := make(map[string]interface{}, len(operations))
	for _, op := range operations {
		summary[op+"_ms"] = float64(tt.Average(op).Microseconds()) / 1000
	}
	return summary
}
