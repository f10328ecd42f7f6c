package gui

import "time"

const fpsSmoothing = 0.1

// FrameRate is an exponentially smoothed frames-per-second meter.
type FrameRate struct {
	last time.Time
	rate float64
}

// Tick records a frame at now and returns the smoothed rate.
func (f *FrameRate) Tick(now time.Time) float64 {
	if f.last.IsZero() {
		f.last = now
		return f.rate
	}

	elapsed := now.Sub(f.last).Seconds()
	f.last = now
	if elapsed <= 0 {
		return f.rate
	}

	instant := 1 / elapsed
	if f.rate == 0 {
		f.rate = instant
	} else {
		f.rate += fpsSmoothing * (instant - f.rate)
	}
	return f.rate
}
