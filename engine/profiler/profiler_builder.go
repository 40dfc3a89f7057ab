package profiler

import (
	"time"

	"github.com/rs/zerolog"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often statistics are logged.
//
// Parameters:
//   - interval: time between two log events
//
// Returns:
//   - ProfilerBuilderOption: functional option to set the interval
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// WithLogger sets the logger statistics are written to.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - ProfilerBuilderOption: functional option to set the logger
func WithLogger(logger zerolog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// WithFields adds caller-provided fields to every statistics event.
//
// Parameters:
//   - fn: called with the event before it is written
//
// Returns:
//   - ProfilerBuilderOption: functional option to set the field callback
func WithFields(fn func(e *zerolog.Event)) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.fields = fn
	}
}

// WithClock replaces the wall clock.
//
// Parameters:
//   - now: returns the current time
//
// Returns:
//   - ProfilerBuilderOption: functional option to set the clock
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}
