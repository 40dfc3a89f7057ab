package scheduler

import (
	"time"

	"github.com/rs/zerolog"
)

// LoopBuilderOption is a functional option for configuring a Loop.
type LoopBuilderOption func(*loopImpl)

// WithLogger sets the logger used for trace output.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - LoopBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) LoopBuilderOption {
	return func(l *loopImpl) {
		l.logger = logger
	}
}

// WithStartTime sets the initial value of the loop clock.
//
// Parameters:
//   - start: the clock value before the first Advance
//
// Returns:
//   - LoopBuilderOption: option function to apply
func WithStartTime(start time.Duration) LoopBuilderOption {
	return func(l *loopImpl) {
		l.now = start
	}
}
