package lod

import (
	"time"

	"github.com/rs/zerolog"
)

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithDelays sets the delays from Start to StageBasic and to StageComplete.
//
// Parameters:
//   - basic: delay before StageBasic
//   - complete: delay before StageComplete
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithDelays(basic, complete time.Duration) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.basicDelay = basic
		c.completeDelay = complete
	}
}

// WithLogger sets the logger.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.logger = logger
	}
}
