package camera

import (
	"time"

	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"github.com/rs/zerolog"
)

// FocusControllerBuilderOption is a functional option for configuring a FocusController.
type FocusControllerBuilderOption func(*focusControllerImpl)

// WithFocusSurface attaches the camera surface at construction.
//
// Parameters:
//   - s: the surface to steer
//
// Returns:
//   - FocusControllerBuilderOption: option function to apply
func WithFocusSurface(s Surface) FocusControllerBuilderOption {
	return func(fc *focusControllerImpl) {
		fc.surface = s
	}
}

// WithTransition sets the flight duration and the delay before the orbit starts.
//
// Parameters:
//   - duration: length of the MovePose issued on selection
//   - orbitDelay: delay from selection to orbit start
//
// Returns:
//   - FocusControllerBuilderOption: option function to apply
func WithTransition(duration, orbitDelay time.Duration) FocusControllerBuilderOption {
	return func(fc *focusControllerImpl) {
		fc.transitionDuration = duration
		fc.orbitDelay = orbitDelay
	}
}

// WithOrbit sets the orbit speed and its update cadence.
//
// Parameters:
//   - speed: angular speed in radians per millisecond
//   - interval: minimum time between two orbit updates
//   - moveDuration: length of each orbit MovePose
//
// Returns:
//   - FocusControllerBuilderOption: option function to apply
func WithOrbit(speed float32, interval, moveDuration time.Duration) FocusControllerBuilderOption {
	return func(fc *focusControllerImpl) {
		fc.orbitSpeed = speed
		fc.orbitInterval = interval
		fc.orbitMoveDuration = moveDuration
	}
}

// WithProfiles overrides how focus distance and bias are chosen per entity.
//
// Parameters:
//   - fn: returns the profile for an entity
//
// Returns:
//   - FocusControllerBuilderOption: option function to apply
func WithProfiles(fn func(entity.Entity) FocusProfile) FocusControllerBuilderOption {
	return func(fc *focusControllerImpl) {
		fc.profile = fn
	}
}

// WithLogger sets the logger.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - FocusControllerBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) FocusControllerBuilderOption {
	return func(fc *focusControllerImpl) {
		fc.logger = logger
	}
}
