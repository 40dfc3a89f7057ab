package input

import (
	"github.com/Chemberlein/ADA-Cosmos/engine/camera"
	"github.com/rs/zerolog"
)

// RouterBuilderOption is a functional option for configuring a Router.
type RouterBuilderOption func(*Router)

// WithRig sets the rig that drag rotation and wheel zoom drive.
//
// Parameters:
//   - rig: the camera rig
//
// Returns:
//   - RouterBuilderOption: functional option to set the rig
func WithRig(rig camera.Rig) RouterBuilderOption {
	return func(r *Router) {
		r.rig = rig
	}
}

// WithRotateSpeed sets the rotation per dragged pixel.
//
// Parameters:
//   - radiansPerPixel: rotation per pixel
//
// Returns:
//   - RouterBuilderOption: functional option to set the rotation speed
func WithRotateSpeed(radiansPerPixel float32) RouterBuilderOption {
	return func(r *Router) {
		r.rotateSpeed = radiansPerPixel
	}
}

// WithLogger sets the router logger.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - RouterBuilderOption: functional option to set the logger
func WithLogger(logger zerolog.Logger) RouterBuilderOption {
	return func(r *Router) {
		r.logger = logger
	}
}
