package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RigBuilderOption is a functional option for configuring a Rig.
type RigBuilderOption func(*rigImpl)

// WithPose sets the initial pose.
//
// Parameters:
//   - position: camera position
//   - lookAt: look-at point
//
// Returns:
//   - RigBuilderOption: functional option to set the pose
func WithPose(position, lookAt mgl32.Vec3) RigBuilderOption {
	return func(r *rigImpl) {
		r.pose = Pose{Position: position, LookAt: lookAt}
	}
}

// WithDistanceBounds sets the minimum and maximum zoom distance.
//
// Parameters:
//   - min: closest distance to the look-at point
//   - max: farthest distance from the look-at point
//
// Returns:
//   - RigBuilderOption: functional option to set distance bounds
func WithDistanceBounds(min, max float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.minDistance = min
		r.maxDistance = max
	}
}

// WithRigFov sets the vertical field of view FitAll frames against.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - RigBuilderOption: functional option to set the field of view
func WithRigFov(fov float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.fov = fov
	}
}

// WithZoomStep sets the fraction of the current distance covered by one wheel step.
//
// Parameters:
//   - step: distance fraction per step
//
// Returns:
//   - RigBuilderOption: functional option to set the zoom step
func WithZoomStep(step float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.zoomStep = step
	}
}

// WithBounds sets the function FitAll uses to find the scene extent.
//
// Parameters:
//   - b: the bounds function
//
// Returns:
//   - RigBuilderOption: functional option to set the bounds
func WithBounds(b Bounds) RigBuilderOption {
	return func(r *rigImpl) {
		r.bounds = b
	}
}
