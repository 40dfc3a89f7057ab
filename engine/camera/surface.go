package camera

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Pose is a camera position and the point it looks at.
type Pose struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
}

// Surface is the host-side camera the focus controller steers. Every MovePose
// replaces the previous target outright; the surface interpolates over duration.
type Surface interface {
	// MovePose animates the camera to position, looking at lookAt.
	//
	// Parameters:
	//   - position: target camera position
	//   - lookAt: target look-at point
	//   - duration: transition length; zero or less jumps immediately
	MovePose(position, lookAt mgl32.Vec3, duration time.Duration)

	// Pose returns the camera's current, possibly mid-transition, pose.
	//
	// Returns:
	//   - Pose: the current pose
	Pose() Pose

	// FitAll frames every node in view.
	//
	// Parameters:
	//   - duration: transition length
	FitAll(duration time.Duration)
}
