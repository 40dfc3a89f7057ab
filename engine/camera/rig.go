package camera

import (
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Bounds returns a sphere enclosing everything FitAll should frame.
type Bounds func() (center mgl32.Vec3, radius float32)

// Rig is the Surface implementation backing the desktop viewer. It tweens between
// poses and also takes direct user zoom and rotation, which abort any tween.
type Rig interface {
	Surface

	// Update advances the running transition.
	//
	// Parameters:
	//   - dt: elapsed time since the previous update
	//
	// Returns:
	//   - bool: true while a transition is still running
	Update(dt time.Duration) bool

	// Animating reports whether a transition is running.
	//
	// Returns:
	//   - bool: true while a transition is running
	Animating() bool

	// Zoom moves the camera toward (positive delta) or away from the look-at point,
	// clamped to the distance bounds.
	//
	// Parameters:
	//   - delta: wheel steps
	Zoom(delta float32)

	// Rotate orbits the camera around the look-at point.
	//
	// Parameters:
	//   - dAzimuth: horizontal angle change in radians
	//   - dElevation: vertical angle change in radians, clamped to the elevation bounds
	Rotate(dAzimuth, dElevation float32)

	// SetBounds sets the function FitAll uses to find the scene extent.
	//
	// Parameters:
	//   - b: the bounds function
	SetBounds(b Bounds)
}

type rigImpl struct {
	mu *sync.Mutex

	pose Pose

	from     Pose
	to       Pose
	elapsed  time.Duration
	duration time.Duration
	moving   bool

	fov          float32
	minDistance  float32
	maxDistance  float32
	maxElevation float32
	zoomStep     float32
	fitPadding   float32

	bounds Bounds
}

var _ Rig = &rigImpl{}

// NewRig creates a rig at its initial pose.
//
// Parameters:
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
func NewRig(options ...RigBuilderOption) Rig {
	r := &rigImpl{
		mu:           &sync.Mutex{},
		pose:         Pose{Position: mgl32.Vec3{-1300, 1300, 500}},
		fov:          mgl32.DegToRad(45),
		minDistance:  5,
		maxDistance:  30000,
		maxElevation: math32.Pi/2 - 0.05,
		zoomStep:     0.1,
		fitPadding:   1.1,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *rigImpl) MovePose(position, lookAt mgl32.Vec3, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	target := Pose{Position: position, LookAt: lookAt}
	if duration <= 0 {
		r.pose = target
		r.moving = false
		return
	}
	r.from = r.pose
	r.to = target
	r.elapsed = 0
	r.duration = duration
	r.moving = true
}

func (r *rigImpl) Pose() Pose {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pose
}

func (r *rigImpl) FitAll(duration time.Duration) {
	r.mu.Lock()
	bounds := r.bounds
	r.mu.Unlock()
	if bounds == nil {
		return
	}
	center, radius := bounds()
	if radius <= 0 {
		return
	}

	r.mu.Lock()
	dir := r.pose.Position.Sub(r.pose.LookAt)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{-1, 1, 0.4}
	}
	distance := radius / math32.Sin(r.fov/2) * r.fitPadding
	r.mu.Unlock()

	r.MovePose(center.Add(dir.Normalize().Mul(distance)), center, duration)
}

func (r *rigImpl) Update(dt time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.moving {
		return false
	}
	r.elapsed += dt
	t := float32(r.elapsed) / float32(r.duration)
	if t >= 1 {
		r.pose = r.to
		r.moving = false
		return false
	}
	k := easeInOutCubic(t)
	r.pose = Pose{
		Position: lerp(r.from.Position, r.to.Position, k),
		LookAt:   lerp(r.from.LookAt, r.to.LookAt, k),
	}
	return true
}

func (r *rigImpl) Animating() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moving
}

func (r *rigImpl) Zoom(delta float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moving = false

	radius, azimuth, elevation := r.spherical()
	radius *= 1 - delta*r.zoomStep
	radius = clamp(radius, r.minDistance, r.maxDistance)
	r.updatePosition(radius, azimuth, elevation)
}

func (r *rigImpl) Rotate(dAzimuth, dElevation float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moving = false

	radius, azimuth, elevation := r.spherical()
	elevation = clamp(elevation+dElevation, -r.maxElevation, r.maxElevation)
	r.updatePosition(radius, azimuth+dAzimuth, elevation)
}

func (r *rigImpl) SetBounds(b Bounds) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bounds = b
}

// spherical returns the camera offset from the look-at point as radius, azimuth
// around Y (0 = +Z) and elevation from the XZ plane.
// Caller must hold the mutex.
func (r *rigImpl) spherical() (radius, azimuth, elevation float32) {
	off := r.pose.Position.Sub(r.pose.LookAt)
	radius = off.Len()
	if radius < 1e-6 {
		return 0, 0, 0
	}
	azimuth = math32.Atan2(off[0], off[2])
	elevation = math32.Asin(clamp(off[1]/radius, -1, 1))
	return radius, azimuth, elevation
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (r *rigImpl) updatePosition(radius, azimuth, elevation float32) {
	cosElev, sinElev := math32.Cos(elevation), math32.Sin(elevation)
	cosAzim, sinAzim := math32.Cos(azimuth), math32.Sin(azimuth)
	r.pose.Position = r.pose.LookAt.Add(mgl32.Vec3{
		radius * cosElev * sinAzim,
		radius * sinElev,
		radius * cosElev * cosAzim,
	})
}

func easeInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := -2*t + 2
	return 1 - f*f*f/2
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
