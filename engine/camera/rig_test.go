package camera

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRigMovePoseInterpolates(t *testing.T) {
	r := NewRig(WithPose(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{}))
	r.MovePose(mgl32.Vec3{0, 0, 200}, mgl32.Vec3{10, 0, 0}, time.Second)
	require.True(t, r.Animating())

	assert.True(t, r.Update(500*time.Millisecond))
	mid := r.Pose()
	assert.InDelta(t, 150, mid.Position[2], 1e-3)
	assert.InDelta(t, 5, mid.LookAt[0], 1e-3)

	assert.False(t, r.Update(600*time.Millisecond))
	assert.Equal(t, mgl32.Vec3{0, 0, 200}, r.Pose().Position)
	assert.False(t, r.Animating())
}

func TestRigZeroDurationJumps(t *testing.T) {
	r := NewRig()
	r.MovePose(mgl32.Vec3{-1300, 1300, 500}, mgl32.Vec3{}, 0)
	assert.False(t, r.Animating())
	assert.Equal(t, mgl32.Vec3{-1300, 1300, 500}, r.Pose().Position)
}

func TestRigNewMoveReplacesPrevious(t *testing.T) {
	r := NewRig(WithPose(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{}))
	r.MovePose(mgl32.Vec3{0, 0, 1000}, mgl32.Vec3{}, time.Second)
	r.Update(100 * time.Millisecond)
	r.MovePose(mgl32.Vec3{50, 0, 0}, mgl32.Vec3{}, 50*time.Millisecond)
	r.Update(time.Second)
	assert.Equal(t, mgl32.Vec3{50, 0, 0}, r.Pose().Position)
}

func TestRigZoomClampsDistance(t *testing.T) {
	r := NewRig(WithPose(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{}), WithDistanceBounds(50, 150))
	r.Zoom(1)
	assert.InDelta(t, 90, r.Pose().Position.Len(), 1e-3)

	for i := 0; i < 20; i++ {
		r.Zoom(1)
	}
	assert.InDelta(t, 50, r.Pose().Position.Len(), 1e-3)

	for i := 0; i < 20; i++ {
		r.Zoom(-1)
	}
	assert.InDelta(t, 150, r.Pose().Position.Len(), 1e-3)
}

func TestRigRotateKeepsDistanceAndAbortsTween(t *testing.T) {
	r := NewRig(WithPose(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{}))
	r.MovePose(mgl32.Vec3{0, 0, 500}, mgl32.Vec3{}, time.Second)
	r.Rotate(mgl32.DegToRad(90), 0)

	assert.False(t, r.Animating())
	p := r.Pose().Position
	assert.InDelta(t, 100, p.Len(), 1e-3)
	assert.InDelta(t, 100, p[0], 1e-3)
}

func TestRigFitAllFramesBounds(t *testing.T) {
	r := NewRig(
		WithPose(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}),
		WithRigFov(mgl32.DegToRad(60)),
		WithBounds(func() (mgl32.Vec3, float32) { return mgl32.Vec3{}, 100 }),
	)
	r.FitAll(0)
	assert.InDelta(t, 220, r.Pose().Position[2], 1e-2)

	r.SetBounds(func() (mgl32.Vec3, float32) { return mgl32.Vec3{}, 0 })
	r.FitAll(0)
	assert.InDelta(t, 220, r.Pose().Position[2], 1e-2)
}

func TestCameraProject(t *testing.T) {
	rig := NewRig(WithPose(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{}))
	cam := NewCamera(WithSurface(rig), WithViewport(800, 600))

	screen, w, ok := cam.Project(mgl32.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 400, screen[0], 1e-2)
	assert.InDelta(t, 300, screen[1], 1e-2)
	assert.InDelta(t, 100, w, 1e-3)
	assert.Greater(t, cam.PixelRadius(10, w), float32(0))

	_, _, ok = cam.Project(mgl32.Vec3{0, 0, 200})
	assert.False(t, ok, "behind the camera")

	assert.True(t, cam.Frustum().ContainsSphere(mgl32.Vec3{}, 1))
}

func TestCameraFollowsSurfaceOnUpdate(t *testing.T) {
	rig := NewRig(WithPose(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{}))
	cam := NewCamera(WithSurface(rig), WithViewport(800, 600))

	rig.MovePose(mgl32.Vec3{100, 0, 0}, mgl32.Vec3{}, 0)
	cam.Update()

	screen, _, ok := cam.Project(mgl32.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 400, screen[0], 1e-2)

	cam.SetViewport(1000, 500)
	w, h := cam.Viewport()
	assert.Equal(t, 1000, w)
	assert.Equal(t, 500, h)
	assert.InDelta(t, 2, cam.Aspect(), 1e-6)
}
