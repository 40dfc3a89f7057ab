package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLookAtPlacesTargetOnNegativeZ(t *testing.T) {
	var view [16]float32
	LookAt(view[:], mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	p := TransformPoint(view[:], mgl32.Vec3{0, 0, 0})
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.InDelta(t, -10, p[2], 1e-5)
	assert.InDelta(t, 1, p[3], 1e-5)
}

func TestLookAtStraightDownDoesNotProduceNaN(t *testing.T) {
	var view [16]float32
	LookAt(view[:], mgl32.Vec3{0, 100, 0}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	for _, v := range view {
		assert.False(t, math32.IsNaN(v))
	}
}

func TestPerspectiveMapsNearAndFarToUnitDepth(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], mgl32.DegToRad(45), 1, 1, 100)

	near := TransformPoint(proj[:], mgl32.Vec3{0, 0, -1})
	far := TransformPoint(proj[:], mgl32.Vec3{0, 0, -100})
	assert.InDelta(t, 0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1, far[2]/far[3], 1e-4)
}

func TestFrustumContainsSphere(t *testing.T) {
	var view, proj, vp [16]float32
	LookAt(view[:], mgl32.Vec3{0, 0, 50}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	Perspective(proj[:], mgl32.DegToRad(60), 1, 0.1, 1000)
	Mul4(vp[:], proj[:], view[:])

	f := ExtractFrustumFromMatrix(vp[:])
	assert.True(t, f.ContainsSphere(mgl32.Vec3{0, 0, 0}, 1))
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, 100}, 1), "behind the camera")
	assert.False(t, f.ContainsSphere(mgl32.Vec3{500, 0, 0}, 1), "far to the right")
	assert.True(t, f.ContainsSphere(mgl32.Vec3{500, 0, 0}, 1000), "large radius reaches into view")
}

func TestIsFinite(t *testing.T) {
	nan := math32.NaN()
	assert.True(t, IsFinite(mgl32.Vec3{1, 2, 3}))
	assert.False(t, IsFinite(mgl32.Vec3{nan, 0, 0}))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "ADA", Coalesce("", "ADA"))
	assert.Equal(t, "BTC", Coalesce("BTC", "ADA"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
