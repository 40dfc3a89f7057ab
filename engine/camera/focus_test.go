package camera

import (
	"testing"
	"time"

	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"github.com/Chemberlein/ADA-Cosmos/engine/scheduler"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type move struct {
	pose     Pose
	duration time.Duration
}

// fakeSurface jumps straight to every requested pose and records it.
type fakeSurface struct {
	pose  Pose
	moves []move
	fits  int
}

func (s *fakeSurface) MovePose(position, lookAt mgl32.Vec3, d time.Duration) {
	s.pose = Pose{Position: position, LookAt: lookAt}
	s.moves = append(s.moves, move{pose: s.pose, duration: d})
}

func (s *fakeSurface) Pose() Pose           { return s.pose }
func (s *fakeSurface) FitAll(time.Duration) { s.fits++ }

func ranked(x, z float32) *entity.Ranked {
	r := math32.Hypot(x, z)
	return entity.NewRanked(entity.RankedInput{ID: "t"}, 0, 1, r, math32.Atan2(z, x))
}

func TestFocusPoseScalesAlongRay(t *testing.T) {
	pose := FocusPose(mgl32.Vec3{100, 0, 0}, FocusProfile{Distance: 150, VerticalBias: 40})
	assert.InDelta(t, 250, pose.Position[0], 1e-4)
	assert.InDelta(t, 40, pose.Position[1], 1e-4)
	assert.InDelta(t, 0, pose.Position[2], 1e-4)
	assert.Equal(t, mgl32.Vec3{100, 0, 0}, pose.LookAt)
}

func TestFocusPoseFallbackForDegeneratePositions(t *testing.T) {
	for _, p := range []mgl32.Vec3{
		{},
		{math32.NaN(), 0, 0},
		{math32.Inf(1), 0, 0},
	} {
		pose := FocusPose(p, RankedProfile)
		assert.Equal(t, FallbackOffset, pose.Position)
		assert.Equal(t, mgl32.Vec3{}, pose.LookAt)
	}
}

func TestHubFocusUsesFallback(t *testing.T) {
	h := entity.NewHub(entity.HubData{})
	pose := FocusPose(h.Position(), ProfileFor(h))
	assert.Equal(t, FallbackOffset, pose.Position)
}

func TestSelectWithoutSurfaceIsDropped(t *testing.T) {
	loop := scheduler.NewLoop()
	fc := NewFocusController(loop)

	assert.False(t, fc.Select(ranked(100, 0)))
	assert.Nil(t, fc.Selected())
	assert.Equal(t, StateIdle, fc.State())
	assert.Equal(t, 0, loop.Pending())
}

func TestSelectTransitionsThenOrbits(t *testing.T) {
	loop := scheduler.NewLoop()
	surface := &fakeSurface{}
	fc := NewFocusController(loop, WithFocusSurface(surface))
	e := ranked(100, 0)

	require.True(t, fc.Select(e))
	assert.Equal(t, StateTransitioning, fc.State())
	assert.True(t, fc.Transitioning())
	assert.False(t, fc.OrbitEnabled())
	require.Len(t, surface.moves, 1)
	assert.Equal(t, DefaultTransitionDuration, surface.moves[0].duration)
	assert.InDelta(t, 250, surface.pose.Position[0], 1e-3)

	loop.Advance(DefaultOrbitDelay - time.Millisecond)
	assert.Equal(t, StateTransitioning, fc.State())

	loop.Advance(time.Millisecond)
	assert.Equal(t, StateOrbiting, fc.State())
	assert.True(t, fc.OrbitEnabled())

	// rate limited to one update per interval
	loop.Advance(20 * time.Millisecond)
	assert.Len(t, surface.moves, 1)
	loop.Advance(30 * time.Millisecond)
	require.Len(t, surface.moves, 2)

	last := surface.moves[1]
	assert.Equal(t, DefaultOrbitMoveDuration, last.duration)
	assert.Equal(t, e.Position(), last.pose.LookAt)
	assert.InDelta(t, RankedProfile.VerticalBias, last.pose.Position[1], 1e-3)
	dx := last.pose.Position[0] - e.Position()[0]
	dz := last.pose.Position[2] - e.Position()[2]
	assert.InDelta(t, 150, math32.Hypot(dx, dz), 1e-2)
	assert.InDelta(t, DefaultOrbitSpeed*50, math32.Atan2(dz, dx), 1e-5)
}

func TestOrbitTracksMovingExplorer(t *testing.T) {
	loop := scheduler.NewLoop()
	surface := &fakeSurface{}
	fc := NewFocusController(loop, WithFocusSurface(surface))
	exp := entity.NewExplorer(entity.ExplorerInput{Address: "a", Payload: 1}, 2, 0)

	require.True(t, fc.Select(exp))
	loop.Advance(DefaultOrbitDelay)
	exp.Advance(time.Second)
	loop.Advance(DefaultOrbitInterval)

	assert.Equal(t, exp.Position(), surface.pose.LookAt)
}

func TestOrbitStepIsClampedAfterStall(t *testing.T) {
	loop := scheduler.NewLoop()
	surface := &fakeSurface{}
	fc := NewFocusController(loop, WithFocusSurface(surface))
	e := ranked(100, 0)
	fc.Select(e)
	loop.Advance(DefaultOrbitDelay)

	loop.Advance(10 * time.Second)
	last := surface.moves[len(surface.moves)-1].pose.Position
	angle := math32.Atan2(last[2]-e.Position()[2], last[0]-e.Position()[0])
	assert.InDelta(t, DefaultOrbitSpeed*float32(4*DefaultOrbitInterval.Milliseconds()), angle, 1e-5)
}

func TestInterruptDuringTransitionCancelsOrbitStart(t *testing.T) {
	loop := scheduler.NewLoop()
	surface := &fakeSurface{}
	fc := NewFocusController(loop, WithFocusSurface(surface))
	e := ranked(100, 0)

	fc.Select(e)
	loop.Advance(time.Second)
	fc.Interrupt()
	loop.Advance(10 * time.Second)

	assert.Equal(t, StateIdle, fc.State())
	assert.False(t, fc.OrbitEnabled())
	assert.Same(t, e, fc.Selected())
	assert.Len(t, surface.moves, 1)
	assert.Equal(t, 0, loop.Pending())
}

func TestInterruptWhileOrbitingStopsMoves(t *testing.T) {
	loop := scheduler.NewLoop()
	surface := &fakeSurface{}
	fc := NewFocusController(loop, WithFocusSurface(surface))

	fc.Select(ranked(100, 0))
	loop.Advance(DefaultOrbitDelay)
	loop.Advance(DefaultOrbitInterval)
	moves := len(surface.moves)

	fc.Interrupt()
	loop.Advance(time.Second)
	assert.Len(t, surface.moves, moves)
	assert.Equal(t, StateIdle, fc.State())
}

func TestReselectRestartsSequence(t *testing.T) {
	loop := scheduler.NewLoop()
	surface := &fakeSurface{}
	fc := NewFocusController(loop, WithFocusSurface(surface))
	a, b := ranked(100, 0), ranked(0, 200)

	fc.Select(a)
	loop.Advance(DefaultOrbitDelay)
	require.Equal(t, StateOrbiting, fc.State())

	fc.Select(b)
	assert.Equal(t, StateTransitioning, fc.State())
	assert.Same(t, b, fc.Selected())
	assert.Equal(t, 1, loop.Pending(), "only the new orbit-start timer remains")

	loop.Advance(DefaultOrbitDelay - time.Millisecond)
	assert.Equal(t, StateTransitioning, fc.State())
	loop.Advance(time.Millisecond)
	assert.Equal(t, StateOrbiting, fc.State())
}

func TestReselectDuringTransitionDropsFirstOrbit(t *testing.T) {
	loop := scheduler.NewLoop()
	surface := &fakeSurface{}
	fc := NewFocusController(loop, WithFocusSurface(surface))
	a, b := ranked(100, 0), ranked(0, 200)

	require.True(t, fc.Select(a))
	loop.Advance(time.Second)
	require.Equal(t, StateTransitioning, fc.State())

	require.True(t, fc.Select(b))
	assert.Equal(t, 1, loop.Pending(), "only the orbit-start timer for b remains")
	firstMoveForB := len(surface.moves) - 1

	// past the deadline a was scheduled for, before b's
	loop.Advance(DefaultOrbitDelay - 500*time.Millisecond)
	assert.Equal(t, StateTransitioning, fc.State())
	assert.False(t, fc.OrbitEnabled())
	assert.Same(t, b, fc.Selected())

	loop.Advance(500 * time.Millisecond)
	require.Equal(t, StateOrbiting, fc.State())
	loop.Advance(DefaultOrbitInterval)

	for _, m := range surface.moves[firstMoveForB:] {
		assert.NotEqual(t, a.Position(), m.pose.LookAt)
		assert.Equal(t, b.Position(), m.pose.LookAt)
	}
	assert.Greater(t, len(surface.moves), firstMoveForB+1)
}

func rankedWithID(id string, x, z float32) *entity.Ranked {
	r := math32.Hypot(x, z)
	return entity.NewRanked(entity.RankedInput{ID: id}, 0, 1, r, math32.Atan2(z, x))
}

func TestRetargetRestartsTowardsMovedEntity(t *testing.T) {
	loop := scheduler.NewLoop()
	surface := &fakeSurface{}
	fc := NewFocusController(loop, WithFocusSurface(surface))
	old := rankedWithID("snek", 100, 0)

	require.True(t, fc.Select(old))
	loop.Advance(DefaultOrbitDelay)
	require.Equal(t, StateOrbiting, fc.State())

	fresh := rankedWithID("snek", 0, -150)
	require.True(t, fc.Retarget(fresh))
	assert.Same(t, fresh, fc.Selected())
	assert.Equal(t, StateTransitioning, fc.State())
	assert.Equal(t, 1, loop.Pending())
	assert.Equal(t, fresh.Position(), surface.pose.LookAt)

	loop.Advance(DefaultOrbitDelay)
	loop.Advance(DefaultOrbitInterval)
	require.Equal(t, StateOrbiting, fc.State())
	assert.Equal(t, fresh.Position(), surface.pose.LookAt)
}

func TestRetargetIgnoresOtherIDsAndKeepsUnmovedOrbit(t *testing.T) {
	loop := scheduler.NewLoop()
	surface := &fakeSurface{}
	fc := NewFocusController(loop, WithFocusSurface(surface))
	old := rankedWithID("snek", 100, 0)

	assert.False(t, fc.Retarget(old), "nothing selected")

	fc.Select(old)
	loop.Advance(DefaultOrbitDelay)
	assert.False(t, fc.Retarget(rankedWithID("hosky", 100, 0)))
	assert.False(t, fc.Retarget(nil))
	assert.Same(t, old, fc.Selected())

	same := rankedWithID("snek", 100, 0)
	moves := len(surface.moves)
	require.True(t, fc.Retarget(same))
	assert.Same(t, same, fc.Selected())
	assert.Equal(t, StateOrbiting, fc.State())
	assert.Len(t, surface.moves, moves)

	fc.Interrupt()
	moved := rankedWithID("snek", 0, 300)
	require.True(t, fc.Retarget(moved))
	assert.Equal(t, StateIdle, fc.State())
	assert.Same(t, moved, fc.Selected())
	assert.Zero(t, loop.Pending())
}

func TestSelectionAfterSurfaceAttached(t *testing.T) {
	loop := scheduler.NewLoop()
	fc := NewFocusController(loop)
	e := ranked(100, 0)

	assert.False(t, fc.Select(e))
	fc.SetSurface(&fakeSurface{})
	assert.True(t, fc.Select(e))
}

func TestDisposeCancelsEverything(t *testing.T) {
	loop := scheduler.NewLoop()
	fc := NewFocusController(loop, WithFocusSurface(&fakeSurface{}))
	fc.Select(ranked(100, 0))
	loop.Advance(DefaultOrbitDelay)

	fc.Dispose()
	assert.Equal(t, 0, loop.Pending())
	assert.Nil(t, fc.Surface())
	assert.False(t, fc.Select(ranked(1, 1)))
}
