package lod

import (
	"testing"
	"time"

	"github.com/Chemberlein/ADA-Cosmos/engine/scheduler"
	"github.com/stretchr/testify/assert"
)

func record(c Controller) *[]Stage {
	var seen []Stage
	c.OnChange(func(s Stage) { seen = append(seen, s) })
	return &seen
}

func TestStagesAdvanceInOrderOnce(t *testing.T) {
	loop := scheduler.NewLoop()
	c := NewController(loop)
	seen := record(c)

	c.Start()
	assert.Equal(t, StageInitial, c.Stage())

	loop.Advance(49 * time.Millisecond)
	assert.Equal(t, StageInitial, c.Stage())
	loop.Advance(1 * time.Millisecond)
	assert.Equal(t, StageBasic, c.Stage())
	loop.Advance(450 * time.Millisecond)
	assert.Equal(t, StageComplete, c.Stage())
	loop.Advance(10 * time.Second)

	assert.Equal(t, []Stage{StageInitial, StageBasic, StageComplete}, *seen)
}

func TestStartIsIdempotent(t *testing.T) {
	loop := scheduler.NewLoop()
	c := NewController(loop)
	seen := record(c)

	c.Start()
	loop.Advance(time.Second)
	c.Start()
	loop.Advance(time.Second)

	assert.Equal(t, StageComplete, c.Stage())
	assert.Len(t, *seen, 3)
}

func TestCompleteFiringFirstStillEmitsBasic(t *testing.T) {
	loop := scheduler.NewLoop()
	c := NewController(loop, WithDelays(100*time.Millisecond, 10*time.Millisecond))
	seen := record(c)

	c.Start()
	loop.Advance(20 * time.Millisecond)
	assert.Equal(t, []Stage{StageInitial, StageBasic, StageComplete}, *seen)

	loop.Advance(time.Second)
	assert.Len(t, *seen, 3)
}

func TestStopCancelsPendingStages(t *testing.T) {
	loop := scheduler.NewLoop()
	c := NewController(loop)
	c.Start()
	loop.Advance(60 * time.Millisecond)
	c.Stop()
	loop.Advance(time.Second)

	assert.Equal(t, StageBasic, c.Stage())
	assert.Equal(t, 0, loop.Pending())
}

func TestNewControllerRequiresScheduler(t *testing.T) {
	assert.Panics(t, func() { NewController(nil) })
}

func TestSegmentHelpers(t *testing.T) {
	assert.Equal(t, 8, SphereSegments(StageInitial, false))
	assert.Equal(t, 8, SphereSegments(StageInitial, true))
	assert.Equal(t, 12, SphereSegments(StageBasic, false))
	assert.Equal(t, 12, SphereSegments(StageBasic, true))
	assert.Equal(t, 16, SphereSegments(StageComplete, false))
	assert.Equal(t, 12, SphereSegments(StageComplete, true))

	assert.Equal(t, 0, RingSegments(StageInitial))
	assert.Equal(t, 16, RingSegments(StageBasic))
	assert.Equal(t, 32, RingSegments(StageComplete))
	assert.Equal(t, "COMPLETE", StageComplete.String())
}
