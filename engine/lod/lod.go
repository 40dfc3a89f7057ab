// Package lod sequences the progressive reveal of the scene: INITIAL on mount,
// BASIC shortly after, COMPLETE a few hundred milliseconds later.
package lod

import (
	"fmt"
	"time"

	"github.com/Chemberlein/ADA-Cosmos/engine/scheduler"
	"github.com/rs/zerolog"
)

// Stage is a level-of-detail step. Stages are ordered and only move forward.
type Stage int

const (
	StageInitial Stage = iota
	StageBasic
	StageComplete
)

func (s Stage) String() string {
	switch s {
	case StageInitial:
		return "INITIAL"
	case StageBasic:
		return "BASIC"
	case StageComplete:
		return "COMPLETE"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

const (
	DefaultBasicDelay    = 50 * time.Millisecond
	DefaultCompleteDelay = 500 * time.Millisecond
)

// Controller drives the stage sequence for one scene mount.
type Controller interface {
	// Start enters StageInitial and schedules the later stages. Only the first call
	// has an effect; a new mount needs a new Controller.
	Start()

	// Stop cancels any stage transitions that have not fired yet.
	Stop()

	// Stage returns the current stage.
	//
	// Returns:
	//   - Stage: the current stage
	Stage() Stage

	// OnChange registers fn to run on every stage entered after registration.
	//
	// Parameters:
	//   - fn: the listener, receiving the stage just entered
	OnChange(fn func(Stage))
}

type controllerImpl struct {
	sched scheduler.Scheduler

	basicDelay    time.Duration
	completeDelay time.Duration

	stage   Stage
	started bool

	basicToken    scheduler.Token
	completeToken scheduler.Token

	listeners []func(Stage)
	logger    zerolog.Logger
}

var _ Controller = &controllerImpl{}

// NewController creates a stopped controller in StageInitial.
//
// Parameters:
//   - sched: the scheduler used for the delayed transitions
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(sched scheduler.Scheduler, options ...ControllerBuilderOption) Controller {
	if sched == nil {
		panic("lod: NewController requires a scheduler")
	}
	c := &controllerImpl{
		sched:         sched,
		basicDelay:    DefaultBasicDelay,
		completeDelay: DefaultCompleteDelay,
		stage:         StageInitial,
		logger:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *controllerImpl) Start() {
	if c.started {
		return
	}
	c.started = true
	c.emit(StageInitial)
	c.basicToken = c.sched.After(c.basicDelay, func() {
		c.basicToken = nil
		c.advanceTo(StageBasic)
	})
	c.completeToken = c.sched.After(c.completeDelay, func() {
		c.completeToken = nil
		c.advanceTo(StageComplete)
	})
}

func (c *controllerImpl) Stop() {
	if c.basicToken != nil {
		c.basicToken.Cancel()
		c.basicToken = nil
	}
	if c.completeToken != nil {
		c.completeToken.Cancel()
		c.completeToken = nil
	}
}

func (c *controllerImpl) Stage() Stage {
	return c.stage
}

func (c *controllerImpl) OnChange(fn func(Stage)) {
	c.listeners = append(c.listeners, fn)
}

// advanceTo steps through every stage up to target so none is skipped.
func (c *controllerImpl) advanceTo(target Stage) {
	for c.stage < target {
		c.stage++
		c.emit(c.stage)
	}
}

func (c *controllerImpl) emit(s Stage) {
	c.logger.Debug().Stringer("stage", s).Msg("lod stage entered")
	for _, fn := range c.listeners {
		fn(s)
	}
}

// SphereSegments returns the width and height segment count of a ranked sphere.
// StageBasic and a camera transition in progress both use the middle resolution.
//
// Parameters:
//   - s: the current stage
//   - animating: whether a camera transition is running
//
// Returns:
//   - int: segments for the sphere
func SphereSegments(s Stage, animating bool) int {
	switch {
	case s == StageInitial:
		return 8
	case s == StageBasic || animating:
		return 12
	default:
		return 16
	}
}

// RingSegments returns the segment count of a highlight ring.
//
// Parameters:
//   - s: the current stage
//
// Returns:
//   - int: segments for the ring, 0 in StageInitial where no ring is drawn
func RingSegments(s Stage) int {
	switch {
	case s >= StageComplete:
		return 32
	case s == StageBasic:
		return 16
	default:
		return 0
	}
}
