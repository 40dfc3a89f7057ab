package camera

import (
	"fmt"
	"time"

	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"github.com/Chemberlein/ADA-Cosmos/engine/scheduler"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// State is the phase of the focus controller.
type State int

const (
	StateIdle State = iota
	StateTransitioning
	StateOrbiting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTransitioning:
		return "transitioning"
	case StateOrbiting:
		return "orbiting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	DefaultTransitionDuration = 3000 * time.Millisecond
	DefaultOrbitDelay         = 3000 * time.Millisecond
	DefaultOrbitInterval      = 50 * time.Millisecond
	DefaultOrbitMoveDuration  = 50 * time.Millisecond

	// DefaultOrbitSpeed is in radians per millisecond.
	DefaultOrbitSpeed float32 = 0.00002

	// maxOrbitSteps bounds the angle advanced after a long stall.
	maxOrbitSteps = 4
)

// FocusController moves the camera to a selected entity and, once there, orbits it
// until the user interrupts. It owns every pending timer and frame callback of the
// animation and cancels them before scheduling new ones.
type FocusController interface {
	// Select flies the camera to e and schedules the orbit to start when the flight ends.
	// A selection made while another is in progress restarts the sequence.
	//
	// Parameters:
	//   - e: the entity to focus
	//
	// Returns:
	//   - bool: false when no surface is attached and the selection was dropped
	Select(e entity.Entity) bool

	// Interrupt stops the pending orbit start and any running orbit. The selection is kept.
	Interrupt()

	// Retarget replaces the selection with e when both carry the same id, as after a
	// data refresh. A running flight or orbit restarts towards e when it has moved;
	// an idle controller only swaps the reference.
	//
	// Parameters:
	//   - e: the fresh instance of the selected entity
	//
	// Returns:
	//   - bool: false when e is nil or does not match the selection
	Retarget(e entity.Entity) bool

	// SetSurface attaches the camera surface. Selections before this are dropped.
	//
	// Parameters:
	//   - s: the surface, or nil to detach
	SetSurface(s Surface)

	// Surface returns the attached surface, or nil.
	//
	// Returns:
	//   - Surface: the attached surface
	Surface() Surface

	// State returns the current phase.
	//
	// Returns:
	//   - State: idle, transitioning or orbiting
	State() State

	// Selected returns the last accepted selection, or nil.
	//
	// Returns:
	//   - entity.Entity: the selected entity
	Selected() entity.Entity

	// OrbitEnabled reports whether the orbit frame callback is advancing the camera.
	//
	// Returns:
	//   - bool: true while orbiting
	OrbitEnabled() bool

	// Transitioning reports whether the camera is flying to the selection.
	//
	// Returns:
	//   - bool: true while transitioning
	Transitioning() bool

	// Dispose cancels everything pending and detaches the surface.
	Dispose()
}

type focusControllerImpl struct {
	sched   scheduler.Scheduler
	surface Surface

	selected     entity.Entity
	state        State
	orbitEnabled bool

	timeoutToken scheduler.Token
	frameToken   scheduler.Token

	orbitAngle      float32
	orbitRadius     float32
	orbitHeight     float32
	lastOrbitUpdate time.Duration

	transitionDuration time.Duration
	orbitDelay         time.Duration
	orbitInterval      time.Duration
	orbitMoveDuration  time.Duration
	orbitSpeed         float32

	profile func(entity.Entity) FocusProfile
	logger  zerolog.Logger
}

var _ FocusController = &focusControllerImpl{}

// NewFocusController creates an idle controller.
//
// Parameters:
//   - sched: scheduler for the orbit-start timer and the orbit frame callback
//   - options: functional options to configure the controller
//
// Returns:
//   - FocusController: the newly created controller
func NewFocusController(sched scheduler.Scheduler, options ...FocusControllerBuilderOption) FocusController {
	if sched == nil {
		panic("camera: NewFocusController requires a scheduler")
	}
	fc := &focusControllerImpl{
		sched:              sched,
		transitionDuration: DefaultTransitionDuration,
		orbitDelay:         DefaultOrbitDelay,
		orbitInterval:      DefaultOrbitInterval,
		orbitMoveDuration:  DefaultOrbitMoveDuration,
		orbitSpeed:         DefaultOrbitSpeed,
		profile:            ProfileFor,
		logger:             zerolog.Nop(),
	}
	for _, opt := range options {
		opt(fc)
	}
	return fc
}

func (fc *focusControllerImpl) Select(e entity.Entity) bool {
	if e == nil {
		return false
	}
	if fc.surface == nil {
		fc.logger.Debug().Str("entity", e.ID()).Msg("camera surface not ready, selection dropped")
		return false
	}

	fc.cancelPending()
	fc.selected = e
	fc.orbitEnabled = false
	fc.state = StateTransitioning

	pose := FocusPose(e.Position(), fc.profile(e))
	fc.surface.MovePose(pose.Position, pose.LookAt, fc.transitionDuration)
	fc.timeoutToken = fc.sched.After(fc.orbitDelay, fc.startOrbit)

	fc.logger.Debug().Str("entity", e.ID()).Stringer("kind", e.Kind()).Msg("focus started")
	return true
}

func (fc *focusControllerImpl) Interrupt() {
	fc.cancelPending()
	if fc.state != StateIdle {
		fc.logger.Debug().Stringer("from", fc.state).Msg("focus interrupted")
	}
	fc.orbitEnabled = false
	fc.state = StateIdle
}

func (fc *focusControllerImpl) Retarget(e entity.Entity) bool {
	if !entity.SameID(fc.selected, e) {
		return false
	}
	moved := fc.selected.Position() != e.Position()
	fc.selected = e
	if fc.state == StateIdle || !moved {
		return true
	}
	fc.logger.Debug().Str("entity", e.ID()).Stringer("from", fc.state).Msg("selection moved, focus restarted")
	return fc.Select(e)
}

func (fc *focusControllerImpl) SetSurface(s Surface) {
	fc.surface = s
}

func (fc *focusControllerImpl) Surface() Surface {
	return fc.surface
}

func (fc *focusControllerImpl) State() State {
	return fc.state
}

func (fc *focusControllerImpl) Selected() entity.Entity {
	return fc.selected
}

func (fc *focusControllerImpl) OrbitEnabled() bool {
	return fc.orbitEnabled
}

func (fc *focusControllerImpl) Transitioning() bool {
	return fc.state == StateTransitioning
}

func (fc *focusControllerImpl) Dispose() {
	fc.cancelPending()
	fc.orbitEnabled = false
	fc.state = StateIdle
	fc.surface = nil
}

// startOrbit derives the orbit from where the flight left the camera: radius and
// angle from its XZ offset to the entity, height kept as is.
func (fc *focusControllerImpl) startOrbit() {
	fc.timeoutToken = nil
	if fc.selected == nil || fc.surface == nil {
		fc.state = StateIdle
		return
	}

	cam := fc.surface.Pose().Position
	target := fc.selected.Position()
	dx, dz := cam[0]-target[0], cam[2]-target[2]

	fc.orbitRadius = math32.Hypot(dx, dz)
	fc.orbitAngle = math32.Atan2(dz, dx)
	fc.orbitHeight = cam[1]
	fc.lastOrbitUpdate = fc.sched.Now()
	fc.orbitEnabled = true
	fc.state = StateOrbiting
	fc.frameToken = fc.sched.EveryFrame(fc.orbitFrame)

	fc.logger.Debug().
		Str("entity", fc.selected.ID()).
		Float32("radius", fc.orbitRadius).
		Float32("height", fc.orbitHeight).
		Msg("orbit started")
}

// orbitFrame advances the orbit at most once per orbit interval.
func (fc *focusControllerImpl) orbitFrame(now time.Duration) {
	if !fc.orbitEnabled || fc.selected == nil || fc.surface == nil {
		return
	}
	elapsed := now - fc.lastOrbitUpdate
	if elapsed < fc.orbitInterval {
		return
	}
	fc.lastOrbitUpdate = now
	if limit := fc.orbitInterval * maxOrbitSteps; elapsed > limit {
		elapsed = limit
	}

	fc.orbitAngle += fc.orbitSpeed * float32(elapsed.Milliseconds())
	target := fc.selected.Position()
	position := mgl32.Vec3{
		target[0] + fc.orbitRadius*math32.Cos(fc.orbitAngle),
		fc.orbitHeight,
		target[2] + fc.orbitRadius*math32.Sin(fc.orbitAngle),
	}
	fc.surface.MovePose(position, target, fc.orbitMoveDuration)
}

func (fc *focusControllerImpl) cancelPending() {
	if fc.timeoutToken != nil {
		fc.timeoutToken.Cancel()
		fc.timeoutToken = nil
	}
	if fc.frameToken != nil {
		fc.frameToken.Cancel()
		fc.frameToken = nil
	}
}
