package engine

import (
	"time"

	"github.com/Chemberlein/ADA-Cosmos/engine/camera"
	"github.com/Chemberlein/ADA-Cosmos/engine/scene"
	"github.com/Chemberlein/ADA-Cosmos/engine/scheduler"
	"github.com/Chemberlein/ADA-Cosmos/engine/window"
	"github.com/rs/zerolog"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithWindow sets the window whose input drives the scene. Without one the engine
// runs headless.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithTitle sets the base window title. The hovered node's tooltip is appended to it.
//
// Parameters:
//   - title: the base title
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTitle(title string) EngineBuilderOption {
	return func(e *engine) {
		e.title = title
	}
}

// WithLoop sets the scheduler loop the scene was built on.
//
// Parameters:
//   - loop: the scheduler loop
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLoop(loop scheduler.Loop) EngineBuilderOption {
	return func(e *engine) {
		e.loop = loop
	}
}

// WithScene sets the hosted scene.
//
// Parameters:
//   - s: the scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithRig sets the camera rig updated every tick and driven by drag and wheel input.
//
// Parameters:
//   - rig: the camera rig
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRig(rig camera.Rig) EngineBuilderOption {
	return func(e *engine) {
		e.rig = rig
	}
}

// WithCamera sets the camera whose matrices are refreshed every tick.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(cam camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.cam = cam
	}
}

// WithFrameCallback sets the consumer of each tick's render output.
//
// Parameters:
//   - callback: the frame consumer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameCallback(callback FrameCallback) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = callback
	}
}

// WithLogger sets the engine logger, also used by the profiler and input router.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}
