package engine

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Chemberlein/ADA-Cosmos/common"
	"github.com/Chemberlein/ADA-Cosmos/engine/camera"
	"github.com/Chemberlein/ADA-Cosmos/engine/input"
	"github.com/Chemberlein/ADA-Cosmos/engine/profiler"
	"github.com/Chemberlein/ADA-Cosmos/engine/render"
	"github.com/Chemberlein/ADA-Cosmos/engine/resource"
	"github.com/Chemberlein/ADA-Cosmos/engine/scene"
	"github.com/Chemberlein/ADA-Cosmos/engine/scheduler"
	"github.com/Chemberlein/ADA-Cosmos/engine/window"
	"github.com/rs/zerolog"
)

// FrameCallback receives the render trees and visible labels built each tick.
type FrameCallback func(objects []*render.Object, labels []*resource.Label)

// engine implements the Engine interface.
// Coordinates the tick goroutine and the window thread.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	title  string
	status atomic.Value // string shown after the title

	loop   scheduler.Loop
	scene  scene.Scene
	rig    camera.Rig
	cam    camera.Camera
	router *input.Router

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	frameCallback  FrameCallback

	logger zerolog.Logger
}

// Engine is the main entry point of the viewer.
// It runs the scene's scheduler loop on a fixed tick and forwards window input onto it.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the hosted scene.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Loop returns the scheduler loop advanced every tick. Functions that touch the
	// scene from another goroutine must be posted onto it.
	//
	// Returns:
	//   - scheduler.Loop: the loop
	Loop() scheduler.Loop

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetFrameCallback registers the function receiving each tick's render output.
	// It runs on the tick goroutine and must be set before Run.
	//
	// Parameters:
	//   - callback: the frame consumer
	SetFrameCallback(callback FrameCallback)

	// Run mounts the scene and starts the tick loop. With a window it blocks on the
	// window message loop and must be called from the main thread; headless it
	// blocks until Quit. The scene is unmounted before Run returns.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Panics without a scheduler loop or a scene.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		engineTickRate:  time.Second / 60,
		title:           "ADA Cosmos",
		logger:          zerolog.Nop(),
	}

	for _, opt := range options {
		opt(e)
	}
	if e.loop == nil {
		panic("engine: NewEngine requires a scheduler loop")
	}
	if e.scene == nil {
		panic("engine: NewEngine requires a scene")
	}

	e.status.Store("")
	e.profiler = profiler.NewProfiler(
		profiler.WithLogger(e.logger),
		profiler.WithFields(e.profileFields),
	)

	routerOpts := []input.RouterBuilderOption{input.WithLogger(e.logger)}
	if e.rig != nil {
		routerOpts = append(routerOpts, input.WithRig(e.rig))
	}
	e.router = input.NewRouter(e.scene, routerOpts...)

	if e.window != nil {
		e.bindWindow()
	}
	return e
}

// bindWindow posts every window event onto the loop so the scene only ever runs
// on the tick goroutine.
func (e *engine) bindWindow() {
	w := e.window
	w.SetResizeCallback(func(width, height int) {
		e.loop.Post(func() { e.router.Resize(width, height) })
	})
	w.SetScrollCallback(func(delta float32) {
		e.loop.Post(func() { e.router.Scroll(delta) })
	})
	w.SetKeyDownCallback(func(keyCode uint32) {
		e.loop.Post(func() { e.router.KeyDown(keyCode) })
	})
	w.SetMouseButtonCallback(func(button common.MouseButton, pressed bool, x, y int32) {
		e.loop.Post(func() { e.router.MouseButton(button, pressed, x, y) })
	})
	w.SetMouseMoveCallback(func(x, y int32) {
		e.loop.Post(func() { e.router.MouseMove(x, y) })
	})
	shown := ""
	w.SetUpdateCallback(func() {
		title := e.title
		if status, _ := e.status.Load().(string); status != "" {
			title += " | " + status
		}
		if title != shown {
			shown = title
			w.SetTitle(title)
		}
	})
	e.loop.Post(func() { e.router.Resize(w.Width(), w.Height()) })
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Loop() scheduler.Loop {
	return e.loop
}

func (e *engine) Run() {
	e.loop.Post(e.scene.Mount)
	e.running.Store(true)
	e.handle()

	if e.window != nil {
		e.window.ProcessMessages()
		e.Quit()
	}
	e.wg.Wait()

	// The tick goroutine has exited, so the scene can be torn down here.
	e.scene.Unmount()
	e.logger.Info().Msg("engine stopped")
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handle launches the engine and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine and listens for
// dynamic rate changes via tickRateChannel. Recovers from panics to avoid crashing
// the process and signals quit on recovery. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Msg("tick goroutine recovered from panic")
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(lastTick)
			lastTick = now
			e.tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// tick advances timers and posted input, moves the camera, and hands the frame out.
func (e *engine) tick(dt time.Duration) {
	e.loop.Advance(dt)
	if e.rig != nil {
		e.rig.Update(dt)
	}
	if e.cam != nil {
		e.cam.Update()
	}

	objects := e.scene.Frame()
	if e.frameCallback != nil {
		e.frameCallback(objects, e.scene.Labels())
	}
	e.status.Store(firstLine(e.scene.Tooltip()))

	if e.profilingEnabled.Load() {
		e.profiler.Tick()
	}
}

func (e *engine) profileFields(ev *zerolog.Event) {
	st := e.scene.Stats()
	ev.Stringer("stage", st.Stage).
		Int("nodes", st.Nodes).
		Stringer("focus", st.Focus).
		Int("geometries", st.Resources.Geometries).
		Int("materials", st.Resources.Materials).
		Int("labels", st.Resources.Labels).
		Int("uploaded", st.Resources.Uploaded).
		Int("pending", e.loop.Pending())
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Second / time.Duration(fps)

	if !e.running.Load() {
		e.engineTickRate = newRate
		return
	}
	// Non-blocking send - if channel is full, replace the pending value
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetFrameCallback(callback FrameCallback) {
	e.frameCallback = callback
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
