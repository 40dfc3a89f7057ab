// Package scene hosts the orbit view: it owns the layout, the per-scene resource
// cache, the LOD and focus controllers, and turns host input into controller calls.
package scene

import (
	"fmt"
	"time"

	"github.com/Chemberlein/ADA-Cosmos/engine/camera"
	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"github.com/Chemberlein/ADA-Cosmos/engine/layout"
	"github.com/Chemberlein/ADA-Cosmos/engine/lod"
	"github.com/Chemberlein/ADA-Cosmos/engine/render"
	"github.com/Chemberlein/ADA-Cosmos/engine/resource"
	"github.com/Chemberlein/ADA-Cosmos/engine/scheduler"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

const (
	HoverThrottle  = 50 * time.Millisecond
	ResizeThrottle = 100 * time.Millisecond

	// minPickRadius keeps distant nodes clickable.
	minPickRadius = 6
)

var (
	InitialPosition = mgl32.Vec3{-1300, 1300, 500}
	InitialLookAt   = mgl32.Vec3{}
)

// Stats is a snapshot of scene state for the profiler.
type Stats struct {
	Mounted   bool
	Stage     lod.Stage
	Nodes     int
	Focus     camera.State
	Hovered   string
	Selected  string
	Resources resource.Stats
}

// Scene is the orbit view mounted into a host. All methods must be called from the
// goroutine that advances the scheduler; platform input is expected to be posted
// onto it.
type Scene interface {
	// Mount creates the resource cache and the controllers and starts the LOD timers.
	// Mounting a mounted scene does nothing.
	Mount()

	// Unmount tears everything down that Mount created. It is the only teardown path.
	Unmount()

	// Mounted reports whether the scene is mounted.
	//
	// Returns:
	//   - bool: true between Mount and Unmount
	Mounted() bool

	// SetData lays out a new data snapshot. The LOD stage is kept.
	//
	// Parameters:
	//   - ranked: the ranked list, in rank order
	//   - hub: aggregate hub figures, or nil to omit the hub
	//   - explorer: explorer address and payload, or nil to omit the explorer
	//
	// Returns:
	//   - error: a wrapped layout error when an id is empty or duplicated
	SetData(ranked []entity.RankedInput, hub *entity.HubData, explorer *entity.ExplorerInput) error

	// Layout returns the current layout, or nil before the first SetData.
	Layout() *layout.Layout

	// SetSurface attaches the host camera.
	//
	// Parameters:
	//   - s: the camera surface the focus controller steers
	SetSurface(s camera.Surface)

	// Activate focuses the camera on e. The selection callback runs only when the
	// focus controller accepts the request.
	//
	// Parameters:
	//   - e: the clicked entity
	//
	// Returns:
	//   - bool: true if the selection was accepted
	Activate(e entity.Entity) bool

	// SecondaryActivate handles the secondary action. On the explorer it focuses the hub.
	//
	// Parameters:
	//   - e: the entity the secondary action hit
	//
	// Returns:
	//   - bool: true if a selection was accepted
	SecondaryActivate(e entity.Entity) bool

	// PointerDown stops any focus animation.
	PointerDown()

	// TouchStart stops any focus animation.
	TouchStart()

	// Wheel stops any focus animation.
	Wheel()

	// Hover records the entity under the pointer, throttled.
	//
	// Parameters:
	//   - e: the hovered entity, or nil
	Hover(e entity.Entity)

	// Hovered returns the current hover target.
	Hovered() entity.Entity

	// Tooltip returns the hover text, shown only once the scene is fully detailed.
	//
	// Returns:
	//   - string: the tooltip, or ""
	Tooltip() string

	// Resize updates the viewport, throttled.
	//
	// Parameters:
	//   - width, height: new viewport size in pixels
	Resize(width, height int)

	// Pick returns the node under the pixel (x, y), preferring the nearest one.
	//
	// Parameters:
	//   - x, y: viewport pixel position
	//
	// Returns:
	//   - entity.Entity: the picked entity, or nil
	Pick(x, y float32) entity.Entity

	// FitAll frames every node.
	//
	// Parameters:
	//   - duration: transition length
	FitAll(duration time.Duration)

	// Frame builds the render trees for the current frame and refreshes label anchors.
	//
	// Returns:
	//   - []*render.Object: the background followed by one tree per node
	Frame() []*render.Object

	// Labels returns the labels visible after the last Frame.
	Labels() []*resource.Label

	// Stage returns the current LOD stage, StageInitial when unmounted.
	Stage() lod.Stage

	// Focus returns the focus controller, nil when unmounted.
	Focus() camera.FocusController

	// Stats returns a snapshot for the profiler.
	Stats() Stats
}

type sceneImpl struct {
	sched scheduler.Scheduler

	surface camera.Surface
	cam     camera.Camera

	onSelect func(*entity.Ranked)

	uploader      resource.Uploader
	workers       int
	layoutOptions []layout.BuilderOption
	basicDelay    time.Duration
	completeDelay time.Duration
	focusOptions  []camera.FocusControllerBuilderOption

	mounted   bool
	resources *resource.Resources
	lod       lod.Controller
	focus     camera.FocusController
	hover     *scheduler.Throttle[entity.Entity]
	resize    *scheduler.Throttle[[2]int]

	explorerToken scheduler.Token
	explorerTick  time.Duration

	layout             *layout.Layout
	hovered            entity.Entity
	initialPoseApplied bool

	logger zerolog.Logger
}

var _ Scene = &sceneImpl{}

// NewScene creates an unmounted scene.
//
// Parameters:
//   - sched: the scheduler driving timers and per-frame callbacks
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(sched scheduler.Scheduler, options ...SceneBuilderOption) Scene {
	if sched == nil {
		panic("scene: NewScene requires a scheduler")
	}
	s := &sceneImpl{
		sched:         sched,
		basicDelay:    lod.DefaultBasicDelay,
		completeDelay: lod.DefaultCompleteDelay,
		logger:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.cam != nil && s.surface != nil {
		s.cam.SetSurface(s.surface)
	}
	s.bindBounds()
	return s
}

func (s *sceneImpl) Mount() {
	if s.mounted {
		return
	}

	resOpts := []resource.ResourcesBuilderOption{resource.WithLogger(s.logger)}
	if s.uploader != nil {
		resOpts = append(resOpts, resource.WithUploader(s.uploader))
	}
	if s.workers > 0 {
		resOpts = append(resOpts, resource.WithWorkers(s.workers))
	}
	s.resources = resource.NewResources(resOpts...)

	s.lod = lod.NewController(s.sched,
		lod.WithDelays(s.basicDelay, s.completeDelay),
		lod.WithLogger(s.logger),
	)
	s.lod.OnChange(s.onStage)

	focusOpts := append([]camera.FocusControllerBuilderOption{camera.WithLogger(s.logger)}, s.focusOptions...)
	if s.surface != nil {
		focusOpts = append(focusOpts, camera.WithFocusSurface(s.surface))
	}
	s.focus = camera.NewFocusController(s.sched, focusOpts...)

	s.hover = scheduler.NewThrottle(s.sched, HoverThrottle, s.applyHover)
	s.resize = scheduler.NewThrottle(s.sched, ResizeThrottle, s.applyResize)

	s.explorerTick = s.sched.Now()
	s.explorerToken = s.sched.EveryFrame(s.advanceExplorer)

	s.mounted = true
	s.lod.Start()
	s.logger.Debug().Msg("scene mounted")
}

func (s *sceneImpl) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false

	s.lod.Stop()
	s.focus.Dispose()
	s.hover.Cancel()
	s.resize.Cancel()
	if s.explorerToken != nil {
		s.explorerToken.Cancel()
		s.explorerToken = nil
	}
	s.resources.Dispose()

	s.lod = nil
	s.focus = nil
	s.hover = nil
	s.resize = nil
	s.resources = nil
	s.hovered = nil
	s.logger.Debug().Msg("scene unmounted")
}

func (s *sceneImpl) Mounted() bool {
	return s.mounted
}

func (s *sceneImpl) SetData(ranked []entity.RankedInput, hub *entity.HubData, explorer *entity.ExplorerInput) error {
	l, err := layout.Build(ranked, hub, explorer, s.layoutOptions...)
	if err != nil {
		return fmt.Errorf("scene: build layout: %w", err)
	}
	s.layout = l

	s.refreshReferences()

	s.logger.Debug().
		Int("ranked", len(l.Ranked)).
		Bool("hub", l.Hub != nil).
		Bool("explorer", l.Explorer != nil).
		Msg("scene data set")

	s.applyInitialPose()
	return nil
}

// refreshReferences points the hover and the selection at the current layout's
// instances. Entities that vanished clear the hover and interrupt the focus.
func (s *sceneImpl) refreshReferences() {
	if s.hovered != nil {
		s.hovered = s.layout.Find(s.hovered.ID())
	}
	if s.focus == nil {
		return
	}
	sel := s.focus.Selected()
	if sel == nil {
		return
	}
	if fresh := s.layout.Find(sel.ID()); fresh != nil {
		s.focus.Retarget(fresh)
		return
	}
	s.focus.Interrupt()
}

func (s *sceneImpl) Layout() *layout.Layout {
	return s.layout
}

func (s *sceneImpl) SetSurface(surface camera.Surface) {
	s.surface = surface
	if s.cam != nil && surface != nil {
		s.cam.SetSurface(surface)
	}
	if s.focus != nil {
		s.focus.SetSurface(surface)
	}
	s.bindBounds()
	s.applyInitialPose()
}

func (s *sceneImpl) Activate(e entity.Entity) bool {
	if e == nil {
		return false
	}
	if !s.mounted {
		s.logger.Debug().Str("entity", e.ID()).Msg("scene not mounted, activation dropped")
		return false
	}
	if !s.focus.Select(e) {
		return false
	}
	if s.onSelect != nil {
		r, _ := e.(*entity.Ranked)
		s.onSelect(r)
	}
	return true
}

func (s *sceneImpl) SecondaryActivate(e entity.Entity) bool {
	if _, ok := e.(*entity.Explorer); !ok {
		return false
	}
	if s.layout == nil || s.layout.Hub == nil {
		return false
	}
	return s.Activate(s.layout.Hub)
}

func (s *sceneImpl) PointerDown() { s.interrupt("pointer") }
func (s *sceneImpl) TouchStart()  { s.interrupt("touch") }
func (s *sceneImpl) Wheel()       { s.interrupt("wheel") }

func (s *sceneImpl) interrupt(source string) {
	if !s.mounted {
		return
	}
	if s.focus.State() != camera.StateIdle {
		s.logger.Debug().Str("source", source).Msg("user input interrupts focus")
	}
	s.focus.Interrupt()
}

func (s *sceneImpl) Hover(e entity.Entity) {
	if !s.mounted {
		return
	}
	s.hover.Call(e)
}

// applyHover may run as a trailing call after SetData, so e is resolved against
// the current layout.
func (s *sceneImpl) applyHover(e entity.Entity) {
	if e != nil && s.layout != nil {
		e = s.layout.Find(e.ID())
	}
	s.hovered = e
}

func (s *sceneImpl) Hovered() entity.Entity {
	return s.hovered
}

func (s *sceneImpl) Tooltip() string {
	if s.hovered == nil || s.Stage() < lod.StageComplete {
		return ""
	}
	return render.Tooltip(s.hovered)
}

func (s *sceneImpl) Resize(width, height int) {
	if !s.mounted {
		return
	}
	s.resize.Call([2]int{width, height})
}

func (s *sceneImpl) applyResize(size [2]int) {
	if s.cam == nil {
		return
	}
	s.cam.SetViewport(size[0], size[1])
	s.logger.Debug().Int("width", size[0]).Int("height", size[1]).Msg("viewport resized")
}

func (s *sceneImpl) Pick(x, y float32) entity.Entity {
	if s.cam == nil || s.layout == nil {
		return nil
	}
	pointer := mgl32.Vec2{x, y}
	var (
		best      entity.Entity
		bestDepth float32
	)
	for _, n := range s.layout.Nodes() {
		screen, w, _ := s.cam.Project(n.Position())
		if w <= 0 {
			continue
		}
		radius := math32.Max(s.cam.PixelRadius(render.NodeRadius(n), w), minPickRadius)
		if screen.Sub(pointer).Len() > radius {
			continue
		}
		if best == nil || w < bestDepth {
			best, bestDepth = n, w
		}
	}
	return best
}

func (s *sceneImpl) FitAll(duration time.Duration) {
	if s.surface == nil {
		s.logger.Debug().Msg("camera surface not ready, fit dropped")
		return
	}
	s.surface.FitAll(duration)
}

func (s *sceneImpl) Frame() []*render.Object {
	if !s.mounted || s.layout == nil {
		return nil
	}

	p := render.Params{
		Stage:     s.lod.Stage(),
		Hovered:   s.hovered,
		Selected:  s.focus.Selected(),
		Animating: s.focus.Transitioning(),
		Resources: s.resources,
	}

	nodes := s.layout.Nodes()
	objects := make([]*render.Object, 0, len(nodes)+1)
	objects = append(objects, render.BuildBackground(render.Grid{
		Rings:  s.layout.RingCount(),
		Gap:    s.layout.RingGap(),
		Offset: s.layout.BaseOffset(),
	}, p))
	for _, n := range nodes {
		objects = append(objects, render.BuildNode(n, p))
	}

	s.anchorLabels(objects)
	return objects
}

// anchorLabels projects every label in objects to the screen. Labels outside the
// frustum, or not reached this frame, stay hidden.
func (s *sceneImpl) anchorLabels(objects []*render.Object) {
	labels := s.resources.Labels()
	labels.HideAll()
	if s.cam == nil {
		return
	}
	frustum := s.cam.Frustum()
	for _, o := range objects {
		o.Walk(mgl32.Ident4(), func(obj *render.Object, world mgl32.Mat4) {
			if obj.Kind != render.KindLabel || obj.Label == nil {
				return
			}
			pos := world.Col(3).Vec3()
			if !frustum.ContainsSphere(pos, 0) {
				return
			}
			screen, _, inside := s.cam.Project(pos)
			if !inside {
				return
			}
			obj.Label.Screen = screen
			obj.Label.Visible = true
		})
	}
}

func (s *sceneImpl) Labels() []*resource.Label {
	if !s.mounted {
		return nil
	}
	return s.resources.Labels().Visible()
}

func (s *sceneImpl) Stage() lod.Stage {
	if s.lod == nil {
		return lod.StageInitial
	}
	return s.lod.Stage()
}

func (s *sceneImpl) Focus() camera.FocusController {
	return s.focus
}

func (s *sceneImpl) Stats() Stats {
	st := Stats{Mounted: s.mounted, Stage: s.Stage()}
	if s.layout != nil {
		st.Nodes = len(s.layout.Nodes())
	}
	if s.hovered != nil {
		st.Hovered = s.hovered.ID()
	}
	if s.focus != nil {
		st.Focus = s.focus.State()
		if sel := s.focus.Selected(); sel != nil {
			st.Selected = sel.ID()
		}
	}
	if s.resources != nil {
		st.Resources = s.resources.Stats()
	}
	return st
}

func (s *sceneImpl) onStage(stage lod.Stage) {
	if stage != lod.StageComplete || s.layout == nil {
		return
	}
	keys := make([]resource.GeometryKey, 0, len(s.layout.Ranked))
	for _, r := range s.layout.Ranked {
		keys = append(keys, resource.SphereKey(render.NodeRadius(r), lod.SphereSegments(lod.StageComplete, false)))
	}
	n := s.resources.Prewarm(keys)
	s.logger.Debug().Int("geometries", n).Msg("full-resolution spheres prewarmed")
}

func (s *sceneImpl) advanceExplorer(now time.Duration) {
	dt := now - s.explorerTick
	s.explorerTick = now
	if s.layout == nil || s.layout.Explorer == nil || dt <= 0 {
		return
	}
	s.layout.Explorer.Advance(dt)
}

// applyInitialPose places the camera once, the first time ranked data and a
// surface are both present.
func (s *sceneImpl) applyInitialPose() {
	if s.initialPoseApplied || s.surface == nil || s.layout == nil || len(s.layout.Ranked) == 0 {
		return
	}
	s.initialPoseApplied = true
	s.surface.MovePose(InitialPosition, InitialLookAt, 0)
}

// bindBounds points a rig's FitAll at the layout extent.
func (s *sceneImpl) bindBounds() {
	if b, ok := s.surface.(interface{ SetBounds(camera.Bounds) }); ok {
		b.SetBounds(s.bounds)
	}
}

func (s *sceneImpl) bounds() (mgl32.Vec3, float32) {
	if s.layout == nil {
		return mgl32.Vec3{}, 0
	}
	return mgl32.Vec3{}, s.layout.Extent()
}
