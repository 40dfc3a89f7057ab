// Package input maps raw window events onto scene and camera rig calls.
package input

import (
	"time"

	"github.com/Chemberlein/ADA-Cosmos/common"
	"github.com/Chemberlein/ADA-Cosmos/engine/camera"
	"github.com/Chemberlein/ADA-Cosmos/engine/scene"
	"github.com/rs/zerolog"
)

const (
	DefaultRotateSpeed = 0.005
	DefaultClickSlop   = 4
	FitDuration        = time.Second
)

// Router translates pointer, wheel, keyboard and resize events. A left press
// followed by a release without dragging is a click; dragging rotates the rig.
// Router must be used from the scene's goroutine.
type Router struct {
	scene scene.Scene
	rig   camera.Rig

	rotateSpeed float32
	clickSlop   int32

	dragging     bool
	moved        bool
	downX, downY int32
	lastX, lastY int32

	logger zerolog.Logger
}

// NewRouter creates a router feeding the given scene.
//
// Parameters:
//   - s: the scene receiving input
//   - options: functional options to configure the router
//
// Returns:
//   - *Router: the newly created router
func NewRouter(s scene.Scene, options ...RouterBuilderOption) *Router {
	if s == nil {
		panic("input: NewRouter requires a scene")
	}
	r := &Router{
		scene:       s,
		rotateSpeed: DefaultRotateSpeed,
		clickSlop:   DefaultClickSlop,
		logger:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// MouseButton handles a button press or release at pixel (x, y).
func (r *Router) MouseButton(button common.MouseButton, pressed bool, x, y int32) {
	switch button {
	case common.MouseLeft:
		if pressed {
			r.scene.PointerDown()
			r.dragging, r.moved = true, false
			r.downX, r.downY = x, y
			r.lastX, r.lastY = x, y
			return
		}
		click := r.dragging && !r.moved
		r.dragging = false
		if !click {
			return
		}
		if e := r.scene.Pick(float32(x), float32(y)); e != nil {
			r.scene.Activate(e)
		}
	case common.MouseRight:
		if !pressed {
			return
		}
		r.scene.PointerDown()
		if e := r.scene.Pick(float32(x), float32(y)); e != nil {
			r.scene.SecondaryActivate(e)
		}
	default:
		if pressed {
			r.scene.PointerDown()
		}
	}
}

// MouseMove rotates the rig while dragging and updates the hover target otherwise.
func (r *Router) MouseMove(x, y int32) {
	if !r.dragging {
		r.scene.Hover(r.scene.Pick(float32(x), float32(y)))
		return
	}
	if !r.moved && abs(x-r.downX)+abs(y-r.downY) > r.clickSlop {
		r.moved = true
	}
	dx, dy := x-r.lastX, y-r.lastY
	r.lastX, r.lastY = x, y
	if r.moved && r.rig != nil {
		r.rig.Rotate(-float32(dx)*r.rotateSpeed, float32(dy)*r.rotateSpeed)
	}
}

// Scroll interrupts any focus animation and zooms the rig.
func (r *Router) Scroll(delta float32) {
	r.scene.Wheel()
	if r.rig != nil {
		r.rig.Zoom(delta)
	}
}

// KeyDown handles the viewer shortcuts.
func (r *Router) KeyDown(code uint32) {
	switch code {
	case common.KeyF:
		r.scene.FitAll(FitDuration)
	case common.KeyH:
		if l := r.scene.Layout(); l != nil && l.Hub != nil {
			r.scene.Activate(l.Hub)
		}
	case common.KeySpace:
		r.scene.PointerDown()
	default:
		r.logger.Trace().Uint32("key", code).Msg("unbound key")
	}
}

// Resize forwards the new framebuffer size.
func (r *Router) Resize(width, height int) {
	r.scene.Resize(width, height)
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
