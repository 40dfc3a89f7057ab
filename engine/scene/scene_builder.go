package scene

import (
	"time"

	"github.com/Chemberlein/ADA-Cosmos/engine/camera"
	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"github.com/Chemberlein/ADA-Cosmos/engine/layout"
	"github.com/Chemberlein/ADA-Cosmos/engine/resource"
	"github.com/rs/zerolog"
)

// SceneBuilderOption is a functional option for configuring a Scene.
type SceneBuilderOption func(*sceneImpl)

// WithSurface sets the host camera the focus controller steers.
//
// Parameters:
//   - s: the camera surface
//
// Returns:
//   - SceneBuilderOption: functional option to set the surface
func WithSurface(s camera.Surface) SceneBuilderOption {
	return func(sc *sceneImpl) {
		sc.surface = s
	}
}

// WithCamera sets the camera used for picking, label anchoring and resizing.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - SceneBuilderOption: functional option to set the camera
func WithCamera(c camera.Camera) SceneBuilderOption {
	return func(sc *sceneImpl) {
		sc.cam = c
	}
}

// WithSelectionCallback sets the function told about accepted selections. It
// receives the ranked entity, or nil when the hub or the explorer was selected.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - SceneBuilderOption: functional option to set the callback
func WithSelectionCallback(fn func(*entity.Ranked)) SceneBuilderOption {
	return func(sc *sceneImpl) {
		sc.onSelect = fn
	}
}

// WithUploader sets the GPU uploader handed to the resource cache on mount.
//
// Parameters:
//   - u: the uploader
//
// Returns:
//   - SceneBuilderOption: functional option to set the uploader
func WithUploader(u resource.Uploader) SceneBuilderOption {
	return func(sc *sceneImpl) {
		sc.uploader = u
	}
}

// WithWorkers sets the size of the geometry prewarm pool.
//
// Parameters:
//   - n: number of workers
//
// Returns:
//   - SceneBuilderOption: functional option to set the worker count
func WithWorkers(n int) SceneBuilderOption {
	return func(sc *sceneImpl) {
		sc.workers = n
	}
}

// WithLayoutOptions sets the options passed to every layout build.
//
// Parameters:
//   - opts: layout options
//
// Returns:
//   - SceneBuilderOption: functional option to set the layout options
func WithLayoutOptions(opts ...layout.BuilderOption) SceneBuilderOption {
	return func(sc *sceneImpl) {
		sc.layoutOptions = opts
	}
}

// WithLODDelays sets when the basic and complete stages start after mount.
//
// Parameters:
//   - basic: delay before StageBasic
//   - complete: delay before StageComplete
//
// Returns:
//   - SceneBuilderOption: functional option to set the delays
func WithLODDelays(basic, complete time.Duration) SceneBuilderOption {
	return func(sc *sceneImpl) {
		sc.basicDelay = basic
		sc.completeDelay = complete
	}
}

// WithFocusOptions sets extra options for the focus controller created on mount.
//
// Parameters:
//   - opts: focus controller options
//
// Returns:
//   - SceneBuilderOption: functional option to set the focus options
func WithFocusOptions(opts ...camera.FocusControllerBuilderOption) SceneBuilderOption {
	return func(sc *sceneImpl) {
		sc.focusOptions = opts
	}
}

// WithLogger sets the logger shared with the scene's controllers and cache.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - SceneBuilderOption: functional option to set the logger
func WithLogger(logger zerolog.Logger) SceneBuilderOption {
	return func(sc *sceneImpl) {
		sc.logger = logger
	}
}
