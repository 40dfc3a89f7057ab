package camera

type CameraBuilderOption func(*cameraImpl)

// WithFov sets the camera's field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithViewport sets the initial viewport size and the matching aspect ratio.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the viewport
func WithViewport(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		if width > 0 && height > 0 {
			c.width = width
			c.height = height
			c.aspect = float32(width) / float32(height)
		}
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithSurface attaches the pose source.
//
// Parameters:
//   - s: the surface to read from
//
// Returns:
//   - CameraBuilderOption: functional option to set the surface
func WithSurface(s Surface) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.surface = s
	}
}
