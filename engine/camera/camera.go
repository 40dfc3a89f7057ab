package camera

import (
	"sync"

	"github.com/Chemberlein/ADA-Cosmos/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	width  int
	height int

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	surface Surface
}

// Camera holds perspective settings and computes view/projection matrices from an
// attached Surface each frame via Update(). It maps world positions to pixels for
// label anchoring and picking.
type Camera interface {
	// Fov returns the field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Viewport returns the viewport size in pixels.
	//
	// Returns:
	//   - width, height: viewport size
	Viewport() (width, height int)

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Frustum returns the view frustum of the current matrices.
	//
	// Returns:
	//   - common.Frustum: the frustum planes
	Frustum() common.Frustum

	// Project maps a world position to viewport pixels, origin at the top left.
	//
	// Parameters:
	//   - world: world-space position
	//
	// Returns:
	//   - mgl32.Vec2: pixel position
	//   - float32: clip-space w, the distance along the view axis
	//   - bool: false when the point is behind the camera or outside the viewport
	Project(world mgl32.Vec3) (mgl32.Vec2, float32, bool)

	// PixelRadius returns the on-screen radius in pixels of a sphere at depth w.
	//
	// Parameters:
	//   - radius: world-space radius
	//   - w: clip-space w returned by Project
	//
	// Returns:
	//   - float32: radius in pixels
	PixelRadius(radius, w float32) float32

	// Update reads the pose from the surface and recomputes matrices.
	// Should be called once per frame. Does nothing without a surface.
	Update()

	// SetViewport sets the viewport size and recomputes the aspect ratio.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewport(width, height int)

	// SetSurface attaches the pose source.
	//
	// Parameters:
	//   - s: the surface to read from
	SetSurface(s Surface)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     mgl32.Vec3{0, 1, 0},
		fov:    mgl32.DegToRad(45),
		aspect: 1.0,
		near:   1,
		far:    60000,
		width:  1280,
		height: 720,
	}
	c.aspect = float32(c.width) / float32(c.height)
	common.Identity(c.viewMatrix[:])
	common.Identity(c.projectionMatrix[:])
	common.Identity(c.viewProjectionMatrix[:])
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Viewport() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ExtractFrustumFromMatrix(c.viewProjectionMatrix[:])
}

func (c *cameraImpl) Project(world mgl32.Vec3) (mgl32.Vec2, float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	clip := common.TransformPoint(c.viewProjectionMatrix[:], world)
	if clip[3] <= 0 {
		return mgl32.Vec2{}, clip[3], false
	}
	ndcX, ndcY, ndcZ := clip[0]/clip[3], clip[1]/clip[3], clip[2]/clip[3]
	screen := mgl32.Vec2{
		(ndcX + 1) / 2 * float32(c.width),
		(1 - ndcY) / 2 * float32(c.height),
	}
	inside := ndcX >= -1 && ndcX <= 1 && ndcY >= -1 && ndcY <= 1 && ndcZ >= 0 && ndcZ <= 1
	return screen, clip[3], inside
}

func (c *cameraImpl) PixelRadius(radius, w float32) float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w <= 0 {
		return 0
	}
	return radius / w * c.projectionMatrix[5] * float32(c.height) / 2
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetViewport(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	c.width = width
	c.height = height
	c.aspect = float32(width) / float32(height)
	c.updateMatrices()
}

func (c *cameraImpl) SetSurface(s Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surface = s
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// The view matrix is left untouched when no surface is attached.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.surface != nil {
		pose := c.surface.Pose()
		common.LookAt(c.viewMatrix[:], pose.Position, pose.LookAt, c.up)
	}
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
