package camera

import (
	"sync"

	"github.com/quarry-engine/quarry/common"
)

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32
	up       [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
}

// Camera defines the interface for the camera system. The camera holds
// perspective settings plus a position/target pair and derives the view,
// projection, and combined view-projection matrices from them. Uniform()
// snapshots the matrices into the GPU-facing record consumed by the vertex
// stages.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - [3]float32: the camera position
	Position() [3]float32

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

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix
	// as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Uniform snapshots the current view-projection matrix and camera position
	// into a GPUCameraUniform for buffer upload or direct use as the vertex
	// stage view context.
	//
	// Returns:
	//   - GPUCameraUniform: the GPU-facing camera record
	Uniform() GPUCameraUniform

	// SetPosition moves the camera and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: the new world-space position
	SetPosition(x, y, z float32)

	// SetTarget repoints the camera and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: the new world-space look-at target
	SetTarget(x, y, z float32)

	// SetAspect sets the aspect ratio and recomputes matrices. Called on
	// viewport resize.
	//
	// Parameters:
	//   - aspect: the new width/height ratio
	SetAspect(aspect float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with all specified options applied and the
// matrices computed. Defaults: position (0, 5, 10) looking at the origin,
// up (0, 1, 0), 60° vertical FOV, 16:9 aspect, near 0.1, far 1000.
//
// Parameters:
//   - opts: a variadic list of CameraBuilderOption functions to configure the camera
//
// Returns:
//   - Camera: a new Camera instance with the provided configuration
func NewCamera(opts ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: [3]float32{0, 5, 10},
		target:   [3]float32{0, 0, 0},
		up:       [3]float32{0, 1, 0},
		fov:      1.0472, // 60 degrees
		aspect:   16.0 / 9.0,
		near:     0.1,
		far:      1000,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.recompute()
	return c
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		ViewProj:       c.viewProjectionMatrix,
		CameraPosition: c.position,
	}
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = [3]float32{x, y, z}
	c.recomputeLocked()
}

func (c *cameraImpl) SetTarget(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = [3]float32{x, y, z}
	c.recomputeLocked()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.recomputeLocked()
}

// recompute locks and rebuilds all matrices from the current settings.
func (c *cameraImpl) recompute() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recomputeLocked()
}

// recomputeLocked rebuilds the view, projection, and view-projection
// matrices. Callers must hold c.mu.
func (c *cameraImpl) recomputeLocked() {
	common.LookAt(c.viewMatrix[:],
		c.position[0], c.position[1], c.position[2],
		c.target[0], c.target[1], c.target[2],
		c.up[0], c.up[1], c.up[2],
	)
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
