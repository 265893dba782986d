package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/chewxy/math32"
)

const (
	defaultYaw   float32 = -90 // facing -Z
	maxPitch     float32 = 89
	defaultFovy  float32 = 45
	defaultZNear float32 = 0.1
	defaultZFar  float32 = 100
)

type cameraImpl struct {
	mu *sync.Mutex

	position  common.Vec3
	direction common.Vec3
	up        common.Vec3

	yaw   float32 // degrees
	pitch float32 // degrees

	fovy   float32 // degrees
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
}

// Camera is a first-person perspective camera. Orientation is stored as yaw and pitch
// in degrees and converted into a look direction; the view matrix is a right-handed
// look-to transform and the projection targets WebGPU clip space.
type Camera interface {
	// Position returns the world-space eye position.
	//
	// Returns:
	//   - common.Vec3: the eye position
	Position() common.Vec3

	// Direction returns the unit look direction.
	//
	// Returns:
	//   - common.Vec3: the look direction
	Direction() common.Vec3

	// Yaw returns the horizontal angle in degrees.
	Yaw() float32

	// Pitch returns the vertical angle in degrees, always within [-89, 89].
	Pitch() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// ViewMatrix returns the current 4x4 view matrix (column-major).
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix (column-major).
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns projection * view (column-major).
	ViewProjectionMatrix() [16]float32

	// Uniform snapshots the camera into its GPU representation.
	//
	// Returns:
	//   - GPUCameraUniform: view-projection matrix and eye position
	Uniform() GPUCameraUniform

	// Update applies one frame of controller input: rotation first, then movement
	// along the new direction, its right vector and world up.
	//
	// Parameters:
	//   - ctrl: the controller holding the current input amounts
	Update(ctrl CameraController)

	// Resize updates the aspect ratio from a framebuffer size.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	Resize(width, height int)

	// SetPosition moves the eye.
	SetPosition(p common.Vec3)

	// SetOrientation sets yaw and pitch in degrees; pitch is clamped.
	SetOrientation(yaw, pitch float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at (0, 1, 2) facing -Z with a 45 degree vertical field of view.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: common.V3(0, 1, 2),
		up:       common.V3(0, 1, 0),
		yaw:      defaultYaw,
		fovy:     defaultFovy,
		aspect:   1,
		near:     defaultZNear,
		far:      defaultZFar,
	}
	for _, option := range options {
		option(c)
	}
	c.pitch = common.Clamp(c.pitch, -maxPitch, maxPitch)
	c.direction = directionFromAngles(c.yaw, c.pitch)
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Direction() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.direction
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
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
		ViewProj:     c.viewProjectionMatrix,
		ViewPosition: c.position,
	}
}

func (c *cameraImpl) Update(ctrl CameraController) {
	if ctrl == nil {
		return
	}
	in := ctrl.State()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.yaw += in.RotateHorizontal
	c.pitch = common.Clamp(c.pitch+in.RotateVertical, -maxPitch, maxPitch)
	c.direction = directionFromAngles(c.yaw, c.pitch)

	right := c.direction.Cross(c.up).Normalize()
	c.position = c.position.
		Add(c.direction.Scale((in.Forward - in.Backward) * in.Speed)).
		Add(right.Scale((in.Right - in.Left) * in.Speed))
	c.position[1] += (in.Up - in.Down) * in.Speed

	c.updateMatrices()
}

func (c *cameraImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = float32(width) / float32(height)
	c.updateMatrices()
}

func (c *cameraImpl) SetPosition(p common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) SetOrientation(yaw, pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw = yaw
	c.pitch = common.Clamp(pitch, -maxPitch, maxPitch)
	c.direction = directionFromAngles(c.yaw, c.pitch)
	c.updateMatrices()
}

// updateMatrices recomputes view, projection and view-projection. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	common.LookTo(c.viewMatrix[:], c.position, c.direction, c.up)
	common.Perspective(c.projectionMatrix[:], common.DegToRad(c.fovy), c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}

func directionFromAngles(yaw, pitch float32) common.Vec3 {
	y, p := common.DegToRad(yaw), common.DegToRad(pitch)
	return common.V3(
		math32.Cos(y)*math32.Cos(p),
		math32.Sin(p),
		math32.Sin(y)*math32.Cos(p),
	).Normalize()
}
