package camera

import "github.com/Carmen-Shannon/oxy-forward/common"

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the initial eye position.
//
// Parameters:
//   - p: world-space position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(p common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = p
	}
}

// WithOrientation sets the initial yaw and pitch in degrees.
//
// Parameters:
//   - yaw: horizontal angle, -90 faces -Z
//   - pitch: vertical angle, clamped to [-89, 89]
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's orientation
func WithOrientation(yaw, pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = yaw
		c.pitch = pitch
	}
}

// WithFovy sets the vertical field of view in degrees.
func WithFovy(fovy float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fovy = fovy
	}
}

// WithAspect sets the aspect ratio (width / height).
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithSize sets the aspect ratio from a framebuffer size.
func WithSize(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		if width > 0 && height > 0 {
			c.aspect = float32(width) / float32(height)
		}
	}
}

// WithClipPlanes sets the near and far clipping distances.
//
// Parameters:
//   - near: near plane distance (must be > 0)
//   - far: far plane distance (must be > near)
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithUp sets the world up vector.
func WithUp(up common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}
