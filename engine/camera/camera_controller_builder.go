package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithSpeed sets the distance moved per frame while a movement key is held.
//
// Parameters:
//   - speed: world units per frame
//
// Returns:
//   - CameraControllerOption: functional option to set the speed
func WithSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Speed = speed
	}
}

// WithSensitivity sets the degrees of rotation per pixel of mouse movement.
//
// Parameters:
//   - sensitivity: degrees per pixel
//
// Returns:
//   - CameraControllerOption: functional option to set the sensitivity
func WithSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Sensitivity = sensitivity
	}
}
