package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// ControllerState is a snapshot of the input amounts a CameraController has accumulated.
// Movement amounts are 0 or 1; rotation amounts are degrees for the current frame.
type ControllerState struct {
	Left, Right       float32
	Forward, Backward float32
	Up, Down          float32

	RotateHorizontal float32
	RotateVertical   float32

	Speed       float32
	Sensitivity float32
}

// CameraController translates key and mouse events into per-frame camera input.
type CameraController interface {
	// ProcessKey records a key press or release.
	//
	// Parameters:
	//   - key: a key code from the common package (GLFW values)
	//   - pressed: true on press or repeat, false on release
	//
	// Returns:
	//   - bool: true if the key is bound to a movement
	ProcessKey(key int, pressed bool) bool

	// ProcessMouse records a cursor delta in pixels. Rotation is the negated delta
	// scaled by the sensitivity.
	ProcessMouse(dx, dy float32)

	// ResetMouse clears the accumulated rotation; called once the camera consumed it.
	ResetMouse()

	// State returns a snapshot of the current input.
	State() ControllerState
}

type cameraControllerImpl struct {
	mu    *sync.Mutex
	state ControllerState
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller with speed 0.2 and sensitivity 0.4.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},
		state: ControllerState{
			Speed:       0.2,
			Sensitivity: 0.4,
		},
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) ProcessKey(key int, pressed bool) bool {
	var amount float32
	if pressed {
		amount = 1
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	switch key {
	case common.KeyW, common.KeyUp:
		cc.state.Forward = amount
	case common.KeyS, common.KeyDown:
		cc.state.Backward = amount
	case common.KeyA, common.KeyLeft:
		cc.state.Left = amount
	case common.KeyD, common.KeyRight:
		cc.state.Right = amount
	case common.KeySpace:
		cc.state.Up = amount
	case common.KeyLeftShift:
		cc.state.Down = amount
	default:
		return false
	}
	return true
}

func (cc *cameraControllerImpl) ProcessMouse(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.state.RotateHorizontal = -dx * cc.state.Sensitivity
	cc.state.RotateVertical = -dy * cc.state.Sensitivity
}

func (cc *cameraControllerImpl) ResetMouse() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.state.RotateHorizontal = 0
	cc.state.RotateVertical = 0
}

func (cc *cameraControllerImpl) State() ControllerState {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state
}
