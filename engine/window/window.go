package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window is a native window that hosts the WebGPU surface of the interactive viewer and
// forwards input to the camera controller.
type Window interface {
	// SetUpdateCallback sets the function called once per iteration of ProcessMessages.
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called with the new framebuffer size.
	SetResizeCallback(callback func(width, height int))

	// SetKeyCallback sets the function called on key press, repeat (pressed = true) and
	// release (pressed = false). Key codes are GLFW values; see the common package.
	SetKeyCallback(callback func(key int, pressed bool))

	// SetLookCallback sets the function called with the cursor delta in pixels while the
	// right mouse button is held.
	SetLookCallback(callback func(dx, dy float32))

	// SurfaceDescriptor returns the platform surface descriptor for WebGPU surface creation.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is open.
	IsRunning() bool

	// Close destroys the window.
	Close() error

	// ProcessMessages polls events and calls the update callback until the window closes.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

type engineWindow struct {
	title string

	maxWidth, maxHeight int
	minWidth, minHeight int
	width, height       int

	// internalWindow holds the platform window
	internalWindow any

	onUpdate func()
	onResize func(width, height int)
	onKey    func(key int, pressed bool)
	onLook   func(dx, dy float32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a window. Failure to create the platform window panics.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the newly created window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "oxy-forward",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyCallback(callback func(key int, pressed bool)) {
	w.onKey = callback
}

func (w *engineWindow) SetLookCallback(callback func(dx, dy float32)) {
	w.onLook = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if ok := platformProcessMessages(w); !ok {
			break
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
