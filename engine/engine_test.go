package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-forward/engine/scene"
	"github.com/Carmen-Shannon/oxy-forward/engine/shading"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	onResize func(width, height int)
	onKey    func(key int, pressed bool)
	onLook   func(dx, dy float32)
}

func (w *fakeWindow) SetUpdateCallback(func())                      {}
func (w *fakeWindow) SetResizeCallback(cb func(width, height int))  { w.onResize = cb }
func (w *fakeWindow) SetKeyCallback(cb func(key int, pressed bool)) { w.onKey = cb }
func (w *fakeWindow) SetLookCallback(cb func(dx, dy float32))       { w.onLook = cb }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor    { return nil }
func (w *fakeWindow) IsRunning() bool                               { return false }
func (w *fakeWindow) Close() error                                  { return nil }
func (w *fakeWindow) ProcessMessages()                              {}
func (w *fakeWindow) Width() int                                    { return 640 }
func (w *fakeWindow) Height() int                                   { return 480 }

// countingRenderer counts frame lifecycle calls.
type countingRenderer struct {
	begin, end, present, draws int
	width, height              int
	beginErr                   error
}

var _ renderer.Renderer = &countingRenderer{}

func (r *countingRenderer) Pipeline(string) pipeline.Pipeline              { return nil }
func (r *countingRenderer) RegisterPipelines(...pipeline.Pipeline) error   { return nil }
func (r *countingRenderer) Resize(width, height int)                       { r.width, r.height = width, height }
func (r *countingRenderer) SetPresentMode(renderer.PresentMode)            {}
func (r *countingRenderer) WriteBuffers([]bind_group_provider.BufferWrite) {}
func (r *countingRenderer) EndFrame()                                      { r.end++ }
func (r *countingRenderer) Present()                                       { r.present++ }
func (r *countingRenderer) Release()                                       {}

func (r *countingRenderer) InitMeshBuffers(bind_group_provider.BindGroupProvider, []byte, []byte, int) error {
	return nil
}

func (r *countingRenderer) InitBindGroup(bind_group_provider.BindGroupProvider, wgpu.BindGroupLayoutDescriptor) error {
	return nil
}

func (r *countingRenderer) BeginFrame() error {
	r.begin++
	return r.beginErr
}

func (r *countingRenderer) DrawCall(string, bind_group_provider.BindGroupProvider, []bind_group_provider.BindGroupProvider) error {
	r.draws++
	return nil
}

func demoScene() scene.Scene {
	return scene.NewScene("demo", camera.NewCamera(), light.NewLight(), shading.DefaultConfig(),
		scene.WithObjects(scene.DemoObjects(1)...))
}

func TestEngine_KeyInputMovesCameraOnTick(t *testing.T) {
	w := &fakeWindow{}
	s := demoScene()
	var ticked float32
	e := NewEngine(WithWindow(w), WithScene(0, s))
	e.SetTickCallback(func(dt float32) { ticked = dt })

	require.NotNil(t, w.onKey)
	w.onKey(common.KeyW, true)
	e.Tick(0.5)

	pos := s.Camera().Position()
	assert.InDeltaSlice(t, []float32{0, 1, 1.8}, pos[:], 1e-5)
	assert.InDelta(t, 0.5, s.Get(1).Rotation()[1], 1e-6)
	assert.Equal(t, float32(0.5), ticked)

	w.onKey(common.KeyW, false)
	e.Tick(0.5)
	pos = s.Camera().Position()
	assert.InDeltaSlice(t, []float32{0, 1, 1.8}, pos[:], 1e-5)
}

func TestEngine_LookIsConsumedOnce(t *testing.T) {
	w := &fakeWindow{}
	s := demoScene()
	e := NewEngine(WithWindow(w), WithScene(0, s))

	w.onLook(10, 0)
	e.Tick(0)
	assert.InDelta(t, -94, s.Camera().Yaw(), 1e-4)
	assert.Zero(t, e.Controller().State().RotateHorizontal)

	e.Tick(0)
	assert.InDelta(t, -94, s.Camera().Yaw(), 1e-4)
}

func TestEngine_Resize(t *testing.T) {
	w := &fakeWindow{}
	s := demoScene()
	r := &countingRenderer{}
	require.NoError(t, s.AttachRenderer(r))
	NewEngine(WithWindow(w), WithScene(0, s))

	w.onResize(800, 400)
	assert.Equal(t, float32(2), s.Camera().Aspect())
	assert.Equal(t, 800, r.width)
	assert.Equal(t, 400, r.height)
}

func TestEngine_RenderFrame(t *testing.T) {
	e := NewEngine()
	assert.NoError(t, e.RenderFrame())

	s := demoScene()
	r := &countingRenderer{}
	require.NoError(t, s.AttachRenderer(r))
	e.AddScene(1, s)
	e.AddScene(0, demoScene())

	require.NoError(t, e.RenderFrame())
	assert.Equal(t, 1, r.begin)
	assert.Equal(t, 2, r.draws)
	assert.Equal(t, 1, r.end)
	assert.Equal(t, 1, r.present)

	r.beginErr = errors.New("lost surface")
	assert.ErrorContains(t, e.RenderFrame(), "lost surface")
	assert.Equal(t, 1, r.end)
}

func TestEngine_Scenes(t *testing.T) {
	e := NewEngine()
	s := demoScene()
	e.AddScene(3, s)
	assert.Same(t, s, e.Scene(3))

	cp := e.Scenes()
	delete(cp, 3)
	assert.NotNil(t, e.Scene(3))

	e.RemoveScene(3)
	assert.Nil(t, e.Scene(3))
}

func TestEngine_Rates(t *testing.T) {
	assert.Equal(t, time.Second/60, tickInterval(0))
	assert.Equal(t, 10*time.Millisecond, tickInterval(100))
	assert.Zero(t, frameLimit(-1))
	assert.Equal(t, 20*time.Millisecond, frameLimit(50))

	e := NewEngine(WithTickRate(30)).(*engine)
	assert.Equal(t, time.Duration(float64(time.Second)/30), e.engineTickRate)
	e.SetTickRate(120)
	assert.Equal(t, time.Duration(float64(time.Second)/120), e.engineTickRate)

	e.EnableProfiler()
	assert.True(t, e.profilingEnabled.Load())
	e.DisableProfiler()
	assert.False(t, e.profilingEnabled.Load())
}
