package scene

import (
	"context"
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/raster"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-forward/engine/shading"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const size = 32

func newDemoScene(t *testing.T, cfg shading.Config, options ...SceneBuilderOption) Scene {
	t.Helper()
	cam := camera.NewCamera(camera.WithSize(size, size))
	options = append([]SceneBuilderOption{WithObjects(DemoObjects(1)...), WithWorkers(2)}, options...)
	s := NewScene("demo", cam, light.NewLight(), cfg, options...)
	t.Cleanup(s.Release)
	return s
}

// closeCounter counts Close calls on a real dispatcher.
type closeCounter struct {
	shading.Dispatcher
	closed int
}

func (c *closeCounter) Close() {
	c.closed++
	c.Dispatcher.Close()
}

func TestRelease_StopsOwnedDispatcherOnly(t *testing.T) {
	injected := &closeCounter{Dispatcher: shading.NewDispatcher(shading.WithWorkers(2))}
	defer injected.Dispatcher.Close()
	s := newDemoScene(t, shading.DefaultConfig(), WithRasterizer(raster.NewRasterizer(raster.WithDispatcher(injected))))
	s.Release()
	assert.Zero(t, injected.closed)

	owned := newDemoScene(t, shading.DefaultConfig())
	_, err := owned.RenderCPU(context.Background(), raster.NewColorBuffer(size, size))
	require.NoError(t, err)
	owned.Release()

	// shading continues inline once the workers are gone
	target := raster.NewColorBuffer(size, size)
	_, err = owned.RenderCPU(context.Background(), target)
	require.NoError(t, err)
	assert.Less(t, target.DepthAt(size/2, size/2), float32(1))
}

func TestNewScene_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewScene("x", nil, light.NewLight(), shading.DefaultConfig()) })
	assert.Panics(t, func() { NewScene("x", camera.NewCamera(), nil, shading.DefaultConfig()) })
}

func TestScene_Registry(t *testing.T) {
	s := newDemoScene(t, shading.DefaultConfig())
	require.Equal(t, 2, s.Count())

	objs := s.Objects()
	assert.Equal(t, uint64(1), objs[0].ID())
	assert.Equal(t, "pyramid", objs[0].Model().Name())
	assert.Equal(t, uint64(2), objs[1].ID())
	assert.Equal(t, "ground", objs[1].Model().Name())

	id, err := s.Add(game_object.NewGameObject(game_object.WithModel(model.Triangle([3]float32{1, 0, 0}, model.MaterialObject))))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)
	assert.NotNil(t, s.Get(id))

	id, err = s.Add(game_object.NewGameObject(game_object.WithID(10)))
	require.NoError(t, err)
	assert.Equal(t, uint64(10), id)
	id, err = s.Add(game_object.NewGameObject())
	require.NoError(t, err)
	assert.Equal(t, uint64(11), id)

	s.Remove(10)
	assert.Nil(t, s.Get(10))
	assert.Equal(t, 4, s.Count())
}

func TestScene_UpdateSpinsPyramid(t *testing.T) {
	s := newDemoScene(t, shading.DefaultConfig())
	s.Update(1)

	rot := s.Get(1).Rotation()
	assert.InDeltaSlice(t, []float32{0.7, 1, 0.3}, rot[:], 1e-6)
	ground := s.Get(2)
	assert.Equal(t, common.Vec3{}, ground.Rotation())
}

func TestScene_UpdateSkipsDisabled(t *testing.T) {
	s := newDemoScene(t, shading.DefaultConfig())
	s.Get(1).SetEnabled(false)
	s.Update(1)
	assert.Equal(t, common.Vec3{}, s.Get(1).Rotation())
}

func TestScene_Uniforms(t *testing.T) {
	s := newDemoScene(t, shading.DefaultConfig())
	ground := s.Get(2)
	u := s.Uniforms(ground)

	assert.Equal(t, s.Camera().Uniform(), u.Camera)
	assert.Equal(t, s.Light().Uniform(), u.Light)
	assert.Equal(t, ground.TransformUniform(), u.Transform)
	assert.Equal(t, uint32(model.MaterialGround), u.Draw.Material)
}

func TestRenderCPU_DrawsPyramidAndGround(t *testing.T) {
	cfg := shading.NewConfig(shading.WithMaterialSelection(shading.MaterialSelectionTagged))
	s := newDemoScene(t, cfg)
	target := raster.NewColorBuffer(size, size)

	stats, err := s.RenderCPU(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, 6+6, stats.Triangles)
	assert.Positive(t, stats.Fragments)

	center := target.At(size/2, size/2)
	assert.NotEqual(t, raster.ClearColor, center)
	assert.Less(t, target.DepthAt(size/2, size/2), float32(1))

	// the bottom row looks down onto the grid
	ground := target.At(size/2, size-1)
	assert.Greater(t, ground[1], ground[0])
	assert.Greater(t, ground[1], ground[2])
	assert.Equal(t, float32(1), ground[3])
}

func TestRenderCPU_FrustumCulling(t *testing.T) {
	behind := game_object.NewGameObject(
		game_object.WithModel(model.Triangle([3]float32{1, 0, 0}, model.MaterialObject)),
		game_object.WithPosition(0, 1, 10),
	)
	cam := camera.NewCamera(camera.WithSize(size, size))
	s := NewScene("culling", cam, light.NewLight(), shading.DefaultConfig(), WithObjects(behind))

	stats, err := s.RenderCPU(context.Background(), raster.NewColorBuffer(size, size))
	require.NoError(t, err)
	assert.Zero(t, stats.Triangles)

	s.SetCullingDisabled(true)
	assert.True(t, s.CullingDisabled())
	stats, err = s.RenderCPU(context.Background(), raster.NewColorBuffer(size, size))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Triangles)
	assert.Equal(t, 1, stats.Rejected)
	assert.Zero(t, stats.Fragments)
}

func TestRenderCPU_Cancelled(t *testing.T) {
	s := newDemoScene(t, shading.DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.RenderCPU(ctx, raster.NewColorBuffer(size, size))
	assert.ErrorIs(t, err, context.Canceled)
}

// fakeRenderer records the calls a scene makes without a GPU device.
type fakeRenderer struct {
	pipelines map[string]pipeline.Pipeline
	groups    map[string]wgpu.BindGroupLayoutDescriptor
	meshes    map[string]int
	writes    []bind_group_provider.BufferWrite
	draws     [][]string
	failDraw  bool
}

var _ renderer.Renderer = &fakeRenderer{}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		pipelines: map[string]pipeline.Pipeline{},
		groups:    map[string]wgpu.BindGroupLayoutDescriptor{},
		meshes:    map[string]int{},
	}
}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline { return f.pipelines[key] }

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		f.pipelines[p.PipelineKey()] = p
	}
	return nil
}

func (f *fakeRenderer) Resize(int, int)                     {}
func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) {}
func (f *fakeRenderer) BeginFrame() error                   { return nil }
func (f *fakeRenderer) EndFrame()                           {}
func (f *fakeRenderer) Present()                            {}
func (f *fakeRenderer) Release()                            {}

func (f *fakeRenderer) WriteBuffers(w []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, w...)
}

func (f *fakeRenderer) InitMeshBuffers(p bind_group_provider.BindGroupProvider, _, _ []byte, count int) error {
	p.SetIndexCount(count)
	f.meshes[p.Label()] = count
	return nil
}

func (f *fakeRenderer) InitBindGroup(p bind_group_provider.BindGroupProvider, d wgpu.BindGroupLayoutDescriptor) error {
	f.groups[p.Label()] = d
	return nil
}

func (f *fakeRenderer) DrawCall(key string, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	if f.failDraw {
		return errors.New("boom")
	}
	labels := []string{key, mesh.Label()}
	for _, bg := range bindGroups {
		labels = append(labels, bg.Label())
	}
	f.draws = append(f.draws, labels)
	return nil
}

func TestAttachRenderer_TaggedMaterials(t *testing.T) {
	cfg := shading.NewConfig(shading.WithMaterialSelection(shading.MaterialSelectionTagged))
	s := newDemoScene(t, cfg)
	r := newFakeRenderer()

	require.NoError(t, s.AttachRenderer(r))
	assert.Same(t, r, s.Renderer().(*fakeRenderer))
	require.NotNil(t, r.Pipeline(PipelineKey))

	assert.Equal(t, 18, r.meshes["pyramid#1 mesh"])
	assert.Equal(t, 18, r.meshes["ground#2 mesh"])
	assert.Equal(t, uint64(80), r.groups["camera"].Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(112), r.groups["light"].Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(64), r.groups["pyramid#1 transform"].Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(16), r.groups["ground#2 draw"].Entries[0].Buffer.MinBindingSize)

	require.NoError(t, s.DrawCalls())
	require.Len(t, r.draws, 2)
	assert.Equal(t, []string{PipelineKey, "pyramid#1 mesh", "camera", "pyramid#1 transform", "light", "pyramid#1 draw"}, r.draws[0])
	assert.Equal(t, []string{PipelineKey, "ground#2 mesh", "camera", "ground#2 transform", "light", "ground#2 draw"}, r.draws[1])

	require.Len(t, r.writes, 6)
	camUniform := s.Camera().Uniform()
	lightUniform := s.Light().Uniform()
	transform := s.Get(1).TransformUniform()
	draw := s.Get(2).DrawUniform()
	assert.Equal(t, camUniform.Marshal(), r.writes[0].Data)
	assert.Equal(t, lightUniform.Marshal(), r.writes[1].Data)
	assert.Equal(t, transform.Marshal(), r.writes[2].Data)
	assert.Equal(t, draw.Marshal(), r.writes[5].Data)
}

func TestAttachRenderer_UntaggedHasThreeGroups(t *testing.T) {
	s := newDemoScene(t, shading.DefaultConfig())
	r := newFakeRenderer()
	require.NoError(t, s.AttachRenderer(r))

	_, err := s.Add(game_object.NewGameObject(game_object.WithModel(model.Quad(0.5, [3]float32{1, 1, 1}, model.MaterialObject))))
	require.NoError(t, err)
	assert.Equal(t, 6, r.meshes["quad#3 mesh"])

	s.Get(2).SetEnabled(false)
	require.NoError(t, s.DrawCalls())
	require.Len(t, r.draws, 2)
	assert.Equal(t, []string{PipelineKey, "pyramid#1 mesh", "camera", "pyramid#1 transform", "light"}, r.draws[0])
	assert.Equal(t, []string{PipelineKey, "quad#3 mesh", "camera", "quad#3 transform", "light"}, r.draws[1])
	assert.Len(t, r.writes, 4)
}

func TestAttachRenderer_InvalidConfig(t *testing.T) {
	s := newDemoScene(t, shading.NewConfig(shading.WithShininess(-1)))
	err := s.AttachRenderer(newFakeRenderer())
	assert.ErrorIs(t, err, shading.ErrInvalidConfig)
	assert.Nil(t, s.Renderer())
}

func TestDrawCalls_Errors(t *testing.T) {
	s := newDemoScene(t, shading.DefaultConfig())
	assert.Error(t, s.DrawCalls())

	r := newFakeRenderer()
	require.NoError(t, s.AttachRenderer(r))
	r.failDraw = true
	assert.ErrorContains(t, s.DrawCalls(), "boom")

	s.Release()
	assert.Nil(t, s.Renderer())
}
