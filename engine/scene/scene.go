package scene

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/raster"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-forward/engine/shading"
	"github.com/chewxy/math32"
)

// PipelineKey is the key the forward pipeline is registered under.
const PipelineKey = "forward"

// WGSL variable names of the forward bind groups.
const (
	varCamera    = "camera"
	varTransform = "transform"
	varLight     = "light"
	varDraw      = "draw_uniform"
)

// Scene holds one camera, one point light and the drawable objects of a frame. It
// renders either on the CPU through a raster.Rasterizer or on the GPU through a
// renderer.Renderer; both paths bind the same uniform records.
type Scene interface {
	// Name returns the scene name.
	Name() string

	// Camera returns the scene camera.
	Camera() camera.Camera

	// Light returns the scene light.
	Light() light.Light

	// Config returns the stage configuration used by both render paths.
	Config() shading.Config

	// Rasterizer returns the CPU rasterizer used by RenderCPU.
	Rasterizer() raster.Rasterizer

	// CullingDisabled reports whether frustum culling is skipped in RenderCPU.
	CullingDisabled() bool

	// SetCullingDisabled toggles frustum culling in RenderCPU.
	SetCullingDisabled(disabled bool)

	// Add registers obj and returns its ID. Objects without an ID get the next free one.
	// When a renderer is attached the object's GPU resources are created immediately.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the object ID
	//   - error: a GPU resource creation error; the object stays registered
	Add(obj game_object.GameObject) (uint64, error)

	// Get returns the object with the given ID, or nil.
	Get(id uint64) game_object.GameObject

	// Remove unregisters an object and releases its GPU resources.
	Remove(id uint64)

	// Objects returns every registered object ordered by ID.
	Objects() []game_object.GameObject

	// Count returns the number of registered objects.
	Count() int

	// Update advances every enabled object by dt seconds.
	Update(dt float32)

	// Uniforms snapshots the records bound when drawing obj.
	//
	// Parameters:
	//   - obj: the object being drawn
	//
	// Returns:
	//   - shading.Uniforms: camera, transform, light and draw records
	Uniforms(obj game_object.GameObject) shading.Uniforms

	// RenderCPU draws every enabled object inside the view frustum into target in ID
	// order. The target is not cleared.
	//
	// Parameters:
	//   - ctx: cancels between objects and between dispatch batches
	//   - target: the color and depth target
	//
	// Returns:
	//   - raster.Stats: counters accumulated over every drawn object
	//   - error: ctx.Err() or a rasterizer error
	RenderCPU(ctx context.Context, target *raster.ColorBuffer) (raster.Stats, error)

	// AttachRenderer generates and validates the forward shader for the scene
	// configuration, registers its pipeline and creates the GPU resources of the camera,
	// the light and every registered object.
	//
	// Parameters:
	//   - r: the renderer to draw with
	//   - pipelineOpts: options for the forward pipeline
	//
	// Returns:
	//   - error: a shader generation, layout or resource creation error
	AttachRenderer(r renderer.Renderer, pipelineOpts ...pipeline.PipelineBuilderOption) error

	// Renderer returns the attached renderer, or nil.
	Renderer() renderer.Renderer

	// DrawCalls uploads the current uniform records and issues one indexed draw per
	// enabled object. It must run between BeginFrame and EndFrame.
	//
	// Returns:
	//   - error: if no renderer is attached or a draw fails
	DrawCalls() error

	// Release frees every GPU resource held by the scene and stops the shading workers of
	// the default rasterizer. A rasterizer passed in with WithRasterizer is left running.
	Release()
}

// gpuObject is the per-object GPU state. Each object owns its transform buffer so
// uploads for one draw never overwrite another's.
type gpuObject struct {
	mesh      bind_group_provider.BindGroupProvider
	transform bind_group_provider.BindGroupProvider
	draw      bind_group_provider.BindGroupProvider
}

func (g *gpuObject) release() {
	for _, p := range []bind_group_provider.BindGroupProvider{g.mesh, g.transform, g.draw} {
		if p != nil {
			p.Release()
		}
	}
}

type scene struct {
	mu *sync.RWMutex

	name string
	cam  camera.Camera
	lt   light.Light
	cfg  shading.Config

	registry map[uint64]game_object.GameObject
	nextID   uint64

	rasterizer      raster.Rasterizer
	ownsRasterizer  bool
	workers         int
	cullingDisabled bool

	r          renderer.Renderer
	shader     shader.Shader
	cameraBGP  bind_group_provider.BindGroupProvider
	lightBGP   bind_group_provider.BindGroupProvider
	gpuObjects map[uint64]*gpuObject

	// reused each frame
	writePool          []bind_group_provider.BufferWrite
	drawBindGroupsPool []bind_group_provider.BindGroupProvider
}

var _ Scene = &scene{}

// NewScene creates a Scene. The camera and light are required and NewScene panics if
// either is nil. The configuration is validated later by AttachRenderer; RenderCPU uses
// it as given.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to view through (must not be nil)
//   - lt: the point light (must not be nil)
//   - cfg: the stage configuration
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, lt light.Light, cfg shading.Config, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if lt == nil {
		panic("scene: NewScene requires a non-nil Light")
	}

	s := &scene{
		mu:                 &sync.RWMutex{},
		name:               name,
		cam:                cam,
		lt:                 lt,
		cfg:                cfg,
		registry:           make(map[uint64]game_object.GameObject),
		nextID:             1,
		gpuObjects:         make(map[uint64]*gpuObject),
		drawBindGroupsPool: make([]bind_group_provider.BindGroupProvider, 0, 4),
	}

	for _, option := range options {
		option(s)
	}

	if s.rasterizer == nil {
		var dispatchOpts []shading.DispatcherOption
		if s.workers > 0 {
			dispatchOpts = append(dispatchOpts, shading.WithWorkers(s.workers))
		}
		s.rasterizer = raster.NewRasterizer(raster.WithDispatcher(shading.NewDispatcher(dispatchOpts...)))
		s.ownsRasterizer = true
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Light() light.Light {
	return s.lt
}

func (s *scene) Config() shading.Config {
	return s.cfg
}

func (s *scene) Rasterizer() raster.Rasterizer {
	return s.rasterizer
}

func (s *scene) CullingDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) Add(obj game_object.GameObject) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.register(obj)
	if s.r == nil {
		return id, nil
	}
	return id, s.initObjectGPU(obj)
}

// register assigns an ID if needed and stores obj. Callers hold the write lock.
func (s *scene) register(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
	}
	if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	if old, ok := s.gpuObjects[obj.ID()]; ok {
		old.release()
		delete(s.gpuObjects, obj.ID())
	}
	s.registry[obj.ID()] = obj
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.gpuObjects[id]; ok {
		g.release()
		delete(s.gpuObjects, id)
	}
	delete(s.registry, id)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objectsLocked()
}

func (s *scene) objectsLocked() []game_object.GameObject {
	out := make([]game_object.GameObject, 0, len(s.registry))
	for _, id := range slices.Sorted(maps.Keys(s.registry)) {
		out = append(out, s.registry[id])
	}
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Update(dt float32) {
	for _, obj := range s.Objects() {
		if obj.Enabled() {
			obj.Update(dt)
		}
	}
}

func (s *scene) Uniforms(obj game_object.GameObject) shading.Uniforms {
	return shading.Uniforms{
		Camera:    s.cam.Uniform(),
		Transform: obj.TransformUniform(),
		Light:     s.lt.Uniform(),
		Draw:      obj.DrawUniform(),
	}
}

func (s *scene) RenderCPU(ctx context.Context, target *raster.ColorBuffer) (raster.Stats, error) {
	s.mu.RLock()
	objects := s.objectsLocked()
	culling := !s.cullingDisabled
	s.mu.RUnlock()

	var total raster.Stats
	camUniform := s.cam.Uniform()
	lightUniform := s.lt.Uniform()
	frustum := common.ExtractFrustum(camUniform.ViewProj[:])

	skipped := 0
	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		mdl := obj.Model()
		if !obj.Enabled() || mdl == nil {
			continue
		}
		if culling && !frustum.SphereVisible(obj.Position(), mdl.BoundingRadius()*maxAbs(obj.Scale())) {
			skipped++
			continue
		}

		u := shading.Uniforms{
			Camera:    camUniform,
			Transform: obj.TransformUniform(),
			Light:     lightUniform,
			Draw:      obj.DrawUniform(),
		}
		stats, err := s.rasterizer.Draw(ctx, &s.cfg, &u, mdl.Vertices(), mdl.Indices(), target)
		if err != nil {
			return total, fmt.Errorf("scene %q: drawing %s (object %d): %w", s.name, mdl.Name(), obj.ID(), err)
		}
		total.Add(stats)
	}

	common.Logger().Debug("scene rendered on cpu",
		"scene", s.name,
		"objects", len(objects),
		"frustum_culled", skipped,
		"fragments", total.Fragments)
	return total, nil
}

func maxAbs(v common.Vec3) float32 {
	return max(math32.Abs(v[0]), math32.Abs(v[1]), math32.Abs(v[2]))
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) AttachRenderer(r renderer.Renderer, pipelineOpts ...pipeline.PipelineBuilderOption) error {
	if r == nil {
		return fmt.Errorf("scene %q: AttachRenderer requires a non-nil Renderer", s.name)
	}

	src, err := shader.Generate(s.cfg)
	if err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}
	if err := shader.ValidateLayout(src, shader.ForwardExpectations(s.cfg)); err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}
	sh := shader.NewShader(PipelineKey, src)
	if err := r.RegisterPipelines(pipeline.NewPipeline(PipelineKey, sh, pipelineOpts...)); err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseGPULocked()
	s.r = r
	s.shader = sh

	s.cameraBGP = bind_group_provider.NewBindGroupProvider("camera")
	if err := s.initGroup(s.cameraBGP, varCamera); err != nil {
		return err
	}
	s.lightBGP = bind_group_provider.NewBindGroupProvider("light")
	if err := s.initGroup(s.lightBGP, varLight); err != nil {
		return err
	}

	for _, obj := range s.objectsLocked() {
		if err := s.initObjectGPU(obj); err != nil {
			return err
		}
	}

	common.Logger().Info("scene attached to renderer",
		"scene", s.name,
		"objects", len(s.registry),
		"groups", len(sh.BindGroupLayoutDescriptors()))
	return nil
}

// initGroup creates the buffers of the group that declares varName.
func (s *scene) initGroup(p bind_group_provider.BindGroupProvider, varName string) error {
	group, _, ok := s.shader.GroupForVarName(varName)
	if !ok {
		return fmt.Errorf("scene %q: forward shader declares no %q binding", s.name, varName)
	}
	if err := s.r.InitBindGroup(p, s.shader.BindGroupLayoutDescriptor(group)); err != nil {
		return fmt.Errorf("scene %q: init %s bind group: %w", s.name, p.Label(), err)
	}
	return nil
}

// initObjectGPU uploads the mesh of obj and creates its per-object groups. Callers hold
// the write lock.
func (s *scene) initObjectGPU(obj game_object.GameObject) error {
	mdl := obj.Model()
	if mdl == nil {
		return nil
	}
	label := fmt.Sprintf("%s#%d", mdl.Name(), obj.ID())
	g := &gpuObject{
		mesh:      bind_group_provider.NewBindGroupProvider(label + " mesh"),
		transform: bind_group_provider.NewBindGroupProvider(label + " transform"),
	}
	if err := s.r.InitMeshBuffers(g.mesh, mdl.VertexData(), mdl.IndexData(), mdl.IndexCount()); err != nil {
		g.release()
		return fmt.Errorf("scene %q: init %s: %w", s.name, g.mesh.Label(), err)
	}
	if err := s.initGroup(g.transform, varTransform); err != nil {
		g.release()
		return err
	}
	if _, _, ok := s.shader.GroupForVarName(varDraw); ok {
		g.draw = bind_group_provider.NewBindGroupProvider(label + " draw")
		if err := s.initGroup(g.draw, varDraw); err != nil {
			g.release()
			return err
		}
	}
	s.gpuObjects[obj.ID()] = g
	return nil
}

func (s *scene) DrawCalls() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.name)
	}

	objects := s.objectsLocked()

	camUniform, lightUniform := s.cam.Uniform(), s.lt.Uniform()
	writes := s.writePool[:0]
	writes = append(writes,
		bind_group_provider.WriteRecord(s.cameraBGP, &camUniform),
		bind_group_provider.WriteRecord(s.lightBGP, &lightUniform),
	)
	for _, obj := range objects {
		g, ok := s.gpuObjects[obj.ID()]
		if !ok || !obj.Enabled() {
			continue
		}
		transform := obj.TransformUniform()
		writes = append(writes, bind_group_provider.WriteRecord(g.transform, &transform))
		if g.draw != nil {
			draw := obj.DrawUniform()
			writes = append(writes, bind_group_provider.WriteRecord(g.draw, &draw))
		}
	}
	s.r.WriteBuffers(writes)
	s.writePool = writes

	byVar := map[string]int{}
	for _, name := range []string{varCamera, varTransform, varLight, varDraw} {
		if group, _, ok := s.shader.GroupForVarName(name); ok {
			byVar[name] = group
		}
	}

	for _, obj := range objects {
		g, ok := s.gpuObjects[obj.ID()]
		if !ok || !obj.Enabled() {
			continue
		}

		// bindGroups[i] maps to @group(i)
		groupProviders := map[int]bind_group_provider.BindGroupProvider{
			byVar[varCamera]:    s.cameraBGP,
			byVar[varTransform]: g.transform,
			byVar[varLight]:     s.lightBGP,
		}
		if group, ok := byVar[varDraw]; ok {
			groupProviders[group] = g.draw
		}
		bindGroups := s.drawBindGroupsPool[:0]
		for i := 0; i < len(groupProviders); i++ {
			bindGroups = append(bindGroups, groupProviders[i])
		}
		s.drawBindGroupsPool = bindGroups

		if err := s.r.DrawCall(PipelineKey, g.mesh, bindGroups); err != nil {
			return fmt.Errorf("draw call failed for object %d in scene %q: %w", obj.ID(), s.name, err)
		}
	}
	return nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseGPULocked()
	s.r = nil
	s.shader = nil
	if s.ownsRasterizer {
		s.rasterizer.Dispatcher().Close()
	}
}

func (s *scene) releaseGPULocked() {
	for id, g := range s.gpuObjects {
		g.release()
		delete(s.gpuObjects, id)
	}
	if s.cameraBGP != nil {
		s.cameraBGP.Release()
		s.cameraBGP = nil
	}
	if s.lightBGP != nil {
		s.lightBGP.Release()
		s.lightBGP = nil
	}
}
