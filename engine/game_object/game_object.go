package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

type gameObject struct {
	mu      *sync.Mutex
	id      uint64
	enabled atomic.Bool
	mdl     model.Model

	position      common.Vec3
	rotation      common.Vec3 // radians about X, Y, Z
	rotationSpeed common.Vec3 // radians per second
	scale         common.Vec3
}

// GameObject is a drawable scene entity: a Model plus the transform that places it in
// the world. The model matrix is T·Rx·Ry·Rz·S.
type GameObject interface {
	// ID returns the object's unique identifier.
	ID() uint64

	// Enabled returns whether this object is drawn.
	Enabled() bool

	// Model returns the Model associated with this object, or nil if not set.
	Model() model.Model

	// Position returns the world-space translation.
	Position() common.Vec3

	// Rotation returns the Euler angles in radians.
	Rotation() common.Vec3

	// RotationSpeed returns the spin rate in radians per second about each axis.
	RotationSpeed() common.Vec3

	// Scale returns the per-axis scale.
	Scale() common.Vec3

	// SetID sets the object's unique identifier.
	SetID(id uint64)

	// SetEnabled sets whether the object is drawn.
	SetEnabled(enabled bool)

	// SetPosition sets the world-space translation.
	SetPosition(p common.Vec3)

	// SetRotation sets the Euler angles in radians.
	SetRotation(r common.Vec3)

	// SetRotationSpeed sets the spin rate in radians per second.
	SetRotationSpeed(r common.Vec3)

	// SetScale sets the per-axis scale.
	SetScale(s common.Vec3)

	// Update advances the rotation by RotationSpeed·dt.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// ModelMatrix returns T·Rx·Ry·Rz·S for the current transform.
	//
	// Returns:
	//   - [16]float32: column-major model matrix
	ModelMatrix() [16]float32

	// TransformUniform returns the group 1 record for this object.
	TransformUniform() model.GPUTransformUniform

	// DrawUniform returns the group 3 record carrying the model's material tag.
	DrawUniform() model.GPUDrawUniform
}

var _ GameObject = &gameObject{}

// NewGameObject creates an enabled object at the origin with unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		scale: common.Splat3(1),
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Position() common.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) Rotation() common.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) RotationSpeed() common.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotationSpeed
}

func (g *gameObject) Scale() common.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(p common.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p
}

func (g *gameObject) SetRotation(r common.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = r
}

func (g *gameObject) SetRotationSpeed(r common.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotationSpeed = r
}

func (g *gameObject) SetScale(s common.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = s
}

func (g *gameObject) Update(dt float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = g.rotation.Add(g.rotationSpeed.Scale(dt))
}

func (g *gameObject) ModelMatrix() [16]float32 {
	g.mu.Lock()
	p, r, s := g.position, g.rotation, g.scale
	g.mu.Unlock()

	m := common.Translation(p[0], p[1], p[2])
	m = common.MulMat4(m, common.RotationX(r[0]))
	m = common.MulMat4(m, common.RotationY(r[1]))
	m = common.MulMat4(m, common.RotationZ(r[2]))
	return common.MulMat4(m, common.Scale(s[0], s[1], s[2]))
}

func (g *gameObject) TransformUniform() model.GPUTransformUniform {
	return model.GPUTransformUniform{Model: g.ModelMatrix()}
}

func (g *gameObject) DrawUniform() model.GPUDrawUniform {
	var u model.GPUDrawUniform
	if g.mdl != nil {
		u.Material = uint32(g.mdl.Material())
	}
	return u
}
