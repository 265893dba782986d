package game_object

import (
	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the object's unique identifier.
//
// Parameters:
//   - id: the ID to assign
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the ID option
func WithID(id uint64) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.id = id
	}
}

// WithEnabled sets whether the object is drawn. Objects are enabled by default.
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.enabled.Store(enabled)
	}
}

// WithModel assigns the Model to draw.
//
// Parameters:
//   - m: the Model to associate
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the model option
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mdl = m
	}
}

// WithPosition sets the world-space translation.
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.position = common.V3(x, y, z)
	}
}

// WithScale sets the per-axis scale.
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.scale = common.V3(sx, sy, sz)
	}
}

// WithRotation sets the initial Euler angles in radians.
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.rotation = common.V3(rx, ry, rz)
	}
}

// WithRotationSpeed sets the spin rate in radians per second about each axis.
//
// Parameters:
//   - rx, ry, rz: rotation speed values
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the rotation speed option
func WithRotationSpeed(rx, ry, rz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.rotationSpeed = common.V3(rx, ry, rz)
	}
}
