package shading

import (
	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

// Uniforms is the read-only parameter set bound for one draw. The records are the same
// types uploaded to the GPU bind groups.
type Uniforms struct {
	Camera    camera.GPUCameraUniform   // group 0
	Transform model.GPUTransformUniform // group 1
	Light     light.GPULightUniform     // group 2
	Draw      model.GPUDrawUniform      // group 3, tagged materials only
}

// Interpolants is the vertex-to-fragment contract. ClipPosition feeds the rasterizer
// only; the rest are interpolated per fragment in this order: color, normal,
// world position, light-space position.
type Interpolants struct {
	ClipPosition       common.Vec4
	Color              common.Vec3
	Normal             common.Vec3
	WorldPosition      common.Vec3
	LightSpacePosition common.Vec4
}

// VertexStage maps one vertex into clip space and produces its interpolants.
// Degenerate matrices propagate NaN or zero without any check.
//
// Parameters:
//   - cfg: the stage configuration
//   - u: the uniforms bound for the draw
//   - v: the object-space vertex
//
// Returns:
//   - Interpolants: clip position plus per-vertex outputs
func VertexStage(cfg *Config, u *Uniforms, v model.GPUVertex) Interpolants {
	m := u.Transform.Model[:]
	world := common.MulVec4(m, common.Vec3(v.Position).Vec4(1)).XYZ()

	var normalMatrix [9]float32
	if cfg.NormalTransport == NormalTransportInverseTranspose {
		normalMatrix = common.InverseTranspose3(m)
	} else {
		normalMatrix = common.UpperLeft3(m)
	}

	out := Interpolants{
		ClipPosition:  common.MulVec4(u.Camera.ViewProj[:], world.Vec4(1)),
		Color:         v.Color,
		Normal:        common.MulMat3Vec3(normalMatrix, v.Normal).Normalize(),
		WorldPosition: world,
	}
	if cfg.ShadowHook {
		out.LightSpacePosition = common.MulVec4(u.Light.LightSpaceMatrix[:], world.Vec4(1))
	}
	return out
}
