package light

import (
	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/chewxy/math32"
)

// DefaultShadowHalfExtent is the orthographic half-extent (in world units) of the
// light-space frustum.
const DefaultShadowHalfExtent float32 = 20.0

// DefaultShadowNear is the near plane of the light-space projection.
const DefaultShadowNear float32 = 0.1

// DefaultShadowFar is the far plane of the light-space projection.
const DefaultShadowFar float32 = 50.0

// ComputeLightSpaceMatrix builds an orthographic view-projection looking from the light
// position toward center. Nothing samples a shadow map yet; the matrix only feeds the
// light-space position interpolant.
//
// Parameters:
//   - lightPos: world-space light position (the eye)
//   - center: world-space point the frustum is aimed at
//   - halfExtent: half-size of the orthographic frustum in world units
//   - near, far: depth range
//
// Returns:
//   - [16]float32: column-major light view-projection
func ComputeLightSpaceMatrix(lightPos, center common.Vec3, halfExtent, near, far float32) [16]float32 {
	dir := center.Sub(lightPos).Normalize()

	// Pick an up vector that is not parallel to the light direction.
	up := common.V3(0, 1, 0)
	if math32.Abs(dir[1]) > 0.99 {
		up = common.V3(1, 0, 0)
	}

	var view, proj, out [16]float32
	common.LookTo(view[:], lightPos, dir, up)
	common.Ortho(proj[:], -halfExtent, halfExtent, -halfExtent, halfExtent, near, far)
	common.Mul4(out[:], proj[:], view[:])
	return out
}
