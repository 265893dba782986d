package shading

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

// frontLitUniforms places a white light and the eye on +Z, three units in front of the origin.
func frontLitUniforms() *Uniforms {
	return &Uniforms{
		Camera: camera.GPUCameraUniform{
			ViewProj:     common.Identity4(),
			ViewPosition: [3]float32{0, 0, 3},
		},
		Transform: model.GPUTransformUniform{Model: common.Identity4()},
		Light: light.GPULightUniform{
			Position:         [3]float32{0, 0, 3},
			Color:            [3]float32{1, 1, 1},
			Ambient:          0.1,
			Diffuse:          0.8,
			Specular:         0.5,
			LightSpaceMatrix: common.Identity4(),
		},
	}
}

// interpolate blends three vertex outputs with barycentric weights.
func interpolate(v [3]Interpolants, w [3]float32) Interpolants {
	var out Interpolants
	for i := range 3 {
		out.Color = out.Color.Add(v[i].Color.Scale(w[i]))
		out.Normal = out.Normal.Add(v[i].Normal.Scale(w[i]))
		out.WorldPosition = out.WorldPosition.Add(v[i].WorldPosition.Scale(w[i]))
		out.LightSpacePosition = out.LightSpacePosition.Add(v[i].LightSpacePosition.Scale(w[i]))
	}
	return out
}

// shadeTriangleCenter runs the unit triangle through both stages and shades the fragment
// at the origin, which has barycentric weights (0.25, 0.25, 0.5).
func shadeTriangleCenter(t *testing.T, cfg *Config, u *Uniforms, color [3]float32, mat model.Material) Terms {
	t.Helper()
	tri := model.Triangle(color, mat)
	var outs [3]Interpolants
	for i, v := range tri.Vertices() {
		outs[i] = VertexStage(cfg, u, v)
	}
	in := interpolate(outs, [3]float32{0.25, 0.25, 0.5})
	require.InDelta(t, 0, in.WorldPosition.Length(), eps)
	return Shade(cfg, u, &in)
}

func assertVec3(t *testing.T, want, got common.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d", i)
	}
}

func TestFacingTriangleScenario(t *testing.T) {
	// The eye direction is perpendicular to the mirror direction, so the highlight vanishes.
	for _, sm := range []SpecularModel{SpecularBlinn, SpecularPhong} {
		t.Run(string(sm), func(t *testing.T) {
			cfg := NewConfig(
				WithSpecularModel(sm),
				WithViewSource(ViewSourceFixed),
				WithFallbackViewDir(common.V3(1, 0, 0)),
			)
			terms := shadeTriangleCenter(t, &cfg, frontLitUniforms(), [3]float32{1, 1, 1}, model.MaterialObject)

			assertVec3(t, common.Splat3(0.1), terms.Ambient, eps)
			assertVec3(t, common.Splat3(0.8), terms.Diffuse, eps)
			assertVec3(t, common.Splat3(0), terms.Specular, 1e-4)
			assertVec3(t, common.Splat3(0.9), terms.Color.XYZ(), 1e-4)
			assert.Equal(t, float32(1), terms.Color[3])
		})
	}
}

func TestHighlightPeaksOnMirrorDirection(t *testing.T) {
	for _, sm := range []SpecularModel{SpecularBlinn, SpecularPhong} {
		t.Run(string(sm), func(t *testing.T) {
			cfg := NewConfig(WithSpecularModel(sm))
			terms := shadeTriangleCenter(t, &cfg, frontLitUniforms(), [3]float32{1, 1, 1}, model.MaterialObject)

			assertVec3(t, common.Splat3(0.5), terms.Specular, eps)
			assertVec3(t, common.Splat3(1.4), terms.Color.XYZ(), eps)
		})
	}
}

func TestSpecularModelsDifferOffAxis(t *testing.T) {
	u := frontLitUniforms()
	u.Light.Position = [3]float32{2, 0, 3}
	u.Camera.ViewPosition = [3]float32{-1, 0, 3}
	in := Interpolants{Color: common.Splat3(1), Normal: common.V3(0, 0, 1)}

	blinn := NewConfig(WithSpecularModel(SpecularBlinn))
	phong := NewConfig(WithSpecularModel(SpecularPhong))
	b := Shade(&blinn, u, &in).Specular[0]
	p := Shade(&phong, u, &in).Specular[0]

	// The half-vector lobe is wider than the reflection lobe for the same exponent.
	assert.Greater(t, b, p)
	assert.Greater(t, p, float32(0))
}

func TestGroundScenario(t *testing.T) {
	tests := []struct {
		name  string
		sel   MaterialSelection
		color [3]float32
		tag   model.Material
	}{
		{"color heuristic", MaterialSelectionColorHeuristic, [3]float32{0.2, 0.5, 0.2}, model.MaterialObject},
		{"explicit tag", MaterialSelectionTagged, [3]float32{0.9, 0.1, 0.1}, model.MaterialGround},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithMaterialSelection(tt.sel))
			u := frontLitUniforms()
			u.Draw.Material = uint32(tt.tag)

			ground := shadeTriangleCenter(t, &cfg, u, tt.color, tt.tag)
			require.Equal(t, model.MaterialGround, ground.Material)
			assert.Equal(t, GroundAlbedo(common.V3(0, 0, 0)), ground.Albedo)
			assert.NotEqual(t, common.Vec3(tt.color), ground.Albedo)

			objCfg := NewConfig(WithMaterialSelection(MaterialSelectionNone))
			object := shadeTriangleCenter(t, &objCfg, frontLitUniforms(), tt.color, model.MaterialObject)
			require.Equal(t, model.MaterialObject, object.Material)
			require.Greater(t, object.Specular[0], float32(0))

			assertVec3(t, object.Specular.Scale(0.2), ground.Specular, eps)
			assertVec3(t, ground.Albedo.Mul(ground.Ambient.Add(ground.Diffuse)).Add(ground.Specular), ground.Color.XYZ(), eps)
		})
	}
}

func TestDiffuseMonotonicAboveFloor(t *testing.T) {
	for _, floor := range []float32{0, 0.3} {
		cfg := NewConfig(WithDiffuseFloor(floor))
		u := frontLitUniforms()
		u.Light.Diffuse = 1

		prevCos := float32(-2)
		prevDiffuse := float32(-1)
		// Sweep the normal from facing away to facing the light.
		for step := 0; step <= 180; step++ {
			angle := math32.Pi * float32(180-step) / 180
			in := Interpolants{
				Color:  common.Splat3(1),
				Normal: common.V3(0, math32.Sin(angle), math32.Cos(angle)),
			}
			d := Shade(&cfg, u, &in).Diffuse[0]
			cos := in.Normal.Normalize().Dot(common.V3(0, 0, 1))

			if cos <= floor {
				assert.InDelta(t, floor, d, eps, "floor %v cos %v", floor, cos)
			} else {
				assert.InDelta(t, cos, d, eps)
			}
			if cos >= prevCos {
				assert.GreaterOrEqual(t, d, prevDiffuse-eps)
			}
			prevCos, prevDiffuse = cos, d
		}
	}
}

func TestAlphaIsAlwaysOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := func() float32 { return rng.Float32()*20 - 10 }
	presets := []Preset{PresetBasic, PresetLit, PresetGround}

	for i := 0; i < 500; i++ {
		cfg, err := PresetConfig(presets[i%len(presets)])
		require.NoError(t, err)
		cfg.SpecularModel = []SpecularModel{SpecularBlinn, SpecularPhong}[i%2]

		u := frontLitUniforms()
		u.Light.Position = [3]float32{r(), r(), r()}
		u.Camera.ViewPosition = [3]float32{r(), r(), r()}
		in := Interpolants{
			Color:         common.V3(rng.Float32(), rng.Float32(), rng.Float32()),
			Normal:        common.V3(r(), r(), r()),
			WorldPosition: common.V3(r(), r(), r()),
		}
		assert.Equal(t, float32(1), FragmentStage(&cfg, u, &in)[3])
	}
}

func TestCoincidentLightPropagatesNaN(t *testing.T) {
	cfg := DefaultConfig()
	u := frontLitUniforms()
	in := Interpolants{Color: common.Splat3(1), Normal: common.V3(0, 0, 1), WorldPosition: common.V3(0, 0, 3)}

	c := FragmentStage(&cfg, u, &in)
	assert.True(t, math.IsNaN(float64(c[0])))
	assert.Equal(t, float32(1), c[3])
}

func TestVertexStageIdentityModel(t *testing.T) {
	cfg := DefaultConfig()
	u := frontLitUniforms()
	v := model.GPUVertex{
		Position: [3]float32{0.5, -0.5, 0.5},
		Color:    [3]float32{1, 0, 1},
		Normal:   [3]float32{0, 0.5, 1},
	}
	out := VertexStage(&cfg, u, v)

	assert.Equal(t, common.Vec3(v.Position), out.WorldPosition)
	assertVec3(t, common.Vec3(v.Normal).Normalize(), out.Normal, eps)
	assert.Equal(t, common.Vec3(v.Color), out.Color)
	assert.Equal(t, common.Vec4{0.5, -0.5, 0.5, 1}, out.ClipPosition)
}

func TestVertexStageTransforms(t *testing.T) {
	cfg := DefaultConfig()
	u := frontLitUniforms()
	u.Transform.Model = common.MulMat4(common.Translation(0, 1, 0), common.RotationY(math32.Pi/2))
	cam := camera.NewCamera(camera.WithSize(640, 480))
	u.Camera = cam.Uniform()

	v := model.GPUVertex{Position: [3]float32{1, 0, 0}, Normal: [3]float32{1, 0, 0}}
	out := VertexStage(&cfg, u, v)

	assertVec3(t, common.V3(0, 1, -1), out.WorldPosition, eps)
	assertVec3(t, common.V3(0, 0, -1), out.Normal, eps)

	want := common.MulVec4(u.Camera.ViewProj[:], common.Vec4{out.WorldPosition[0], out.WorldPosition[1], out.WorldPosition[2], 1})
	assert.Equal(t, want, out.ClipPosition)
}

func TestNormalTransport(t *testing.T) {
	u := frontLitUniforms()
	u.Transform.Model = common.Scale(2, 1, 1)
	v := model.GPUVertex{Normal: [3]float32{1, 1, 0}}
	tangent := common.V3(2, -1, 0) // (1, -1, 0) after scaling

	basis := DefaultConfig()
	skewed := VertexStage(&basis, u, v).Normal
	assertVec3(t, common.V3(2, 1, 0).Normalize(), skewed, eps)
	assert.NotZero(t, skewed.Dot(tangent))

	it := NewConfig(WithNormalTransport(NormalTransportInverseTranspose))
	correct := VertexStage(&it, u, v).Normal
	assertVec3(t, common.V3(0.5, 1, 0).Normalize(), correct, eps)
	assert.InDelta(t, 0, correct.Dot(tangent), eps)

	// Both agree for rotations.
	u.Transform.Model = common.RotationZ(0.7)
	assertVec3(t, VertexStage(&basis, u, v).Normal, VertexStage(&it, u, v).Normal, eps)
}

func TestShadowHook(t *testing.T) {
	u := frontLitUniforms()
	u.Light.LightSpaceMatrix = common.Translation(0, 0, -1)
	v := model.GPUVertex{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}}

	on := NewConfig(WithShadowHook(true))
	assert.Equal(t, common.Vec4{1, 2, 2, 1}, VertexStage(&on, u, v).LightSpacePosition)

	off := NewConfig(WithShadowHook(false))
	assert.Equal(t, common.Vec4{}, VertexStage(&off, u, v).LightSpacePosition)
}

func TestNormalizationIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		n := common.V3(rng.Float32()-0.5, rng.Float32()-0.5, rng.Float32()-0.5).Normalize()
		assertVec3(t, n, n.Normalize(), 1e-6)
	}
}
