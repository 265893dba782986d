package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/engine/shading"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// variants covers every preset plus each flag that no preset sets.
func variants(t *testing.T) map[string]shading.Config {
	t.Helper()
	out := map[string]shading.Config{}
	for _, p := range []shading.Preset{shading.PresetBasic, shading.PresetLit, shading.PresetGround} {
		cfg, err := shading.PresetConfig(p)
		require.NoError(t, err)
		out[string(p)] = cfg
	}
	out["phong"] = shading.NewConfig(shading.WithSpecularModel(shading.SpecularPhong))
	out["tagged"] = shading.NewConfig(shading.WithMaterialSelection(shading.MaterialSelectionTagged))
	out["inverse transpose"] = shading.NewConfig(shading.WithNormalTransport(shading.NormalTransportInverseTranspose))
	return out
}

func TestGenerateVariants(t *testing.T) {
	for name, cfg := range variants(t) {
		t.Run(name, func(t *testing.T) {
			src, err := Generate(cfg)
			require.NoError(t, err)
			assert.NotContains(t, src, "@oxy:")

			require.NoError(t, ValidateLayout(src, ForwardExpectations(cfg)))

			spirv, err := Compile(src)
			require.NoError(t, err)
			require.NotEmpty(t, spirv)
			assert.Equal(t, uint32(0x07230203), spirv[0], "SPIR-V magic number")
		})
	}
}

func TestGenerateFollowsConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     shading.Config
		present []string
		absent  []string
	}{
		{
			name:    "blinn with camera view",
			cfg:     shading.DefaultConfig(),
			present: []string{"halfway_dir", "camera.view_position - in.world_position", "const diffuse_floor: f32 = 0.0;", "const shininess: f32 = 32.0;"},
			absent:  []string{"reflect_dir", "fallback_view_dir", "ground_albedo", "DrawUniform"},
		},
		{
			name:    "phong with fixed view",
			cfg:     shading.NewConfig(shading.WithSpecularModel(shading.SpecularPhong), shading.WithViewSource(shading.ViewSourceFixed)),
			present: []string{"reflect(-light_dir, normal)", "const fallback_view_dir: vec3<f32> = vec3<f32>(0.0, 0.0, 1.0);"},
			absent:  []string{"halfway_dir", "camera.view_position"},
		},
		{
			name:    "color heuristic",
			cfg:     shading.NewConfig(shading.WithMaterialSelection(shading.MaterialSelectionColorHeuristic), shading.WithDiffuseFloor(0.3)),
			present: []string{"in.color.g > 0.4 && in.color.r < 0.3", "ground_albedo", "const diffuse_floor: f32 = 0.3;", "const ground_specular_scale: f32 = 0.2;"},
			absent:  []string{"draw_uniform", "ground_tag"},
		},
		{
			name:    "tagged",
			cfg:     shading.NewConfig(shading.WithMaterialSelection(shading.MaterialSelectionTagged)),
			present: []string{"@group(3) @binding(0) var<uniform> draw_uniform: DrawUniform;", "const ground_tag: u32 = 1u;", "ground_albedo"},
			absent:  []string{"in.color.g > 0.4"},
		},
		{
			name:    "no shadow hook",
			cfg:     shading.NewConfig(shading.WithShadowHook(false)),
			absent:  []string{"light_space_position"},
			present: []string{"light_space_matrix: mat4x4<f32>"},
		},
		{
			name:    "inverse transpose",
			cfg:     shading.NewConfig(shading.WithNormalTransport(shading.NormalTransportInverseTranspose)),
			present: []string{"inverse_transpose3(basis)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Generate(tt.cfg)
			require.NoError(t, err)
			for _, s := range tt.present {
				assert.Contains(t, src, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, src, s)
			}
		})
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	_, err := Generate(shading.NewConfig(shading.WithShininess(-1)))
	assert.ErrorIs(t, err, shading.ErrInvalidConfig)
}

func TestNewShaderReflection(t *testing.T) {
	tests := []struct {
		name       string
		cfg        shading.Config
		groups     int
		shadowHook bool
	}{
		{"default", shading.DefaultConfig(), 3, true},
		{"tagged without shadow hook", shading.NewConfig(
			shading.WithMaterialSelection(shading.MaterialSelectionTagged),
			shading.WithShadowHook(false),
		), 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Generate(tt.cfg)
			require.NoError(t, err)
			s := NewShader("forward", src)

			assert.Equal(t, "forward", s.Key())
			assert.Equal(t, VertexEntryPoint, s.VertexEntryPoint())
			assert.Equal(t, FragmentEntryPoint, s.FragmentEntryPoint())
			assert.Equal(t, src, s.Module().WGSLDescriptor.Code)

			require.Len(t, s.BindGroupLayoutDescriptors(), tt.groups)
			sizes := []uint64{80, 64, 112, 16}
			names := []string{"camera", "transform", "light", "draw_uniform"}
			for g := 0; g < tt.groups; g++ {
				entries := s.BindGroupLayoutDescriptor(g).Entries
				require.Len(t, entries, 1, "group %d", g)
				assert.Equal(t, wgpu.BufferBindingTypeUniform, entries[0].Buffer.Type)
				assert.Equal(t, sizes[g], entries[0].Buffer.MinBindingSize, "group %d", g)
				assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, entries[0].Visibility)
				assert.Equal(t, names[g], s.BindGroupVarName(g, 0))

				group, binding, ok := s.GroupForVarName(names[g])
				assert.True(t, ok)
				assert.Equal(t, g, group)
				assert.Equal(t, 0, binding)
			}

			layouts := s.VertexLayouts()
			require.Len(t, layouts, 1)
			vl := layouts[0][0]
			assert.Equal(t, uint64(36), vl.ArrayStride)
			require.Len(t, vl.Attributes, 3)
			for i, attr := range vl.Attributes {
				assert.Equal(t, uint32(i), attr.ShaderLocation)
				assert.Equal(t, uint64(i*12), attr.Offset)
				assert.Equal(t, wgpu.VertexFormatFloat32x3, attr.Format)
			}

			assert.Equal(t, tt.shadowHook, strings.Contains(src, "@location(3) light_space_position"))
		})
	}
}

func TestNewShaderPanicsWithoutEntryPoints(t *testing.T) {
	assert.Panics(t, func() { NewShader("empty", "") })
	assert.Panics(t, func() { NewShader("vertex only", "@vertex fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(); }") })
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "32.0", formatFloat(32))
	assert.Equal(t, "0.0", formatFloat(0))
	assert.Equal(t, "0.3", formatFloat(0.3))
	assert.Equal(t, "-1.5", formatFloat(-1.5))
	assert.Equal(t, "1e-07", formatFloat(1e-7))
}
