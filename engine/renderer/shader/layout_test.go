package shader

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/shading"
	"github.com/stretchr/testify/assert"
)

func TestValidateLayoutAssets(t *testing.T) {
	src := camera.GPUCameraUniformSource + model.GPUTransformUniformSource +
		light.GPULightUniformSource + model.GPUVertexSource + model.GPUDrawUniformSource
	cfg := shading.NewConfig(shading.WithMaterialSelection(shading.MaterialSelectionTagged))
	assert.NoError(t, ValidateLayout(src, ForwardExpectations(cfg)))
}

func TestValidateLayoutMismatch(t *testing.T) {
	tests := []struct {
		name string
		src  string
		exp  Expectation
	}{
		{
			name: "missing struct",
			src:  model.GPUTransformUniformSource,
			exp:  Expectation{Struct: "CameraUniform", Type: &camera.GPUCameraUniform{}},
		},
		{
			name: "size",
			src:  "struct DrawUniform { material: u32, };",
			exp:  Expectation{Struct: "DrawUniform", Type: &model.GPUDrawUniform{}},
		},
		{
			name: "member count",
			src:  "struct CameraUniform { view_proj: mat4x4<f32>, view_position: vec3<f32>, };",
			exp:  Expectation{Struct: "CameraUniform", Type: &camera.GPUCameraUniform{}},
		},
		{
			// Without the explicit pad the vec3 color still lands on 16, but ambient moves.
			name: "offset",
			src: `struct LightUniform {
    position: vec3<f32>,
    color: vec3<f32>,
    ambient: f32,
    diffuse: f32,
    specular: f32,
    pad0: f32,
    pad1: f32,
    pad2: f32,
    light_space_matrix: mat4x4<f32>,
};`,
			exp: Expectation{Struct: "LightUniform", Type: &light.GPULightUniform{}},
		},
		{
			name: "vertex stride",
			src:  "struct VertexInput { @location(0) position: vec4<f32>, @location(1) color: vec3<f32>, @location(2) normal: vec3<f32>, };",
			exp:  Expectation{Struct: "VertexInput", Type: &model.GPUVertex{}},
		},
		{
			name: "unresolved member",
			src:  "struct TransformUniform { model: Matrix, };",
			exp:  Expectation{Struct: "TransformUniform", Type: &model.GPUTransformUniform{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateLayout(tt.src, []Expectation{tt.exp}), ErrLayoutMismatch)
		})
	}
}

func TestForwardExpectations(t *testing.T) {
	assert.Len(t, ForwardExpectations(shading.DefaultConfig()), 4)
	tagged := shading.NewConfig(shading.WithMaterialSelection(shading.MaterialSelectionTagged))
	assert.Len(t, ForwardExpectations(tagged), 5)
}
