package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-forward/engine/shading"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forwardShader(t *testing.T) shader.Shader {
	t.Helper()
	source, err := shader.Generate(shading.DefaultConfig())
	require.NoError(t, err)
	return shader.NewShader("forward", source)
}

func TestNewPipeline_Defaults(t *testing.T) {
	s := forwardShader(t)
	p := NewPipeline("forward", s)

	assert.Equal(t, "forward", p.PipelineKey())
	assert.Same(t, s, p.Shader())
	assert.Nil(t, p.RenderPipeline())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())

	// nothing to release before registration
	p.Release()
}

func TestNewPipeline_Options(t *testing.T) {
	p := NewPipeline("forward", forwardShader(t),
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithCullMode(wgpu.CullModeBack),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)

	assert.False(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskRed, p.WriteMask())
}
