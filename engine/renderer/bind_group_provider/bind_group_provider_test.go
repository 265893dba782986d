package bind_group_provider

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("camera")

	assert.Equal(t, "camera", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.BindGroupLayout())
	assert.Nil(t, p.Buffer(0))
	assert.Empty(t, p.Buffers())
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
	assert.Zero(t, p.IndexCount())
}

func TestBindGroupProvider_ReleaseWithoutResources(t *testing.T) {
	p := NewBindGroupProvider("mesh")
	p.SetIndexCount(36)
	p.SetBuffer(0, nil)

	p.Release()
	p.Release()

	assert.Zero(t, p.IndexCount())
	assert.Empty(t, p.Buffers())
}

func TestWriteRecord(t *testing.T) {
	p := NewBindGroupProvider("transform")
	rec := &model.GPUTransformUniform{}
	rec.Model[0] = 1

	w := WriteRecord(p, rec)
	assert.Same(t, p, w.Provider)
	assert.Equal(t, 0, w.Binding)
	assert.Zero(t, w.Offset)
	assert.Equal(t, rec.Marshal(), w.Data)

	cam := &camera.GPUCameraUniform{}
	assert.Len(t, WriteRecord(p, cam).Data, cam.Size())
}
