package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGPUTypeSizes(t *testing.T) {
	var vtx GPUVertex
	var tr GPUTransformUniform
	var dr GPUDrawUniform

	assert.Equal(t, 36, vtx.Size())
	assert.Equal(t, []int{0, 12, 24}, vtx.Offsets())
	assert.Equal(t, 64, tr.Size())
	assert.Equal(t, 16, dr.Size())
	assert.Equal(t, []int{0, 4, 8, 12}, dr.Offsets())
}

func TestVertexMarshalOrder(t *testing.T) {
	vtx := GPUVertex{
		Position: [3]float32{1, 2, 3},
		Color:    [3]float32{4, 5, 6},
		Normal:   [3]float32{7, 8, 9},
	}
	buf := vtx.Marshal()
	require.Len(t, buf, 36)
	for i := range 9 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		assert.Equal(t, float32(i+1), got)
	}
}

func TestNewModelDefaultsToSequentialIndices(t *testing.T) {
	m := Pyramid()
	require.Len(t, m.Vertices(), 18)
	assert.Equal(t, 18, m.IndexCount())
	for i, idx := range m.Indices() {
		assert.Equal(t, uint32(i), idx)
	}
	assert.Len(t, m.VertexData(), 18*36)
	assert.Len(t, m.IndexData(), 18*4)
	assert.Equal(t, MaterialObject, m.Material())
	assert.InDelta(t, 1.0, m.BoundingRadius(), 1e-6)
}

func TestGroundPlane(t *testing.T) {
	m := GroundPlane()
	require.Len(t, m.Vertices(), 18)
	assert.Equal(t, MaterialGround, m.Material())
	for _, v := range m.Vertices() {
		assert.Equal(t, float32(-1.5), v.Position[1])
		assert.Equal(t, [3]float32{0, 1, 0}, v.Normal)
		assert.Greater(t, v.Color[1], float32(0.4))
	}
}

func TestQuadIndices(t *testing.T) {
	m := Quad(1, [3]float32{1, 1, 1}, MaterialObject)
	assert.Len(t, m.Vertices(), 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices())
}

func TestMaterialText(t *testing.T) {
	var doc struct {
		Material Material `yaml:"material"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("material: ground\n"), &doc))
	assert.Equal(t, MaterialGround, doc.Material)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "material: ground\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("material: glass\n"), &doc))
	assert.Equal(t, "Material(7)", Material(7).String())
}
