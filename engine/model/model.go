package model

import (
	"github.com/Carmen-Shannon/oxy-forward/common"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	vertices       []GPUVertex
	indices        []uint32
	material       Material
	boundingRadius float32
}

// Model is an immutable triangle-list mesh with a material tag. Every three indices
// form one triangle; the vertex data is uploaded once and shared by every drawable
// that references the model.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices returns the vertex list. Callers must not modify it.
	//
	// Returns:
	//   - []GPUVertex: the vertices
	Vertices() []GPUVertex

	// Indices returns the triangle-list indices into Vertices.
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// IndexCount returns the number of indices to draw.
	IndexCount() int

	// Material returns the surface tag applied when materials are selected by tag.
	//
	// Returns:
	//   - Material: the material tag
	Material() Material

	// BoundingRadius returns the object-space distance from the origin to the farthest vertex.
	BoundingRadius() float32

	// VertexData returns the packed vertex buffer contents.
	VertexData() []byte

	// IndexData returns the packed index buffer contents.
	IndexData() []byte
}

var _ Model = &model{}

// NewModel creates a Model. When no indices are supplied the vertices are drawn in
// order, three per triangle.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{material: MaterialObject}
	for _, option := range options {
		option(m)
	}
	if m.indices == nil {
		m.indices = make([]uint32, len(m.vertices))
		for i := range m.indices {
			m.indices[i] = uint32(i)
		}
	}
	m.boundingRadius = ComputeBoundingRadius(m.vertices)
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []GPUVertex {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) Material() Material {
	return m.material
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) VertexData() []byte {
	return MarshalVertices(m.vertices)
}

func (m *model) IndexData() []byte {
	return common.SliceToBytes(m.indices)
}
