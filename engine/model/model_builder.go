package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithVertices sets the vertex list. The slice is copied.
//
// Parameters:
//   - vertices: object-space vertices
//
// Returns:
//   - ModelBuilderOption: a function that applies the vertices option to a model
func WithVertices(vertices ...GPUVertex) ModelBuilderOption {
	return func(m *model) {
		m.vertices = append([]GPUVertex(nil), vertices...)
	}
}

// WithIndices sets the triangle-list indices. The slice is copied.
//
// Parameters:
//   - indices: three per triangle, each < len(vertices)
//
// Returns:
//   - ModelBuilderOption: a function that applies the indices option to a model
func WithIndices(indices ...uint32) ModelBuilderOption {
	return func(m *model) {
		m.indices = append([]uint32{}, indices...)
	}
}

// WithMaterial sets the material tag of the Model.
//
// Parameters:
//   - material: the surface tag
//
// Returns:
//   - ModelBuilderOption: a function that applies the material option to a model
func WithMaterial(material Material) ModelBuilderOption {
	return func(m *model) {
		m.material = material
	}
}
