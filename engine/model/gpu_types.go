package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct.
// Matches GPUVertex layout exactly (36-byte stride).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU representation of a single mesh vertex. The color doubles as
// albedo. Size: 36 bytes, tightly packed.
type GPUVertex struct {
	Position [3]float32 // offset  0: object-space position, @location(0)
	Color    [3]float32 // offset 12: RGB albedo, @location(1)
	Normal   [3]float32 // offset 24: object-space unit normal, @location(2)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (36)
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Offsets returns the byte offset of each attribute in location order.
func (g *GPUVertex) Offsets() []int {
	return []int{
		int(unsafe.Offsetof(g.Position)),
		int(unsafe.Offsetof(g.Color)),
		int(unsafe.Offsetof(g.Normal)),
	}
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 36-byte buffer ready for GPU upload
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
		binary.LittleEndian.PutUint32(buf[12+i*4:], math.Float32bits(g.Color[i]))
		binary.LittleEndian.PutUint32(buf[24+i*4:], math.Float32bits(g.Normal[i]))
	}
	return buf
}

// MarshalVertices packs a vertex slice into one contiguous upload buffer.
func MarshalVertices(vertices []GPUVertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	stride := vertices[0].Size()
	buf := make([]byte, 0, stride*len(vertices))
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// ComputeBoundingRadius returns the maximum distance from the origin across all vertex positions.
//
// Parameters:
//   - vertices: the vertex data to compute the bounding radius from
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}

// GPUTransformUniformSource is the canonical WGSL definition of the TransformUniform struct.
//
//go:embed assets/transform_uniform.wgsl
var GPUTransformUniformSource string

// GPUTransformUniform holds one drawable's object-to-world matrix, bound at group 1.
// Size: 64 bytes.
type GPUTransformUniform struct {
	Model [16]float32 // offset 0: column-major model matrix
}

// Size returns the size of the GPUTransformUniform struct in bytes.
func (g *GPUTransformUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Offsets returns the byte offset of each WGSL member in declaration order.
func (g *GPUTransformUniform) Offsets() []int {
	return []int{int(unsafe.Offsetof(g.Model))}
}

// Marshal serializes the GPUTransformUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPUTransformUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	return buf
}

// GPUDrawUniformSource is the canonical WGSL definition of the DrawUniform struct.
//
//go:embed assets/draw_uniform.wgsl
var GPUDrawUniformSource string

// GPUDrawUniform carries per-draw shading parameters, bound at group 3 when materials
// are selected by tag. Size: 16 bytes.
type GPUDrawUniform struct {
	Material uint32 // offset  0: Material tag
	_pad     [3]uint32
}

// Size returns the size of the GPUDrawUniform struct in bytes.
func (g *GPUDrawUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Offsets returns the byte offset of each WGSL member in declaration order.
func (g *GPUDrawUniform) Offsets() []int {
	base := int(unsafe.Offsetof(g._pad))
	return []int{int(unsafe.Offsetof(g.Material)), base, base + 4, base + 8}
}

// Marshal serializes the GPUDrawUniform struct into a byte buffer suitable for GPU upload.
func (g *GPUDrawUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:4], g.Material)
	return buf
}
