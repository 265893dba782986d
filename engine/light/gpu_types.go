package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightUniformSource is the canonical WGSL definition of the LightUniform struct.
// Matches GPULightUniform layout exactly (112 bytes).
//
//go:embed assets/light_uniform.wgsl
var GPULightUniformSource string

// GPULightUniform is the GPU-aligned representation of the single point light bound at
// group 2, binding 0. LightSpaceMatrix is reserved for a shadow pass and is always
// uploaded so the buffer layout stays fixed.
//
// Layout:
//
//	vec3<f32>   position           (12 bytes, offset 0)  + pad
//	vec3<f32>   color              (12 bytes, offset 16) + pad
//	f32         ambient            ( 4 bytes, offset 32)
//	f32         diffuse            ( 4 bytes, offset 36)
//	f32         specular           ( 4 bytes, offset 40) + pad
//	mat4x4<f32> light_space_matrix (64 bytes, offset 48)
type GPULightUniform struct {
	Position         [3]float32
	_pad0            float32
	Color            [3]float32
	_pad1            float32
	Ambient          float32
	Diffuse          float32
	Specular         float32
	_pad2            float32
	LightSpaceMatrix [16]float32
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (112)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Offsets returns the byte offset of each WGSL member in declaration order.
func (g *GPULightUniform) Offsets() []int {
	return []int{
		int(unsafe.Offsetof(g.Position)),
		int(unsafe.Offsetof(g._pad0)),
		int(unsafe.Offsetof(g.Color)),
		int(unsafe.Offsetof(g._pad1)),
		int(unsafe.Offsetof(g.Ambient)),
		int(unsafe.Offsetof(g.Diffuse)),
		int(unsafe.Offsetof(g.Specular)),
		int(unsafe.Offsetof(g._pad2)),
		int(unsafe.Offsetof(g.LightSpaceMatrix)),
	}
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 112-byte buffer ready for GPU upload
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	for i := range 3 {
		put(i*4, g.Position[i])
		put(16+i*4, g.Color[i])
	}
	put(32, g.Ambient)
	put(36, g.Diffuse)
	put(40, g.Specular)
	for i := range 16 {
		put(48+i*4, g.LightSpaceMatrix[i])
	}
	return buf
}
