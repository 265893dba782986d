package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (80 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer
// bound at group 0, binding 0.
type GPUCameraUniform struct {
	ViewProj     [16]float32 // offset  0: combined view-projection matrix (mat4x4<f32>)
	ViewPosition [3]float32  // offset 64: world-space eye position (vec3<f32>)
	_pad         float32     // offset 76: padding to 80 bytes
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Offsets returns the byte offset of each WGSL member in declaration order.
func (g *GPUCameraUniform) Offsets() []int {
	return []int{
		int(unsafe.Offsetof(g.ViewProj)),
		int(unsafe.Offsetof(g.ViewPosition)),
		int(unsafe.Offsetof(g._pad)),
	}
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.ViewPosition[i]))
	}
	return buf
}
