package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Identity4 returns a new 4x4 identity matrix in column-major order.
func Identity4() [16]float32 {
	var m [16]float32
	Identity(m[:])
	return m
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// The returned slice shares memory with the input and must not be modified.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements, may alias a or b)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += float32(a[k*4+row] * b[col*4+k])
			}
			buf[col*4+row] = sum
		}
	}
	copy(out, buf[:])
}

// MulMat4 returns a * b for two column-major 4x4 matrices.
func MulMat4(a, b [16]float32) [16]float32 {
	var out [16]float32
	Mul4(out[:], a[:], b[:])
	return out
}

// MulVec4 transforms a homogeneous 4-vector by a column-major 4x4 matrix.
//
// Parameters:
//   - m: matrix (16 elements, column-major)
//   - v: vector to transform
//
// Returns:
//   - Vec4: m * v
func MulVec4(m []float32, v Vec4) Vec4 {
	var out Vec4
	for row := 0; row < 4; row++ {
		out[row] = float32(m[row]*v[0]) + float32(m[4+row]*v[1]) + float32(m[8+row]*v[2]) + float32(m[12+row]*v[3])
	}
	return out
}

// MulMat3Vec3 transforms a 3-vector by a column-major 3x3 matrix.
func MulMat3Vec3(m [9]float32, v Vec3) Vec3 {
	var out Vec3
	for row := 0; row < 3; row++ {
		out[row] = float32(m[row]*v[0]) + float32(m[3+row]*v[1]) + float32(m[6+row]*v[2])
	}
	return out
}

// UpperLeft3 extracts the upper-left 3x3 block of a 4x4 matrix column by column.
// The result is the model basis used to carry normals into world space. It is exact
// only for rotations, translations and uniform scale.
//
// Parameters:
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - [9]float32: column-major 3x3 matrix
func UpperLeft3(m []float32) [9]float32 {
	return [9]float32{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// InverseTranspose3 returns the inverse-transpose of the upper-left 3x3 block of m.
// A singular block yields non-finite entries; callers do not guard against it.
//
// Parameters:
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - [9]float32: column-major 3x3 inverse-transpose
func InverseTranspose3(m []float32) [9]float32 {
	a := UpperLeft3(m)
	// a[c*3+r] is row r, column c.
	c00 := a[4]*a[8] - a[7]*a[5]
	c01 := -(a[1]*a[8] - a[7]*a[2])
	c02 := a[1]*a[5] - a[4]*a[2]
	c10 := -(a[3]*a[8] - a[6]*a[5])
	c11 := a[0]*a[8] - a[6]*a[2]
	c12 := -(a[0]*a[5] - a[3]*a[2])
	c20 := a[3]*a[7] - a[6]*a[4]
	c21 := -(a[0]*a[7] - a[6]*a[1])
	c22 := a[0]*a[4] - a[3]*a[1]

	det := a[0]*c00 + a[3]*c01 + a[6]*c02
	inv := 1 / det

	// The cofactor matrix is already the transpose of the adjugate, so scaling it
	// by 1/det gives (M^-1)^T directly. cRC is the cofactor of row R, column C.
	return [9]float32{
		c00 * inv, c10 * inv, c20 * inv,
		c01 * inv, c11 * inv, c21 * inv,
		c02 * inv, c12 * inv, c22 * inv,
	}
}

// Translation returns a column-major translation matrix.
func Translation(x, y, z float32) [16]float32 {
	m := Identity4()
	m[12], m[13], m[14] = x, y, z
	return m
}

// RotationX returns a column-major rotation of angle radians around the X axis.
func RotationX(angle float32) [16]float32 {
	s, c := math32.Sin(angle), math32.Cos(angle)
	m := Identity4()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

// RotationY returns a column-major rotation of angle radians around the Y axis.
func RotationY(angle float32) [16]float32 {
	s, c := math32.Sin(angle), math32.Cos(angle)
	m := Identity4()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// RotationZ returns a column-major rotation of angle radians around the Z axis.
func RotationZ(angle float32) [16]float32 {
	s, c := math32.Sin(angle), math32.Cos(angle)
	m := Identity4()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// Scale returns a column-major scale matrix.
func Scale(x, y, z float32) [16]float32 {
	m := Identity4()
	m[0], m[5], m[10] = x, y, z
	return m
}

// Perspective creates a perspective projection matrix for WebGPU clip space
// (depth in [0, 1]).
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Ortho creates an orthographic projection matrix for WebGPU clip space (depth in [0, 1]).
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - left, right, bottom, top: view volume extents
//   - near, far: depth range along -Z
func Ortho(out []float32, left, right, bottom, top, near, far float32) {
	Identity(out)
	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = 1 / (near - far)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = near / (near - far)
}

// LookTo creates a right-handed view matrix for an eye looking along dir.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - dir: viewing direction (need not be unit length)
//   - up: up vector (typically 0,1,0)
func LookTo(out []float32, eye, dir, up Vec3) {
	f := dir.Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	out[0], out[4], out[8], out[12] = s[0], s[1], s[2], -s.Dot(eye)
	out[1], out[5], out[9], out[13] = u[0], u[1], u[2], -u.Dot(eye)
	out[2], out[6], out[10], out[14] = -f[0], -f[1], -f[2], f.Dot(eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// LookAt creates a right-handed view matrix for an eye looking at center.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector (typically 0,1,0)
func LookAt(out []float32, eye, center, up Vec3) {
	LookTo(out, eye, center.Sub(eye), up)
}

// Invert4 computes the inverse of a 4x4 column-major matrix using cofactor expansion.
// If the matrix is singular the output is left unchanged and the function returns false.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was inverted, false if singular
func Invert4(out, m []float32) bool {
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}
	inv := 1.0 / det

	var buf [16]float32
	buf[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * inv
	buf[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * inv
	buf[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * inv
	buf[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * inv

	buf[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * inv
	buf[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * inv
	buf[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * inv
	buf[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * inv

	buf[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * inv
	buf[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * inv
	buf[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * inv
	buf[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * inv

	buf[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * inv
	buf[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * inv
	buf[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * inv
	buf[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * inv

	copy(out, buf[:])
	return true
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}
