package common

import "github.com/chewxy/math32"

// Vec3 is a 3-component float32 vector.
type Vec3 [3]float32

// Vec4 is a 4-component float32 vector, used for homogeneous positions and RGBA colors.
type Vec4 [4]float32

// V3 builds a Vec3.
func V3(x, y, z float32) Vec3 { return Vec3{x, y, z} }

// Splat3 returns a Vec3 with every component set to s.
func Splat3(s float32) Vec3 { return Vec3{s, s, s} }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

// Mul multiplies component-wise.
func (a Vec3) Mul(b Vec3) Vec3 { return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]} }

func (a Vec3) Scale(s float32) Vec3 { return Vec3{a[0] * s, a[1] * s, a[2] * s} }

func (a Vec3) Negate() Vec3 { return Vec3{-a[0], -a[1], -a[2]} }

// Dot returns the dot product of a and b. Each product is rounded to float32
// before summing so the result never depends on fused multiply-add.
func (a Vec3) Dot(b Vec3) float32 {
	return float32(a[0]*b[0]) + float32(a[1]*b[1]) + float32(a[2]*b[2])
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		float32(a[1]*b[2]) - float32(a[2]*b[1]),
		float32(a[2]*b[0]) - float32(a[0]*b[2]),
		float32(a[0]*b[1]) - float32(a[1]*b[0]),
	}
}

func (a Vec3) Length() float32 { return math32.Sqrt(a.Dot(a)) }

// Normalize returns a scaled to unit length. A zero vector yields NaN components,
// matching WGSL normalize.
func (a Vec3) Normalize() Vec3 {
	return a.Scale(1 / a.Length())
}

// Reflect reflects the incident vector a about the normal n (WGSL reflect).
func (a Vec3) Reflect(n Vec3) Vec3 {
	return a.Sub(n.Scale(2 * n.Dot(a)))
}

// Mix linearly interpolates between a and b by t (WGSL mix).
func (a Vec3) Mix(b Vec3, t float32) Vec3 {
	return a.Scale(1 - t).Add(b.Scale(t))
}

// Vec4 extends a to homogeneous coordinates with the given w.
func (a Vec3) Vec4(w float32) Vec4 { return Vec4{a[0], a[1], a[2], w} }

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 { return Vec3{v[0], v[1], v[2]} }

func (v Vec4) Add(b Vec4) Vec4 { return Vec4{v[0] + b[0], v[1] + b[1], v[2] + b[2], v[3] + b[3]} }

func (v Vec4) Scale(s float32) Vec4 { return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s} }

// Fract returns x - floor(x) (WGSL fract).
func Fract(x float32) float32 {
	return x - math32.Floor(x)
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	return math32.Min(math32.Max(x, lo), hi)
}

// Smoothstep performs Hermite interpolation between edge0 and edge1 (WGSL smoothstep).
func Smoothstep(edge0, edge1, x float32) float32 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
