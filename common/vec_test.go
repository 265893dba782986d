package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -5, 6)

	assert.Equal(t, V3(5, -3, 9), a.Add(b))
	assert.Equal(t, V3(-3, 7, -3), a.Sub(b))
	assert.Equal(t, V3(4, -10, 18), a.Mul(b))
	assert.Equal(t, V3(2, 4, 6), a.Scale(2))
	assert.Equal(t, V3(-1, -2, -3), a.Negate())
	assert.Equal(t, float32(12), a.Dot(b))
	assert.Equal(t, V3(0, 0, 1), V3(1, 0, 0).Cross(V3(0, 1, 0)))
	assert.Equal(t, Vec4{1, 2, 3, 1}, a.Vec4(1))
	assert.Equal(t, a, a.Vec4(7).XYZ())
}

func TestVec3Normalize(t *testing.T) {
	n := V3(3, 0, 4).Normalize()
	assert.InDelta(t, 0.6, n[0], 1e-6)
	assert.InDelta(t, 0.8, n[2], 1e-6)
	assert.InDelta(t, 1, n.Length(), 1e-6)

	zero := Vec3{}.Normalize()
	for _, c := range zero {
		assert.True(t, math.IsNaN(float64(c)))
	}
}

func TestVec3Reflect(t *testing.T) {
	// Incident straight down onto a floor bounces straight up.
	assert.Equal(t, V3(0, 1, 0), V3(0, -1, 0).Reflect(V3(0, 1, 0)))
	assert.Equal(t, V3(1, 1, 0), V3(1, -1, 0).Reflect(V3(0, 1, 0)))
}

func TestVec3Mix(t *testing.T) {
	a, b := V3(0, 2, 4), V3(2, 4, 8)
	assert.Equal(t, a, a.Mix(b, 0))
	assert.Equal(t, b, a.Mix(b, 1))
	assert.Equal(t, V3(1, 3, 6), a.Mix(b, 0.5))
}

func TestScalarHelpers(t *testing.T) {
	assert.Equal(t, float32(0.25), Fract(2.25))
	assert.Equal(t, float32(0.75), Fract(-0.25))
	assert.Equal(t, float32(0), Fract(-3))

	assert.Equal(t, float32(1), Clamp(3, 0, 1))
	assert.Equal(t, float32(0), Clamp(-3, 0, 1))
	assert.Equal(t, float32(0.5), Clamp(0.5, 0, 1))

	assert.Equal(t, float32(0), Smoothstep(0, 1, -1))
	assert.Equal(t, float32(1), Smoothstep(0, 1, 2))
	assert.Equal(t, float32(0.5), Smoothstep(0, 1, 0.5))
	assert.Less(t, Smoothstep(0, 1, 0.25), float32(0.25))
}
