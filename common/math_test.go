package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMatrix(t *testing.T, want, got []float32, delta float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "element %d", i)
	}
}

func TestMulVec4(t *testing.T) {
	m := Translation(1, 2, 3)
	assert.Equal(t, Vec4{2, 3, 4, 1}, MulVec4(m[:], Vec4{1, 1, 1, 1}))
	// Directions ignore translation.
	assert.Equal(t, Vec4{1, 1, 1, 0}, MulVec4(m[:], Vec4{1, 1, 1, 0}))

	s := Scale(2, 3, 4)
	assert.Equal(t, Vec4{2, 3, 4, 1}, MulVec4(s[:], Vec4{1, 1, 1, 1}))
}

func TestMulMat4Order(t *testing.T) {
	// T * S scales first, then translates.
	ts := MulMat4(Translation(10, 0, 0), Scale(2, 2, 2))
	assert.Equal(t, Vec4{12, 2, 2, 1}, MulVec4(ts[:], Vec4{1, 1, 1, 1}))

	st := MulMat4(Scale(2, 2, 2), Translation(10, 0, 0))
	assert.Equal(t, Vec4{22, 2, 2, 1}, MulVec4(st[:], Vec4{1, 1, 1, 1}))

	id := Identity4()
	assert.Equal(t, ts, MulMat4(ts, id))
}

func TestRotations(t *testing.T) {
	half := DegToRad(90)
	ry := RotationY(half)
	got := MulVec4(ry[:], Vec4{1, 0, 0, 1})
	assertMatrix(t, []float32{0, 0, -1, 1}, got[:], 1e-6)

	rx := RotationX(half)
	got = MulVec4(rx[:], Vec4{0, 1, 0, 1})
	assertMatrix(t, []float32{0, 0, 1, 1}, got[:], 1e-6)

	rz := RotationZ(half)
	got = MulVec4(rz[:], Vec4{1, 0, 0, 1})
	assertMatrix(t, []float32{0, 1, 0, 1}, got[:], 1e-6)
}

func TestInvert4(t *testing.T) {
	m := MulMat4(MulMat4(Translation(1, -2, 3), RotationY(0.6)), Scale(2, 3, 0.5))
	var inv [16]float32
	require.True(t, Invert4(inv[:], m[:]))

	id := Identity4()
	prod := MulMat4(m, inv)
	assertMatrix(t, id[:], prod[:], 1e-5)

	var singular [16]float32
	out := Identity4()
	assert.False(t, Invert4(out[:], singular[:]))
	assert.Equal(t, Identity4(), out)
}

func TestInverseTranspose3(t *testing.T) {
	s := Scale(2, 4, 0.5)
	got := InverseTranspose3(s[:])
	assertMatrix(t, []float32{0.5, 0, 0, 0, 0.25, 0, 0, 0, 2}, got[:], 1e-6)

	// For a rotation the inverse-transpose is the rotation itself.
	r := MulMat4(RotationX(0.3), RotationZ(1.1))
	got = InverseTranspose3(r[:])
	want := UpperLeft3(r[:])
	assertMatrix(t, want[:], got[:], 1e-5)

	// Agrees with the full 4x4 inverse.
	m := MulMat4(RotationY(0.8), Scale(1, 2, 3))
	var inv [16]float32
	require.True(t, Invert4(inv[:], m[:]))
	got = InverseTranspose3(m[:])
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			assert.InDelta(t, inv[r*4+c], got[c*3+r], 1e-5)
		}
	}
}

func TestLookTo(t *testing.T) {
	var view [16]float32
	eye := V3(1, 2, 5)
	LookAt(view[:], eye, V3(1, 2, 0), V3(0, 1, 0))

	origin := MulVec4(view[:], eye.Vec4(1))
	assertMatrix(t, []float32{0, 0, 0, 1}, origin[:], 1e-6)

	ahead := MulVec4(view[:], Vec4{1, 2, 0, 1})
	assertMatrix(t, []float32{0, 0, -5, 1}, ahead[:], 1e-5)

	right := MulVec4(view[:], Vec4{2, 2, 5, 1})
	assertMatrix(t, []float32{1, 0, 0, 1}, right[:], 1e-6)
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], DegToRad(60), 1.5, 0.1, 100)

	near := MulVec4(proj[:], Vec4{0, 0, -0.1, 1})
	far := MulVec4(proj[:], Vec4{0, 0, -100, 1})
	assert.InDelta(t, 0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1, far[2]/far[3], 1e-5)
	assert.InDelta(t, 0.1, near[3], 1e-7)
}

func TestOrthoDepthRange(t *testing.T) {
	var proj [16]float32
	Ortho(proj[:], -2, 2, -1, 1, 0.5, 10)

	corner := MulVec4(proj[:], Vec4{2, 1, -0.5, 1})
	assertMatrix(t, []float32{1, 1, 0, 1}, corner[:], 1e-6)
	back := MulVec4(proj[:], Vec4{-2, -1, -10, 1})
	assertMatrix(t, []float32{-1, -1, 1, 1}, back[:], 1e-6)
}

func TestFrustumSphereVisible(t *testing.T) {
	var view, proj [16]float32
	LookAt(view[:], V3(0, 0, 5), V3(0, 0, 0), V3(0, 1, 0))
	Perspective(proj[:], DegToRad(90), 1, 0.1, 100)
	viewProj := MulMat4(proj, view)
	f := ExtractFrustum(viewProj[:])

	tests := []struct {
		name   string
		center Vec3
		radius float32
		want   bool
	}{
		{"at target", V3(0, 0, 0), 1, true},
		{"behind eye", V3(0, 0, 10), 1, false},
		{"far right", V3(50, 0, 0), 1, false},
		{"beyond far plane", V3(0, 0, -200), 1, false},
		{"straddles left plane", V3(-5.5, 0, 0), 1, true},
		{"straddles near plane", V3(0, 0, 5), 0.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.SphereVisible(tt.center, tt.radius))
		})
	}
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))
	assert.Len(t, SliceToBytes([]float32{1, 2, 3}), 12)
}
