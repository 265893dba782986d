package model

func v(pos, color, normal [3]float32) GPUVertex {
	return GPUVertex{Position: pos, Color: color, Normal: normal}
}

// Pyramid returns a square-based pyramid spanning [-0.5, 0.5] in X/Z and [-0.5, 1] in Y.
// Each face has its own vertices with per-corner colors and a shared, unnormalized
// face normal; the fragment stage re-normalizes it.
func Pyramid() Model {
	front := [3]float32{0, 0.5, 1}
	right := [3]float32{1, 0.5, 0}
	back := [3]float32{0, 0.5, -1}
	left := [3]float32{-1, 0.5, 0}
	bottom := [3]float32{0, -1, 0}

	apex := [3]float32{0, 1, 0}
	fl := [3]float32{-0.5, -0.5, 0.5}
	fr := [3]float32{0.5, -0.5, 0.5}
	br := [3]float32{0.5, -0.5, -0.5}
	bl := [3]float32{-0.5, -0.5, -0.5}

	return NewModel(
		WithName("pyramid"),
		WithMaterial(MaterialObject),
		WithVertices(
			v(apex, [3]float32{1, 0, 0}, front),
			v(fl, [3]float32{0, 1, 0}, front),
			v(fr, [3]float32{0, 0, 1}, front),

			v(apex, [3]float32{1, 1, 0}, right),
			v(fr, [3]float32{1, 0, 1}, right),
			v(br, [3]float32{0, 1, 1}, right),

			v(apex, [3]float32{0.5, 0.5, 0.5}, back),
			v(br, [3]float32{0.7, 0.2, 0.3}, back),
			v(bl, [3]float32{0.2, 0.7, 0.3}, back),

			v(apex, [3]float32{0.3, 0.7, 0.5}, left),
			v(bl, [3]float32{0.8, 0.6, 0.2}, left),
			v(fl, [3]float32{0.4, 0.4, 0.8}, left),

			v(fl, [3]float32{0.5, 0.2, 0.7}, bottom),
			v(fr, [3]float32{0.2, 0.5, 0.7}, bottom),
			v(br, [3]float32{0.7, 0.5, 0.2}, bottom),

			v(br, [3]float32{0.7, 0.5, 0.2}, bottom),
			v(bl, [3]float32{0.3, 0.6, 0.1}, bottom),
			v(fl, [3]float32{0.5, 0.2, 0.7}, bottom),
		),
	)
}

// GroundPlane returns a 40x40 plane at y = -1.5 split into three bands along Z, shaded
// in greens. Vertices with red >= 0.3 fail the ground color heuristic, so the plane is
// tagged MaterialGround explicitly.
func GroundPlane() Model {
	up := [3]float32{0, 1, 0}
	const y = -1.5
	return NewModel(
		WithName("ground"),
		WithMaterial(MaterialGround),
		WithVertices(
			v([3]float32{-20, y, -20}, [3]float32{0.2, 0.5, 0.2}, up),
			v([3]float32{20, y, -20}, [3]float32{0.22, 0.55, 0.22}, up),
			v([3]float32{20, y, -10}, [3]float32{0.25, 0.6, 0.25}, up),
			v([3]float32{-20, y, -20}, [3]float32{0.2, 0.5, 0.2}, up),
			v([3]float32{20, y, -10}, [3]float32{0.25, 0.6, 0.25}, up),
			v([3]float32{-20, y, -10}, [3]float32{0.27, 0.65, 0.27}, up),

			v([3]float32{-20, y, -10}, [3]float32{0.25, 0.6, 0.25}, up),
			v([3]float32{20, y, -10}, [3]float32{0.25, 0.6, 0.25}, up),
			v([3]float32{20, y, 10}, [3]float32{0.3, 0.65, 0.3}, up),
			v([3]float32{-20, y, -10}, [3]float32{0.25, 0.6, 0.25}, up),
			v([3]float32{20, y, 10}, [3]float32{0.3, 0.65, 0.3}, up),
			v([3]float32{-20, y, 10}, [3]float32{0.32, 0.7, 0.32}, up),

			v([3]float32{-20, y, 10}, [3]float32{0.3, 0.65, 0.3}, up),
			v([3]float32{20, y, 10}, [3]float32{0.3, 0.65, 0.3}, up),
			v([3]float32{20, y, 20}, [3]float32{0.2, 0.55, 0.2}, up),
			v([3]float32{-20, y, 10}, [3]float32{0.3, 0.65, 0.3}, up),
			v([3]float32{20, y, 20}, [3]float32{0.2, 0.55, 0.2}, up),
			v([3]float32{-20, y, 20}, [3]float32{0.2, 0.5, 0.2}, up),
		),
	)
}

// Triangle returns a single counter-clockwise triangle in the z = 0 plane facing +Z,
// with corners (-0.5, -0.5), (0.5, -0.5) and (0, 0.5) and one color on every vertex.
//
// Parameters:
//   - color: RGB albedo of all three vertices
//   - material: the material tag
//
// Returns:
//   - Model: the triangle
func Triangle(color [3]float32, material Material) Model {
	n := [3]float32{0, 0, 1}
	return NewModel(
		WithName("triangle"),
		WithMaterial(material),
		WithVertices(
			v([3]float32{-0.5, -0.5, 0}, color, n),
			v([3]float32{0.5, -0.5, 0}, color, n),
			v([3]float32{0, 0.5, 0}, color, n),
		),
	)
}

// Quad returns a square of the given half-size in the z = 0 plane facing +Z, split into
// two counter-clockwise triangles sharing four vertices.
func Quad(halfSize float32, color [3]float32, material Material) Model {
	n := [3]float32{0, 0, 1}
	h := halfSize
	return NewModel(
		WithName("quad"),
		WithMaterial(material),
		WithVertices(
			v([3]float32{-h, -h, 0}, color, n),
			v([3]float32{h, -h, 0}, color, n),
			v([3]float32{h, h, 0}, color, n),
			v([3]float32{-h, h, 0}, color, n),
		),
		WithIndices(0, 1, 2, 0, 2, 3),
	)
}
