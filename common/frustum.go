package common

// Plane is the set of points p with Normal·p + Distance = 0.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// Frustum holds the six clip planes of a view-projection matrix, oriented so that the
// positive half-space is inside.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// ExtractFrustum derives frustum planes from a column-major view-projection matrix
// (Gribb/Hartmann). Depth follows WebGPU clip space, so the near plane is row 2 alone
// rather than row 3 + row 2.
//
// Parameters:
//   - viewProj: 16 float32 values (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustum(viewProj []float32) Frustum {
	row := func(i int) Vec4 {
		return Vec4{viewProj[i], viewProj[4+i], viewProj[8+i], viewProj[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	f.Planes[FrustumLeft] = planeFrom(r3.Add(r0))
	f.Planes[FrustumRight] = planeFrom(r3.Add(r0.Scale(-1)))
	f.Planes[FrustumBottom] = planeFrom(r3.Add(r1))
	f.Planes[FrustumTop] = planeFrom(r3.Add(r1.Scale(-1)))
	f.Planes[FrustumNear] = planeFrom(r2)
	f.Planes[FrustumFar] = planeFrom(r3.Add(r2.Scale(-1)))
	return f
}

func planeFrom(v Vec4) Plane {
	p := Plane{Normal: v.XYZ(), Distance: v[3]}
	if l := p.Normal.Length(); l > 0 {
		p.Normal = p.Normal.Scale(1 / l)
		p.Distance /= l
	}
	return p
}

// SphereVisible reports whether a bounding sphere intersects the frustum.
//
// Parameters:
//   - center: sphere center in world space
//   - radius: sphere radius
//
// Returns:
//   - bool: false only when the sphere lies entirely outside one plane
func (f Frustum) SphereVisible(center Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.Normal.Dot(center)+p.Distance < -radius {
			return false
		}
	}
	return true
}
