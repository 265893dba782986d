package loader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

// importedMesh is the geometry of a whole document merged into one indexed list.
type importedMesh struct {
	name     string
	vertices []model.GPUVertex
	indices  []uint32
}

// extractMeshes merges every triangle primitive of the document into one vertex and index
// list. Node transforms are ignored: positions stay in mesh space.
//
// Parameters:
//   - p: a parser holding a loaded document
//   - color: albedo for primitives without COLOR_0
//
// Returns:
//   - importedMesh: the merged geometry, named after the first named mesh
//   - error: error if any primitive cannot be read
func extractMeshes(p *gltfParser, color [3]float32) (importedMesh, error) {
	doc := p.document
	if doc == nil {
		return importedMesh{}, errors.New("no document loaded")
	}

	var out importedMesh
	for mi := range doc.Meshes {
		mesh := &doc.Meshes[mi]
		out.name = common.Coalesce(out.name, mesh.Name)
		for pi := range mesh.Primitives {
			vertices, indices, err := extractPrimitive(p, &mesh.Primitives[pi], color)
			if err != nil {
				return importedMesh{}, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			base := uint32(len(out.vertices))
			for _, idx := range indices {
				out.indices = append(out.indices, base+idx)
			}
			out.vertices = append(out.vertices, vertices...)
		}
	}
	if len(out.indices) == 0 {
		return importedMesh{}, errors.New("document has no triangles")
	}
	return out, nil
}

func extractPrimitive(p *gltfParser, prim *gltfPrimitive, color [3]float32) ([]model.GPUVertex, []uint32, error) {
	if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
		return nil, nil, fmt.Errorf("unsupported primitive mode: %d (only triangles supported)", *prim.Mode)
	}

	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, nil, errors.New("primitive has no POSITION attribute")
	}
	positions, err := p.readVec3Accessor(posAccessor)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read positions: %w", err)
	}

	vertexCount := len(positions)
	vertices := make([]model.GPUVertex, vertexCount)
	for i, pos := range positions {
		vertices[i].Position = pos
		vertices[i].Color = color
	}

	hasNormals := false
	if normalAccessor, ok := prim.Attributes["NORMAL"]; ok {
		normals, err := p.readVec3Accessor(normalAccessor)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read normals: %w", err)
		}
		if len(normals) != vertexCount {
			return nil, nil, fmt.Errorf("%d normals for %d vertices", len(normals), vertexCount)
		}
		for i, n := range normals {
			vertices[i].Normal = n
		}
		hasNormals = true
	}

	if colorAccessor, ok := prim.Attributes["COLOR_0"]; ok {
		colors, err := p.readColorAccessor(colorAccessor)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read colors: %w", err)
		}
		if len(colors) != vertexCount {
			return nil, nil, fmt.Errorf("%d colors for %d vertices", len(colors), vertexCount)
		}
		for i, c := range colors {
			vertices[i].Color = c
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = p.readIndicesAccessor(*prim.Indices)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read indices: %w", err)
		}
		for _, idx := range indices {
			if int(idx) >= vertexCount {
				return nil, nil, fmt.Errorf("index %d out of range for %d vertices", idx, vertexCount)
			}
		}
	} else {
		indices = make([]uint32, vertexCount)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	indices = indices[:len(indices)-len(indices)%3]

	if !hasNormals {
		generateNormals(vertices, indices)
	}
	return vertices, indices, nil
}

// generateNormals computes smooth vertex normals when the file has no NORMAL attribute.
// Face normals are accumulated area-weighted onto their vertices and normalized; vertices
// touched by no triangle get +Y.
func generateNormals(vertices []model.GPUVertex, indices []uint32) {
	accum := make([]common.Vec3, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0 := common.Vec3(vertices[i0].Position)
		edge1 := common.Vec3(vertices[i1].Position).Sub(p0)
		edge2 := common.Vec3(vertices[i2].Position).Sub(p0)
		face := edge1.Cross(edge2)

		accum[i0] = accum[i0].Add(face)
		accum[i1] = accum[i1].Add(face)
		accum[i2] = accum[i2].Add(face)
	}

	for i, n := range accum {
		if n.Length() < 1e-6 {
			vertices[i].Normal = [3]float32{0, 1, 0}
			continue
		}
		vertices[i].Normal = n.Normalize()
	}
}
