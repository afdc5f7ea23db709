// Package analysis implements the mesh inspection engines: aggregate
// statistics over triangle faces and topological queries (vertex
// deduplication, connectivity, watertightness).
//
// Per-face work is embarrassingly parallel and runs as a chunked fork-join
// with commutative/associative combining (sum, OR, min/max). Floating-point
// reduction order is therefore unspecified: results are deterministic only
// up to numeric tolerance, never bit-exact across chunkings.
package analysis

import (
	"github.com/chewxy/math32"

	"github.com/meshlens/meshlens/pkg/geom"
	"github.com/meshlens/meshlens/pkg/mesh"
)

// MeshStats holds aggregate statistics computed in a single pass over a
// mesh. Recomputed fully on each call; never cached.
type MeshStats struct {
	VertexCount int `json:"vertexCount"`
	FaceCount   int `json:"faceCount"`

	// EdgeCount is the closed-manifold estimate 3F/2, not a count of
	// distinct edges. It under- or overstates edges for open meshes.
	EdgeCount int `json:"edgeCount"`

	// IsManifold is a coarse proxy: it only reflects the absence of
	// degenerate faces. Use Topology.IsWatertight for a real edge check.
	IsManifold bool `json:"isManifold"`

	HasDegenerateFaces bool    `json:"hasDegenerateFaces"`
	SurfaceArea        float32 `json:"surfaceArea"`
	Volume             float32 `json:"volume"`
}

// faceAccum is the per-worker reduction state for the face pass.
// All fields combine with commutative/associative operators.
type faceAccum struct {
	area       float32
	volume     float32
	degenerate bool
}

func (a *faceAccum) combine(b faceAccum) {
	a.area += b.area
	a.volume += b.volume
	a.degenerate = a.degenerate || b.degenerate
}

// ComputeStats computes aggregate statistics for the mesh. It fails with a
// *mesh.ValidationError when the vertex or index buffer is empty; all other
// malformed data (out-of-range indices, partial triangles) degrades into
// flags or zero contributions instead of errors.
func ComputeStats(m *mesh.Mesh) (*MeshStats, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	faceCount := m.TriangleCount()
	vertexCount := m.VertexCount()

	partials := make([]faceAccum, maxWorkers())
	used := forEachChunk(faceCount, func(worker, start, end int) {
		partials[worker] = reduceFaces(m, start, end)
	})

	var acc faceAccum
	for w := 0; w < used; w++ {
		acc.combine(partials[w])
	}

	return &MeshStats{
		VertexCount:        vertexCount,
		FaceCount:          faceCount,
		EdgeCount:          faceCount * 3 / 2,
		IsManifold:         !acc.degenerate,
		HasDegenerateFaces: acc.degenerate,
		SurfaceArea:        acc.area,
		Volume:             math32.Abs(acc.volume),
	}, nil
}

// reduceFaces accumulates area, signed volume, and the degeneracy flag over
// the faces in [start, end). A face whose indices run past the vertex buffer
// contributes zero area and volume.
func reduceFaces(m *mesh.Mesh, start, end int) faceAccum {
	vertexCount := m.VertexCount()
	var acc faceAccum

	for f := start; f < end; f++ {
		i0, i1, i2 := m.Face(f)
		if geom.IsDegenerate(i0, i1, i2) {
			acc.degenerate = true
		}
		if int(i0) >= vertexCount || int(i1) >= vertexCount || int(i2) >= vertexCount {
			continue
		}
		v0 := m.Vertex(int(i0))
		v1 := m.Vertex(int(i1))
		v2 := m.Vertex(int(i2))
		acc.area += geom.TriangleArea(v0, v1, v2)
		acc.volume += geom.SignedTetrahedronVolume(v0, v1, v2)
	}
	return acc
}
