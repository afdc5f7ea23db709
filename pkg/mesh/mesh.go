// Package mesh defines the triangle mesh value type shared by the analyzers.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z), normals has
// 3 floats per vertex, indices has 3 uint32s per triangle.
package mesh

import "github.com/meshlens/meshlens/pkg/geom"

// Mesh is a triangle mesh. Indices reference vertex positions by offset;
// values must be < VertexCount to be meaningful, but the analyzers tolerate
// and skip out-of-range indices rather than fault.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...] optional
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // optional label for UI display
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns the i-th vertex position. The caller is responsible for
// keeping i < VertexCount.
func (m *Mesh) Vertex(i int) geom.Vec3 {
	return geom.Vec3{
		X: m.Vertices[i*3],
		Y: m.Vertices[i*3+1],
		Z: m.Vertices[i*3+2],
	}
}

// Face returns the three vertex indices of the i-th triangle.
func (m *Mesh) Face(i int) (i0, i1, i2 uint32) {
	return m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
}
