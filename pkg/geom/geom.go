// Package geom provides the scalar and vector primitives used by the mesh
// analyzers: triangle measures, signed tetrahedron volumes, and a
// bounding-box aggregator safe for parallel reduction.
//
// All arithmetic is float32 end to end, matching the flat vertex buffers the
// rest of the system carries. Malformed input yields degenerate numeric
// results (zero, NaN propagation), never a fault.
package geom

import "github.com/chewxy/math32"

// Vec3 is a point or vector in 3D space.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the Euclidean length of the vector.
func (a Vec3) Length() float32 {
	return math32.Sqrt(a.Dot(a))
}

// DistanceSquared returns the squared Euclidean distance between two points.
// Used by epsilon clustering, which compares against epsilon² to avoid the
// square root in the inner loop.
func (a Vec3) DistanceSquared(b Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}

// TriangleArea returns the area of the triangle (v0, v1, v2):
// half the magnitude of (v1-v0) × (v2-v0). Degenerate triangles yield 0.
func TriangleArea(v0, v1, v2 Vec3) float32 {
	return v1.Sub(v0).Cross(v2.Sub(v0)).Length() / 2
}

// SignedTetrahedronVolume returns the signed volume of the tetrahedron formed
// by the triangle (v0, v1, v2) and the origin: v0 · (v1 × v2) / 6.
//
// Summed over a closed, consistently wound mesh this yields the enclosed
// volume via the divergence theorem. On open or inconsistently wound meshes
// the sum is numerically well-defined but not physically meaningful; callers
// should gate on a watertightness check before trusting it.
func SignedTetrahedronVolume(v0, v1, v2 Vec3) float32 {
	return v0.Dot(v1.Cross(v2)) / 6
}

// IsDegenerate reports whether a face is degenerate by construction:
// any two of its three vertex indices are equal, giving zero area.
func IsDegenerate(i0, i1, i2 uint32) bool {
	return i0 == i1 || i1 == i2 || i0 == i2
}
