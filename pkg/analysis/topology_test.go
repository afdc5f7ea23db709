package analysis

import (
	"testing"

	"github.com/meshlens/meshlens/pkg/mesh"
)

func TestCountUniqueVertices(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		epsilon  float32
		want     int
	}{
		{"empty", nil, 0.01, 0},
		{"single", []float32{0, 0, 0}, 0.01, 1},
		{
			"two within epsilon",
			[]float32{0, 0, 0, 0.001, 0, 0},
			0.01, 1,
		},
		{
			// Distance exactly epsilon: the compare is strict, so the
			// vertices stay distinct.
			"two at exactly epsilon",
			[]float32{0, 0, 0, 0.5, 0, 0},
			0.5, 2,
		},
		{
			"two beyond epsilon",
			[]float32{0, 0, 0, 1, 0, 0},
			0.01, 2,
		},
		{
			// v1 is within epsilon of v0; v2 is within epsilon of v1 but
			// not of v0. No transitive chaining: v2 starts its own cluster.
			"no transitive chaining",
			[]float32{0, 0, 0, 0.009, 0, 0, 0.018, 0, 0},
			0.01, 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topo := NewTopology(&mesh.Mesh{Vertices: tt.vertices})
			if got := topo.CountUniqueVertices(tt.epsilon); got != tt.want {
				t.Errorf("CountUniqueVertices(%v) = %d, want %d", tt.epsilon, got, tt.want)
			}
		})
	}
}

func TestCalculateBounds(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		topo := NewTopology(&mesh.Mesh{})
		bmin, bmax := topo.CalculateBounds()
		if bmin.X != 0 || bmin.Y != 0 || bmin.Z != 0 || bmax.X != 0 || bmax.Y != 0 || bmax.Z != 0 {
			t.Errorf("empty mesh bounds = %v..%v, want zeros", bmin, bmax)
		}
	})

	t.Run("triangle", func(t *testing.T) {
		topo := NewTopology(singleTriangle())
		bmin, bmax := topo.CalculateBounds()
		if bmin.X != 0 || bmin.Y != 0 || bmin.Z != 0 {
			t.Errorf("min = %v, want origin", bmin)
		}
		if bmax.X != 1 || bmax.Y != 1 || bmax.Z != 0 {
			t.Errorf("max = %v, want {1 1 0}", bmax)
		}
	})

	t.Run("large mesh parallel reduction", func(t *testing.T) {
		const n = 5000
		topo := NewTopology(triangleField(n))
		bmin, bmax := topo.CalculateBounds()
		if bmin.X != 0 || bmin.Y != 0 {
			t.Errorf("min = %v, want {0 0 0}", bmin)
		}
		wantMaxX := float32((n-1)*2 + 1)
		if bmax.X != wantMaxX || bmax.Y != 1 {
			t.Errorf("max = %v, want {%v 1 0}", bmax, wantMaxX)
		}
	})
}

func TestCountConnectedComponents(t *testing.T) {
	tests := []struct {
		name string
		mesh *mesh.Mesh
		want int
	}{
		{"empty indices", &mesh.Mesh{Vertices: []float32{0, 0, 0}}, 0},
		{"single triangle", singleTriangle(), 1},
		{"tetrahedron", tetrahedron(), 1},
		{"cube", unitCube(), 1},
		{
			"two disjoint triangles",
			&mesh.Mesh{
				Vertices: []float32{
					0, 0, 0, 1, 0, 0, 0, 1, 0,
					5, 0, 0, 6, 0, 0, 5, 1, 0,
				},
				Indices: []uint32{0, 1, 2, 3, 4, 5},
			},
			2,
		},
		{
			// The isolated fourth vertex appears in no face and counts as
			// its own component.
			"isolated vertex",
			&mesh.Mesh{
				Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 9, 9, 9},
				Indices:  []uint32{0, 1, 2},
			},
			2,
		},
		{
			// The out-of-range face is skipped; its valid indices union
			// nothing.
			"out-of-range face skipped",
			&mesh.Mesh{
				Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
				Indices:  []uint32{0, 1, 2, 0, 1, 99},
			},
			1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topo := NewTopology(tt.mesh)
			if got := topo.CountConnectedComponents(); got != tt.want {
				t.Errorf("CountConnectedComponents() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsWatertight(t *testing.T) {
	tests := []struct {
		name string
		mesh *mesh.Mesh
		want bool
	}{
		{"empty indices", &mesh.Mesh{Vertices: []float32{0, 0, 0}}, false},
		{"single triangle", singleTriangle(), false},
		{"tetrahedron", tetrahedron(), true},
		{"cube", unitCube(), true},
		{
			// Removing one face of the tetrahedron opens three boundary
			// edges.
			"tetrahedron with missing face",
			&mesh.Mesh{
				Vertices: tetrahedron().Vertices,
				Indices:  tetrahedron().Indices[:9],
			},
			false,
		},
		{
			// Duplicating a face makes its edges occur 3 and 4 times.
			"tetrahedron with doubled face",
			&mesh.Mesh{
				Vertices: tetrahedron().Vertices,
				Indices:  append(tetrahedron().Indices, 0, 2, 1),
			},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topo := NewTopology(tt.mesh)
			if got := topo.IsWatertight(); got != tt.want {
				t.Errorf("IsWatertight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeTopology(t *testing.T) {
	res := AnalyzeTopology(tetrahedron(), 1e-5)
	if res.UniqueVertexCount != 4 {
		t.Errorf("UniqueVertexCount = %d, want 4", res.UniqueVertexCount)
	}
	if res.ComponentCount != 1 {
		t.Errorf("ComponentCount = %d, want 1", res.ComponentCount)
	}
	if !res.IsWatertight {
		t.Error("IsWatertight = false for tetrahedron")
	}

	empty := AnalyzeTopology(&mesh.Mesh{}, 1e-5)
	if empty.UniqueVertexCount != 0 || empty.ComponentCount != 0 || empty.IsWatertight {
		t.Errorf("empty mesh result = %+v, want zeros and false", empty)
	}
}

func TestDisjointSetPathCompression(t *testing.T) {
	// Build a long chain and confirm find flattens it without recursion.
	const n = 100000
	ds := newDisjointSet(n)
	for i := 1; i < n; i++ {
		ds.parent[i] = i - 1
	}
	if root := ds.find(n - 1); root != 0 {
		t.Fatalf("find = %d, want 0", root)
	}
	// After compression every node on the walked path points at the root.
	if ds.parent[n-1] != 0 || ds.parent[n/2] != 0 {
		t.Error("path not compressed")
	}
}
