package analysis

import (
	"github.com/chewxy/math32"

	"github.com/meshlens/meshlens/pkg/mesh"
)

func floatNear(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}

// unitCube returns a closed unit cube [0,1]³ with 8 vertices and 12
// consistently outward-wound triangles: surface area 6, volume 1.
func unitCube() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []float32{
			0, 0, 0, // 0
			1, 0, 0, // 1
			1, 1, 0, // 2
			0, 1, 0, // 3
			0, 0, 1, // 4
			1, 0, 1, // 5
			1, 1, 1, // 6
			0, 1, 1, // 7
		},
		Indices: []uint32{
			0, 2, 1, 0, 3, 2, // bottom
			4, 5, 6, 4, 6, 7, // top
			0, 1, 5, 0, 5, 4, // front
			3, 7, 6, 3, 6, 2, // back
			0, 4, 7, 0, 7, 3, // left
			1, 2, 6, 1, 6, 5, // right
		},
	}
}

// tetrahedron returns a closed tetrahedron: 4 vertices, 4 faces, every
// undirected edge shared by exactly two faces.
func tetrahedron() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []float32{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		},
		Indices: []uint32{
			0, 2, 1,
			0, 1, 3,
			0, 3, 2,
			1, 2, 3,
		},
	}
}

// singleTriangle returns one isolated triangle in the z=0 plane.
func singleTriangle() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:  []uint32{0, 1, 2},
	}
}

// triangleField returns n translated copies of a unit right triangle, each
// with its own three vertices. Total area is n * 0.5. Large n pushes the
// face reduction onto the parallel path.
func triangleField(n int) *mesh.Mesh {
	m := &mesh.Mesh{
		Vertices: make([]float32, 0, n*9),
		Indices:  make([]uint32, 0, n*3),
	}
	for i := 0; i < n; i++ {
		dx := float32(i * 2)
		base := uint32(i * 3)
		m.Vertices = append(m.Vertices,
			dx, 0, 0,
			dx+1, 0, 0,
			dx, 1, 0,
		)
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	return m
}
