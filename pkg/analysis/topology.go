package analysis

import (
	"github.com/meshlens/meshlens/pkg/geom"
	"github.com/meshlens/meshlens/pkg/mesh"
)

// Topology answers structural queries about a mesh: duplicate vertices,
// spatial bounds, connected components, and watertightness. The queries are
// independent; construction does no work.
type Topology struct {
	m *mesh.Mesh
}

// NewTopology creates a Topology over the given mesh.
func NewTopology(m *mesh.Mesh) *Topology {
	return &Topology{m: m}
}

// ConnectivityResult bundles the three topology queries run with
// AnalyzeTopology.
type ConnectivityResult struct {
	UniqueVertexCount int  `json:"uniqueVertexCount"`
	ComponentCount    int  `json:"componentCount"`
	IsWatertight      bool `json:"isWatertight"`
}

// AnalyzeTopology runs all topology queries in one pass. Unlike the stats
// and LOD entry points, empty input is not an error here: an empty mesh
// yields zero counts and a false watertight flag.
func AnalyzeTopology(m *mesh.Mesh, epsilon float32) *ConnectivityResult {
	t := NewTopology(m)
	return &ConnectivityResult{
		UniqueVertexCount: t.CountUniqueVertices(epsilon),
		ComponentCount:    t.CountConnectedComponents(),
		IsWatertight:      t.IsWatertight(),
	}
}

// CountUniqueVertices counts vertices after merging duplicates that lie
// within epsilon of each other.
//
// The clustering is greedy and order-sensitive by contract: vertices are
// scanned in index order, each not-yet-claimed vertex becomes the
// representative of a new cluster, and every later unclaimed vertex within
// epsilon of that representative (direct distance only, no transitive
// chaining) is claimed by it. The scan is quadratic; at inspector scale the
// predictable clustering matters more than speed.
func (t *Topology) CountUniqueVertices(epsilon float32) int {
	vertexCount := t.m.VertexCount()
	if vertexCount == 0 {
		return 0
	}

	epsilonSq := epsilon * epsilon
	claimed := make([]bool, vertexCount)
	unique := 0

	for i := 0; i < vertexCount; i++ {
		if claimed[i] {
			continue
		}
		unique++
		vi := t.m.Vertex(i)
		for j := i + 1; j < vertexCount; j++ {
			if claimed[j] {
				continue
			}
			if vi.DistanceSquared(t.m.Vertex(j)) < epsilonSq {
				claimed[j] = true
			}
		}
	}
	return unique
}

// CalculateBounds returns the min and max corners of the mesh's axis-aligned
// bounding box, computed as a parallel reduction. An empty mesh returns
// zero corners.
func (t *Topology) CalculateBounds() (bmin, bmax geom.Vec3) {
	vertexCount := t.m.VertexCount()
	if vertexCount == 0 {
		return geom.Vec3{}, geom.Vec3{}
	}

	partials := make([]geom.Bounds, maxWorkers())
	for i := range partials {
		partials[i] = geom.NewBounds()
	}
	used := forEachChunk(vertexCount, func(worker, start, end int) {
		for i := start; i < end; i++ {
			partials[worker].Expand(t.m.Vertex(i))
		}
	})

	box := geom.NewBounds()
	for w := 0; w < used; w++ {
		box.Union(partials[w])
	}
	return box.Min, box.Max
}

// CountConnectedComponents returns the number of connected components in
// the mesh under face adjacency, using union-find over the vertex set.
//
// For each in-range face only the edges (i0,i1) and (i1,i2) are unioned;
// transitivity closes the triangle, so (i2,i0) adds nothing. Faces with
// out-of-range indices are skipped. Isolated vertices that appear in no
// face each count as their own component. An empty index list returns 0.
func (t *Topology) CountConnectedComponents() int {
	if len(t.m.Indices) == 0 {
		return 0
	}

	vertexCount := t.m.VertexCount()
	ds := newDisjointSet(vertexCount)

	faceCount := t.m.TriangleCount()
	for f := 0; f < faceCount; f++ {
		i0, i1, i2 := t.m.Face(f)
		if int(i0) >= vertexCount || int(i1) >= vertexCount || int(i2) >= vertexCount {
			continue
		}
		ds.union(int(i0), int(i1))
		ds.union(int(i1), int(i2))
	}

	roots := make(map[int]struct{})
	for i := 0; i < vertexCount; i++ {
		roots[ds.find(i)] = struct{}{}
	}
	return len(roots)
}

// edgeKey is an undirected edge, normalized so the smaller index is first.
type edgeKey struct {
	a, b uint32
}

func makeEdgeKey(a, b uint32) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// IsWatertight reports whether every undirected edge in the mesh is shared
// by exactly two faces: no boundary edges, no non-manifold edges.
//
// Winding is not checked: two faces sharing an edge with the same (rather
// than opposite) orientation still count as watertight here. An empty index
// list returns false.
func (t *Topology) IsWatertight() bool {
	if len(t.m.Indices) == 0 {
		return false
	}

	faceCount := t.m.TriangleCount()
	tally := make(map[edgeKey]int, faceCount*3/2)

	for f := 0; f < faceCount; f++ {
		i0, i1, i2 := t.m.Face(f)
		tally[makeEdgeKey(i0, i1)]++
		tally[makeEdgeKey(i1, i2)]++
		tally[makeEdgeKey(i2, i0)]++
	}

	for _, count := range tally {
		if count != 2 {
			return false
		}
	}
	return true
}

// disjointSet is a union-find structure over integer indices.
type disjointSet struct {
	parent []int
}

func newDisjointSet(n int) *disjointSet {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &disjointSet{parent: parent}
}

// find returns the root of i with path compression. The walk is iterative
// (find the root, then re-walk to compress) so deep chains on large meshes
// cannot overflow the stack.
func (d *disjointSet) find(i int) int {
	root := i
	for d.parent[root] != root {
		root = d.parent[root]
	}
	for d.parent[i] != root {
		d.parent[i], i = root, d.parent[i]
	}
	return root
}

func (d *disjointSet) union(i, j int) {
	ri, rj := d.find(i), d.find(j)
	if ri != rj {
		d.parent[ri] = rj
	}
}
