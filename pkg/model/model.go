// Package model inspects whole 3D asset containers through a reader
// capability, aggregating per-primitive counts, attribute presence flags,
// and spatial bounds into a single analysis record.
//
// The analyzer never touches raw buffer bytes: it relies only on accessor
// metadata (counts and optional min/max bounds), so it stays cheap even for
// assets whose buffers were never loaded.
package model

import (
	"github.com/meshlens/meshlens/pkg/geom"
)

// Primitive is one drawable unit of a mesh.
type Primitive interface {
	// PositionCount returns the number of vertices in the position
	// accessor, or 0 when the primitive has no positions.
	PositionCount() int

	// PositionBounds returns the accessor's declared min/max corners.
	// ok is false when the accessor carries no bounds metadata.
	PositionBounds() (bmin, bmax [3]float32, ok bool)

	// IndexCount returns the number of indices and true when the primitive
	// is indexed, or false for implicit triangle lists.
	IndexCount() (int, bool)

	HasNormals() bool
	HasTexCoords() bool
}

// MeshInfo is a named group of primitives.
type MeshInfo interface {
	Primitives() []Primitive
}

// Material exposes presence flags for the five standard texture slots.
type Material interface {
	HasBaseColorTexture() bool
	HasMetallicRoughnessTexture() bool
	HasNormalTexture() bool
	HasOcclusionTexture() bool
	HasEmissiveTexture() bool
}

// Reader is the container-decoding collaborator. Errors it returns are
// propagated to the caller unchanged, with no added context.
type Reader interface {
	Meshes() ([]MeshInfo, error)
	Materials() ([]Material, error)
}

// Analysis is the aggregate result of inspecting one asset.
type Analysis struct {
	VertexCount   int  `json:"vertexCount"`
	FaceCount     int  `json:"faceCount"`
	MeshCount     int  `json:"meshCount"`
	MaterialCount int  `json:"materialCount"`
	HasTextures   bool `json:"hasTextures"`
	HasNormals    bool `json:"hasNormals"`
	HasUVs        bool `json:"hasUvs"`

	// FileSizeBytes is 0 when the asset was analyzed from memory.
	FileSizeBytes int64 `json:"fileSizeBytes"`

	BoundingBox geom.Bounds `json:"boundingBox"`
	Center      geom.Vec3   `json:"center"`
}

// Analyze walks every mesh primitive and material exposed by the reader.
//
// Face counts come from the index accessor when present; unindexed
// primitives fall back to vertexCount/3, assuming an implicit triangle list
// with no deduplication. When no primitive carries bounds metadata the
// bounding box defaults to the unit cube [-1,-1,-1]–[1,1,1].
func Analyze(r Reader) (*Analysis, error) {
	meshes, err := r.Meshes()
	if err != nil {
		return nil, err
	}
	materials, err := r.Materials()
	if err != nil {
		return nil, err
	}

	a := &Analysis{MeshCount: len(meshes), MaterialCount: len(materials)}
	box := geom.NewBounds()

	for _, mi := range meshes {
		for _, p := range mi.Primitives() {
			positions := p.PositionCount()
			a.VertexCount += positions

			if n, ok := p.IndexCount(); ok {
				a.FaceCount += n / 3
			} else {
				a.FaceCount += positions / 3
			}

			if bmin, bmax, ok := p.PositionBounds(); ok {
				box.Expand(geom.Vec3{X: bmin[0], Y: bmin[1], Z: bmin[2]})
				box.Expand(geom.Vec3{X: bmax[0], Y: bmax[1], Z: bmax[2]})
			}

			a.HasNormals = a.HasNormals || p.HasNormals()
			a.HasUVs = a.HasUVs || p.HasTexCoords()
		}
	}

	for _, m := range materials {
		if m.HasBaseColorTexture() || m.HasMetallicRoughnessTexture() ||
			m.HasNormalTexture() || m.HasOcclusionTexture() || m.HasEmissiveTexture() {
			a.HasTextures = true
			break
		}
	}

	if !box.IsValid() {
		box = geom.UnitBounds()
	}
	a.BoundingBox = box
	a.Center = box.Center()
	return a, nil
}
