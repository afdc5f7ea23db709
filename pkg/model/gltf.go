package model

import (
	"os"

	"github.com/qmuntal/gltf"
)

// Document adapts a parsed GLTF/GLB document to the Reader capability.
// Only accessor metadata is consulted; buffer payloads are never decoded.
type Document struct {
	doc      *gltf.Document
	fileSize int64
}

// Open parses the GLTF/GLB container at path. Parse errors are returned
// unchanged.
func Open(path string) (*Document, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	d := &Document{doc: doc}
	if fi, err := os.Stat(path); err == nil {
		d.fileSize = fi.Size()
	}
	return d, nil
}

// FromDocument wraps an already-parsed document, e.g. one built in memory.
func FromDocument(doc *gltf.Document) *Document {
	return &Document{doc: doc}
}

// FileSize returns the container size in bytes, or 0 for in-memory
// documents.
func (d *Document) FileSize() int64 {
	return d.fileSize
}

// Meshes implements Reader.
func (d *Document) Meshes() ([]MeshInfo, error) {
	meshes := make([]MeshInfo, 0, len(d.doc.Meshes))
	for _, m := range d.doc.Meshes {
		meshes = append(meshes, &gltfMesh{doc: d.doc, mesh: m})
	}
	return meshes, nil
}

// Materials implements Reader.
func (d *Document) Materials() ([]Material, error) {
	materials := make([]Material, 0, len(d.doc.Materials))
	for _, m := range d.doc.Materials {
		materials = append(materials, &gltfMaterial{mat: m})
	}
	return materials, nil
}

// AnalyzeFile opens and analyzes a GLTF/GLB container in one step,
// stamping the file size onto the result.
func AnalyzeFile(path string) (*Analysis, error) {
	doc, err := Open(path)
	if err != nil {
		return nil, err
	}
	a, err := Analyze(doc)
	if err != nil {
		return nil, err
	}
	a.FileSizeBytes = doc.FileSize()
	return a, nil
}

type gltfMesh struct {
	doc  *gltf.Document
	mesh *gltf.Mesh
}

func (m *gltfMesh) Primitives() []Primitive {
	prims := make([]Primitive, 0, len(m.mesh.Primitives))
	for _, p := range m.mesh.Primitives {
		prims = append(prims, &gltfPrimitive{doc: m.doc, prim: p})
	}
	return prims
}

type gltfPrimitive struct {
	doc  *gltf.Document
	prim *gltf.Primitive
}

// positionAccessor resolves the POSITION attribute, or nil when absent or
// dangling.
func (p *gltfPrimitive) positionAccessor() *gltf.Accessor {
	idx, ok := p.prim.Attributes[gltf.POSITION]
	if !ok || int(idx) >= len(p.doc.Accessors) {
		return nil
	}
	return p.doc.Accessors[idx]
}

func (p *gltfPrimitive) PositionCount() int {
	acc := p.positionAccessor()
	if acc == nil {
		return 0
	}
	return int(acc.Count)
}

func (p *gltfPrimitive) PositionBounds() (bmin, bmax [3]float32, ok bool) {
	acc := p.positionAccessor()
	if acc == nil || len(acc.Min) < 3 || len(acc.Max) < 3 {
		return bmin, bmax, false
	}
	copy(bmin[:], acc.Min[:3])
	copy(bmax[:], acc.Max[:3])
	return bmin, bmax, true
}

func (p *gltfPrimitive) IndexCount() (int, bool) {
	if p.prim.Indices == nil || int(*p.prim.Indices) >= len(p.doc.Accessors) {
		return 0, false
	}
	return int(p.doc.Accessors[*p.prim.Indices].Count), true
}

func (p *gltfPrimitive) HasNormals() bool {
	_, ok := p.prim.Attributes[gltf.NORMAL]
	return ok
}

func (p *gltfPrimitive) HasTexCoords() bool {
	_, ok := p.prim.Attributes[gltf.TEXCOORD_0]
	return ok
}

type gltfMaterial struct {
	mat *gltf.Material
}

func (m *gltfMaterial) HasBaseColorTexture() bool {
	return m.mat.PBRMetallicRoughness != nil && m.mat.PBRMetallicRoughness.BaseColorTexture != nil
}

func (m *gltfMaterial) HasMetallicRoughnessTexture() bool {
	return m.mat.PBRMetallicRoughness != nil && m.mat.PBRMetallicRoughness.MetallicRoughnessTexture != nil
}

func (m *gltfMaterial) HasNormalTexture() bool {
	return m.mat.NormalTexture != nil
}

func (m *gltfMaterial) HasOcclusionTexture() bool {
	return m.mat.OcclusionTexture != nil
}

func (m *gltfMaterial) HasEmissiveTexture() bool {
	return m.mat.EmissiveTexture != nil
}
