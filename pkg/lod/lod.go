// Package lod plans level-of-detail reduction schedules for triangle meshes.
//
// Planning is an estimate only: it computes target vertex and face counts
// per requested ratio without touching mesh topology. Realizing a plan is
// delegated to a Simplifier collaborator, and the achieved counts it reports
// may differ from the planned targets — the planner's numbers are a
// scheduling hint, not a guarantee.
package lod

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/meshlens/meshlens/pkg/mesh"
)

// DefaultRatios is the standard reduction ladder: LOD1 75%, LOD2 50%,
// LOD3 25%, LOD4 10% of the original detail.
var DefaultRatios = []float32{0.75, 0.5, 0.25, 0.1}

// Level is one planned LOD step.
type Level struct {
	Index             int     `json:"level"`
	Ratio             float32 `json:"ratio"`
	TargetVertexCount int     `json:"targetVertexCount"`
	TargetFaceCount   int     `json:"targetFaceCount"`
}

// Plan is an ordered LOD schedule, one level per requested ratio, preserving
// the input ratio order.
type Plan struct {
	OriginalVertexCount int     `json:"originalVertexCount"`
	OriginalFaceCount   int     `json:"originalFaceCount"`
	Levels              []Level `json:"levels"`
}

// PlanLevels computes the LOD schedule for the mesh. It fails with a
// *mesh.ValidationError when the vertex or index buffer is empty. Targets
// are clamped so no level plans fewer than 1 face or 3 vertices.
func PlanLevels(m *mesh.Mesh, ratios []float32) (*Plan, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	vertexCount := m.VertexCount()
	faceCount := m.TriangleCount()

	levels := make([]Level, 0, len(ratios))
	for i, r := range ratios {
		targetFaces := int(math32.Round(float32(faceCount) * r))
		targetVertices := int(math32.Round(float32(vertexCount) * r))
		levels = append(levels, Level{
			Index:             i,
			Ratio:             r,
			TargetVertexCount: max(3, targetVertices),
			TargetFaceCount:   max(1, targetFaces),
		})
	}

	return &Plan{
		OriginalVertexCount: vertexCount,
		OriginalFaceCount:   faceCount,
		Levels:              levels,
	}, nil
}

// Simplifier is the external mesh-simplification collaborator. Given a mesh
// and a target face count it returns a new mesh with vertex and face counts
// at or below the target that approximates the original within the
// implementation's error metric.
type Simplifier interface {
	Simplify(m *mesh.Mesh, targetFaces int) (*mesh.Mesh, error)
}

// RealizedLevel is one executed LOD step: the planned level plus the actual
// reduced mesh and its achieved counts.
type RealizedLevel struct {
	Level
	Mesh                *mesh.Mesh `json:"mesh"`
	AchievedVertexCount int        `json:"achievedVertexCount"`
	AchievedFaceCount   int        `json:"achievedFaceCount"`
}

// Realize executes a plan through a simplifier, one invocation per level
// against the original mesh. Achieved counts come from the meshes the
// simplifier returns, not from the plan.
func Realize(m *mesh.Mesh, p *Plan, s Simplifier) ([]RealizedLevel, error) {
	realized := make([]RealizedLevel, 0, len(p.Levels))
	for _, lv := range p.Levels {
		reduced, err := s.Simplify(m, lv.TargetFaceCount)
		if err != nil {
			return nil, fmt.Errorf("lod: simplify level %d (ratio %.2f): %w", lv.Index, lv.Ratio, err)
		}
		realized = append(realized, RealizedLevel{
			Level:               lv,
			Mesh:                reduced,
			AchievedVertexCount: reduced.VertexCount(),
			AchievedFaceCount:   reduced.TriangleCount(),
		})
	}
	return realized, nil
}
