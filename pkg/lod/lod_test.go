package lod

import (
	"errors"
	"fmt"
	"testing"

	"github.com/meshlens/meshlens/pkg/mesh"
)

// gridMesh returns a flat mesh with the given vertex and face counts. The
// geometry is nonsense; planning only reads the counts.
func gridMesh(vertices, faces int) *mesh.Mesh {
	m := &mesh.Mesh{
		Vertices: make([]float32, vertices*3),
		Indices:  make([]uint32, faces*3),
	}
	return m
}

func TestPlanLevelsValidation(t *testing.T) {
	tests := []struct {
		name string
		mesh *mesh.Mesh
	}{
		{"empty vertices", &mesh.Mesh{Indices: []uint32{0, 1, 2}}},
		{"empty indices", &mesh.Mesh{Vertices: []float32{0, 0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanLevels(tt.mesh, DefaultRatios)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var verr *mesh.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("error type = %T, want *mesh.ValidationError", err)
			}
		})
	}
}

func TestPlanLevelsTargets(t *testing.T) {
	tests := []struct {
		vertices, faces int
		ratio           float32
		wantVertices    int
		wantFaces       int
	}{
		{300, 100, 0.5, 150, 50},
		{300, 100, 0.75, 225, 75},
		{300, 100, 0.1, 30, 10},
		// Rounding, not truncation.
		{10, 10, 0.25, 3, 3},
		{7, 7, 0.5, 4, 4},
		// Floors: never below 3 vertices or 1 face.
		{4, 2, 0.1, 3, 1},
		{3, 1, 0.01, 3, 1},
	}
	for _, tt := range tests {
		name := fmt.Sprintf("v%d f%d r%v", tt.vertices, tt.faces, tt.ratio)
		t.Run(name, func(t *testing.T) {
			plan, err := PlanLevels(gridMesh(tt.vertices, tt.faces), []float32{tt.ratio})
			if err != nil {
				t.Fatalf("PlanLevels failed: %v", err)
			}
			if len(plan.Levels) != 1 {
				t.Fatalf("len(Levels) = %d, want 1", len(plan.Levels))
			}
			lv := plan.Levels[0]
			if lv.TargetVertexCount != tt.wantVertices {
				t.Errorf("TargetVertexCount = %d, want %d", lv.TargetVertexCount, tt.wantVertices)
			}
			if lv.TargetFaceCount != tt.wantFaces {
				t.Errorf("TargetFaceCount = %d, want %d", lv.TargetFaceCount, tt.wantFaces)
			}
		})
	}
}

func TestPlanLevelsOrderAndOriginals(t *testing.T) {
	m := gridMesh(300, 100)
	ratios := []float32{0.1, 0.75, 0.5} // deliberately not sorted
	plan, err := PlanLevels(m, ratios)
	if err != nil {
		t.Fatalf("PlanLevels failed: %v", err)
	}

	if plan.OriginalVertexCount != 300 {
		t.Errorf("OriginalVertexCount = %d, want 300", plan.OriginalVertexCount)
	}
	if plan.OriginalFaceCount != 100 {
		t.Errorf("OriginalFaceCount = %d, want 100", plan.OriginalFaceCount)
	}
	for i, lv := range plan.Levels {
		if lv.Index != i {
			t.Errorf("Levels[%d].Index = %d, want %d", i, lv.Index, i)
		}
		if lv.Ratio != ratios[i] {
			t.Errorf("Levels[%d].Ratio = %v, want %v (input order preserved)", i, lv.Ratio, ratios[i])
		}
	}
}

func TestPlanLevelsEmptyRatios(t *testing.T) {
	plan, err := PlanLevels(gridMesh(10, 4), nil)
	if err != nil {
		t.Fatalf("PlanLevels failed: %v", err)
	}
	if len(plan.Levels) != 0 {
		t.Errorf("len(Levels) = %d, want 0", len(plan.Levels))
	}
}

// halvingSimplifier halves the face count, ignoring the requested target, to
// exercise the achieved-vs-planned distinction.
type halvingSimplifier struct {
	calls []int
}

func (h *halvingSimplifier) Simplify(m *mesh.Mesh, targetFaces int) (*mesh.Mesh, error) {
	h.calls = append(h.calls, targetFaces)
	faces := m.TriangleCount() / 2
	return gridMesh(faces*3, faces), nil
}

var _ Simplifier = (*halvingSimplifier)(nil)

type failingSimplifier struct{}

func (failingSimplifier) Simplify(*mesh.Mesh, int) (*mesh.Mesh, error) {
	return nil, errors.New("collapse queue exhausted")
}

func TestRealize(t *testing.T) {
	m := gridMesh(300, 100)
	plan, err := PlanLevels(m, []float32{0.5, 0.25})
	if err != nil {
		t.Fatalf("PlanLevels failed: %v", err)
	}

	simp := &halvingSimplifier{}
	realized, err := Realize(m, plan, simp)
	if err != nil {
		t.Fatalf("Realize failed: %v", err)
	}
	if len(realized) != 2 {
		t.Fatalf("len(realized) = %d, want 2", len(realized))
	}

	// Each level is simplified from the original, not the previous level.
	if simp.calls[0] != 50 || simp.calls[1] != 25 {
		t.Errorf("simplifier targets = %v, want [50 25]", simp.calls)
	}
	for i, rl := range realized {
		if rl.AchievedFaceCount != 50 {
			t.Errorf("realized[%d].AchievedFaceCount = %d, want 50", i, rl.AchievedFaceCount)
		}
		if rl.Mesh == nil {
			t.Errorf("realized[%d].Mesh is nil", i)
		}
	}
}

func TestRealizeSimplifierError(t *testing.T) {
	m := gridMesh(30, 10)
	plan, err := PlanLevels(m, []float32{0.5})
	if err != nil {
		t.Fatalf("PlanLevels failed: %v", err)
	}
	if _, err := Realize(m, plan, failingSimplifier{}); err == nil {
		t.Fatal("expected error from failing simplifier")
	}
}
