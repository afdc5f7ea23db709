package rules

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/meshlens/meshlens/pkg/geom"
)

// registerBuiltins installs the check builtins into a zygomys environment.
// Each builtin reads the report, records issues on the collector, and
// returns a boolean so checks can be composed in user expressions.
//
// Source must be run through preprocess() first so kebab-case names reach
// the interpreter in underscore form.
func registerBuiltins(env *zygo.Zlisp, rep *Report, col *collector) {

	// (require-watertight)
	env.AddFunction("require_watertight", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if rep.Connectivity == nil {
			return failMissing(col, CategoryTopology, "connectivity")
		}
		ok := rep.Connectivity.IsWatertight
		if !ok {
			col.add(Issue{
				Category: CategoryTopology,
				Severity: SeverityError,
				Code:     "not_watertight",
				Message:  "mesh has boundary or non-manifold edges",
			})
		}
		return &zygo.SexpBool{Val: ok}, nil
	})

	// (require-manifold) — coarse check: no degenerate faces.
	env.AddFunction("require_manifold", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if rep.Stats == nil {
			return failMissing(col, CategoryGeometry, "stats")
		}
		ok := rep.Stats.IsManifold
		if !ok {
			col.add(Issue{
				Category: CategoryGeometry,
				Severity: SeverityError,
				Code:     "not_manifold",
				Message:  "mesh contains degenerate faces",
			})
		}
		return &zygo.SexpBool{Val: ok}, nil
	})

	// (max-face-count n)
	env.AddFunction("max_face_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		limit, err := oneInt(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if rep.Stats == nil {
			return failMissing(col, CategoryPerformance, "stats")
		}
		ok := rep.Stats.FaceCount <= limit
		if !ok {
			col.add(Issue{
				Category: CategoryPerformance,
				Severity: SeverityError,
				Code:     "face_count_exceeded",
				Message:  fmt.Sprintf("face count %d exceeds limit %d", rep.Stats.FaceCount, limit),
			})
		}
		return &zygo.SexpBool{Val: ok}, nil
	})

	// (max-vertex-count n)
	env.AddFunction("max_vertex_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		limit, err := oneInt(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if rep.Stats == nil {
			return failMissing(col, CategoryPerformance, "stats")
		}
		ok := rep.Stats.VertexCount <= limit
		if !ok {
			col.add(Issue{
				Category: CategoryPerformance,
				Severity: SeverityError,
				Code:     "vertex_count_exceeded",
				Message:  fmt.Sprintf("vertex count %d exceeds limit %d", rep.Stats.VertexCount, limit),
			})
		}
		return &zygo.SexpBool{Val: ok}, nil
	})

	// (max-bounds-extent x) — longest box axis must not exceed x.
	env.AddFunction("max_bounds_extent", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		limit, err := oneFloat(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		box := reportBounds(rep)
		if box == nil {
			return failMissing(col, CategoryGeometry, "bounds")
		}
		ext := box.Extent()
		longest := float64(ext.X)
		if float64(ext.Y) > longest {
			longest = float64(ext.Y)
		}
		if float64(ext.Z) > longest {
			longest = float64(ext.Z)
		}
		ok := longest <= limit
		if !ok {
			col.add(Issue{
				Category: CategoryGeometry,
				Severity: SeverityError,
				Code:     "bounds_exceeded",
				Message:  fmt.Sprintf("longest bounding-box axis %.3f exceeds limit %.3f", longest, limit),
			})
		}
		return &zygo.SexpBool{Val: ok}, nil
	})

	// (warn-if-components n) — advisory when the mesh splits into more
	// than n connected components.
	env.AddFunction("warn_if_components", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		limit, err := oneInt(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if rep.Connectivity == nil {
			return failMissing(col, CategoryTopology, "connectivity")
		}
		ok := rep.Connectivity.ComponentCount <= limit
		if !ok {
			col.add(Issue{
				Category: CategoryTopology,
				Severity: SeverityWarning,
				Code:     "many_components",
				Message:  fmt.Sprintf("mesh has %d connected components (limit %d)", rep.Connectivity.ComponentCount, limit),
			})
		}
		return &zygo.SexpBool{Val: ok}, nil
	})

	// (require-normals), (require-uvs), (require-textures) — model-level
	// attribute presence.
	presence := []struct {
		fname, code, what string
		has               func() (bool, bool) // value, section present
	}{
		{"require_normals", "missing_normals", "normals", func() (bool, bool) {
			if rep.Model == nil {
				return false, false
			}
			return rep.Model.HasNormals, true
		}},
		{"require_uvs", "missing_uvs", "texture coordinates", func() (bool, bool) {
			if rep.Model == nil {
				return false, false
			}
			return rep.Model.HasUVs, true
		}},
		{"require_textures", "missing_textures", "textures", func() (bool, bool) {
			if rep.Model == nil {
				return false, false
			}
			return rep.Model.HasTextures, true
		}},
	}
	for _, pr := range presence {
		pr := pr
		env.AddFunction(pr.fname, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			ok, present := pr.has()
			if !present {
				return failMissing(col, CategoryMaterials, "model")
			}
			if !ok {
				col.add(Issue{
					Category: CategoryMaterials,
					Severity: SeverityError,
					Code:     pr.code,
					Message:  "asset has no " + pr.what,
				})
			}
			return &zygo.SexpBool{Val: ok}, nil
		})
	}

	// (warn "message") and (fail "message") — user-authored issues.
	env.AddFunction("warn", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		msg, err := oneString(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		col.add(Issue{Category: CategoryGeometry, Severity: SeverityWarning, Code: "user_warning", Message: msg})
		return zygo.SexpNull, nil
	})
	env.AddFunction("fail", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		msg, err := oneString(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		col.add(Issue{Category: CategoryGeometry, Severity: SeverityError, Code: "user_error", Message: msg})
		return zygo.SexpNull, nil
	})

	// Read-only accessors for use in user expressions.
	env.AddFunction("face_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if rep.Stats == nil {
			return &zygo.SexpInt{Val: 0}, nil
		}
		return &zygo.SexpInt{Val: int64(rep.Stats.FaceCount)}, nil
	})
	env.AddFunction("vertex_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if rep.Stats == nil {
			return &zygo.SexpInt{Val: 0}, nil
		}
		return &zygo.SexpInt{Val: int64(rep.Stats.VertexCount)}, nil
	})
	env.AddFunction("component_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if rep.Connectivity == nil {
			return &zygo.SexpInt{Val: 0}, nil
		}
		return &zygo.SexpInt{Val: int64(rep.Connectivity.ComponentCount)}, nil
	})
	env.AddFunction("surface_area", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if rep.Stats == nil {
			return &zygo.SexpFloat{Val: 0}, nil
		}
		return &zygo.SexpFloat{Val: float64(rep.Stats.SurfaceArea)}, nil
	})
	env.AddFunction("volume", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if rep.Stats == nil {
			return &zygo.SexpFloat{Val: 0}, nil
		}
		return &zygo.SexpFloat{Val: float64(rep.Stats.Volume)}, nil
	})
}

// reportBounds picks the best available bounding box: the explicit topology
// bounds when set, otherwise the model analysis box.
func reportBounds(rep *Report) *geom.Bounds {
	if rep.Bounds != nil {
		return rep.Bounds
	}
	if rep.Model != nil {
		return &rep.Model.BoundingBox
	}
	return nil
}

// failMissing records a missing-data error and returns false to the script.
func failMissing(col *collector, cat Category, section string) (zygo.Sexp, error) {
	col.add(Issue{
		Category: cat,
		Severity: SeverityError,
		Code:     "missing_data",
		Message:  "no " + section + " data in report",
	})
	return &zygo.SexpBool{Val: false}, nil
}

// oneInt extracts a single integer argument.
func oneInt(name string, args []zygo.Sexp) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
	}
	if v, ok := args[0].(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("%s: expected integer, got %T", name, args[0])
}

// oneFloat extracts a single numeric argument, accepting ints too.
func oneFloat(name string, args []zygo.Sexp) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
	}
	switch v := args[0].(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("%s: expected number, got %T", name, args[0])
}

// oneString extracts a single string argument.
func oneString(name string, args []zygo.Sexp) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
	}
	if v, ok := args[0].(*zygo.SexpStr); ok {
		return v.S, nil
	}
	return "", fmt.Errorf("%s: expected string, got %T", name, args[0])
}
