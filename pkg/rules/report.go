// Package rules evaluates user-written acceptance checks against mesh
// inspection results. Checks are small Lisp programs run in a sandboxed
// zygomys environment with a hard timeout; builtins like
// (require-watertight) and (max-face-count 10000) read the report and
// record categorized issues.
package rules

import (
	"github.com/meshlens/meshlens/pkg/analysis"
	"github.com/meshlens/meshlens/pkg/geom"
	"github.com/meshlens/meshlens/pkg/model"
)

// Severity classifies an issue. Errors fail the check; warnings are
// advisory.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category groups issues by the aspect of the asset they concern.
type Category string

const (
	CategoryGeometry    Category = "geometry"
	CategoryTopology    Category = "topology"
	CategoryMaterials   Category = "materials"
	CategoryPerformance Category = "performance"
)

// Issue is one finding produced by a check run.
type Issue struct {
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// Report is the inspection data a check runs against. Sections are
// optional; a builtin that needs a missing section records a missing-data
// error rather than faulting.
type Report struct {
	Stats        *analysis.MeshStats
	Connectivity *analysis.ConnectivityResult
	Bounds       *geom.Bounds
	Model        *model.Analysis
}

// CheckResult is the outcome of one check run. Passed is true when no
// error-severity issues were recorded; warnings alone do not fail a check.
type CheckResult struct {
	Passed bool    `json:"passed"`
	Issues []Issue `json:"issues"`
}

// collector accumulates issues during a single evaluation. Evaluations are
// single-goroutine, so no locking is needed.
type collector struct {
	issues []Issue
}

func (c *collector) add(is Issue) {
	c.issues = append(c.issues, is)
}

func (c *collector) result() *CheckResult {
	passed := true
	for _, is := range c.issues {
		if is.Severity == SeverityError {
			passed = false
			break
		}
	}
	issues := c.issues
	if issues == nil {
		issues = []Issue{}
	}
	return &CheckResult{Passed: passed, Issues: issues}
}
