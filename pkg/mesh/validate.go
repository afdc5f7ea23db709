package mesh

// ValidationError reports a mesh that cannot be analyzed at all: empty
// vertex or index buffers. Checked once at the entry of the stats and LOD
// operations before any computation; malformed-but-non-empty data (partial
// triangles, out-of-range indices) is instead degraded gracefully into
// result flags downstream.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid mesh: " + e.Reason
}

// Validate returns a *ValidationError if the mesh has no vertices or no
// indices. Trailing partial triples are tolerated: counts are computed by
// integer division, so stragglers are simply ignored.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return &ValidationError{Reason: "no vertices"}
	}
	if len(m.Indices) == 0 {
		return &ValidationError{Reason: "no indices"}
	}
	return nil
}
