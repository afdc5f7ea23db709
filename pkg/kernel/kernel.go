// Package kernel defines the reference-solid generator interface.
// Implementations produce triangle meshes for known solids (box, cylinder,
// sphere) that serve as calibration probes for the analyzers and as
// scale-reference overlays in the viewer. The abstraction allows swapping
// tessellation backends without changing the rest of the system.
package kernel

import "github.com/meshlens/meshlens/pkg/mesh"

// Solid is an opaque handle to a generator solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel generates reference solids and tessellates them into meshes.
type Kernel interface {
	// Box creates an axis-aligned box with the given dimensions,
	// centered at the origin.
	Box(x, y, z float64) Solid

	// Cylinder creates a z-aligned cylinder centered at the origin.
	// segments is a hint for faceted backends; smooth backends ignore it.
	Cylinder(height, radius float64, segments int) Solid

	// Sphere creates a sphere of the given radius centered at the origin.
	Sphere(radius float64) Solid

	// ToMesh tessellates a solid into a triangle mesh.
	ToMesh(s Solid) (*mesh.Mesh, error)
}
