package geom

import "github.com/chewxy/math32"

// Bounds is an axis-aligned bounding box. The zero-point state (before any
// Expand) has Min at +Inf and Max at -Inf per axis, so the first expansion
// snaps both corners to the point. Expand and Union are commutative and
// associative, which makes Bounds safe as a parallel reduction accumulator
// under any chunking or evaluation order.
type Bounds struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// NewBounds returns an empty Bounds ready for aggregation.
func NewBounds() Bounds {
	inf := math32.Inf(1)
	return Bounds{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// UnitBounds returns the canonical default box [-1,-1,-1]–[1,1,1],
// substituted by consumers when an aggregation ends with no points merged.
func UnitBounds() Bounds {
	return Bounds{
		Min: Vec3{-1, -1, -1},
		Max: Vec3{1, 1, 1},
	}
}

// Expand grows the box to include the given point.
func (b *Bounds) Expand(p Vec3) {
	b.Min.X = math32.Min(b.Min.X, p.X)
	b.Min.Y = math32.Min(b.Min.Y, p.Y)
	b.Min.Z = math32.Min(b.Min.Z, p.Z)
	b.Max.X = math32.Max(b.Max.X, p.X)
	b.Max.Y = math32.Max(b.Max.Y, p.Y)
	b.Max.Z = math32.Max(b.Max.Z, p.Z)
}

// Union grows the box to include another box. Merging with an empty box is
// a no-op, so partial accumulators from idle workers combine cleanly.
func (b *Bounds) Union(o Bounds) {
	b.Min.X = math32.Min(b.Min.X, o.Min.X)
	b.Min.Y = math32.Min(b.Min.Y, o.Min.Y)
	b.Min.Z = math32.Min(b.Min.Z, o.Min.Z)
	b.Max.X = math32.Max(b.Max.X, o.Max.X)
	b.Max.Y = math32.Max(b.Max.Y, o.Max.Y)
	b.Max.Z = math32.Max(b.Max.Z, o.Max.Z)
}

// IsValid reports whether at least one point has been merged into the box.
func (b *Bounds) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Center returns the midpoint of the box. The result is meaningless for an
// empty box; callers must guard with IsValid.
func (b *Bounds) Center() Vec3 {
	return Vec3{
		(b.Min.X + b.Max.X) / 2,
		(b.Min.Y + b.Max.Y) / 2,
		(b.Min.Z + b.Max.Z) / 2,
	}
}

// Extent returns the size of the box along each axis.
func (b *Bounds) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}
