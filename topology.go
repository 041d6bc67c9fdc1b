package threadcad

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Cylinder holds the parameters of an infinite cylindrical surface.
// Origin is the kernel's mathematical base point on the axis and is
// unrelated to the physical extent of any face lying on the surface.
type Cylinder struct {
	Radius float64
	Axis   r3.Vec // unit direction
	Origin r3.Vec
}

// PlaneSurface holds the parameters of a planar surface. Extent is the
// largest distance from Origin to the owning face's boundary, which is
// what end-blocking heuristics compare against a neighboring cylinder
// radius.
type PlaneSurface struct {
	Origin r3.Vec
	Normal r3.Vec // unit direction
	Extent float64
}

// Circle holds the parameters of a circular edge curve.
type Circle struct {
	Center r3.Vec
	Radius float64
	Normal r3.Vec // unit direction
}

// Line is an infinite line given by a point and a unit direction.
type Line struct {
	Point r3.Vec
	Dir   r3.Vec
}

// At returns the point at parameter t along the line.
func (l Line) At(t float64) r3.Vec {
	return r3.Add(l.Point, r3.Scale(t, l.Dir))
}

// Project returns the parameter of p projected onto the line.
func (l Line) Project(p r3.Vec) float64 {
	return r3.Dot(r3.Sub(p, l.Point), l.Dir)
}

// Distance returns the perpendicular distance from p to the line.
func (l Line) Distance(p r3.Vec) float64 {
	d := r3.Sub(p, l.Point)
	return r3.Norm(r3.Sub(d, r3.Scale(r3.Dot(d, l.Dir), l.Dir)))
}

// Face is a bounded region of a body's surface. Face handles become stale
// the moment the kernel mutates topology; consumers that outlive a mutation
// re-resolve faces geometrically instead of caching handles.
type Face interface {
	// Surface returns the kind of the underlying surface.
	Surface() SurfaceKind
	// Cylinder returns the cylindrical surface parameters. ok is false
	// for non-cylindrical faces.
	Cylinder() (c Cylinder, ok bool)
	// Plane returns the planar surface parameters. ok is false for
	// non-planar faces.
	Plane() (p PlaneSurface, ok bool)
	// Edges returns the face's boundary edges.
	Edges() []Edge
	// Area returns the surface area of the face.
	Area() float64
	// Centroid returns the area centroid of the face.
	Centroid() r3.Vec
	// Reversed reports the kernel's surface-parameterization reversal
	// flag. ok is false when the kernel cannot provide the signal.
	Reversed() (reversed, ok bool)
	// Feature returns the kind of modeling feature that created the face.
	Feature() FeatureKind
	// Body returns the owning body.
	Body() Body
}

// Edge is a bounded curve on a body, shared by adjacent faces.
type Edge interface {
	// Curve returns the kind of the underlying curve.
	Curve() CurveKind
	// Endpoints returns the edge endpoints. ok is false for closed
	// edges such as full circles.
	Endpoints() (a, b r3.Vec, ok bool)
	// Circle returns the circular curve parameters. ok is false for
	// non-circular edges.
	Circle() (c Circle, ok bool)
	// Centroid returns the curve centroid of the edge.
	Centroid() r3.Vec
	// Faces returns the faces adjacent to the edge.
	Faces() []Face
}

// Body is a solid in the modeling document.
type Body interface {
	Faces() []Face
	Edges() []Edge
	// Bounds returns the axis-aligned bounding box of the body.
	Bounds() r3.Box
}
