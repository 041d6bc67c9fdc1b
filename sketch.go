package threadcad

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// SketchPlane is a 2D sketching frame embedded in model space. U and V
// span the plane, N is the plane normal; all three are unit vectors and
// mutually orthogonal. The 3D<->2D conversions are plain linear algebra
// so frame-dependent math stays testable without a live kernel.
type SketchPlane struct {
	Origin r3.Vec
	U      r3.Vec
	V      r3.Vec
	N      r3.Vec
}

// To2D converts a model-space point into plane coordinates, discarding
// the out-of-plane component.
func (p SketchPlane) To2D(pt r3.Vec) r2.Vec {
	d := r3.Sub(pt, p.Origin)
	return r2.Vec{X: r3.Dot(d, p.U), Y: r3.Dot(d, p.V)}
}

// To3D converts plane coordinates back into model space.
func (p SketchPlane) To3D(pt r2.Vec) r3.Vec {
	return r3.Add(p.Origin, r3.Add(r3.Scale(pt.X, p.U), r3.Scale(pt.Y, p.V)))
}

// Sketch is a 2D sketch being drawn on a plane. Geometry is added as
// chained line segments; CloseProfile extracts the single closed loop.
type Sketch interface {
	// Plane returns the sketching frame.
	Plane() SketchPlane
	// Line adds a line segment between two plane points.
	Line(a, b r2.Vec) error
	// Rect adds an axis-aligned rectangle between two corner points.
	Rect(min, max r2.Vec) error
	// CloseProfile extracts the closed profile formed by the sketch
	// geometry. It fails if the segments do not chain into one loop.
	CloseProfile() (Profile, error)
}

// Profile is a closed planar loop usable as input to sweeps, extrudes
// and revolves.
type Profile interface {
	// Plane returns the frame the profile lies on.
	Plane() SketchPlane
	// Outline returns the loop vertices in plane coordinates. The
	// first vertex is not repeated at the end.
	Outline() []r2.Vec
}
