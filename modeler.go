package threadcad

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// HelixSpec parameterizes a helical sweep.
type HelixSpec struct {
	// Turns is the number of full revolutions.
	Turns float64
	// Pitch is the axial advance per revolution.
	Pitch float64
	// LeftHand selects a left-handed helix.
	LeftHand bool
	// Reverse advances the sweep against the axis direction instead of
	// along it.
	Reverse bool
}

// Modeler is the construction and modeling surface of the kernel.
// Every operation that mutates topology invalidates previously obtained
// Face and Edge handles.
type Modeler interface {
	// AxisFromFace constructs the axis line of a cylindrical face.
	AxisFromFace(f Face) (Line, error)
	// BasePlanes returns the document's fixed reference planes.
	BasePlanes() []SketchPlane
	// PlaneThroughLine constructs a plane containing the line l, rotated
	// about l by angle radians from the reference plane ref. The returned
	// frame is anchored to the line: Origin is a point on l and U runs
	// along l.Dir, so To2D maps a point on l to its signed distance along
	// the line in X.
	PlaneThroughLine(l Line, ref SketchPlane, angle float64) (SketchPlane, error)
	// PlanePerpendicular constructs a plane through at with normal l.Dir.
	PlanePerpendicular(l Line, at r3.Vec) (SketchPlane, error)
	// NewSketch opens a sketch on the given plane.
	NewSketch(p SketchPlane) (Sketch, error)
	// HelicalSweep revolves a profile helically about the axis, producing
	// an independent body that is not combined with anything.
	HelicalSweep(prof Profile, axis Line, spec HelixSpec) (Body, error)
	// Extrude extrudes a profile along dir by dist as an independent body.
	Extrude(prof Profile, dir r3.Vec, dist float64) (Body, error)
	// RevolveCut revolves a profile fully about axis and removes the
	// swept volume from body.
	RevolveCut(prof Profile, axis Line, body Body) error
	// RevolveJoin revolves a profile fully about axis and adds the swept
	// volume to body.
	RevolveJoin(prof Profile, axis Line, body Body) error
	// Subtract removes tool from target and consumes tool.
	Subtract(target, tool Body) error
	// Fillet rounds the given edges at the given radius, returning the
	// number of edges actually filleted.
	Fillet(edges []Edge, radius float64) (int, error)
	// SetName renames a body.
	SetName(b Body, name string) error
	// Hide removes a body from the display without deleting it.
	Hide(b Body) error
	// Delete removes a body from the document.
	Delete(b Body) error
}

// Transaction wraps a sequence of modeling operations atomically.
// Abort restores the document to its state at Begin.
type Transaction interface {
	Commit() error
	Abort()
}

// Point32 is a single-precision point for preview graphics.
type Point32 struct {
	X, Y, Z float32
}

// Canvas is a non-undo-tracked rendering layer for transient graphics.
// Polylines are registered under a group identifier so a later Remove
// tears down everything the group drew.
type Canvas interface {
	Polyline(group string, pts []Point32)
	Remove(group string)
}

// Document is a single open model. All operations run on the caller's
// goroutine; two modeling sequences must not run concurrently against
// the same document. The kernel transaction is the sole serialization
// mechanism.
type Document interface {
	Modeler
	// Bodies returns the solid bodies currently in the document.
	Bodies() []Body
	// Begin opens a named transaction.
	Begin(name string) (Transaction, error)
	// Canvas returns the document's transient graphics layer.
	Canvas() Canvas
}
