package analyze

import (
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"

	threadcad "github.com/threadcad/threadcad"
	"github.com/threadcad/threadcad/internal/d3"
)

// Tolerances are the read-only thresholds of the analyzer. They are
// configuration, not shared mutable state.
type Tolerances struct {
	// RefindRadius is the radius window for face re-identification [mm].
	RefindRadius float64
	// RefindAxisDot is the minimum |axis dot| for re-identification.
	RefindAxisDot float64
	// RefindCentroid is the maximum accepted centroid distance [mm].
	RefindCentroid float64
	// PlanePerpDot is the minimum |normal dot axis| for a planar
	// neighbor to count as roughly perpendicular to the axis.
	PlanePerpDot float64
	// RadiusEps is the slack used when comparing neighbor radii [mm].
	RadiusEps float64
}

// DefaultTolerances returns the default analyzer thresholds.
func DefaultTolerances() Tolerances {
	return Tolerances{
		RefindRadius:   0.01,
		RefindAxisDot:  0.99,
		RefindCentroid: 0.1,
		PlanePerpDot:   0.9,
		RadiusEps:      1e-3,
	}
}

// Analyzer reads cylinder geometry out of a document. Methods report
// failure through the descriptor validity flag instead of panicking;
// callers check Valid before use.
type Analyzer struct {
	Tol Tolerances
	Log zerolog.Logger

	doc threadcad.Document
}

// New returns an analyzer over the document with default tolerances and
// a disabled logger.
func New(doc threadcad.Document) *Analyzer {
	return &Analyzer{
		Tol: DefaultTolerances(),
		Log: zerolog.Nop(),
		doc: doc,
	}
}

// AnalyzeFace produces the descriptor for a cylindrical face. The
// kernel's cylinder base point is not the face's physical extent, so the
// extent is computed independently by projecting the circular boundary
// edge centers onto the axis: minimum projection is Start, maximum End.
func (a *Analyzer) AnalyzeFace(face threadcad.Face) Descriptor {
	if face == nil {
		return invalid("no face selected")
	}
	if kind := face.Surface(); kind != threadcad.SurfaceCylinder {
		return invalid("selected surface is a %s, want a cylinder", kind)
	}
	cyl, ok := face.Cylinder()
	if !ok {
		return invalid("kernel failed to return cylinder parameters")
	}
	if cyl.Radius <= 0 {
		return invalid("degenerate cylinder radius %g", cyl.Radius)
	}
	n := r3.Norm(cyl.Axis)
	if n < 1e-12 {
		return invalid("degenerate cylinder axis")
	}
	axis := threadcad.Line{Point: cyl.Origin, Dir: r3.Scale(1/n, cyl.Axis)}

	edges := face.Edges()
	if len(edges) == 0 {
		return invalid("cylindrical face has no boundary edges")
	}

	// Real face extent from the circular boundary edges.
	type bound struct {
		t    float64
		edge threadcad.Edge
	}
	var bounds []bound
	for _, e := range edges {
		if c, ok := e.Circle(); ok {
			bounds = append(bounds, bound{t: axis.Project(c.Center), edge: e})
		}
	}
	if len(bounds) < 2 {
		return invalid("found %d circular boundary edges, want 2", len(bounds))
	}
	lo, hi := bounds[0], bounds[0]
	for _, b := range bounds[1:] {
		if b.t < lo.t {
			lo = b
		}
		if b.t > hi.t {
			hi = b
		}
	}

	d := Descriptor{
		Radius: cyl.Radius,
		Axis:   axis.Dir,
		Start:  axis.At(lo.t),
		End:    axis.At(hi.t),
		Valid:  true,
	}
	d.Length = a.faceLength(face, axis)
	d.Internal = a.classify(face)
	d.StartOpen = !a.endBlocked(face, lo.edge, axis, cyl.Radius, d.Internal)
	d.EndOpen = !a.endBlocked(face, hi.edge, axis, cyl.Radius, d.Internal)

	a.Log.Debug().
		Float64("radius", d.Radius).
		Float64("length", d.Length).
		Str("side", d.Side()).
		Bool("startOpen", d.StartOpen).
		Bool("endOpen", d.EndOpen).
		Msg("analyzed cylinder")
	return d
}

// faceLength measures the face extent as the spread of axis-projected
// edge endpoints and circle centers, falling back to area/circumference
// when no usable edges exist.
func (a *Analyzer) faceLength(face threadcad.Face, axis threadcad.Line) float64 {
	tmin := math.Inf(1)
	tmax := math.Inf(-1)
	for _, e := range face.Edges() {
		if p, q, ok := e.Endpoints(); ok {
			tmin = math.Min(tmin, math.Min(axis.Project(p), axis.Project(q)))
			tmax = math.Max(tmax, math.Max(axis.Project(p), axis.Project(q)))
			continue
		}
		if c, ok := e.Circle(); ok {
			t := axis.Project(c.Center)
			tmin = math.Min(tmin, t)
			tmax = math.Max(tmax, t)
		}
	}
	if l := tmax - tmin; l > 0 && !math.IsInf(l, 0) {
		return l
	}
	cyl, _ := face.Cylinder()
	if cyl.Radius > 0 {
		return face.Area() / (2 * math.Pi * cyl.Radius)
	}
	return 0
}

// classify determines internal vs external through an ordered strategy
// list; the first strategy able to answer wins.
func (a *Analyzer) classify(face threadcad.Face) bool {
	for _, s := range []func(threadcad.Face) (internal, ok bool){
		reversalStrategy,
		featureStrategy,
	} {
		if internal, ok := s(face); ok {
			return internal
		}
	}
	return false
}

// reversalStrategy reads the kernel's parameterization-reversal flag.
// Its documented sense is backwards for cylinder walls in practice, so
// the flag is inverted here: an unreversed parameterization marks an
// internal surface.
func reversalStrategy(face threadcad.Face) (internal, ok bool) {
	rev, ok := face.Reversed()
	if !ok {
		return false, false
	}
	return !rev, true
}

// featureStrategy falls back to the kind of feature that created the
// face: hole and cut-type features produce internal surfaces.
func featureStrategy(face threadcad.Face) (internal, ok bool) {
	k := face.Feature()
	if k == threadcad.FeatureUnknown {
		return false, false
	}
	return k.Cutting(), true
}

// endBlocked inspects the faces adjacent to one boundary edge. A
// neighboring cylinder of smaller radius blocks an internal end, one of
// larger radius blocks an external end. A neighboring plane roughly
// perpendicular to the axis blocks an external end when it extends
// beyond the current radius (a shoulder) and an internal end when it
// does not (a hole floor).
func (a *Analyzer) endBlocked(face threadcad.Face, edge threadcad.Edge, axis threadcad.Line, radius float64, internal bool) bool {
	if edge == nil {
		return false
	}
	for _, nb := range edge.Faces() {
		if nb == face {
			continue
		}
		switch nb.Surface() {
		case threadcad.SurfaceCylinder:
			nc, ok := nb.Cylinder()
			if !ok {
				continue
			}
			if internal && nc.Radius < radius-a.Tol.RadiusEps {
				return true
			}
			if !internal && nc.Radius > radius+a.Tol.RadiusEps {
				return true
			}
		case threadcad.SurfacePlane:
			pl, ok := nb.Plane()
			if !ok {
				continue
			}
			nn := r3.Norm(pl.Normal)
			if nn < 1e-12 {
				continue
			}
			if !d3.Parallel(r3.Scale(1/nn, pl.Normal), axis.Dir, 1-a.Tol.PlanePerpDot) {
				continue
			}
			extends := axis.Distance(pl.Origin)+pl.Extent > radius+a.Tol.RadiusEps
			if !internal && extends {
				return true
			}
			if internal && !extends {
				return true
			}
		}
	}
	return false
}
