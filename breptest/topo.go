package breptest

import (
	"gonum.org/v1/gonum/spatial/r3"

	threadcad "github.com/threadcad/threadcad"
)

// Body is an in-memory solid. op records which operation created it
// ("scene", "sweep", "extrude") so booleans can tell coils from blocks.
type Body struct {
	k      *Kernel
	name   string
	hidden bool
	op     string
	faces  []*Face
	edges  []*Edge // free edges not bound to a face, e.g. coil edges
	bbox   r3.Box
}

func (b *Body) Faces() []threadcad.Face {
	out := make([]threadcad.Face, len(b.faces))
	for i, f := range b.faces {
		out[i] = f
	}
	return out
}

func (b *Body) Edges() []threadcad.Edge {
	var out []threadcad.Edge
	seen := make(map[*Edge]bool)
	for _, f := range b.faces {
		for _, e := range f.edges {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	for _, e := range b.edges {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

func (b *Body) Bounds() r3.Box { return b.bbox }

// Name returns the body's current name.
func (b *Body) Name() string { return b.name }

// Hidden reports whether the body was hidden.
func (b *Body) Hidden() bool { return b.hidden }

// Face is an in-memory face handle. Mutating kernel operations replace
// face objects wholesale, so handles held across a mutation dangle
// exactly like they would against a production kernel.
type Face struct {
	body     *Body
	kind     threadcad.SurfaceKind
	cyl      threadcad.Cylinder
	pln      threadcad.PlaneSurface
	feature  threadcad.FeatureKind
	reversed *bool
	area     float64
	centroid r3.Vec
	edges    []*Edge
}

func (f *Face) Surface() threadcad.SurfaceKind { return f.kind }

func (f *Face) Cylinder() (threadcad.Cylinder, bool) {
	if f.kind != threadcad.SurfaceCylinder {
		return threadcad.Cylinder{}, false
	}
	return f.cyl, true
}

func (f *Face) Plane() (threadcad.PlaneSurface, bool) {
	if f.kind != threadcad.SurfacePlane {
		return threadcad.PlaneSurface{}, false
	}
	return f.pln, true
}

func (f *Face) Edges() []threadcad.Edge {
	out := make([]threadcad.Edge, len(f.edges))
	for i, e := range f.edges {
		out[i] = e
	}
	return out
}

func (f *Face) Area() float64 { return f.area }

func (f *Face) Centroid() r3.Vec { return f.centroid }

func (f *Face) Reversed() (bool, bool) {
	if f.reversed == nil {
		return false, false
	}
	return *f.reversed, true
}

func (f *Face) Feature() threadcad.FeatureKind { return f.feature }

func (f *Face) Body() threadcad.Body { return f.body }

// Edge is an in-memory edge handle.
type Edge struct {
	kind     threadcad.CurveKind
	a, b     r3.Vec
	bounded  bool // a,b valid
	circ     threadcad.Circle
	centroid r3.Vec
	faces    []*Face
	filleted float64 // fillet radius applied, 0 = none
}

func (e *Edge) Curve() threadcad.CurveKind { return e.kind }

func (e *Edge) Endpoints() (r3.Vec, r3.Vec, bool) {
	if !e.bounded {
		return r3.Vec{}, r3.Vec{}, false
	}
	return e.a, e.b, true
}

func (e *Edge) Circle() (threadcad.Circle, bool) {
	if e.kind != threadcad.CurveCircle {
		return threadcad.Circle{}, false
	}
	return e.circ, true
}

func (e *Edge) Centroid() r3.Vec { return e.centroid }

func (e *Edge) Faces() []threadcad.Face {
	out := make([]threadcad.Face, len(e.faces))
	for i, f := range e.faces {
		out[i] = f
	}
	return out
}

// Filleted returns the fillet radius applied to the edge, zero if none.
func (e *Edge) Filleted() float64 { return e.filleted }

// snapshot deep-copies the body graph so an aborted transaction can
// restore the document byte for byte. Handles held by the caller keep
// pointing at the mutated originals and dangle after restore.
func snapshot(bodies []*Body) []*Body {
	bm := make(map[*Body]*Body)
	fm := make(map[*Face]*Face)
	em := make(map[*Edge]*Edge)
	for _, b := range bodies {
		c := *b
		bm[b] = &c
		for _, f := range b.faces {
			if _, ok := fm[f]; !ok {
				cf := *f
				fm[f] = &cf
			}
			for _, e := range f.edges {
				if _, ok := em[e]; !ok {
					ce := *e
					em[e] = &ce
				}
			}
		}
		for _, e := range b.edges {
			if _, ok := em[e]; !ok {
				ce := *e
				em[e] = &ce
			}
		}
	}
	out := make([]*Body, len(bodies))
	for i, b := range bodies {
		nb := bm[b]
		nb.faces = make([]*Face, len(b.faces))
		for j, f := range b.faces {
			nb.faces[j] = fm[f]
		}
		nb.edges = make([]*Edge, len(b.edges))
		for j, e := range b.edges {
			nb.edges[j] = em[e]
		}
		out[i] = nb
	}
	for of, nf := range fm {
		nf.body = bm[of.body]
		nf.edges = make([]*Edge, len(of.edges))
		for j, e := range of.edges {
			nf.edges[j] = em[e]
		}
	}
	for oe, ne := range em {
		ne.faces = make([]*Face, len(oe.faces))
		for j, f := range oe.faces {
			ne.faces[j] = fm[f]
		}
	}
	return out
}
