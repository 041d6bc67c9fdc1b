package breptest

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	threadcad "github.com/threadcad/threadcad"
	"github.com/threadcad/threadcad/internal/d3"
)

// EndKind selects what terminates a cylindrical face at one end.
type EndKind uint8

const (
	// EndOpen leaves the boundary circle with no neighbor face.
	EndOpen EndKind = iota
	// EndCap attaches a perpendicular plane that stays inside the
	// cylinder radius, the way a blind hole floor does.
	EndCap
	// EndShoulder attaches a perpendicular plane extending well beyond
	// the cylinder radius, the way a shaft shoulder does.
	EndShoulder
	// EndCylinder attaches a coaxial neighbor cylinder of EndSpec.Radius.
	EndCylinder
)

// EndSpec describes one end of a synthetic cylinder.
type EndSpec struct {
	Kind EndKind
	// Radius of the neighboring cylinder, for EndCylinder.
	Radius float64
}

// CylinderSpec describes a cylindrical face to synthesize. The surface's
// mathematical origin is deliberately placed away from the physical
// extent so extent-from-edges logic gets exercised.
type CylinderSpec struct {
	Radius float64
	Length float64
	// Origin is the physical start point on the axis.
	Origin r3.Vec
	Axis   r3.Vec
	// Reversal sets the surface-parameterization flag; nil withholds the
	// signal entirely.
	Reversal   *bool
	Feature    threadcad.FeatureKind
	Start, End EndSpec
}

// Reversed returns a pointer for CylinderSpec.Reversal.
func Reversed(v bool) *bool { return &v }

// AddShaft adds a free-standing external cylinder with both ends open.
func (k *Kernel) AddShaft(radius, length float64, origin, axis r3.Vec) *Face {
	return k.AddCylinder(CylinderSpec{
		Radius:   radius,
		Length:   length,
		Origin:   origin,
		Axis:     axis,
		Reversal: Reversed(true),
		Feature:  threadcad.FeatureExtrude,
	})
}

// AddHole adds a through-hole wall with both ends open.
func (k *Kernel) AddHole(radius, length float64, origin, axis r3.Vec) *Face {
	return k.AddCylinder(CylinderSpec{
		Radius:   radius,
		Length:   length,
		Origin:   origin,
		Axis:     axis,
		Reversal: Reversed(false),
		Feature:  threadcad.FeatureHole,
	})
}

// AddCylinder builds one body holding the cylindrical face, its two
// circular boundary edges, a seam line on the surface, and whatever
// neighbor faces the end specs ask for. It returns the cylindrical face.
func (k *Kernel) AddCylinder(spec CylinderSpec) *Face {
	axis := unit(spec.Axis)
	start := spec.Origin
	end := r3.Add(start, r3.Scale(spec.Length, axis))
	mid := r3.Add(start, r3.Scale(spec.Length/2, axis))
	up, _ := d3.OrthoBasis(axis)

	body := &Body{k: k, op: "scene"}
	face := &Face{
		body: body,
		kind: threadcad.SurfaceCylinder,
		cyl: threadcad.Cylinder{
			Radius: spec.Radius,
			Axis:   axis,
			Origin: r3.Sub(start, r3.Scale(0.25*spec.Length+1, axis)),
		},
		feature:  spec.Feature,
		reversed: spec.Reversal,
		area:     2 * math.Pi * spec.Radius * spec.Length,
		centroid: mid,
	}

	mkCircle := func(center r3.Vec) *Edge {
		return &Edge{
			kind:     threadcad.CurveCircle,
			circ:     threadcad.Circle{Center: center, Radius: spec.Radius, Normal: axis},
			centroid: center,
			faces:    []*Face{face},
		}
	}
	startEdge := mkCircle(start)
	endEdge := mkCircle(end)
	seam := &Edge{
		kind:     threadcad.CurveLine,
		a:        r3.Add(start, r3.Scale(spec.Radius, up)),
		b:        r3.Add(end, r3.Scale(spec.Radius, up)),
		bounded:  true,
		centroid: r3.Add(mid, r3.Scale(spec.Radius, up)),
		faces:    []*Face{face},
	}
	face.edges = []*Edge{startEdge, endEdge, seam}

	type endAt struct {
		spec   EndSpec
		edge   *Edge
		center r3.Vec
		out    r3.Vec // outward axis direction at this end
	}
	for _, e := range []endAt{
		{spec.Start, startEdge, start, r3.Scale(-1, axis)},
		{spec.End, endEdge, end, axis},
	} {
		var nb *Face
		switch e.spec.Kind {
		case EndCap:
			nb = &Face{
				body: body,
				kind: threadcad.SurfacePlane,
				pln: threadcad.PlaneSurface{
					Origin: e.center,
					Normal: e.out,
					Extent: 0.8 * spec.Radius,
				},
				area:     math.Pi * spec.Radius * spec.Radius,
				centroid: e.center,
			}
		case EndShoulder:
			nb = &Face{
				body: body,
				kind: threadcad.SurfacePlane,
				pln: threadcad.PlaneSurface{
					Origin: e.center,
					Normal: e.out,
					Extent: 3 * spec.Radius,
				},
				area:     math.Pi * 9 * spec.Radius * spec.Radius,
				centroid: e.center,
			}
		case EndCylinder:
			nbLen := 2.0
			nb = &Face{
				body: body,
				kind: threadcad.SurfaceCylinder,
				cyl: threadcad.Cylinder{
					Radius: e.spec.Radius,
					Axis:   axis,
					Origin: e.center,
				},
				area:     2 * math.Pi * e.spec.Radius * nbLen,
				centroid: r3.Add(e.center, r3.Scale(nbLen/2, e.out)),
			}
		default:
			continue
		}
		nb.edges = []*Edge{e.edge}
		e.edge.faces = append(e.edge.faces, nb)
		body.faces = append(body.faces, nb)
	}
	body.faces = append([]*Face{face}, body.faces...)

	box := d3.NewBox(start, d3.Elem(2*spec.Radius))
	body.bbox = r3.Box(box.Union(d3.NewBox(end, d3.Elem(2*spec.Radius))))

	k.bodies = append(k.bodies, body)
	k.mutate()
	return face
}
