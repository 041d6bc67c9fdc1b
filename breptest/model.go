package breptest

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	threadcad "github.com/threadcad/threadcad"
	"github.com/threadcad/threadcad/internal/d2"
	"github.com/threadcad/threadcad/internal/d3"
)

const chainTol = 1e-9

func unit(v r3.Vec) r3.Vec { return r3.Scale(1/r3.Norm(v), v) }

func (k *Kernel) AxisFromFace(f threadcad.Face) (threadcad.Line, error) {
	cyl, ok := f.Cylinder()
	if !ok {
		return threadcad.Line{}, &threadcad.KernelError{
			Op: "axisFromFace", Code: "E_SURFACE",
			Err: errors.New("face is not cylindrical"),
		}
	}
	return threadcad.Line{Point: cyl.Origin, Dir: unit(cyl.Axis)}, nil
}

func (k *Kernel) BasePlanes() []threadcad.SketchPlane {
	x := r3.Vec{X: 1}
	y := r3.Vec{Y: 1}
	z := r3.Vec{Z: 1}
	return []threadcad.SketchPlane{
		{U: x, V: y, N: z},
		{U: y, V: z, N: x},
		{U: z, V: x, N: y},
	}
}

// PlaneThroughLine builds the frame with U along the line. At angle zero
// the plane normal lies along ref.N x U; a degenerate reference (normal
// parallel to the line) falls back to an arbitrary orthogonal basis.
func (k *Kernel) PlaneThroughLine(l threadcad.Line, ref threadcad.SketchPlane, angle float64) (threadcad.SketchPlane, error) {
	if err := k.fail("planeThroughLine"); err != nil {
		return threadcad.SketchPlane{}, err
	}
	u := unit(l.Dir)
	n := r3.Cross(ref.N, u)
	if r3.Norm(n) < 1e-9 {
		_, n = d3.OrthoBasis(u)
	}
	n = unit(n)
	if angle != 0 {
		sin, cos := math.Sincos(angle)
		n = r3.Add(r3.Scale(cos, n), r3.Scale(sin, r3.Cross(u, n)))
	}
	return threadcad.SketchPlane{
		Origin: l.Point,
		U:      u,
		V:      r3.Cross(n, u),
		N:      n,
	}, nil
}

func (k *Kernel) PlanePerpendicular(l threadcad.Line, at r3.Vec) (threadcad.SketchPlane, error) {
	if err := k.fail("planePerpendicular"); err != nil {
		return threadcad.SketchPlane{}, err
	}
	n := unit(l.Dir)
	u, v := d3.OrthoBasis(n)
	return threadcad.SketchPlane{Origin: at, U: u, V: v, N: n}, nil
}

func (k *Kernel) NewSketch(p threadcad.SketchPlane) (threadcad.Sketch, error) {
	if err := k.fail("newSketch"); err != nil {
		return nil, err
	}
	return &Sketch{plane: p}, nil
}

// Sketch accumulates line segments on a plane.
type Sketch struct {
	plane threadcad.SketchPlane
	segs  [][2]r2.Vec
}

func (s *Sketch) Plane() threadcad.SketchPlane { return s.plane }

func (s *Sketch) Line(a, b r2.Vec) error {
	s.segs = append(s.segs, [2]r2.Vec{a, b})
	return nil
}

func (s *Sketch) Rect(min, max r2.Vec) error {
	min, max = d2.MinElem(min, max), d2.MaxElem(min, max)
	c := []r2.Vec{
		{X: min.X, Y: min.Y},
		{X: max.X, Y: min.Y},
		{X: max.X, Y: max.Y},
		{X: min.X, Y: max.Y},
	}
	for i := range c {
		if err := s.Line(c[i], c[(i+1)%len(c)]); err != nil {
			return err
		}
	}
	return nil
}

func near(a, b r2.Vec) bool {
	return d2.EqualWithin(a, b, chainTol)
}

// CloseProfile chains the segments into one loop. Every segment must be
// used; segments may appear in any order and either orientation.
func (s *Sketch) CloseProfile() (threadcad.Profile, error) {
	if len(s.segs) < 3 {
		return nil, &threadcad.KernelError{
			Op: "closeProfile", Code: "E_PROFILE",
			Err: errors.New("too few segments for a closed loop"),
		}
	}
	used := make([]bool, len(s.segs))
	outline := []r2.Vec{s.segs[0][0]}
	cur := s.segs[0][1]
	used[0] = true
	for n := 1; n < len(s.segs); n++ {
		found := false
		for i, seg := range s.segs {
			if used[i] {
				continue
			}
			switch {
			case near(seg[0], cur):
				outline = append(outline, cur)
				cur = seg[1]
			case near(seg[1], cur):
				outline = append(outline, cur)
				cur = seg[0]
			default:
				continue
			}
			used[i] = true
			found = true
			break
		}
		if !found {
			return nil, &threadcad.KernelError{
				Op: "closeProfile", Code: "E_PROFILE",
				Err: errors.New("sketch segments do not chain"),
			}
		}
	}
	if !near(cur, outline[0]) {
		return nil, &threadcad.KernelError{
			Op: "closeProfile", Code: "E_PROFILE",
			Err: errors.New("sketch loop does not close"),
		}
	}
	return &Profile{plane: s.plane, outline: outline}, nil
}

// Profile is a closed loop produced by a sketch.
type Profile struct {
	plane   threadcad.SketchPlane
	outline []r2.Vec
}

func (p *Profile) Plane() threadcad.SketchPlane { return p.plane }

func (p *Profile) Outline() []r2.Vec { return p.outline }

// HelicalSweep synthesizes a coil body: an analytic bounding box over
// the swept span plus one unknown-curve edge per profile vertex at that
// vertex's radial station. That is enough for direction correction and
// root fillet selection without evaluating any real geometry.
func (k *Kernel) HelicalSweep(prof threadcad.Profile, axis threadcad.Line, spec threadcad.HelixSpec) (threadcad.Body, error) {
	if err := k.fail("helicalSweep"); err != nil {
		return nil, err
	}
	if spec.Turns <= 0 || spec.Pitch <= 0 {
		return nil, &threadcad.KernelError{
			Op: "helicalSweep", Code: "E_HELIX",
			Err: errors.New("helix needs positive turns and pitch"),
		}
	}
	outline := prof.Outline()
	if len(outline) < 3 {
		return nil, &threadcad.KernelError{
			Op: "helicalSweep", Code: "E_PROFILE",
			Err: errors.New("profile outline is degenerate"),
		}
	}
	dir := 1.0
	if spec.Reverse {
		dir = -1
	}
	if k.FlipSweep {
		dir = -dir
	}

	uLo := math.Inf(1)
	uHi := math.Inf(-1)
	rMax := 0.0
	type station struct{ u, r float64 }
	stations := make([]station, len(outline))
	for i, v := range outline {
		p := prof.Plane().To3D(v)
		st := station{u: axis.Project(p), r: axis.Distance(p)}
		stations[i] = st
		uLo = math.Min(uLo, st.u)
		uHi = math.Max(uHi, st.u)
		rMax = math.Max(rMax, st.r)
	}
	advance := dir * spec.Turns * spec.Pitch
	uLo = math.Min(uLo, uLo+advance)
	uHi = math.Max(uHi, uHi+advance)
	uMid := (uLo + uHi) / 2

	up, vp := d3.OrthoBasis(axis.Dir)
	body := &Body{k: k, op: "sweep"}
	for _, st := range stations {
		body.edges = append(body.edges, &Edge{
			kind:     threadcad.CurveUnknown,
			centroid: r3.Add(axis.At(uMid), r3.Scale(st.r, up)),
		})
	}
	body.bbox = coilBounds(axis, up, vp, uLo, uHi, rMax)
	k.bodies = append(k.bodies, body)
	k.mutate()
	return body, nil
}

func coilBounds(axis threadcad.Line, u, v r3.Vec, uLo, uHi, r float64) r3.Box {
	var set d3.Set
	for _, t := range []float64{uLo, uHi} {
		c := axis.At(t)
		for _, su := range []float64{-1, 1} {
			for _, sv := range []float64{-1, 1} {
				set = append(set, r3.Add(c, r3.Add(r3.Scale(su*r, u), r3.Scale(sv*r, v))))
			}
		}
	}
	return r3.Box{Min: set.Min(), Max: set.Max()}
}

func (k *Kernel) Extrude(prof threadcad.Profile, dir r3.Vec, dist float64) (threadcad.Body, error) {
	if err := k.fail("extrude"); err != nil {
		return nil, err
	}
	if dist <= 0 {
		return nil, &threadcad.KernelError{
			Op: "extrude", Code: "E_DIST",
			Err: errors.New("extrude distance must be positive"),
		}
	}
	d := r3.Scale(dist, unit(dir))
	first := prof.Plane().To3D(prof.Outline()[0])
	box := d3.Box{Min: first, Max: first}
	for _, v := range prof.Outline() {
		p := prof.Plane().To3D(v)
		box = box.Extend(p).Extend(r3.Add(p, d))
	}
	body := &Body{k: k, op: "extrude", bbox: r3.Box(box)}
	k.bodies = append(k.bodies, body)
	k.mutate()
	return body, nil
}

func (k *Kernel) RevolveCut(prof threadcad.Profile, axis threadcad.Line, body threadcad.Body) error {
	return k.revolve("revolveCut", prof, axis, body)
}

func (k *Kernel) RevolveJoin(prof threadcad.Profile, axis threadcad.Line, body threadcad.Body) error {
	return k.revolve("revolveJoin", prof, axis, body)
}

// revolve models a full revolution of a radial band profile against the
// body's matching cylindrical face: the face radius moves to whichever
// band boundary it does not already sit on. Cut and join share the rule;
// the material direction is implied by which side the face starts on.
func (k *Kernel) revolve(op string, prof threadcad.Profile, axis threadcad.Line, body threadcad.Body) error {
	if err := k.fail(op); err != nil {
		return err
	}
	b, ok := body.(*Body)
	if !ok || !k.has(b) {
		return &threadcad.KernelError{Op: op, Code: "E_BODY", Err: errors.New("body not in document")}
	}
	rLo := math.Inf(1)
	rHi := math.Inf(-1)
	for _, v := range prof.Outline() {
		r := axis.Distance(prof.Plane().To3D(v))
		rLo = math.Min(rLo, r)
		rHi = math.Max(rHi, r)
	}
	var face *Face
	best := math.Inf(1)
	for _, f := range b.faces {
		cyl, isCyl := f.Cylinder()
		if !isCyl {
			continue
		}
		if !d3.Parallel(unit(cyl.Axis), axis.Dir, 0.01) {
			continue
		}
		d := math.Min(math.Abs(cyl.Radius-rLo), math.Abs(cyl.Radius-rHi))
		if d < best {
			best = d
			face = f
		}
	}
	if face == nil || best > (rHi-rLo)+1e-6 {
		return &threadcad.KernelError{
			Op: op, Code: "E_FACE",
			Err: errors.New("no cylindrical face meets the revolved profile"),
		}
	}
	newR := rHi
	if math.Abs(face.cyl.Radius-rHi) < math.Abs(face.cyl.Radius-rLo) {
		newR = rLo
	}
	k.reradius(b, face, newR)
	return nil
}

// reradius rebuilds a cylindrical face and its edges at a new radius,
// rewiring adjacency. The old objects are left dangling.
func (k *Kernel) reradius(b *Body, f *Face, newR float64) {
	nf := &Face{
		body:     b,
		kind:     f.kind,
		cyl:      f.cyl,
		feature:  f.feature,
		reversed: f.reversed,
		centroid: f.centroid,
	}
	if f.cyl.Radius > 0 {
		nf.area = f.area * newR / f.cyl.Radius
	}
	nf.cyl.Radius = newR
	axis := threadcad.Line{Point: f.cyl.Origin, Dir: unit(f.cyl.Axis)}
	for _, oe := range f.edges {
		ne := &Edge{
			kind:     oe.kind,
			a:        oe.a,
			b:        oe.b,
			bounded:  oe.bounded,
			circ:     oe.circ,
			centroid: oe.centroid,
			filleted: oe.filleted,
		}
		if ne.kind == threadcad.CurveCircle {
			ne.circ.Radius = newR
		}
		if ne.bounded {
			ne.a = moveRadial(axis, ne.a, newR)
			ne.b = moveRadial(axis, ne.b, newR)
			ne.centroid = moveRadial(axis, ne.centroid, newR)
		}
		ne.faces = make([]*Face, len(oe.faces))
		for i, af := range oe.faces {
			if af == f {
				ne.faces[i] = nf
				continue
			}
			ne.faces[i] = af
			for j, ae := range af.edges {
				if ae == oe {
					af.edges[j] = ne
				}
			}
		}
		nf.edges = append(nf.edges, ne)
	}
	for i, bf := range b.faces {
		if bf == f {
			b.faces[i] = nf
		}
	}
	k.mutate()
}

func moveRadial(axis threadcad.Line, p r3.Vec, r float64) r3.Vec {
	foot := axis.At(axis.Project(p))
	d := r3.Sub(p, foot)
	n := r3.Norm(d)
	if n < 1e-12 {
		return p
	}
	return r3.Add(foot, r3.Scale(r/n, d))
}

// Subtract consumes the tool. Subtracting a swept coil from a scene body
// transfers the coil's thread edges onto the target, which is how the
// crest edges become visible on the part after the combine. Subtracting
// an extruded block models an end trim: the target's bounding box is
// clamped against the block and edges strictly inside the block vanish.
func (k *Kernel) Subtract(target, tool threadcad.Body) error {
	if err := k.fail("subtract"); err != nil {
		return err
	}
	tg, ok := target.(*Body)
	if !ok || !k.has(tg) {
		return &threadcad.KernelError{Op: "subtract", Code: "E_BODY", Err: errors.New("target not in document")}
	}
	tb, ok := tool.(*Body)
	if !ok || !k.has(tb) {
		return &threadcad.KernelError{Op: "subtract", Code: "E_BODY", Err: errors.New("tool not in document")}
	}
	switch tb.op {
	case "sweep":
		for _, e := range tb.edges {
			e.faces = nil
		}
		tg.edges = append(tg.edges, tb.edges...)
		tb.edges = nil
	case "extrude":
		tg.bbox = trimBox(tg.bbox, tb.bbox)
		kept := tg.edges[:0]
		for _, e := range tg.edges {
			if insideBox(tb.bbox, e.centroid) {
				continue
			}
			kept = append(kept, e)
		}
		tg.edges = kept
	}
	k.remove(tb)
	k.mutate()
	return nil
}

// trimBox removes the slab b covers from t. b must span t on two axes
// and overlap one extreme of the third; a block poking only the middle
// of t is not representable as a box and leaves it unchanged.
func trimBox(t, b r3.Box) r3.Box {
	const eps = 1e-9
	tmin := [3]float64{t.Min.X, t.Min.Y, t.Min.Z}
	tmax := [3]float64{t.Max.X, t.Max.Y, t.Max.Z}
	bmin := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	bmax := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	axis := -1
	for i := 0; i < 3; i++ {
		if bmin[i] > tmin[i]+eps || bmax[i] < tmax[i]-eps {
			if axis >= 0 {
				return t // spans fewer than two axes
			}
			axis = i
		}
	}
	if axis < 0 {
		return r3.Box{Min: t.Min, Max: t.Min} // fully consumed
	}
	if bmax[axis] <= tmin[axis]+eps || bmin[axis] >= tmax[axis]-eps {
		return t // disjoint along the free axis
	}
	switch {
	case bmax[axis] >= tmax[axis]-eps:
		tmax[axis] = bmin[axis]
	case bmin[axis] <= tmin[axis]+eps:
		tmin[axis] = bmax[axis]
	}
	return r3.Box{
		Min: r3.Vec{X: tmin[0], Y: tmin[1], Z: tmin[2]},
		Max: r3.Vec{X: tmax[0], Y: tmax[1], Z: tmax[2]},
	}
}

// insideBox reports whether p lies strictly inside b. Points on the
// boundary survive a trim.
func insideBox(b r3.Box, p r3.Vec) bool {
	const eps = 1e-9
	return p.X > b.Min.X+eps && p.X < b.Max.X-eps &&
		p.Y > b.Min.Y+eps && p.Y < b.Max.Y-eps &&
		p.Z > b.Min.Z+eps && p.Z < b.Max.Z-eps
}

func (k *Kernel) Fillet(edges []threadcad.Edge, radius float64) (int, error) {
	if err := k.fail("fillet"); err != nil {
		return 0, err
	}
	if radius <= 0 {
		return 0, &threadcad.KernelError{
			Op: "fillet", Code: "E_RADIUS",
			Err: errors.New("fillet radius must be positive"),
		}
	}
	n := 0
	for _, e := range edges {
		be, ok := e.(*Edge)
		if !ok {
			continue
		}
		be.filleted = radius
		n++
	}
	k.mutate()
	return n, nil
}

func (k *Kernel) SetName(body threadcad.Body, name string) error {
	b, ok := body.(*Body)
	if !ok || !k.has(b) {
		return &threadcad.KernelError{Op: "setName", Code: "E_BODY", Err: errors.New("body not in document")}
	}
	b.name = name
	return nil
}

func (k *Kernel) Hide(body threadcad.Body) error {
	b, ok := body.(*Body)
	if !ok || !k.has(b) {
		return &threadcad.KernelError{Op: "hide", Code: "E_BODY", Err: errors.New("body not in document")}
	}
	b.hidden = true
	return nil
}

func (k *Kernel) Delete(body threadcad.Body) error {
	if err := k.fail("delete"); err != nil {
		return err
	}
	b, ok := body.(*Body)
	if !ok || !k.has(b) {
		return &threadcad.KernelError{Op: "delete", Code: "E_BODY", Err: errors.New("body not in document")}
	}
	k.remove(b)
	k.mutate()
	return nil
}
