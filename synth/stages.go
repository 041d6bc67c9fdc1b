package synth

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	threadcad "github.com/threadcad/threadcad"
	"github.com/threadcad/threadcad/internal/d3"
)

// buildFrame captures a stable axis reference from the cylindrical face
// before any mutation, performs the optional sub-span resize, and
// constructs a sketch plane that actually contains the axis. The plane
// goes through whichever reference plane is least parallel to the axis,
// so cylinders at arbitrary position and orientation get a usable frame,
// not just ones through the origin.
func (s *Synthesizer) buildFrame(st *state) error {
	face, ok := s.an.Refind(st.desc)
	if !ok {
		return errors.New("target cylinder not found in document")
	}
	axis, err := s.doc.AxisFromFace(face)
	if err != nil {
		return err
	}
	if r3.Dot(axis.Dir, st.desc.Axis) < 0 {
		axis.Dir = r3.Scale(-1, axis.Dir)
	}
	st.axis = axis

	refs := s.doc.BasePlanes()
	if len(refs) == 0 {
		return errors.New("document has no reference planes")
	}
	ref := refs[0]
	bestDot := -1.0
	for _, rp := range refs {
		if d := math.Abs(r3.Dot(rp.N, axis.Dir)); d > bestDot {
			bestDot = d
			ref = rp
		}
	}
	plane, err := s.doc.PlaneThroughLine(axis, ref, 0)
	if err != nil {
		return err
	}
	st.plane = plane

	// map the physical extents into the plane's local 2D space
	st.uStart = plane.To2D(st.desc.Start).X
	st.uEnd = plane.To2D(st.desc.End).X
	st.uDir = 1
	if st.uEnd < st.uStart {
		st.uDir = -1
	}
	startU, dir := st.uStart, st.uDir
	if st.opt.FromEnd {
		startU, dir = st.uEnd, -st.uDir
	}
	st.threadStartU = startU + dir*st.opt.Offset
	st.threadEndU = st.threadStartU + dir*st.length

	if st.opt.Resize {
		if err := s.resizeSpan(st, face); err != nil {
			return err
		}
		if st.resized {
			// the resize invalidated every face handle
			face, ok = s.an.Refind(st.desc)
			if !ok {
				return errors.New("cylinder not refound after resize")
			}
		}
	}
	st.body = face.Body()
	return nil
}

// resizeSpan brings the thread-length sub-span of the cylinder to the
// standard's target diameter (tap drill for internal, major for
// external) via a revolved cut or join. The rest of the cylinder is left
// alone. Targets within epsilon of the current radius are a no-op.
func (s *Synthesizer) resizeSpan(st *state, face threadcad.Face) error {
	target := st.std.Major / 2
	if st.desc.Internal {
		target = st.std.TapDrill() / 2
	}
	cur := st.desc.Radius
	if math.Abs(target-cur) <= resizeEps {
		return nil
	}
	sk, err := s.doc.NewSketch(st.plane)
	if err != nil {
		return err
	}
	uA := math.Min(st.threadStartU, st.threadEndU)
	uB := math.Max(st.threadStartU, st.threadEndU)
	rLow := math.Min(target, cur)
	rHigh := math.Max(target, cur)
	if err := sk.Rect(r2.Vec{X: uA, Y: rLow}, r2.Vec{X: uB, Y: rHigh}); err != nil {
		return err
	}
	prof, err := sk.CloseProfile()
	if err != nil {
		return err
	}
	// enlarging a hole or shrinking a shaft removes material
	if st.desc.Internal == (target > cur) {
		err = s.doc.RevolveCut(prof, st.axis, face.Body())
	} else {
		err = s.doc.RevolveJoin(prof, st.axis, face.Body())
	}
	if err != nil {
		return err
	}
	st.resized = true
	st.desc.Radius = target
	return nil
}

// drawProfile places one tooth cross-section on the through-axis plane.
// A sampled surface point fixes which side of the local axis the
// material occupies; that sign fixes both the cut direction (outward for
// internal threads, inward for external) and which local coordinate
// extends past which end. The profile sits one end-extension before the
// starting physical end so the sweep always overshoots both ends;
// partial-length threads come from trimming afterward, never from
// shortening the sweep.
func (s *Synthesizer) drawProfile(st *state) error {
	st.side = s.materialSide(st)

	startU, dir := st.uStart, st.uDir
	if st.opt.FromEnd {
		startU, dir = st.uEnd, -st.uDir
	}
	st.u0 = startU - dir*endExtension*st.pitch
	st.sweepReverse = dir != st.uDir

	cutDir := -1.0 // external threads cut inward
	if st.desc.Internal {
		cutDir = 1 // internal threads cut outward into the material
	}
	outline := ProfileOutline(st.opt.Shape, st.pitch, st.depth)
	pts := make([]r2.Vec, len(outline))
	for i, p := range outline {
		pts[i] = r2.Vec{
			X: st.u0 + p.X,
			Y: st.side * (st.desc.Radius + cutDir*p.Y),
		}
	}
	sk, err := s.doc.NewSketch(st.plane)
	if err != nil {
		return err
	}
	for i := range pts {
		if err := sk.Line(pts[i], pts[(i+1)%len(pts)]); err != nil {
			return err
		}
	}
	prof, err := sk.CloseProfile()
	if err != nil {
		return err
	}
	st.profile = prof
	return nil
}

// materialSide samples one known point on the cylindrical surface and
// returns the sign of its v coordinate in the sketch plane. Strategies
// are tried in order: a boundary edge endpoint, then a synthesized
// perpendicular offset from the axis.
func (s *Synthesizer) materialSide(st *state) float64 {
	if face, ok := s.an.Refind(st.desc); ok {
		for _, e := range face.Edges() {
			p, _, ok := e.Endpoints()
			if !ok {
				continue
			}
			if v := st.plane.To2D(p).Y; math.Abs(v) > 1e-9 {
				return sgn(v)
			}
		}
	}
	p := r3.Add(st.desc.Start, r3.Scale(st.desc.Radius, st.plane.V))
	if st.plane.To2D(p).Y < 0 {
		return -1
	}
	return 1
}

// sweep revolves the profile helically about the axis as an independent
// body so later steps can shape the coil before the destructive combine.
// The sweep spans the full cylinder length plus both end extensions.
func (s *Synthesizer) sweep(st *state) error {
	coil, err := s.doc.HelicalSweep(st.profile, st.axis, threadcad.HelixSpec{
		Turns:    (st.desc.Length + 2*endExtension*st.pitch) / st.pitch,
		Pitch:    st.pitch,
		LeftHand: st.opt.LeftHand,
		Reverse:  st.sweepReverse,
	})
	if err != nil {
		return err
	}
	st.coil = coil
	st.helpers = append(st.helpers, coil)
	return nil
}

// correctDirection compares the coil's expected centroid movement (from
// the profile position toward the cylinder center) against the actual
// sweep body bounding-box centroid in the same local coordinates, and
// flips the sweep's axis-direction flag exactly once if the signs
// disagree. A still-wrong coil after the flip degrades softly.
func (s *Synthesizer) correctDirection(st *state) error {
	want := sgn((st.uStart+st.uEnd)/2 - st.u0)
	coilU := func(b threadcad.Body) float64 {
		return st.plane.To2D(d3.Box(b.Bounds()).Center()).X
	}
	got := sgn(coilU(st.coil) - st.u0)
	if got == want || got == 0 {
		return nil
	}
	if err := s.doc.Delete(st.coil); err != nil {
		return err
	}
	st.helpers = st.helpers[:len(st.helpers)-1]
	st.sweepReverse = !st.sweepReverse
	st.flipped = true
	coil, err := s.doc.HelicalSweep(st.profile, st.axis, threadcad.HelixSpec{
		Turns:    (st.desc.Length + 2*endExtension*st.pitch) / st.pitch,
		Pitch:    st.pitch,
		LeftHand: st.opt.LeftHand,
		Reverse:  st.sweepReverse,
	})
	if err != nil {
		return err
	}
	st.coil = coil
	st.helpers = append(st.helpers, coil)
	if sgn(coilU(st.coil)-st.u0) != want {
		st.note(s, "direction check still failing after flip")
	}
	return nil
}

// filletRoots rounds the coil edges that become thread roots: the top
// 15% of edges by radial distance for internal threads (roots at the
// outer radius), the bottom 15% for external. Fillet radius is pitch/8,
// the ISO H/8 root convention. Zero candidates is a note, not a failure.
func (s *Synthesizer) filletRoots(st *state) error {
	edges := st.coil.Edges()
	if len(edges) == 0 {
		st.note(s, "no root fillet candidates on coil")
		return nil
	}
	sort.SliceStable(edges, func(i, j int) bool {
		return st.axis.Distance(edges[i].Centroid()) < st.axis.Distance(edges[j].Centroid())
	})
	k := int(math.Ceil(rootFilletFrac * float64(len(edges))))
	var sel []threadcad.Edge
	if st.desc.Internal {
		sel = edges[len(edges)-k:]
	} else {
		sel = edges[:k]
	}
	n, err := s.doc.Fillet(sel, st.pitch/8)
	if err != nil {
		return err
	}
	st.rootCount = n
	if n == 0 {
		st.note(s, "no coil edges accepted a root fillet")
	}
	return nil
}

// trimEnds cuts the coil flush at both terminating boundaries, even
// "full" ones, so overshoot never leaks into adjacent features: a
// perpendicular cutting plane, an oversized rectangle, an outward
// extruded block, and a subtract, at each end. Each block spans the
// whole coil length, the worst-case overshoot past a boundary when the
// thread covers only a sub-span of the face.
func (s *Synthesizer) trimEnds(st *state) error {
	half := 4 * (st.desc.Radius + st.depth)
	for _, u := range []float64{st.threadStartU, st.threadEndU} {
		out := sgn(u - (st.threadStartU+st.threadEndU)/2)
		pt := st.plane.To3D(r2.Vec{X: u})
		ppl, err := s.doc.PlanePerpendicular(st.axis, st.axis.At(st.axis.Project(pt)))
		if err != nil {
			return err
		}
		sk, err := s.doc.NewSketch(ppl)
		if err != nil {
			return err
		}
		if err := sk.Rect(r2.Vec{X: -half, Y: -half}, r2.Vec{X: half, Y: half}); err != nil {
			return err
		}
		prof, err := sk.CloseProfile()
		if err != nil {
			return err
		}
		block, err := s.doc.Extrude(prof, r3.Scale(out, st.plane.U), st.desc.Length+2*endExtension*st.pitch)
		if err != nil {
			return err
		}
		if err := s.doc.Subtract(st.coil, block); err != nil {
			return err
		}
	}
	return nil
}

// combine subtracts the filleted, trimmed coil from the base body. The
// base face is re-found geometrically first; handles cached before the
// earlier mutations are stale.
func (s *Synthesizer) combine(st *state) error {
	face, ok := s.an.Refind(st.desc)
	if !ok {
		return errors.New("base cylinder lost before combine")
	}
	st.body = face.Body()
	if err := s.doc.Subtract(st.body, st.coil); err != nil {
		return err
	}
	st.helpers = st.helpers[:0]
	return nil
}

// filletCrests rounds the freshly cut thread edges: every non-linear,
// non-circular edge of the part within ±15% of the surface radius, at
// the same root radius.
func (s *Synthesizer) filletCrests(st *state) error {
	var sel []threadcad.Edge
	for _, e := range st.body.Edges() {
		if k := e.Curve(); k == threadcad.CurveLine || k == threadcad.CurveCircle {
			continue
		}
		if math.Abs(st.axis.Distance(e.Centroid())-st.desc.Radius) <= crestBandFrac*st.desc.Radius {
			sel = append(sel, e)
		}
	}
	if len(sel) == 0 {
		st.note(s, "no crest fillet candidates after cut")
		return nil
	}
	n, err := s.doc.Fillet(sel, st.pitch/8)
	if err != nil {
		return err
	}
	st.crestCount = n
	return nil
}

// finalize renames the threaded body under the feature name and tucks
// away any helper bodies that survived the combine.
func (s *Synthesizer) finalize(st *state) error {
	if err := s.doc.SetName(st.body, st.feature); err != nil {
		return err
	}
	for _, h := range st.helpers {
		if err := s.doc.SetName(h, st.feature+" helper"); err != nil {
			return err
		}
		if err := s.doc.Hide(h); err != nil {
			return err
		}
	}
	return nil
}

func sgn(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
