package analyze

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	threadcad "github.com/threadcad/threadcad"
	"github.com/threadcad/threadcad/internal/d3"
)

// Refind locates the current face equivalent to a descriptor taken
// before a mutating operation. Candidates must match the descriptor's
// radius and axis; among those, the face with the smallest centroid
// distance to the descriptor's extent midpoint wins, and only if that
// distance is below the acceptance threshold. ok is false when no
// plausible candidate exists.
func (a *Analyzer) Refind(d Descriptor) (face threadcad.Face, ok bool) {
	if !d.Valid {
		return nil, false
	}
	mid := d.Midpoint()
	best := math.Inf(1)
	for _, body := range a.doc.Bodies() {
		for _, f := range body.Faces() {
			cyl, isCyl := f.Cylinder()
			if !isCyl {
				continue
			}
			if math.Abs(cyl.Radius-d.Radius) > a.Tol.RefindRadius {
				continue
			}
			n := r3.Norm(cyl.Axis)
			if n < 1e-12 {
				continue
			}
			if !d3.Parallel(r3.Scale(1/n, cyl.Axis), d.Axis, 1-a.Tol.RefindAxisDot) {
				continue
			}
			if dist := r3.Norm(r3.Sub(f.Centroid(), mid)); dist < best {
				best = dist
				face = f
			}
		}
	}
	if face == nil || best >= a.Tol.RefindCentroid {
		a.Log.Debug().Float64("bestDistance", best).Msg("cylinder not refound")
		return nil, false
	}
	return face, true
}
