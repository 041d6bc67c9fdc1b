// Package preview produces cheap, non-committing polylines for
// interactive thread feedback: a pitch-diameter helix plus major and
// minor diameter circles at the real face-extent start. The preview
// honors start-from-end and handedness identically to the synthesizer so
// it always matches the eventual synthesis output. It never mutates the
// committed model or undo history.
package preview

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"

	threadcad "github.com/threadcad/threadcad"
	"github.com/threadcad/threadcad/analyze"
	"github.com/threadcad/threadcad/internal/d3"
	"github.com/threadcad/threadcad/synth"
	"github.com/threadcad/threadcad/thread"
)

// Group is the fixed identifier all preview graphics register under.
const Group = "threadcad-preview"

// PointsPerTurn is the helix polyline resolution.
const PointsPerTurn = 36

// Options mirror the synthesis options the preview depends on.
type Options struct {
	// Length is the thread length [mm]; zero previews the full face.
	Length float64
	// Offset shifts the thread start from the starting end [mm].
	Offset float64
	LeftHand bool
	FromEnd  bool
}

// Generator draws previews onto a document's transient canvas.
type Generator struct {
	canvas threadcad.Canvas
}

// New returns a generator drawing onto the given canvas.
func New(canvas threadcad.Canvas) *Generator {
	return &Generator{canvas: canvas}
}

// Show replaces any prior preview with the helix and diameter circles
// for the given cylinder and standard.
func (g *Generator) Show(desc analyze.Descriptor, std thread.Standard, opt Options) error {
	g.Clear()
	if !desc.Valid {
		return errors.New("preview: cylinder was not analyzed")
	}
	length := desc.Length - opt.Offset
	if opt.Length > 0 && opt.Length < length {
		length = opt.Length
	}
	turns := synth.Turns(length, std.Pitch)
	if turns < 1 {
		return fmt.Errorf("preview: thread length %gmm fits no whole turn of pitch %gmm",
			length, std.Pitch)
	}

	origin := desc.Start
	dir := desc.Axis
	if opt.FromEnd {
		origin = desc.End
		dir = r3.Scale(-1, dir)
	}
	origin = r3.Add(origin, r3.Scale(opt.Offset, dir))
	u, v := d3.OrthoBasis(dir)

	g.canvas.Polyline(Group, helix(origin, dir, u, v, std.PitchDia/2, std.Pitch, turns, opt.LeftHand))
	g.canvas.Polyline(Group, circle(origin, u, v, std.Major/2))
	g.canvas.Polyline(Group, circle(origin, u, v, std.Minor/2))
	return nil
}

// Clear fully tears down the preview graphics registered under the
// fixed group identifier.
func (g *Generator) Clear() {
	g.canvas.Remove(Group)
}

func helix(origin, dir, u, v r3.Vec, radius, pitch float64, turns int, leftHand bool) []threadcad.Point32 {
	n := turns*PointsPerTurn + 1
	pts := make([]threadcad.Point32, n)
	for i := 0; i < n; i++ {
		t := float32(i) / PointsPerTurn // turns travelled
		theta := 2 * math32.Pi * t
		if leftHand {
			theta = -theta
		}
		sin, cos := math32.Sincos(theta)
		p := r3.Add(origin, r3.Scale(float64(t)*pitch, dir))
		p = r3.Add(p, r3.Scale(radius*float64(cos), u))
		p = r3.Add(p, r3.Scale(radius*float64(sin), v))
		pts[i] = point32(p)
	}
	return pts
}

func circle(center, u, v r3.Vec, radius float64) []threadcad.Point32 {
	pts := make([]threadcad.Point32, PointsPerTurn+1)
	for i := 0; i <= PointsPerTurn; i++ {
		sin, cos := math32.Sincos(2 * math32.Pi * float32(i) / PointsPerTurn)
		p := r3.Add(center, r3.Scale(radius*float64(cos), u))
		p = r3.Add(p, r3.Scale(radius*float64(sin), v))
		pts[i] = point32(p)
	}
	return pts
}

func point32(p r3.Vec) threadcad.Point32 {
	return threadcad.Point32{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)}
}
