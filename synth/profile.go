package synth

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ProfileShape selects the thread cross-section cut into the cylinder.
type ProfileShape uint8

const (
	// Triangular is a sharp 60 degree V profile, base width one pitch.
	Triangular ProfileShape = iota
	// Trapezoidal has 15 degree flanks from vertical and a flattened top.
	Trapezoidal
	// Square is a rectangular profile of width pitch/2.
	Square
)

func (p ProfileShape) String() string {
	switch p {
	case Trapezoidal:
		return "trapezoidal"
	case Square:
		return "square"
	}
	return "triangular"
}

const (
	// trapezoid flank angle from vertical.
	trapezoidFlank = 15 * math.Pi / 180
	// minimum trapezoid top half-width as a fraction of the base width,
	// keeping the apex from degenerating into a point. Empirical default.
	trapezoidMinTopFrac = 0.2
)

// ProfileOutline returns the closed cross-section loop of one thread
// tooth in canonical profile coordinates: x along the cylinder axis
// centered on the tooth, y the cut depth, with y=0 on the cylinder
// surface and y=depth at the root of the cut. The loop is closed by
// chaining the last vertex back to the first.
//
// The outline is kernel-free on purpose so profile geometry is testable
// without a live kernel; the synthesis pipeline maps it into sketch
// space afterwards.
func ProfileOutline(shape ProfileShape, pitch, depth float64) []r2.Vec {
	switch shape {
	case Trapezoidal:
		baseHalf := pitch / 4
		topHalf := baseHalf - depth*math.Tan(trapezoidFlank)
		if min := trapezoidMinTopFrac * 2 * baseHalf; topHalf < min {
			topHalf = min
		}
		return []r2.Vec{
			{X: -baseHalf, Y: 0},
			{X: baseHalf, Y: 0},
			{X: topHalf, Y: depth},
			{X: -topHalf, Y: depth},
		}
	case Square:
		half := pitch / 4
		return []r2.Vec{
			{X: -half, Y: 0},
			{X: half, Y: 0},
			{X: half, Y: depth},
			{X: -half, Y: depth},
		}
	default:
		// sharp 60 degree V, base width = pitch
		return []r2.Vec{
			{X: -pitch / 2, Y: 0},
			{X: pitch / 2, Y: 0},
			{X: 0, Y: depth},
		}
	}
}

// Turns returns the whole number of thread turns that fit in length at
// the given pitch.
func Turns(length, pitch float64) int {
	if pitch <= 0 || length <= 0 {
		return 0
	}
	return int(math.Floor(length / pitch))
}
