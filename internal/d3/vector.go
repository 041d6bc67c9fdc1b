package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// R3 vector manipulation routines shared by the analysis and synthesis
// packages.

func Elem(sides float64) r3.Vec {
	return r3.Vec{
		X: sides,
		Y: sides,
		Z: sides,
	}
}

func EqualWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// OrthoBasis returns two unit vectors spanning the plane perpendicular
// to n. n need not be normalized.
func OrthoBasis(n r3.Vec) (u, v r3.Vec) {
	n = r3.Unit(n)
	// pick the world axis least aligned with n as the seed
	seed := r3.Vec{X: 1}
	if math.Abs(n.X) > math.Abs(n.Y) {
		seed = r3.Vec{Y: 1}
	}
	u = r3.Unit(r3.Cross(n, seed))
	v = r3.Cross(n, u)
	return u, v
}

// Parallel reports whether two unit vectors are parallel (either sense)
// within tol of |a·b| = 1.
func Parallel(a, b r3.Vec, tol float64) bool {
	return math.Abs(r3.Dot(a, b)) >= 1-tol
}

type Set []r3.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r3.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r3.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}
