package d3

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Box is a 3d bounding box.
type Box r3.Box

// NewBox creates a Box with a given center and size.
func NewBox(center, size r3.Vec) Box {
	half := r3.Scale(0.5, size)
	return Box{Min: r3.Sub(center, half), Max: r3.Add(center, half)}
}

// Center returns the center of the box.
func (b Box) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Size returns the size of the box.
func (b Box) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Extend returns a box enclosing the box and the given point.
func (b Box) Extend(p r3.Vec) Box {
	return Box{Min: MinElem(b.Min, p), Max: MaxElem(b.Max, p)}
}

// Union returns a box enclosing both boxes.
func (b Box) Union(c Box) Box {
	return Box{Min: MinElem(b.Min, c.Min), Max: MaxElem(b.Max, c.Max)}
}
