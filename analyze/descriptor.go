// Package analyze converts kernel face handles into geometry-independent
// cylinder descriptors and re-identifies equivalent faces after the model
// has been mutated.
//
// A Descriptor is created per analysis call and becomes stale the instant
// the kernel mutates topology. Consumers needing a face handle after a
// mutating operation re-derive it through Analyzer.Refind; cached handles
// are invalidated by the kernel across topology changes.
package analyze

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Descriptor describes the finite cylindrical face that was analyzed.
// Start and End are the real extent of the face along the axis, distinct
// from the kernel's infinite-cylinder math origin.
type Descriptor struct {
	// Radius of the cylindrical surface [mm].
	Radius float64
	// Length of the face along the axis [mm].
	Length float64
	// Axis is the unit axis direction, oriented from Start to End.
	Axis r3.Vec
	// Start is the axis point at the minimum axis projection of the
	// face's boundary, End at the maximum.
	Start r3.Vec
	End   r3.Vec
	// StartOpen and EndOpen report whether a thread may run off the
	// respective end without hitting adjacent geometry.
	StartOpen bool
	EndOpen   bool
	// Internal is true for hole walls, false for shafts.
	Internal bool
	// Valid is false when analysis failed; Err then carries the reason.
	Valid bool
	Err   string
}

// Midpoint returns the midpoint of the face extent on the axis.
func (d Descriptor) Midpoint() r3.Vec {
	return r3.Scale(0.5, r3.Add(d.Start, d.End))
}

// Side returns "internal" or "external".
func (d Descriptor) Side() string {
	if d.Internal {
		return "internal"
	}
	return "external"
}

func invalid(format string, args ...interface{}) Descriptor {
	return Descriptor{Err: fmt.Sprintf(format, args...)}
}
