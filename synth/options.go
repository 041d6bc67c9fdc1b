// Package synth synthesizes helical thread geometry on analyzed
// cylindrical faces by driving the solid-modeling kernel through frame
// construction, profile drawing, helical sweep, trim, fillet and boolean
// combine. The whole sequence runs inside one kernel transaction: full
// success and commit, or any failure aborts and the model is unchanged.
package synth

import (
	"github.com/threadcad/threadcad/analyze"
	"github.com/threadcad/threadcad/thread"
)

// Options select what thread to generate and where.
type Options struct {
	// Standard is the chosen thread standard.
	Standard thread.Standard
	// Cylinder is the analyzed target face descriptor.
	Cylinder analyze.Descriptor
	// Length is the thread length along the axis [mm]. Zero threads the
	// whole face extent.
	Length float64
	// Offset shifts the thread start from the starting end [mm].
	Offset float64
	// LeftHand generates a left-handed thread.
	LeftHand bool
	// Shape is the cut cross-section.
	Shape ProfileShape
	// Resize adjusts the cylinder diameter over the thread span to the
	// standard's target (tap drill for internal, major for external)
	// before cutting.
	Resize bool
	// Name prefixes the created feature entities. Empty means "Thread".
	Name string
	// FromEnd starts the thread at the End extent instead of Start.
	FromEnd bool
}

// Result reports the outcome of one synthesis call. No thread geometry
// exists unless OK is true.
type Result struct {
	OK bool
	// Message is the success summary or the consolidated failure
	// diagnostic.
	Message string
	// Feature is the name of the created feature.
	Feature string
	// Turns is the whole number of thread turns generated.
	Turns int
	// Notes carries soft degradations that did not fail the synthesis,
	// e.g. zero fillet candidates.
	Notes []string
}

// Pipeline constants. Empirical defaults, not physical law.
const (
	// resizeEps gates the resize revolve: targets closer than this to
	// the current radius are left alone [mm].
	resizeEps = 1e-3
	// rootFilletFrac is the radial percentile of coil edges filleted as
	// thread roots.
	rootFilletFrac = 0.15
	// crestBandFrac is the half-width, as a fraction of the surface
	// radius, of the radial band in which post-cut edges count as crests.
	crestBandFrac = 0.15
	// endExtension is the sweep overshoot past each physical end, in
	// pitches. Overshoot is removed by trimming, never by shortening
	// the sweep.
	endExtension = 2.0
)
