// Package thread provides a static catalog of standardized screw thread
// dimensions (ISO metric coarse/fine, ANSI unified coarse/fine) and query
// helpers for matching catalog entries against measured cylinder diameters.
//
// All dimensions are in millimeters. Inch-based ANSI table values are
// scaled at table-build time.
package thread

import (
	"fmt"
	"math"
)

// Family is a thread standard family.
type Family uint8

const (
	// FamilyISO is the ISO metric thread family (M designations).
	FamilyISO Family = iota
	// FamilyANSI is the ANSI unified inch thread family (UNC/UNF).
	FamilyANSI
)

func (f Family) String() string {
	if f == FamilyANSI {
		return "ANSI"
	}
	return "ISO"
}

// 60 degree unified thread form constants (ISO 68-1, ASME B1.1).
const (
	pitchDiaAdj = 0.64952
	minorDiaAdj = 1.08253
)

const mmPerInch = 25.4

// Standard is one standardized thread form. For every designation the
// catalog holds an internal and an external entry, identical except for
// the Internal flag and display name.
type Standard struct {
	// Designation names the thread, e.g. "M8x1.25" or "1/4-20 UNC".
	Designation string
	Family      Family
	// Size is the short size label, e.g. "M8" or "1/4".
	Size string
	// Nominal is the nominal diameter [mm].
	Nominal float64
	// Major is the major (crest, external) diameter [mm].
	Major float64
	// PitchDia is the pitch diameter [mm].
	PitchDia float64
	// Minor is the minor (root, external) diameter [mm].
	Minor float64
	// Pitch is the thread to thread distance [mm].
	Pitch float64
	// Internal is true for internal (nut, tapped hole) threads.
	Internal bool
}

// TapDrill returns the pre-drill hole diameter for cutting the internal
// thread, approximated as the mean of minor and pitch diameter. Always
// derived, never stored.
func (s Standard) TapDrill() float64 {
	return (s.Minor + s.PitchDia) / 2
}

// CompareDiameter returns the diameter a measured cylinder is matched
// against: the tap drill diameter for internal threads, the nominal
// diameter for external ones.
func (s Standard) CompareDiameter() float64 {
	if s.Internal {
		return s.TapDrill()
	}
	return s.Nominal
}

// Display returns the designation with the thread side spelled out,
// e.g. "M8x1.25 internal".
func (s Standard) Display() string {
	if s.Internal {
		return s.Designation + " internal"
	}
	return s.Designation + " external"
}

func (s Standard) validate() error {
	if !(s.Major >= s.PitchDia && s.PitchDia >= s.Minor && s.Minor > 0) {
		return fmt.Errorf("thread %q: want major >= pitch dia >= minor > 0, got %.4f/%.4f/%.4f",
			s.Designation, s.Major, s.PitchDia, s.Minor)
	}
	if s.Pitch <= 0 {
		return fmt.Errorf("thread %q: non-positive pitch %g", s.Designation, s.Pitch)
	}
	return nil
}

// unifiedForm derives the pitch and minor diameters of a 60 degree
// thread form from major diameter d and pitch p.
func unifiedForm(d, p float64) (major, pitchDia, minor float64) {
	return d, d - pitchDiaAdj*p, d - minorDiaAdj*p
}

// roundDia rounds a diameter to 4 decimals to absorb floating point
// noise from unit conversion.
func roundDia(d float64) float64 {
	return math.Round(d*1e4) / 1e4
}
