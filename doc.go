// Package threadcad computes physically accurate helical thread geometry
// on cylindrical surfaces of mechanical parts.
//
// The root package defines the solid-modeling kernel contract the core
// drives: typed face/edge/body handles, sketching, helical sweeps, booleans,
// fillets and transactions. The kernel itself is an external collaborator;
// package breptest provides an in-memory implementation for tests and
// examples.
//
// Subpackages:
//   - thread:  standardized thread dimension catalog (ISO metric, ANSI unified).
//   - analyze: cylindrical surface analysis and geometric re-identification.
//   - synth:   the thread geometry synthesis pipeline.
//   - preview: non-committing helix/circle preview polylines.
package threadcad
