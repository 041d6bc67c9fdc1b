// Package breptest is an in-memory kernel implementing the threadcad
// contract for tests and examples. Geometry is symbolic rather than
// evaluated: bodies carry analytic bounding boxes and synthesized edges
// with just enough fidelity for the analyzer and the synthesis pipeline
// to run end to end. Mutating operations replace face and edge objects
// wholesale, so stale handles dangle exactly like they would against a
// production kernel.
package breptest

import (
	"errors"

	threadcad "github.com/threadcad/threadcad"
)

// Kernel is an in-memory modeling document.
type Kernel struct {
	// FlipSweep makes HelicalSweep advance against the requested
	// direction, modeling hosts whose sweep direction flag is unreliable.
	FlipSweep bool
	// FailOp, when non-empty, makes the named modeling operation fail
	// with a kernel error. Used to exercise abort paths.
	FailOp string

	bodies  []*Body
	canvas  *Canvas
	snap    []*Body
	txOpen  bool
	txCount int
	gen     int
}

// NewKernel returns an empty document.
func NewKernel() *Kernel {
	return &Kernel{canvas: NewCanvas()}
}

func (k *Kernel) Bodies() []threadcad.Body {
	out := make([]threadcad.Body, len(k.bodies))
	for i, b := range k.bodies {
		out[i] = b
	}
	return out
}

// Begin snapshots the whole body graph; Abort swaps the snapshot back.
func (k *Kernel) Begin(name string) (threadcad.Transaction, error) {
	if k.txOpen {
		return nil, errors.New("breptest: transaction already open")
	}
	k.txOpen = true
	k.txCount++
	k.snap = snapshot(k.bodies)
	return &tx{k: k, name: name}, nil
}

func (k *Kernel) Canvas() threadcad.Canvas { return k.canvas }

// Transactions returns how many transactions were ever opened.
func (k *Kernel) Transactions() int { return k.txCount }

// Generation counts mutating operations; it bumps whenever handles may
// have been invalidated.
func (k *Kernel) Generation() int { return k.gen }

func (k *Kernel) mutate() { k.gen++ }

func (k *Kernel) fail(op string) error {
	if k.FailOp != "" && k.FailOp == op {
		return &threadcad.KernelError{Op: op, Code: "E_SIM", Err: errors.New("simulated failure")}
	}
	return nil
}

func (k *Kernel) has(b *Body) bool {
	for _, x := range k.bodies {
		if x == b {
			return true
		}
	}
	return false
}

func (k *Kernel) remove(b *Body) {
	for i, x := range k.bodies {
		if x == b {
			k.bodies = append(k.bodies[:i], k.bodies[i+1:]...)
			return
		}
	}
}

type tx struct {
	k    *Kernel
	name string
	done bool
}

func (t *tx) Commit() error {
	if t.done {
		return errors.New("breptest: transaction already closed")
	}
	t.done = true
	t.k.snap = nil
	t.k.txOpen = false
	return nil
}

func (t *tx) Abort() {
	if t.done {
		return
	}
	t.done = true
	t.k.bodies = t.k.snap
	t.k.snap = nil
	t.k.txOpen = false
	t.k.mutate()
}

// Canvas is a recording implementation of the transient graphics layer.
type Canvas struct {
	groups map[string][][]threadcad.Point32
}

// NewCanvas returns an empty recording canvas.
func NewCanvas() *Canvas {
	return &Canvas{groups: make(map[string][][]threadcad.Point32)}
}

func (c *Canvas) Polyline(group string, pts []threadcad.Point32) {
	c.groups[group] = append(c.groups[group], pts)
}

func (c *Canvas) Remove(group string) {
	delete(c.groups, group)
}

// Group returns the polylines currently registered under a group.
func (c *Canvas) Group(group string) [][]threadcad.Point32 {
	return c.groups[group]
}
