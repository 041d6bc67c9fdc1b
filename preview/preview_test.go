package preview_test

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/threadcad/threadcad/analyze"
	"github.com/threadcad/threadcad/breptest"
	"github.com/threadcad/threadcad/preview"
	"github.com/threadcad/threadcad/synth"
	"github.com/threadcad/threadcad/thread"
)

func m8External(t *testing.T) thread.Standard {
	t.Helper()
	std, ok := thread.Default().Lookup("M8x1.25", false)
	if !ok {
		t.Fatal("M8x1.25 not in catalog")
	}
	return std
}

func shaftDescriptor(t *testing.T) analyze.Descriptor {
	t.Helper()
	k := breptest.NewKernel()
	face := k.AddShaft(4, 20, r3.Vec{}, r3.Vec{Z: 1})
	d := analyze.New(k).AnalyzeFace(face)
	if !d.Valid {
		t.Fatalf("analysis failed: %s", d.Err)
	}
	return d
}

func TestShowDrawsHelixAndCircles(t *testing.T) {
	canvas := breptest.NewCanvas()
	g := preview.New(canvas)
	if err := g.Show(shaftDescriptor(t), m8External(t), preview.Options{}); err != nil {
		t.Fatal(err)
	}
	lines := canvas.Group(preview.Group)
	if len(lines) != 3 {
		t.Fatalf("%d polylines drawn, want helix plus two circles", len(lines))
	}
	wantHelix := 16*preview.PointsPerTurn + 1
	if got := len(lines[0]); got != wantHelix {
		t.Errorf("helix has %d points, want %d", got, wantHelix)
	}
	for i, c := range lines[1:] {
		if got := len(c); got != preview.PointsPerTurn+1 {
			t.Errorf("circle %d has %d points, want %d", i, got, preview.PointsPerTurn+1)
		}
	}
	// closed loops
	for i, pl := range lines {
		if pl[0] != pl[len(pl)-1] && i > 0 {
			t.Errorf("circle %d does not close", i)
		}
	}
}

func TestShowReplacesPriorPreview(t *testing.T) {
	canvas := breptest.NewCanvas()
	g := preview.New(canvas)
	d := shaftDescriptor(t)
	std := m8External(t)
	for i := 0; i < 3; i++ {
		if err := g.Show(d, std, preview.Options{}); err != nil {
			t.Fatal(err)
		}
	}
	if n := len(canvas.Group(preview.Group)); n != 3 {
		t.Errorf("%d polylines after repeated show, want 3", n)
	}
}

func TestClearRemovesGroup(t *testing.T) {
	canvas := breptest.NewCanvas()
	g := preview.New(canvas)
	if err := g.Show(shaftDescriptor(t), m8External(t), preview.Options{}); err != nil {
		t.Fatal(err)
	}
	g.Clear()
	if canvas.Group(preview.Group) != nil {
		t.Error("clear left preview graphics behind")
	}
}

func TestShowRejectsTooShort(t *testing.T) {
	canvas := breptest.NewCanvas()
	g := preview.New(canvas)
	std, ok := thread.Default().Lookup("M10x1.5", false)
	if !ok {
		t.Fatal("M10x1.5 not in catalog")
	}
	err := g.Show(shaftDescriptor(t), std, preview.Options{Length: 1})
	if err == nil {
		t.Fatal("preview accepted a sub-turn thread length")
	}
	if canvas.Group(preview.Group) != nil {
		t.Error("failed preview left graphics behind")
	}
}

func TestShowRejectsInvalidDescriptor(t *testing.T) {
	g := preview.New(breptest.NewCanvas())
	if err := g.Show(analyze.Descriptor{}, m8External(t), preview.Options{}); err == nil {
		t.Fatal("preview accepted an unanalyzed cylinder")
	}
}

func TestWriteProfilePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.png")
	if err := preview.WriteProfilePNG(path, synth.Trapezoidal, m8External(t)); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error("profile plot is empty")
	}
}

func TestWriteHelixPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helix.png")
	if err := preview.WriteHelixPNG(path, m8External(t), 4); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error("helix plot is empty")
	}
}
