package analyze_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/threadcad/threadcad/analyze"
	"github.com/threadcad/threadcad/breptest"
)

func TestRefindSameFace(t *testing.T) {
	k := breptest.NewKernel()
	face := k.AddShaft(4, 20, r3.Vec{}, r3.Vec{Z: 1})
	an := analyze.New(k)
	d := an.AnalyzeFace(face)

	got, ok := an.Refind(d)
	if !ok {
		t.Fatal("face not refound in unchanged document")
	}
	cyl, _ := got.Cylinder()
	if cyl.Radius != 4 {
		t.Errorf("refound radius %g, want 4", cyl.Radius)
	}
}

func TestRefindNoCandidates(t *testing.T) {
	k := breptest.NewKernel()
	an := analyze.New(k)
	face := k.AddShaft(4, 20, r3.Vec{}, r3.Vec{Z: 1})
	d := an.AnalyzeFace(face)

	if err := k.Delete(k.Bodies()[0]); err != nil {
		t.Fatal(err)
	}
	if _, ok := an.Refind(d); ok {
		t.Error("refind found a face in an empty document")
	}
	if _, ok := an.Refind(analyze.Descriptor{}); ok {
		t.Error("refind accepted an invalid descriptor")
	}
}

func TestRefindPicksNearest(t *testing.T) {
	k := breptest.NewKernel()
	first := k.AddShaft(4, 20, r3.Vec{}, r3.Vec{Z: 1})
	k.AddShaft(4, 20, r3.Vec{Z: 100}, r3.Vec{Z: 1})
	an := analyze.New(k)
	d := an.AnalyzeFace(first)

	got, ok := an.Refind(d)
	if !ok {
		t.Fatal("face not refound among identical twins")
	}
	if c := got.Centroid(); math.Abs(c.Z-10) > 1e-9 {
		t.Errorf("refound centroid %v, want the nearer face at z=10", c)
	}
}

func TestRefindRadiusGate(t *testing.T) {
	k := breptest.NewKernel()
	an := analyze.New(k)
	face := k.AddShaft(4, 20, r3.Vec{}, r3.Vec{Z: 1})
	d := an.AnalyzeFace(face)

	if err := k.Delete(k.Bodies()[0]); err != nil {
		t.Fatal(err)
	}
	k.AddShaft(4.05, 20, r3.Vec{}, r3.Vec{Z: 1})
	if _, ok := an.Refind(d); ok {
		t.Error("refind matched a face outside the radius window")
	}
}

func TestRefindAxisGate(t *testing.T) {
	k := breptest.NewKernel()
	an := analyze.New(k)
	face := k.AddShaft(4, 20, r3.Vec{}, r3.Vec{Z: 1})
	d := an.AnalyzeFace(face)

	if err := k.Delete(k.Bodies()[0]); err != nil {
		t.Fatal(err)
	}
	k.AddShaft(4, 20, r3.Vec{}, r3.Unit(r3.Vec{X: 1, Z: 1}))
	if _, ok := an.Refind(d); ok {
		t.Error("refind matched a face with a different axis")
	}
}
