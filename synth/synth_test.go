package synth_test

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/threadcad/threadcad/analyze"
	"github.com/threadcad/threadcad/breptest"
	"github.com/threadcad/threadcad/synth"
	"github.com/threadcad/threadcad/thread"
)

func lookup(t *testing.T, designation string, internal bool) thread.Standard {
	t.Helper()
	std, ok := thread.Default().Lookup(designation, internal)
	if !ok {
		t.Fatalf("standard %s not in catalog", designation)
	}
	return std
}

func analyzed(t *testing.T, k *breptest.Kernel, face *breptest.Face) analyze.Descriptor {
	t.Helper()
	d := analyze.New(k).AnalyzeFace(face)
	if !d.Valid {
		t.Fatalf("analysis failed: %s", d.Err)
	}
	return d
}

func TestGenerateExternalM8(t *testing.T) {
	k := breptest.NewKernel()
	face := k.AddShaft(4, 20, r3.Vec{}, r3.Vec{Z: 1})
	res := synth.New(k).Generate(synth.Options{
		Standard: lookup(t, "M8x1.25", false),
		Cylinder: analyzed(t, k, face),
		Shape:    synth.Triangular,
		Resize:   true,
	})
	if !res.OK {
		t.Fatalf("generate failed: %s", res.Message)
	}
	if res.Turns != 16 {
		t.Errorf("turns %d, want 16", res.Turns)
	}
	for _, want := range []string{"M8x1.25", "external", "16 turns"} {
		if !strings.Contains(res.Message, want) {
			t.Errorf("message %q does not mention %q", res.Message, want)
		}
	}
	if strings.Contains(res.Message, "resized") {
		t.Errorf("on-size shaft reported resized: %q", res.Message)
	}
	if k.Transactions() != 1 {
		t.Errorf("%d transactions opened, want 1", k.Transactions())
	}
	if len(k.Bodies()) != 1 {
		t.Fatalf("%d bodies left, want the threaded shaft only", len(k.Bodies()))
	}
	body := k.Bodies()[0].(*breptest.Body)
	if body.Name() != res.Feature {
		t.Errorf("body named %q, feature %q", body.Name(), res.Feature)
	}
	filleted := 0
	for _, e := range body.Edges() {
		if be, ok := e.(*breptest.Edge); ok && be.Filleted() > 0 {
			filleted++
		}
	}
	if filleted == 0 {
		t.Error("no thread edges were filleted")
	}
}

func TestGenerateResizesShaft(t *testing.T) {
	k := breptest.NewKernel()
	face := k.AddShaft(3.9, 20, r3.Vec{}, r3.Vec{Z: 1})
	res := synth.New(k).Generate(synth.Options{
		Standard: lookup(t, "M8x1.25", false),
		Cylinder: analyzed(t, k, face),
		Resize:   true,
	})
	if !res.OK {
		t.Fatalf("generate failed: %s", res.Message)
	}
	if !strings.Contains(res.Message, "resized") {
		t.Errorf("message %q does not mention the resize", res.Message)
	}
	cyl, ok := k.Bodies()[0].Faces()[0].Cylinder()
	if !ok || math.Abs(cyl.Radius-4) > 1e-9 {
		t.Errorf("shaft radius %g after generate, want the major radius 4", cyl.Radius)
	}
}

func TestGenerateInternalTapped(t *testing.T) {
	k := breptest.NewKernel()
	std := lookup(t, "M8x1.25", true)
	face := k.AddHole(3.45, 12, r3.Vec{}, r3.Vec{Z: 1})
	res := synth.New(k).Generate(synth.Options{
		Standard: std,
		Cylinder: analyzed(t, k, face),
		Resize:   true,
	})
	if !res.OK {
		t.Fatalf("generate failed: %s", res.Message)
	}
	if res.Turns != 9 {
		t.Errorf("turns %d, want 9", res.Turns)
	}
	if !strings.Contains(res.Message, "internal") {
		t.Errorf("message %q does not mention the side", res.Message)
	}
	cyl, ok := k.Bodies()[0].Faces()[0].Cylinder()
	if !ok || math.Abs(cyl.Radius-std.TapDrill()/2) > 1e-9 {
		t.Errorf("hole radius %g after generate, want tap drill radius %g",
			cyl.Radius, std.TapDrill()/2)
	}
}

func TestGeneratePartialLength(t *testing.T) {
	k := breptest.NewKernel()
	face := k.AddShaft(4, 20, r3.Vec{}, r3.Vec{Z: 1})
	res := synth.New(k).Generate(synth.Options{
		Standard: lookup(t, "M8x1.25", false),
		Cylinder: analyzed(t, k, face),
		Length:   10,
		Offset:   2,
		FromEnd:  true,
	})
	if !res.OK {
		t.Fatalf("generate failed: %s", res.Message)
	}
	if res.Turns != 8 {
		t.Errorf("turns %d, want 8 over the 10mm sub-span", res.Turns)
	}
}

func TestGenerateCorrectsSweepDirection(t *testing.T) {
	k := breptest.NewKernel()
	k.FlipSweep = true
	face := k.AddShaft(4, 20, r3.Vec{}, r3.Vec{Z: 1})
	res := synth.New(k).Generate(synth.Options{
		Standard: lookup(t, "M8x1.25", false),
		Cylinder: analyzed(t, k, face),
	})
	if !res.OK {
		t.Fatalf("generate failed against a direction-flipping kernel: %s", res.Message)
	}
	if len(res.Notes) != 0 {
		t.Errorf("flip left notes behind: %v", res.Notes)
	}
}

func TestValidateTooShort(t *testing.T) {
	k := breptest.NewKernel()
	face := k.AddShaft(5, 1, r3.Vec{}, r3.Vec{Z: 1})
	res := synth.New(k).Generate(synth.Options{
		Standard: lookup(t, "M10x1.5", false),
		Cylinder: analyzed(t, k, face),
	})
	if res.OK {
		t.Fatal("generate accepted a cylinder shorter than one turn")
	}
	// the diagnostic names both values
	for _, want := range []string{"1mm", "1.5mm"} {
		if !strings.Contains(res.Message, want) {
			t.Errorf("message %q does not mention %q", res.Message, want)
		}
	}
	if k.Transactions() != 0 {
		t.Errorf("validation failure opened %d transactions, want 0", k.Transactions())
	}
}

func TestValidateNoStandard(t *testing.T) {
	k := breptest.NewKernel()
	face := k.AddShaft(4, 20, r3.Vec{}, r3.Vec{Z: 1})
	res := synth.New(k).Generate(synth.Options{Cylinder: analyzed(t, k, face)})
	if res.OK || !strings.Contains(res.Message, "standard") {
		t.Errorf("empty standard produced %+v", res)
	}
	if k.Transactions() != 0 {
		t.Error("validation failure opened a transaction")
	}
}

func TestValidateUnanalyzedCylinder(t *testing.T) {
	k := breptest.NewKernel()
	k.AddShaft(4, 20, r3.Vec{}, r3.Vec{Z: 1})
	err := synth.New(k).Validate(synth.Options{
		Standard: lookup(t, "M8x1.25", false),
	})
	if err == nil {
		t.Fatal("validate accepted a zero descriptor")
	}
}

func TestGenerateAbortsAtomically(t *testing.T) {
	k := breptest.NewKernel()
	face := k.AddShaft(3.9, 20, r3.Vec{}, r3.Vec{Z: 1})
	k.FailOp = "fillet"
	res := synth.New(k).Generate(synth.Options{
		Standard: lookup(t, "M8x1.25", false),
		Cylinder: analyzed(t, k, face),
		Resize:   true,
	})
	if res.OK {
		t.Fatal("generate reported success with a failing kernel")
	}
	if !strings.Contains(res.Message, "filletRoots") {
		t.Errorf("message %q does not name the failing step", res.Message)
	}
	if !strings.Contains(res.Message, "E_SIM") {
		t.Errorf("message %q does not carry the kernel error code", res.Message)
	}
	// abort must undo everything, including the resize
	if len(k.Bodies()) != 1 {
		t.Fatalf("%d bodies after abort, want 1", len(k.Bodies()))
	}
	cyl, ok := k.Bodies()[0].Faces()[0].Cylinder()
	if !ok || math.Abs(cyl.Radius-3.9) > 1e-9 {
		t.Errorf("shaft radius %g after abort, want the original 3.9", cyl.Radius)
	}
	if k.Transactions() != 1 {
		t.Errorf("%d transactions opened, want 1", k.Transactions())
	}
}
