package thread

import (
	"math"
	"strings"
	"testing"
)

func TestCatalogInvariants(t *testing.T) {
	c := Default()
	if err := c.Init(); err != nil {
		t.Fatalf("table error: %v", err)
	}
	if len(c.Standards()) == 0 {
		t.Fatal("empty catalog")
	}
	for _, s := range c.Standards() {
		if !(s.Major >= s.PitchDia && s.PitchDia >= s.Minor && s.Minor > 0) {
			t.Errorf("%s: major=%.4f pitchDia=%.4f minor=%.4f violates ordering",
				s.Display(), s.Major, s.PitchDia, s.Minor)
		}
		if got, want := s.TapDrill(), (s.Minor+s.PitchDia)/2; got != want {
			t.Errorf("%s: tap drill %.6f != (minor+pitchDia)/2 %.6f", s.Display(), got, want)
		}
		if s.Pitch <= 0 {
			t.Errorf("%s: non-positive pitch", s.Display())
		}
	}
}

func TestCatalogPairing(t *testing.T) {
	c := Default()
	type pair struct {
		internal, external int
		in, ex             Standard
	}
	pairs := make(map[string]*pair)
	for _, s := range c.Standards() {
		p := pairs[s.Designation]
		if p == nil {
			p = &pair{}
			pairs[s.Designation] = p
		}
		if s.Internal {
			p.internal++
			p.in = s
		} else {
			p.external++
			p.ex = s
		}
	}
	for designation, p := range pairs {
		if p.internal != 1 || p.external != 1 {
			t.Errorf("%s: want exactly one internal and one external entry, got %d/%d",
				designation, p.internal, p.external)
			continue
		}
		if p.in.Major != p.ex.Major || p.in.Minor != p.ex.Minor ||
			p.in.PitchDia != p.ex.PitchDia || p.in.Pitch != p.ex.Pitch ||
			p.in.Nominal != p.ex.Nominal {
			t.Errorf("%s: internal/external dimensions differ", designation)
		}
	}
}

func TestFindMatching(t *testing.T) {
	c := Default()
	for _, tc := range []struct {
		dia      float64
		tol      float64
		internal bool
	}{
		{dia: 8, tol: 10, internal: false},
		{dia: 6.9, tol: 10, internal: true},
		{dia: 12.7, tol: 5, internal: false},
		{dia: 4.2, tol: 10, internal: true},
	} {
		got := c.FindMatching(tc.dia, tc.tol, tc.internal)
		limit := tc.dia * tc.tol / 100
		for _, s := range got {
			if d := math.Abs(s.CompareDiameter() - tc.dia); d > limit {
				t.Errorf("FindMatching(%g,%g): %s out of tolerance, diff %g > %g",
					tc.dia, tc.tol, s.Display(), d, limit)
			}
			if s.Internal != tc.internal {
				t.Errorf("FindMatching(%g,%g): %s wrong thread side", tc.dia, tc.tol, s.Display())
			}
		}
		for i := 1; i < len(got); i++ {
			di := math.Abs(got[i-1].CompareDiameter() - tc.dia)
			dj := math.Abs(got[i].CompareDiameter() - tc.dia)
			if di-dj > 1e-9 {
				t.Errorf("FindMatching(%g,%g): not sorted by |diff| at %d", tc.dia, tc.tol, i)
			}
		}
		// re-querying identical inputs is idempotent
		again := c.FindMatching(tc.dia, tc.tol, tc.internal)
		if len(again) != len(got) {
			t.Fatalf("FindMatching(%g,%g): repeat query differs", tc.dia, tc.tol)
		}
		for i := range got {
			if got[i] != again[i] {
				t.Errorf("FindMatching(%g,%g): repeat query differs at %d", tc.dia, tc.tol, i)
			}
		}
	}
}

// A 6.9mm hole at 10% tolerance is an M8 tap drill before anything else.
func TestFindMatchingTapDrill(t *testing.T) {
	got := Default().FindMatching(6.9, 10, true)
	if len(got) == 0 {
		t.Fatal("no match for 6.9mm internal")
	}
	first := got[0]
	if first.Designation != "M8x1.25" {
		t.Fatalf("want M8x1.25 ranked first, got %s", first.Display())
	}
	if td := first.TapDrill(); math.Abs(td-6.9175) > 1e-3 {
		t.Errorf("M8x1.25 tap drill = %.4f, want about 6.9175", td)
	}
}

func TestListByType(t *testing.T) {
	list, closest := Default().ListByType(false, 8)
	if len(list) == 0 {
		t.Fatal("empty list")
	}
	for i := 1; i < len(list); i++ {
		if list[i].Nominal < list[i-1].Nominal-1e-9 {
			t.Fatalf("not sorted by nominal at %d", i)
		}
		if math.Abs(list[i].Nominal-list[i-1].Nominal) < 1e-9 &&
			list[i].Pitch > list[i-1].Pitch {
			t.Fatalf("pitch tie-break not descending at %d", i)
		}
	}
	if closest < 0 || closest >= len(list) {
		t.Fatalf("closest index %d out of range", closest)
	}
	if list[closest].Nominal != 8 {
		t.Errorf("closest to 8mm external is %s, want an M8", list[closest].Display())
	}
}

func TestAvailableSizes(t *testing.T) {
	for _, family := range []Family{FamilyISO, FamilyANSI} {
		sizes, closest := Default().AvailableSizes(false, 8, family)
		if len(sizes) == 0 {
			t.Fatalf("%v: no sizes", family)
		}
		byLabel := make(map[string]float64)
		byNominal := make(map[float64]bool)
		for _, sz := range sizes {
			if byNominal[sz.Nominal] {
				t.Errorf("%v: duplicate nominal %g after rounding", family, sz.Nominal)
			}
			byNominal[sz.Nominal] = true
			if prev, ok := byLabel[sz.Label]; ok && prev != sz.Nominal {
				t.Errorf("%v: label %q maps to %g and %g", family, sz.Label, prev, sz.Nominal)
			}
			byLabel[sz.Label] = sz.Nominal
		}
		if closest < 0 || closest >= len(sizes) {
			t.Fatalf("%v: closest index %d out of range", family, closest)
		}
	}
	sizes, closest := Default().AvailableSizes(false, 8, FamilyISO)
	if sizes[closest].Label != "M8" {
		t.Errorf("closest ISO size to 8mm = %q, want M8", sizes[closest].Label)
	}
}

func TestPitchOptions(t *testing.T) {
	got := Default().PitchOptions(8, false, FamilyISO)
	if len(got) != 2 || got[0] != 1.25 || got[1] != 1 {
		t.Fatalf("M8 pitches = %v, want [1.25 1]", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] > got[i-1] {
			t.Fatal("pitches not descending")
		}
	}
	ansi := Default().PitchOptions(3.0/8.0*25.4, true, FamilyANSI)
	if len(ansi) != 2 {
		t.Fatalf("3/8 pitches = %v, want two entries", ansi)
	}
	if math.Abs(ansi[0]-25.4/16) > 1e-9 || math.Abs(ansi[1]-25.4/24) > 1e-9 {
		t.Errorf("3/8 pitches = %v, want UNC then UNF", ansi)
	}
}

func TestLookup(t *testing.T) {
	for _, designation := range []string{"M8x1.25", "m8X1.25", "1/4-20 unc"} {
		s, ok := Default().Lookup(designation, true)
		if !ok {
			t.Errorf("Lookup(%q) failed", designation)
			continue
		}
		if !s.Internal {
			t.Errorf("Lookup(%q) returned external entry", designation)
		}
		if !strings.EqualFold(s.Designation, designation) {
			t.Errorf("Lookup(%q) returned %q", designation, s.Designation)
		}
	}
	if _, ok := Default().LookupAny("M7x9"); ok {
		t.Error("LookupAny invented a thread")
	}
}

func TestANSIDerivation(t *testing.T) {
	// 1/4-20 UNC: D=6.35mm, pitch=1.27mm.
	s, ok := Default().Lookup("1/4-20 UNC", false)
	if !ok {
		t.Fatal("1/4-20 UNC missing")
	}
	const d, p = 0.25 * 25.4, 25.4 / 20
	if math.Abs(s.Pitch-p) > 1e-9 {
		t.Errorf("pitch = %.6f, want %.6f", s.Pitch, p)
	}
	if math.Abs(s.PitchDia-(d-0.64952*p)) > 1e-9 {
		t.Errorf("pitch diameter = %.6f, want %.6f", s.PitchDia, d-0.64952*p)
	}
	if math.Abs(s.Minor-(d-1.08253*p)) > 1e-9 {
		t.Errorf("minor diameter = %.6f, want %.6f", s.Minor, d-1.08253*p)
	}
}

func TestInitIdempotent(t *testing.T) {
	var c Catalog
	if err := c.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	n := len(c.Standards())
	for i := 0; i < 3; i++ {
		c.Init()
	}
	if len(c.Standards()) != n {
		t.Fatal("repeat Init changed the catalog")
	}
}
