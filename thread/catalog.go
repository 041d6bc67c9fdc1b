package thread

import (
	"math"
	"sort"
	"strings"
	"sync"
)

// Catalog is an immutable-after-init list of thread standards.
// The zero value is usable; every query initializes lazily.
type Catalog struct {
	once    sync.Once
	initErr error
	stds    []Standard
}

var defaultCatalog Catalog

// Default returns the package-level catalog.
func Default() *Catalog {
	defaultCatalog.Init()
	return &defaultCatalog
}

// Init populates the catalog from the static tables. It is idempotent
// and never blocks repeat callers: even on partial table failure the
// catalog is marked initialized and later queries run against whatever
// was loaded. The first table error, if any, is returned on every call.
func (c *Catalog) Init() error {
	c.once.Do(c.populate)
	return c.initErr
}

// Standards returns all catalog entries, internal and external.
func (c *Catalog) Standards() []Standard {
	c.Init()
	return c.stds
}

// FindMatching returns the standards of the requested type whose
// comparison diameter lies within diameter ± diameter*tolerancePercent/100,
// ordered by ascending |difference| with ties broken by descending pitch
// (coarse preferred). tolerancePercent <= 0 selects the default of 10.
func (c *Catalog) FindMatching(diameter, tolerancePercent float64, internal bool) []Standard {
	c.Init()
	if tolerancePercent <= 0 {
		tolerancePercent = 10
	}
	tol := diameter * tolerancePercent / 100
	var out []Standard
	for _, s := range c.stds {
		if s.Internal != internal {
			continue
		}
		if math.Abs(s.CompareDiameter()-diameter) <= tol {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di := math.Abs(out[i].CompareDiameter() - diameter)
		dj := math.Abs(out[j].CompareDiameter() - diameter)
		if math.Abs(di-dj) > 1e-9 {
			return di < dj
		}
		return out[i].Pitch > out[j].Pitch
	})
	return out
}

// ListByType returns all standards of the requested type ordered by
// ascending nominal diameter (ties by descending pitch) and the index of
// the entry whose comparison diameter is closest to currentDiameter.
// The index is -1 for an empty result.
func (c *Catalog) ListByType(internal bool, currentDiameter float64) ([]Standard, int) {
	c.Init()
	var out []Standard
	for _, s := range c.stds {
		if s.Internal == internal {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if math.Abs(out[i].Nominal-out[j].Nominal) > 1e-9 {
			return out[i].Nominal < out[j].Nominal
		}
		return out[i].Pitch > out[j].Pitch
	})
	closest := -1
	best := math.Inf(1)
	for i, s := range out {
		if d := math.Abs(s.CompareDiameter() - currentDiameter); d < best {
			best = d
			closest = i
		}
	}
	return out, closest
}

// Size is one deduplicated nominal diameter with its display label.
type Size struct {
	// Nominal diameter [mm], rounded to 4 decimals.
	Nominal float64
	// Label is the size label, e.g. "M8" or "5/16".
	Label string
}

// AvailableSizes returns the deduplicated nominal diameters of one
// family and type, ascending, and the index of the size closest to
// currentDiameter. Nominal diameters are rounded to 4 decimals before
// deduplication to absorb floating point noise from unit conversion.
func (c *Catalog) AvailableSizes(internal bool, currentDiameter float64, family Family) ([]Size, int) {
	c.Init()
	seen := make(map[float64]bool)
	var out []Size
	dist := make(map[float64]float64) // nominal -> best |compare - current|
	for _, s := range c.stds {
		if s.Internal != internal || s.Family != family {
			continue
		}
		key := roundDia(s.Nominal)
		d := math.Abs(s.CompareDiameter() - currentDiameter)
		if prev, ok := dist[key]; !ok || d < prev {
			dist[key] = d
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Size{Nominal: key, Label: s.Size})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nominal < out[j].Nominal })
	closest := -1
	best := math.Inf(1)
	for i, sz := range out {
		if d := dist[sz.Nominal]; d < best {
			best = d
			closest = i
		}
	}
	return out, closest
}

// PitchOptions returns all pitches available for one nominal diameter,
// descending (coarse first).
func (c *Catalog) PitchOptions(nominalDiameter float64, internal bool, family Family) []float64 {
	c.Init()
	key := roundDia(nominalDiameter)
	var out []float64
	for _, s := range c.stds {
		if s.Internal != internal || s.Family != family {
			continue
		}
		if roundDia(s.Nominal) == key {
			out = append(out, s.Pitch)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}

// Lookup returns the first entry matching the designation
// (case-insensitive) and type.
func (c *Catalog) Lookup(designation string, internal bool) (Standard, bool) {
	c.Init()
	for _, s := range c.stds {
		if s.Internal == internal && strings.EqualFold(s.Designation, designation) {
			return s, true
		}
	}
	return Standard{}, false
}

// LookupAny returns the first entry matching the designation
// (case-insensitive) regardless of type.
func (c *Catalog) LookupAny(designation string) (Standard, bool) {
	c.Init()
	for _, s := range c.stds {
		if strings.EqualFold(s.Designation, designation) {
			return s, true
		}
	}
	return Standard{}, false
}
