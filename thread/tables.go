package thread

import (
	"strconv"
)

// Static thread tables. The catalog is populated once from these; there
// is no file I/O.

// isoAdd appends the internal and external entries for one ISO metric
// thread. diameter is the nominal (major) diameter [mm].
func (c *Catalog) isoAdd(diameter, pitch float64) {
	size := "M" + strconv.FormatFloat(diameter, 'f', -1, 64)
	designation := size + "x" + strconv.FormatFloat(pitch, 'f', -1, 64)
	major, pitchDia, minor := unifiedForm(diameter, pitch)
	c.add(Standard{
		Designation: designation,
		Family:      FamilyISO,
		Size:        size,
		Nominal:     diameter,
		Major:       major,
		PitchDia:    pitchDia,
		Minor:       minor,
		Pitch:       pitch,
	})
}

// utsAdd appends the internal and external entries for one unified
// thread. diameter is the nominal diameter [inch], tpi is threads per
// inch, series is "UNC" or "UNF".
func (c *Catalog) utsAdd(size, series string, diameter, tpi float64) {
	d := diameter * mmPerInch
	p := mmPerInch / tpi
	major, pitchDia, minor := unifiedForm(d, p)
	c.add(Standard{
		Designation: size + "-" + strconv.FormatFloat(tpi, 'f', -1, 64) + " " + series,
		Family:      FamilyANSI,
		Size:        size,
		Nominal:     d,
		Major:       major,
		PitchDia:    pitchDia,
		Minor:       minor,
		Pitch:       p,
	})
}

// add validates the entry and stores the internal/external pair.
func (c *Catalog) add(s Standard) {
	if err := s.validate(); err != nil {
		// partial failure: record and keep going so Init never blocks.
		c.initErr = err
		return
	}
	ext := s
	ext.Internal = false
	in := s
	in.Internal = true
	c.stds = append(c.stds, ext, in)
}

func (c *Catalog) populate() {
	// ISO coarse
	c.isoAdd(1, 0.25)
	c.isoAdd(1.2, 0.25)
	c.isoAdd(1.6, 0.35)
	c.isoAdd(2, 0.4)
	c.isoAdd(2.5, 0.45)
	c.isoAdd(3, 0.5)
	c.isoAdd(4, 0.7)
	c.isoAdd(5, 0.8)
	c.isoAdd(6, 1)
	c.isoAdd(8, 1.25)
	c.isoAdd(10, 1.5)
	c.isoAdd(12, 1.75)
	c.isoAdd(16, 2)
	c.isoAdd(20, 2.5)
	c.isoAdd(24, 3)
	c.isoAdd(30, 3.5)
	c.isoAdd(36, 4)
	c.isoAdd(42, 4.5)
	c.isoAdd(48, 5)
	c.isoAdd(56, 5.5)
	c.isoAdd(64, 6)
	// ISO fine
	c.isoAdd(1, 0.2)
	c.isoAdd(1.2, 0.2)
	c.isoAdd(1.6, 0.2)
	c.isoAdd(2, 0.25)
	c.isoAdd(2.5, 0.35)
	c.isoAdd(3, 0.35)
	c.isoAdd(4, 0.5)
	c.isoAdd(5, 0.5)
	c.isoAdd(6, 0.75)
	c.isoAdd(8, 1)
	c.isoAdd(10, 1.25)
	c.isoAdd(12, 1.5)
	c.isoAdd(16, 1.5)
	c.isoAdd(20, 2)
	c.isoAdd(24, 2)
	c.isoAdd(30, 2)
	c.isoAdd(36, 3)
	c.isoAdd(42, 3)
	c.isoAdd(48, 3)
	c.isoAdd(56, 4)
	c.isoAdd(64, 4)
	// UNC, numbered gauge sizes then fractional
	c.utsAdd("#4", "UNC", 0.112, 40)
	c.utsAdd("#5", "UNC", 0.125, 40)
	c.utsAdd("#6", "UNC", 0.138, 32)
	c.utsAdd("#8", "UNC", 0.164, 32)
	c.utsAdd("#10", "UNC", 0.190, 24)
	c.utsAdd("#12", "UNC", 0.216, 24)
	c.utsAdd("1/4", "UNC", 1.0/4.0, 20)
	c.utsAdd("5/16", "UNC", 5.0/16.0, 18)
	c.utsAdd("3/8", "UNC", 3.0/8.0, 16)
	c.utsAdd("7/16", "UNC", 7.0/16.0, 14)
	c.utsAdd("1/2", "UNC", 1.0/2.0, 13)
	c.utsAdd("9/16", "UNC", 9.0/16.0, 12)
	c.utsAdd("5/8", "UNC", 5.0/8.0, 11)
	c.utsAdd("3/4", "UNC", 3.0/4.0, 10)
	c.utsAdd("7/8", "UNC", 7.0/8.0, 9)
	c.utsAdd("1", "UNC", 1.0, 8)
	// UNF
	c.utsAdd("#4", "UNF", 0.112, 48)
	c.utsAdd("#5", "UNF", 0.125, 44)
	c.utsAdd("#6", "UNF", 0.138, 40)
	c.utsAdd("#8", "UNF", 0.164, 36)
	c.utsAdd("#10", "UNF", 0.190, 32)
	c.utsAdd("#12", "UNF", 0.216, 28)
	c.utsAdd("1/4", "UNF", 1.0/4.0, 28)
	c.utsAdd("5/16", "UNF", 5.0/16.0, 24)
	c.utsAdd("3/8", "UNF", 3.0/8.0, 24)
	c.utsAdd("7/16", "UNF", 7.0/16.0, 20)
	c.utsAdd("1/2", "UNF", 1.0/2.0, 20)
	c.utsAdd("9/16", "UNF", 9.0/16.0, 18)
	c.utsAdd("5/8", "UNF", 5.0/8.0, 18)
	c.utsAdd("3/4", "UNF", 3.0/4.0, 16)
	c.utsAdd("7/8", "UNF", 7.0/8.0, 14)
	c.utsAdd("1", "UNF", 1.0, 12)
}
