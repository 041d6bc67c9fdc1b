package preview

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/threadcad/threadcad/internal/d2"
	"github.com/threadcad/threadcad/synth"
	"github.com/threadcad/threadcad/thread"
)

// Debug plotters. Handy when tuning profile geometry without a kernel
// or a host CAD display.

// WriteProfilePNG plots one thread tooth cross-section of the standard
// to a PNG file. The axes are in millimeters.
func WriteProfilePNG(path string, shape synth.ProfileShape, std thread.Standard) error {
	depth := (std.Major - std.Minor) / 2
	outline := synth.ProfileOutline(shape, std.Pitch, depth)

	p := plot.New()
	p.Title.Text = std.Designation + " " + shape.String() + " profile"
	p.X.Label.Text = "axis [mm]"
	p.Y.Label.Text = "depth [mm]"

	// fixed ranges with a small margin keep plots of different
	// standards comparable
	lo, hi := d2.Set(outline).Min(), d2.Set(outline).Max()
	pad := 0.1 * std.Pitch
	p.X.Min, p.X.Max = lo.X-pad, hi.X+pad
	p.Y.Min, p.Y.Max = lo.Y-pad, hi.Y+pad

	xys := make(plotter.XYs, len(outline)+1)
	for i, v := range outline {
		xys[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	xys[len(outline)] = xys[0] // close the loop
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	p.Add(line, plotter.NewGrid())
	return p.Save(12*vg.Centimeter, 8*vg.Centimeter, path)
}

// WriteHelixPNG plots the side view of the pitch-diameter helix: axial
// position against the in-plane coordinate, one sample per helix point.
func WriteHelixPNG(path string, std thread.Standard, turns int) error {
	p := plot.New()
	p.Title.Text = std.Designation + " helix side view"
	p.X.Label.Text = "axis [mm]"
	p.Y.Label.Text = "radial [mm]"

	n := turns*PointsPerTurn + 1
	xys := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		t := float64(i) / PointsPerTurn
		xys[i] = plotter.XY{
			X: t * std.Pitch,
			Y: std.PitchDia / 2 * math.Sin(2*math.Pi*t),
		}
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	p.Add(line, plotter.NewGrid())
	return p.Save(12*vg.Centimeter, 8*vg.Centimeter, path)
}
