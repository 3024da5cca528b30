package analysis

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// NewConvergencePlot creates a plot of discretization distance against
// sampling period from two equal length data slices, typically the output of
// Convergence or Compare. It returns error if the slices are empty or their
// lengths differ.
func NewConvergencePlot(periods, dist []float64) (*plot.Plot, error) {
	if len(periods) == 0 || len(periods) != len(dist) {
		return nil, fmt.Errorf("invalid plot data dimensions: %d vs %d", len(periods), len(dist))
	}

	p := plot.New()

	p.Title.Text = "Discretization convergence"
	p.X.Label.Text = "sampling period"
	p.Y.Label.Text = "distance"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	pts := make(plotter.XYs, len(periods))
	for i := range pts {
		pts[i].X = periods[i]
		pts[i].Y = dist[i]
	}

	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create line plot: %v", err)
	}
	line.Color = color.RGBA{R: 255, B: 128, A: 255}
	scatter.GlyphStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(line, scatter)
	p.Legend.Add("distance", line)

	return p, nil
}
