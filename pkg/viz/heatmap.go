package viz

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"streamprep/pkg/stats"
)

// CorrelationPlotFile is the default file name of the correlation heatmap.
const CorrelationPlotFile = "correlation_matrix.png"

// CorrelationChart draws the lower triangle of a correlation matrix.
type CorrelationChart struct {
	Saver    *Saver
	Filename string
	// ShowDiagonal keeps the unit diagonal visible; by default it is hidden
	// along with the upper triangle.
	ShowDiagonal bool
}

// PlotCorrelation rounds m to two decimals, renders it and saves it.
func (c *CorrelationChart) PlotCorrelation(m stats.CorrelationMatrix) (string, error) {
	p, err := HeatmapPlot(m.Round(2), c.ShowDiagonal)
	if err != nil {
		return "", err
	}
	name := c.Filename
	if name == "" {
		name = CorrelationPlotFile
	}
	return c.Saver.Save(p, name, 15*vg.Inch, 15*vg.Inch)
}

// triangle exposes the visible half of a correlation matrix as a grid.
// Grid row 0 is the bottom of the chart and holds the last matrix row.
type triangle struct {
	m        stats.CorrelationMatrix
	diagonal bool
}

func (g triangle) Dims() (c, r int) { return g.m.Size(), g.m.Size() }

func (g triangle) Z(c, r int) float64 {
	i := g.m.Size() - 1 - r
	if c > i || (c == i && !g.diagonal) {
		return math.NaN()
	}
	return g.m.At(i, c)
}

func (g triangle) X(c int) float64 { return float64(c) }

func (g triangle) Y(r int) float64 { return float64(r) }

// HeatmapPlot builds an annotated heatmap of m on a blue-red scale fixed to [-1, 1].
func HeatmapPlot(m stats.CorrelationMatrix, showDiagonal bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Correlation Matrix"
	n := m.Size()
	if n == 0 {
		return p, nil
	}

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)
	grid := triangle{m: m, diagonal: showDiagonal}
	hm := plotter.NewHeatMap(grid, cmap.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Transparent
	p.Add(hm)

	var (
		points plotter.XYs
		texts  []string
	)
	for r := range n {
		for c := range n {
			v := grid.Z(c, r)
			if math.IsNaN(v) {
				continue
			}
			points = append(points, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
			texts = append(texts, fmt.Sprintf("%.2f", v))
		}
	}
	if len(points) > 0 {
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: texts})
		if err != nil {
			return nil, err
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = draw.XCenter
			labels.TextStyle[i].YAlign = draw.YCenter
			labels.TextStyle[i].Font.Size = vg.Points(8)
		}
		p.Add(labels)
	}

	p.NominalX(m.Names...)
	reversed := slices.Clone(m.Names)
	slices.Reverse(reversed)
	p.NominalY(reversed...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}
