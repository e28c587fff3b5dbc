package viz

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"streamprep/pkg/dataprep"
)

// MissingPlotFile is the default file name of the missing-values chart.
const MissingPlotFile = "missing_values_plot.png"

var barColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// MissingChart draws a horizontal bar per column with its missing percentage.
type MissingChart struct {
	Saver    *Saver
	Filename string
}

// PlotMissing renders report and saves it. It satisfies dataprep.MissingPlotter.
func (c *MissingChart) PlotMissing(report dataprep.MissingReport) (string, error) {
	p, err := MissingPlot(report)
	if err != nil {
		return "", err
	}
	name := c.Filename
	if name == "" {
		name = MissingPlotFile
	}
	return c.Saver.Save(p, name, 10*vg.Inch, 8*vg.Inch)
}

// MissingPlot builds the bar chart for report, in report order from the
// bottom up, with every bar annotated by its percentage.
func MissingPlot(report dataprep.MissingReport) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Percentage of Missing Values by Column"
	p.X.Label.Text = "Percentage of Missing Values"
	p.Y.Label.Text = "Columns"
	p.X.Min = 0
	if len(report) == 0 {
		return p, nil
	}

	values := make(plotter.Values, len(report))
	points := make(plotter.XYs, len(report))
	texts := make([]string, len(report))
	widest := 0.0
	for i, m := range report {
		values[i] = m.Percent
		points[i] = plotter.XY{X: m.Percent + 0.5, Y: float64(i)}
		texts[i] = fmt.Sprintf("%.2f%%", m.Percent)
		widest = max(widest, m.Percent)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XLeft
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)

	p.NominalY(report.Columns()...)
	p.X.Max = max(widest*1.15+5, 10)
	return p, nil
}
