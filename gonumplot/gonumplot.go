// Package gonumplot renders autoopt density plots with gonum.org/v1/plot.
//
// Importing the package registers its Plotter, after which the Plot method
// of every autoopt distribution returns a *Figure:
//
//	import _ "github.com/thalesfsp/autoopt/gonumplot"
//
//	fig, err := autoopt.Must(autoopt.NewNormal("gamma", 0, 1)).Plot()
//	if err != nil {
//	    return err
//	}
//
//	return fig.Save("gamma.png")
package gonumplot

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/thalesfsp/autoopt"
)

//////
// Const, vars, types.
//////

// barWidth is the width of a single bar of a choice distribution.
const barWidth = vg.Length(20)

// Plotter renders autoopt.PlotSpec values. Zero Width and Height fall back to
// autoopt.CurrentPlotConfig.
type Plotter struct {
	Width  vg.Length
	Height vg.Length
}

// Figure is a rendered gonum plot.
type Figure struct {
	plot   *plot.Plot
	width  vg.Length
	height vg.Length
}

//////
// Methods.
//////

// Plot returns the underlying gonum plot for further customization.
func (f *Figure) Plot() *plot.Plot {
	return f.plot
}

// Save writes the figure to path. The format is picked from the extension:
// eps, jpg, jpeg, pdf, png, svg, tex, tif or tiff.
func (f *Figure) Save(path string) error {
	return f.plot.Save(f.width, f.height, path)
}

// Encode renders the figure in the given format, e.g. "png" or "svg".
func (f *Figure) Encode(format string) ([]byte, error) {
	w, err := f.plot.WriterTo(f.width, f.height, format)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}

	return buf.Bytes(), nil
}

// Render draws spec as a line or bar chart.
func (p *Plotter) Render(spec autoopt.PlotSpec) (autoopt.Figure, error) {
	pl := plot.New()
	pl.Title.Text = spec.Title
	pl.X.Label.Text = spec.XLabel
	pl.Y.Label.Text = spec.YLabel

	switch spec.Kind {
	case autoopt.PlotLine:
		if err := addCurve(pl, spec); err != nil {
			return nil, err
		}
	case autoopt.PlotBars:
		if err := addBars(pl, spec); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("gonumplot: unknown plot kind %d", spec.Kind)
	}

	width, height := p.size()

	return &Figure{plot: pl, width: width, height: height}, nil
}

func (p *Plotter) size() (vg.Length, vg.Length) {
	cfg := autoopt.CurrentPlotConfig()

	width, height := p.Width, p.Height
	if width <= 0 {
		width = vg.Length(cfg.Width) * vg.Inch
	}

	if height <= 0 {
		height = vg.Length(cfg.Height) * vg.Inch
	}

	return width, height
}

//////
// Helper functions.
//////

func addCurve(pl *plot.Plot, spec autoopt.PlotSpec) error {
	xys := make(plotter.XYs, len(spec.Points))
	for i, pt := range spec.Points {
		xys[i].X, xys[i].Y = pt.X, pt.Y
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("gonumplot: %w", err)
	}

	lineColor := plotutil.Color(0)
	line.LineStyle.Color = lineColor

	pl.Add(line)

	if spec.Legend != "" {
		pl.Legend.Add(spec.Legend, line)
	}

	if spec.Mean == nil {
		return nil
	}

	mean, err := plotter.NewLine(plotter.XYs{{X: spec.Mean.X, Y: 0}, {X: spec.Mean.X, Y: spec.Mean.Y}})
	if err != nil {
		return fmt.Errorf("gonumplot: %w", err)
	}

	mean.LineStyle.Color = lineColor
	mean.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	pl.Add(mean)
	pl.Legend.Add(spec.Mean.Label, mean)

	return nil
}

func addBars(pl *plot.Plot, spec autoopt.PlotSpec) error {
	values := make(plotter.Values, len(spec.Bars))
	labels := make([]string, len(spec.Bars))

	for i, b := range spec.Bars {
		values[i] = b.Value
		labels[i] = b.Label
	}

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return fmt.Errorf("gonumplot: %w", err)
	}

	bars.Color = plotutil.Color(0)
	bars.LineStyle.Color = color.Black

	pl.Add(bars)
	pl.NominalX(labels...)

	return nil
}

//////
// Factory.
//////

// New returns a Plotter sized by autoopt.CurrentPlotConfig.
func New() *Plotter {
	return &Plotter{}
}

func init() {
	autoopt.RegisterPlotter(New())
}
