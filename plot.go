package autoopt

import (
	"fmt"
	"sync"
)

var (
	plotterMu sync.RWMutex
	plotter   Plotter
)

// RegisterPlotter installs p as the process-wide plot backend. Passing nil
// removes the current one. Backends call it from their init function:
//
//	import _ "github.com/thalesfsp/autoopt/gonumplot"
func RegisterPlotter(p Plotter) {
	plotterMu.Lock()
	defer plotterMu.Unlock()

	plotter = p
}

// PlottingAvailable reports whether a plot backend is registered. When it
// returns false every Plot call returns ErrPlotterMissing.
func PlottingAvailable() bool {
	return currentPlotter() != nil
}

func currentPlotter() Plotter {
	plotterMu.RLock()
	defer plotterMu.RUnlock()

	return plotter
}

// render is the Plot implementation shared by every shape.
func render(d Distribution) (Figure, error) {
	p := currentPlotter()
	if p == nil {
		logger().Error("cannot plot distribution, no plotter registered",
			"distribution", d.String(),
		)

		return nil, fmt.Errorf("plot %s: %w", d, ErrPlotterMissing)
	}

	fig, err := p.Render(d.PlotSpec())
	if err != nil {
		return nil, fmt.Errorf("plot %s: %w", d, err)
	}

	return fig, nil
}

// curve samples pdf over [start, stop] and marks the mean.
func curve(title, legend string, start, stop, mean float64, pdf func(float64) float64) PlotSpec {
	xs := span(start, stop, sampleCount(stop-start))

	points := make([]Point, len(xs))
	for i, x := range xs {
		points[i] = Point{X: x, Y: pdf(x)}
	}

	return PlotSpec{
		Title:  title,
		XLabel: "X",
		YLabel: "PDF(X)",
		Kind:   PlotLine,
		Points: points,
		Legend: legend,
		Mean: &Marker{
			X:     mean,
			Y:     pdf(mean),
			Label: fmt.Sprintf("Mean: %g", mean),
		},
	}
}
