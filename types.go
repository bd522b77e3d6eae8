package autoopt

import (
	"golang.org/x/exp/constraints"
)

// Number is the set of numeric types accepted by the distribution
// constructors, e.g. the weights of a WeightedChoice or the bounds of a
// Uniform.
type Number interface {
	constraints.Integer | constraints.Float
}

// Distribution describes the search space a single hyperparameter is sampled
// from by an external optimizer. Every concrete shape in this package
// implements it.
//
// Contract:
//   - Name: The immutable parameter identifier given at construction
//   - Density: Relative likelihood of x. Never negative, and exactly 0 for
//     values outside the support or values of the wrong kind
//   - Plot: Renders the density through the registered Plotter. Returns
//     ErrPlotterMissing when no backend is linked into the binary
//   - PlotSpec: Backend-neutral description of what Plot would draw
//   - Equal: Two distributions are equal iff their names are equal
//
// Usage example:
//
//	var _ = autoopt.Must(autoopt.NewUniform("nu", 0, 1)).Apply(Train)
//
//	for name, dist := range autoopt.Hyperparameters(Train) {
//	    fmt.Println(name, dist, dist.Density(0.5))
//	}
//
// BE CAREFUL WHEN IMPLEMENTING NEW SHAPES: every optimizer reading the
// registry has to understand them.
type Distribution interface {
	// Name returns the parameter identifier.
	Name() string

	// Density returns the (relative) likelihood of x.
	Density(x any) float64

	// Plot renders the density.
	Plot() (Figure, error)

	// PlotSpec describes the density plot without rendering it.
	PlotSpec() PlotSpec

	// Equal reports whether other carries the same parameter name.
	Equal(other any) bool

	// String returns "<Shape><name>".
	String() string
}

// Parameters maps a parameter name to the distribution bound to it. It is the
// registry attached to a decorated target.
type Parameters map[string]Distribution

// PlotKind selects how a PlotSpec is drawn.
type PlotKind int

const (
	// PlotLine draws Points as a continuous curve.
	PlotLine PlotKind = iota

	// PlotBars draws Bars as a bar chart.
	PlotBars
)

// Point is one sample of a density curve.
type Point struct {
	X float64
	Y float64
}

// Bar is the probability mass of one label.
type Bar struct {
	Label string
	Value float64
}

// Marker is a vertical line drawn at X up to Y, used for the mean.
type Marker struct {
	X     float64
	Y     float64
	Label string
}

// PlotSpec is the backend-neutral description of a density plot.
//
// Fields:
// - Title: Figure title
// - XLabel, YLabel: Axis labels ("X" and "PDF(X)" for every built-in shape)
// - Kind: PlotLine or PlotBars
// - Points: Curve samples, only set for PlotLine
// - Bars: Label masses, only set for PlotBars
// - Legend: Legend entry of the curve, e.g. "loc=0, scale=1"
// - Mean: Optional mean marker.
type PlotSpec struct {
	Title  string
	XLabel string
	YLabel string
	Kind   PlotKind
	Points []Point
	Bars   []Bar
	Legend string
	Mean   *Marker
}

// Figure is a rendered plot.
type Figure interface {
	// Save writes the figure to path. The format is picked from the
	// extension.
	Save(path string) error
}

// Plotter is the optional visualization backend. Implementations register
// themselves with RegisterPlotter, usually from an init function, so that
// importing this package never requires a plotting library.
type Plotter interface {
	Render(spec PlotSpec) (Figure, error)
}
