package autoopt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

//////
// Const, vars, types.
//////

// Normal samples values around loc with standard deviation scale. It is
// unbounded:
//
//	P(X) = 1 / sqrt(2 * pi * scale^2) * e^(-(X - loc)^2 / (2 * scale^2))
type Normal struct {
	base

	impl distuv.Normal
}

// QNormal is a Normal bound to multiples of q:
//
//	P(X) = Normal.P(round(X / q) * q)
type QNormal struct {
	Normal
	Quantizer
}

// LogNormal is the exponential of a Normal: X = e^Y with Y = Normal(loc,
// scale). loc and scale describe the underlying normal distribution, not X.
// Non-positive values have density 0.
type LogNormal struct {
	Normal

	logImpl distuv.LogNormal
}

// QLogNormal is a LogNormal bound to multiples of q.
type QLogNormal struct {
	LogNormal
	Quantizer
}

//////
// Methods.
//////

// Loc returns the mean of the (underlying) normal distribution.
func (n *Normal) Loc() float64 { return n.impl.Mu }

// Scale returns the standard deviation of the (underlying) normal distribution.
func (n *Normal) Scale() float64 { return n.impl.Sigma }

// PDF returns the density of x.
func (n *Normal) PDF(x float64) float64 { return n.impl.Prob(x) }

// Density returns the density of a numeric x and 0 for anything else.
func (n *Normal) Density(x any) float64 { return density(x, n.PDF) }

// Mean returns loc.
func (n *Normal) Mean() float64 { return n.Loc() }

// PlotSpec describes the density over loc ± 3 scale.
func (n *Normal) PlotSpec() PlotSpec {
	return curve(
		fmt.Sprintf("Normal distribution for parameter %s", n.name),
		fmt.Sprintf("loc=%g, scale=%g", n.Loc(), n.Scale()),
		n.Loc()-3*n.Scale(), n.Loc()+3*n.Scale(), n.Mean(), n.PDF,
	)
}

// Plot renders the density through the registered Plotter.
func (n *Normal) Plot() (Figure, error) { return render(n) }

// Apply registers n on target in the Default catalog and returns target.
func (n *Normal) Apply(target any) any { return Default.Apply(n, target) }

// String implements fmt.Stringer.
func (n *Normal) String() string { return describe("Normal", n.name) }

// PDF returns the Normal density of x rounded to the grid.
func (n *QNormal) PDF(x float64) float64 { return n.Normal.PDF(n.RoundToGrid(x)) }

// Density returns the density of a numeric x and 0 for anything else.
func (n *QNormal) Density(x any) float64 { return density(x, n.PDF) }

// Mean returns loc rounded to the grid.
func (n *QNormal) Mean() float64 { return n.RoundToGrid(n.Loc()) }

// PlotSpec describes the density over the rounded loc ± 3 scale.
func (n *QNormal) PlotSpec() PlotSpec {
	return curve(
		fmt.Sprintf("Quantized normal distribution for parameter %s", n.name),
		fmt.Sprintf("loc=%g, scale=%g, q=%g", n.Loc(), n.Scale(), n.Q()),
		n.RoundToGrid(n.Loc()-3*n.Scale()), n.RoundToGrid(n.Loc()+3*n.Scale()), n.Mean(), n.PDF,
	)
}

// Plot renders the density through the registered Plotter.
func (n *QNormal) Plot() (Figure, error) { return render(n) }

// Apply registers n on target in the Default catalog and returns target.
func (n *QNormal) Apply(target any) any { return Default.Apply(n, target) }

// String implements fmt.Stringer.
func (n *QNormal) String() string { return describe("QNormal", n.name) }

// PDF returns Normal.PDF(log(x)) / x for positive x and 0 otherwise.
func (n *LogNormal) PDF(x float64) float64 {
	if !(x > 0) {
		return 0
	}

	return n.logImpl.Prob(x)
}

// Density returns the density of a numeric x and 0 for anything else.
func (n *LogNormal) Density(x any) float64 { return density(x, n.PDF) }

// Mean returns e^(loc + scale^2 / 2).
func (n *LogNormal) Mean() float64 { return math.Exp(n.Loc() + n.Scale()*n.Scale()/2) }

// PlotSpec describes the density over (0, e^(loc + 3 scale)].
func (n *LogNormal) PlotSpec() PlotSpec {
	return curve(
		fmt.Sprintf("Logarithmic normal distribution for parameter %s", n.name),
		fmt.Sprintf("loc=%g, scale=%g", n.Loc(), n.Scale()),
		0, math.Exp(n.Loc()+3*n.Scale()), n.Mean(), n.PDF,
	)
}

// Plot renders the density through the registered Plotter.
func (n *LogNormal) Plot() (Figure, error) { return render(n) }

// Apply registers n on target in the Default catalog and returns target.
func (n *LogNormal) Apply(target any) any { return Default.Apply(n, target) }

// String implements fmt.Stringer.
func (n *LogNormal) String() string { return describe("LogNormal", n.name) }

// PDF returns the LogNormal density of x rounded to the grid.
func (n *QLogNormal) PDF(x float64) float64 { return n.LogNormal.PDF(n.RoundToGrid(x)) }

// Density returns the density of a numeric x and 0 for anything else.
func (n *QLogNormal) Density(x any) float64 { return density(x, n.PDF) }

// Mean returns the LogNormal mean rounded to the grid.
func (n *QLogNormal) Mean() float64 { return n.RoundToGrid(n.LogNormal.Mean()) }

// PlotSpec describes the density from 0 to the rounded e^(loc + 3 scale) plus
// two steps.
func (n *QLogNormal) PlotSpec() PlotSpec {
	return curve(
		fmt.Sprintf("Quantized logarithmic normal distribution for parameter %s", n.name),
		fmt.Sprintf("loc=%g, scale=%g, q=%g", n.Loc(), n.Scale(), n.Q()),
		0, n.RoundToGrid(math.Exp(n.Loc()+3*n.Scale()))+2*n.Q(), n.Mean(), n.PDF,
	)
}

// Plot renders the density through the registered Plotter.
func (n *QLogNormal) Plot() (Figure, error) { return render(n) }

// Apply registers n on target in the Default catalog and returns target.
func (n *QLogNormal) Apply(target any) any { return Default.Apply(n, target) }

// String implements fmt.Stringer.
func (n *QLogNormal) String() string { return describe("QLogNormal", n.name) }

//////
// Factory.
//////

// NewNormal returns a normal distribution with mean loc and standard
// deviation scale.
//
// Returns ErrInvalidParameter unless scale is positive and both are finite.
func NewNormal[T Number](name string, loc, scale T) (*Normal, error) {
	mu, sigma := float64(loc), float64(scale)

	if !finite(mu, sigma) || !(sigma > 0) {
		return nil, fmt.Errorf("%w: normal %q needs a finite loc and a positive scale, got loc=%g scale=%g",
			ErrInvalidParameter, name, mu, sigma)
	}

	return &Normal{
		base: base{name: name},
		impl: distuv.Normal{Mu: mu, Sigma: sigma},
	}, nil
}

// NewQNormal returns a normal distribution bound to multiples of q.
func NewQNormal[T Number](name string, loc, scale T, q float64) (*QNormal, error) {
	n, err := NewNormal(name, loc, scale)
	if err != nil {
		return nil, err
	}

	if !validStep(q) {
		return nil, fmt.Errorf("%w: q of %q must be positive, got %g", ErrInvalidParameter, name, q)
	}

	return &QNormal{Normal: *n, Quantizer: NewQuantizer(q)}, nil
}

// NewLogNormal returns a log-normal distribution whose logarithm has mean loc
// and standard deviation scale.
func NewLogNormal[T Number](name string, loc, scale T) (*LogNormal, error) {
	n, err := NewNormal(name, loc, scale)
	if err != nil {
		return nil, err
	}

	return &LogNormal{
		Normal:  *n,
		logImpl: distuv.LogNormal{Mu: n.Loc(), Sigma: n.Scale()},
	}, nil
}

// NewQLogNormal returns a log-normal distribution bound to multiples of q.
func NewQLogNormal[T Number](name string, loc, scale T, q float64) (*QLogNormal, error) {
	n, err := NewLogNormal(name, loc, scale)
	if err != nil {
		return nil, err
	}

	if !validStep(q) {
		return nil, fmt.Errorf("%w: q of %q must be positive, got %g", ErrInvalidParameter, name, q)
	}

	return &QLogNormal{LogNormal: *n, Quantizer: NewQuantizer(q)}, nil
}
