package autoopt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

//////
// Const, vars, types.
//////

// Uniform gives every value of [min, max] the same density:
//
//	P(X) = 1 / (max - min) if min <= X <= max else 0
type Uniform struct {
	base

	impl distuv.Uniform
}

// QUniform is a Uniform bound to multiples of q:
//
//	P(X) = 1 / (max - min) if min <= round(X / q) * q <= max else 0
type QUniform struct {
	Uniform
	Quantizer
}

// LogUniform is the exponential of a uniform distribution; the logarithm of
// its values is uniformly distributed. It is only defined for positive
// intervals:
//
//	P(X) = 1 / (X * (log(max) - log(min))) if min <= X <= max else 0
type LogUniform struct {
	Uniform

	minLog float64
	maxLog float64
}

// QLogUniform is a LogUniform bound to multiples of q.
type QLogUniform struct {
	LogUniform
	Quantizer
}

//////
// Methods.
//////

// Min returns the lower bound.
func (u *Uniform) Min() float64 { return u.impl.Min }

// Max returns the upper bound.
func (u *Uniform) Max() float64 { return u.impl.Max }

// PDF returns the density of x.
func (u *Uniform) PDF(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}

	return u.impl.Prob(x)
}

// Density returns the density of a numeric x and 0 for anything else.
func (u *Uniform) Density(x any) float64 { return density(x, u.PDF) }

// Mean returns (min + max) / 2.
func (u *Uniform) Mean() float64 { return 0.5 * (u.Min() + u.Max()) }

// PlotSpec describes the density over [min-1, max+1].
func (u *Uniform) PlotSpec() PlotSpec {
	return curve(
		fmt.Sprintf("Uniform distribution for parameter %s", u.name),
		fmt.Sprintf("min=%g, max=%g", u.Min(), u.Max()),
		u.Min()-1, u.Max()+1, u.Mean(), u.PDF,
	)
}

// Plot renders the density through the registered Plotter.
func (u *Uniform) Plot() (Figure, error) { return render(u) }

// Apply registers u on target in the Default catalog and returns target.
func (u *Uniform) Apply(target any) any { return Default.Apply(u, target) }

// String implements fmt.Stringer.
func (u *Uniform) String() string { return describe("Uniform", u.name) }

// PDF returns the Uniform density of x rounded to the grid.
func (u *QUniform) PDF(x float64) float64 { return u.Uniform.PDF(u.RoundToGrid(x)) }

// Density returns the density of a numeric x and 0 for anything else.
func (u *QUniform) Density(x any) float64 { return density(x, u.PDF) }

// Mean returns the Uniform mean rounded to the grid.
func (u *QUniform) Mean() float64 { return u.RoundToGrid(u.Uniform.Mean()) }

// PlotSpec describes the density two steps beyond the rounded bounds.
func (u *QUniform) PlotSpec() PlotSpec {
	return curve(
		fmt.Sprintf("Quantized uniform distribution for parameter %s", u.name),
		fmt.Sprintf("min=%g, max=%g, q=%g", u.Min(), u.Max(), u.Q()),
		u.RoundToGrid(u.Min())-2*u.Q(), u.RoundToGrid(u.Max())+2*u.Q(), u.Mean(), u.PDF,
	)
}

// Plot renders the density through the registered Plotter.
func (u *QUniform) Plot() (Figure, error) { return render(u) }

// Apply registers u on target in the Default catalog and returns target.
func (u *QUniform) Apply(target any) any { return Default.Apply(u, target) }

// String implements fmt.Stringer.
func (u *QUniform) String() string { return describe("QUniform", u.name) }

// PDF returns the density of x.
func (u *LogUniform) PDF(x float64) float64 {
	if x >= 0 && u.Min() <= x && x <= u.Max() {
		return 1 / (x * (u.maxLog - u.minLog))
	}

	return 0
}

// Density returns the density of a numeric x and 0 for anything else.
func (u *LogUniform) Density(x any) float64 { return density(x, u.PDF) }

// Mean returns (max - min) / (log(max) - log(min)).
func (u *LogUniform) Mean() float64 { return (u.Max() - u.Min()) / (u.maxLog - u.minLog) }

// PlotSpec describes the density over [min-1, max+1].
func (u *LogUniform) PlotSpec() PlotSpec {
	return curve(
		fmt.Sprintf("Logarithmic uniform distribution for parameter %s", u.name),
		fmt.Sprintf("min=%g, max=%g", u.Min(), u.Max()),
		u.Min()-1, u.Max()+1, u.Mean(), u.PDF,
	)
}

// Plot renders the density through the registered Plotter.
func (u *LogUniform) Plot() (Figure, error) { return render(u) }

// Apply registers u on target in the Default catalog and returns target.
func (u *LogUniform) Apply(target any) any { return Default.Apply(u, target) }

// String implements fmt.Stringer.
func (u *LogUniform) String() string { return describe("LogUniform", u.name) }

// PDF returns the LogUniform density of x rounded to the grid.
func (u *QLogUniform) PDF(x float64) float64 { return u.LogUniform.PDF(u.RoundToGrid(x)) }

// Density returns the density of a numeric x and 0 for anything else.
func (u *QLogUniform) Density(x any) float64 { return density(x, u.PDF) }

// Mean returns the LogUniform mean rounded to the grid.
func (u *QLogUniform) Mean() float64 { return u.RoundToGrid(u.LogUniform.Mean()) }

// PlotSpec describes the density two steps beyond the rounded bounds.
func (u *QLogUniform) PlotSpec() PlotSpec {
	return curve(
		fmt.Sprintf("Quantized logarithmic uniform distribution for parameter %s", u.name),
		fmt.Sprintf("min=%g, max=%g, q=%g", u.Min(), u.Max(), u.Q()),
		u.RoundToGrid(u.Min())-2*u.Q(), u.RoundToGrid(u.Max())+2*u.Q(), u.Mean(), u.PDF,
	)
}

// Plot renders the density through the registered Plotter.
func (u *QLogUniform) Plot() (Figure, error) { return render(u) }

// Apply registers u on target in the Default catalog and returns target.
func (u *QLogUniform) Apply(target any) any { return Default.Apply(u, target) }

// String implements fmt.Stringer.
func (u *QLogUniform) String() string { return describe("QLogUniform", u.name) }

//////
// Factory.
//////

// NewUniform returns a uniform distribution over [min, max].
//
// Returns ErrInvalidParameter unless min < max, both finite.
func NewUniform[T Number](name string, minValue, maxValue T) (*Uniform, error) {
	lo, hi := float64(minValue), float64(maxValue)

	if !finite(lo, hi) || lo >= hi {
		return nil, fmt.Errorf("%w: the minimum value has to be smaller than the maximum value %g >= %g",
			ErrInvalidParameter, lo, hi)
	}

	return &Uniform{
		base: base{name: name},
		impl: distuv.Uniform{Min: lo, Max: hi},
	}, nil
}

// NewQUniform returns a uniform distribution over [min, max] bound to
// multiples of q.
func NewQUniform[T Number](name string, minValue, maxValue T, q float64) (*QUniform, error) {
	u, err := NewUniform(name, minValue, maxValue)
	if err != nil {
		return nil, err
	}

	if !validStep(q) {
		return nil, fmt.Errorf("%w: q of %q must be positive, got %g", ErrInvalidParameter, name, q)
	}

	return &QUniform{Uniform: *u, Quantizer: NewQuantizer(q)}, nil
}

// NewLogUniform returns a log-uniform distribution over [min, max].
//
// Returns ErrInvalidParameter unless 0 < min < max.
func NewLogUniform[T Number](name string, minValue, maxValue T) (*LogUniform, error) {
	if !(float64(minValue) > 0) {
		return nil, fmt.Errorf("%w: LogUniform distributions are only defined for positive intervals, got min %v",
			ErrInvalidParameter, minValue)
	}

	u, err := NewUniform(name, minValue, maxValue)
	if err != nil {
		return nil, err
	}

	return &LogUniform{
		Uniform: *u,
		minLog:  math.Log(u.Min()),
		maxLog:  math.Log(u.Max()),
	}, nil
}

// NewQLogUniform returns a log-uniform distribution over [min, max] bound to
// multiples of q.
func NewQLogUniform[T Number](name string, minValue, maxValue T, q float64) (*QLogUniform, error) {
	u, err := NewLogUniform(name, minValue, maxValue)
	if err != nil {
		return nil, err
	}

	if !validStep(q) {
		return nil, fmt.Errorf("%w: q of %q must be positive, got %g", ErrInvalidParameter, name, q)
	}

	return &QLogUniform{LogUniform: *u, Quantizer: NewQuantizer(q)}, nil
}
