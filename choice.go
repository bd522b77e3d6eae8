package autoopt

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
)

//////
// Const, vars, types.
//////

// WeightedChoice is a distribution over a finite set of labels, each chosen
// with a probability proportional to its weight.
//
// The weights do not have to be probabilities: {"a": 1, "b": 100} means "b"
// is a hundred times more likely than "a".
//
// Type Parameter:
//   - L: The label type. Labels are only compared for equality
//
// Usage example:
//
//	nu := autoopt.Must(autoopt.NewWeightedChoice("nu", map[string]int{"A": 1, "B": 3}))
//	nu.Density("A") // 0.25
//	nu.Density("B") // 0.75
//	nu.Density("C") // 0
type WeightedChoice[L comparable] struct {
	base

	// shape is the name used by String, "WeightedChoice" or "Choice".
	shape string

	// labels keeps the labels in plotting order.
	labels []L

	// weights maps each label to its weight.
	weights map[L]float64

	// total is the sum of all weights.
	total float64
}

//////
// Methods.
//////

// Choices returns a copy of the label to weight mapping.
func (c *WeightedChoice[L]) Choices() map[L]float64 {
	out := make(map[L]float64, len(c.weights))
	for l, w := range c.weights {
		out[l] = w
	}

	return out
}

// Labels returns the labels in plotting order.
func (c *WeightedChoice[L]) Labels() []L {
	return slices.Clone(c.labels)
}

// Weight returns the weight of label, or 0 if it is not a choice.
func (c *WeightedChoice[L]) Weight(label L) float64 {
	return c.weights[label]
}

// Probability returns weight(label) / sum(weights), or exactly 0 if label is
// not a choice.
func (c *WeightedChoice[L]) Probability(label L) float64 {
	w, ok := c.weights[label]
	if !ok {
		return 0
	}

	return w / c.total
}

// Density returns the probability of x. Values that are not of type L, or
// that cannot be map keys, are never a choice and have density 0.
func (c *WeightedChoice[L]) Density(x any) float64 {
	label, ok := x.(L)
	if !ok || !hashable(x) {
		return 0
	}

	return c.Probability(label)
}

// Mean returns the label at the probability-weighted average position in
// plotting order.
func (c *WeightedChoice[L]) Mean() L {
	var average float64
	for i, l := range c.labels {
		average += float64(i) * c.Probability(l)
	}

	idx := int(math.RoundToEven(average))
	idx = min(max(idx, 0), len(c.labels)-1)

	return c.labels[idx]
}

// PlotSpec describes a bar chart of the normalized probability mass.
func (c *WeightedChoice[L]) PlotSpec() PlotSpec {
	bars := make([]Bar, len(c.labels))
	for i, l := range c.labels {
		bars[i] = Bar{Label: fmt.Sprint(l), Value: c.Probability(l)}
	}

	return PlotSpec{
		Title:  fmt.Sprintf("%s distribution for parameter %s", c.shape, c.name),
		XLabel: "X",
		YLabel: "PDF(X)",
		Kind:   PlotBars,
		Bars:   bars,
	}
}

// Plot renders the bar chart through the registered Plotter.
func (c *WeightedChoice[L]) Plot() (Figure, error) {
	return render(c)
}

// Apply registers c on target in the Default catalog and returns target.
func (c *WeightedChoice[L]) Apply(target any) any {
	return Default.Apply(c, target)
}

// String implements fmt.Stringer.
func (c *WeightedChoice[L]) String() string {
	return describe(c.shape, c.name)
}

//////
// Helper functions.
//////

// hashable reports whether v can be used as a map key without panicking.
// Interface-typed labels may hold slices, maps or funcs.
func hashable(v any) bool {
	if v == nil {
		return true
	}

	return reflect.ValueOf(v).Comparable()
}

//////
// Factory.
//////

// NewWeightedChoice returns a distribution choosing each key of choices with
// a probability proportional to its weight. Labels are plotted in the order
// of their fmt rendering.
//
// Returns ErrInvalidParameter if choices is empty, a weight is not a
// strictly positive finite number, or the weights add up to infinity.
func NewWeightedChoice[L comparable, W Number](name string, choices map[L]W) (*WeightedChoice[L], error) {
	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: weighted choice %q has no choices", ErrInvalidParameter, name)
	}

	weights := make(map[L]float64, len(choices))
	labels := make([]L, 0, len(choices))

	var total float64

	for l, w := range choices {
		weight := float64(w)
		if !(weight > 0) || !finite(weight) {
			return nil, fmt.Errorf("%w: weight of choice %v of %q must be positive, got %v",
				ErrInvalidParameter, l, name, w)
		}

		weights[l] = weight
		labels = append(labels, l)
		total += weight
	}

	if !finite(total) {
		return nil, fmt.Errorf("%w: weights of %q overflow, sum is %v", ErrInvalidParameter, name, total)
	}

	slices.SortFunc(labels, func(a, b L) int {
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	})

	return &WeightedChoice[L]{
		base:    base{name: name},
		shape:   "WeightedChoice",
		labels:  labels,
		weights: weights,
		total:   total,
	}, nil
}

// NewChoice returns a distribution choosing each label with equal
// probability. A single label yields a one-entry distribution: NewChoice("mode",
// "solo") has the choice "solo", not one choice per character. Labels keep the
// given order.
//
// Returns ErrInvalidParameter if no label is given, a label is repeated or a
// label cannot be a map key (slices and maps behind an interface type).
func NewChoice[L comparable](name string, labels ...L) (*WeightedChoice[L], error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: choice %q has no choices", ErrInvalidParameter, name)
	}

	weights := make(map[L]float64, len(labels))
	for _, l := range labels {
		if !hashable(l) {
			return nil, fmt.Errorf("%w: choice %v of %q is not comparable", ErrInvalidParameter, l, name)
		}

		if _, dup := weights[l]; dup {
			return nil, fmt.Errorf("%w: choice %v of %q is repeated", ErrInvalidParameter, l, name)
		}

		weights[l] = 1
	}

	return &WeightedChoice[L]{
		base:    base{name: name},
		shape:   "Choice",
		labels:  slices.Clone(labels),
		weights: weights,
		total:   float64(len(labels)),
	}, nil
}
