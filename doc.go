// Package autoopt lets algorithm authors annotate the tunable parameters of a
// function or type with the probability distribution an external optimizer
// should sample them from.
//
// # Features
//
// The package includes the following key features:
//
//   - Annotations: Distributions are values with an Apply method, used the way
//     other languages use decorators
//   - Per-target registries: Every function or type gets its own parameter set
//     and inherits the one of its parents by default, copy-on-write, so sibling
//     types never corrupt each other
//   - Uniform density interface: Every shape answers Density(x), returning 0
//     outside its support instead of failing
//   - Discretization: The Q* shapes embed a Quantizer binding them to a grid
//   - Optional plotting: Densities are described as PlotSpec values and
//     rendered only if a backend such as gonumplot is linked in
//   - Generic constructors: Bounds and weights can be any integer or float type
//
// # Installation
//
// To install the package, use:
//
//	go get github.com/thalesfsp/autoopt
//
// # Shapes
//
// The package provides the following distributions:
//
//  1. Choice and WeightedChoice: A finite set of labels
//
//     autoopt.NewChoice("kernel", "linear", "rbf", "poly")
//     autoopt.NewWeightedChoice("nu", map[string]int{"A": 1, "B": 3})
//
//  2. Uniform and QUniform: Every value of [min, max] is equally likely
//
//  3. LogUniform and QLogUniform: The logarithm of the value is uniform
//
//  4. Normal and QNormal: Values around loc with standard deviation scale
//
//  5. LogNormal and QLogNormal: The logarithm of the value is normal
//
// # Annotating
//
// A distribution registers itself on a target with Apply. Declarations
// usually live at package level so that a malformed one stops the program at
// initialization:
//
//	type SVM struct{ ... }
//
//	var (
//	    _ = autoopt.Must(autoopt.NewLogUniform("C", 1e-3, 1e2)).Apply(SVM{})
//	    _ = autoopt.Must(autoopt.NewChoice("kernel", "linear", "rbf")).Apply(SVM{})
//	)
//
//	func Train(nu, gamma float64) error { ... }
//
//	var _ = autoopt.Annotate(Train,
//	    autoopt.Must(autoopt.NewUniform("nu", 0, 1)),
//	    autoopt.Must(autoopt.NewNormal("gamma", 0, 1)),
//	)
//
// Optimizers read the registry back with Hyperparameters:
//
//	for name, dist := range autoopt.Hyperparameters(SVM{}) {
//	    ...
//	}
//
// # Inheritance
//
// Go has no subclasses. A struct type inherits the registry of the structs it
// embeds, and any target can inherit from another one with Inherit. The first
// Apply on the child copies the inherited registry before changing it:
//
//	type LinearSVM struct{ SVM }
//
//	var _ = autoopt.Must(autoopt.NewUniform("C", 0, 1)).Apply(LinearSVM{})
//	// SVM still sees its LogUniform "C", LinearSVM sees "kernel" and the Uniform "C".
//
// # Plotting
//
// Plot returns ErrPlotterMissing unless a backend is registered. Link the
// gonum backend with a blank import:
//
//	import _ "github.com/thalesfsp/autoopt/gonumplot"
//
// Use PlottingAvailable to check beforehand.
//
// # Thread Safety
//
// All components are safe for concurrent use:
//   - Catalog guards every registry with a RWMutex
//   - Distributions are immutable after construction
//
// Registration is nevertheless expected to happen while the program
// initializes, before optimizers read the registries.
package autoopt
