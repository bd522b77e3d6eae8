package autoopt

import "errors"

var (
	// ErrInvalidParameter is returned by constructors receiving out-of-domain
	// arguments (non-positive weight or step, empty interval, ...).
	ErrInvalidParameter = errors.New("invalid distribution parameter")

	// ErrPlotterMissing is returned by Plot when no Plotter is registered.
	// Import github.com/thalesfsp/autoopt/gonumplot to link one in.
	ErrPlotterMissing = errors.New("no plotter registered, import github.com/thalesfsp/autoopt/gonumplot")
)
