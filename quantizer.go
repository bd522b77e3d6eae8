package autoopt

import "math"

// Discretized is implemented by shapes bound to a grid of step Q.
type Discretized interface {
	Q() float64
	RoundToGrid(value float64) float64
}

// Quantizer binds a distribution to multiples of q. It is embedded by the Q*
// shapes and does not validate q itself: every constructor embedding it
// rejects a non-positive step.
type Quantizer struct {
	q float64
}

// NewQuantizer returns a quantizer with step q.
func NewQuantizer(q float64) Quantizer {
	return Quantizer{q: q}
}

// Q returns the grid step.
func (z Quantizer) Q() float64 {
	return z.q
}

// RoundToGrid returns the multiple of q nearest to value. Ties are rounded
// half to even, so RoundToGrid(0.5) with q=1 is 0 and RoundToGrid(1.5) is 2.
func (z Quantizer) RoundToGrid(value float64) float64 {
	return math.RoundToEven(value/z.q) * z.q
}

func validStep(q float64) bool {
	return q > 0 && finite(q)
}
