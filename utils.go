package autoopt

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

//////
// Helper functions.
//////

// toFloat converts any Go integer or float to float64.
//
// Returns:
// - float64: The converted value
// - bool: false if v is not numeric, in which case densities report 0.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uintptr:
		return float64(n), true
	default:
		return 0, false
	}
}

// finite reports whether every value is neither NaN nor infinite.
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// sampleCount returns how many points a curve spanning width gets:
// width clamped to the configured [MinPoints, MaxPoints], at least 2.
func sampleCount(width float64) int {
	cfg := CurrentPlotConfig()

	n := math.Min(math.Max(width, float64(cfg.MinPoints)), float64(cfg.MaxPoints))

	return max(int(n), 2)
}

// span returns n evenly spaced values from start to stop inclusive.
func span(start, stop float64, n int) []float64 {
	xs := make([]float64, n)

	return floats.Span(xs, start, stop)
}

// density evaluates pdf at x if x is a number, and returns 0 otherwise.
func density(x any, pdf func(float64) float64) float64 {
	v, ok := toFloat(x)
	if !ok || math.IsNaN(v) {
		return 0
	}

	return pdf(v)
}
