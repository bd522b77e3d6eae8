package autoopt

import (
	"log/slog"
	"sync"
)

//////
// Const, vars, types.
//////

// PlotConfig controls how densities are sampled and how figures are sized.
//
// Fields:
// - MinPoints: Minimum number of samples of a density curve
// - MaxPoints: Maximum number of samples of a density curve
// - Width, Height: Figure size in inches, used by plot backends
//
// The number of samples of a curve spanning [start, stop] is
// clamp(stop-start, MinPoints, MaxPoints).
type PlotConfig struct {
	MinPoints int
	MaxPoints int
	Width     float64
	Height    float64
}

var (
	settingsMu sync.RWMutex
	plotConfig = DefaultPlotConfig()
	pkgLogger  *slog.Logger
)

//////
// Exported functionalities.
//////

// DefaultPlotConfig returns a default configuration.
func DefaultPlotConfig() PlotConfig {
	return PlotConfig{
		MinPoints: 1000,
		MaxPoints: 10000,
		Width:     6,
		Height:    4,
	}
}

// CurrentPlotConfig returns the configuration in use.
func CurrentPlotConfig() PlotConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()

	return plotConfig
}

// SetPlotConfig replaces the configuration in use. Non-positive fields keep
// their default value.
func SetPlotConfig(cfg PlotConfig) {
	def := DefaultPlotConfig()

	if cfg.MinPoints <= 0 {
		cfg.MinPoints = def.MinPoints
	}

	if cfg.MaxPoints < cfg.MinPoints {
		cfg.MaxPoints = max(def.MaxPoints, cfg.MinPoints)
	}

	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}

	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	plotConfig = cfg
}

// SetLogger sets the logger used by the package. A nil logger restores
// slog.Default().
func SetLogger(l *slog.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	pkgLogger = l
}

//////
// Helper functions.
//////

func logger() *slog.Logger {
	settingsMu.RLock()
	defer settingsMu.RUnlock()

	if pkgLogger != nil {
		return pkgLogger
	}

	return slog.Default()
}
