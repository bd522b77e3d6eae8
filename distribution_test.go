package autoopt

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nameOnly struct{ name string }

func (n nameOnly) Name() string { return n.name }

func TestEqualityByName(t *testing.T) {
	uniform := Must(NewUniform("a", 0, 1))
	normal := Must(NewNormal("a", 5, 2))
	choice := Must(NewChoice("a", "x", "y"))
	other := Must(NewUniform("b", 0, 1))

	// Shape and fields do not matter.
	assert.True(t, uniform.Equal(normal))
	assert.True(t, normal.Equal(choice))
	assert.True(t, Equal(choice, uniform))
	assert.True(t, uniform.Equal(nameOnly{name: "a"}))

	assert.False(t, uniform.Equal(other))
	assert.False(t, uniform.Equal(struct{}{}))
	assert.False(t, uniform.Equal(nil))
	assert.False(t, uniform.Equal((*Uniform)(nil)))
	assert.False(t, Equal(struct{}{}, uniform))
	assert.False(t, Equal(nil, nil))
}

func TestMustPanics(t *testing.T) {
	assert.Panics(t, func() { Must(NewUniform("a", 1, 0)) })
	assert.NotPanics(t, func() { Must(NewUniform("a", 0, 1)) })
}

type stubFigure struct{ spec PlotSpec }

func (stubFigure) Save(string) error { return nil }

type stubPlotter struct {
	specs []PlotSpec
	err   error
}

func (p *stubPlotter) Render(spec PlotSpec) (Figure, error) {
	if p.err != nil {
		return nil, p.err
	}

	p.specs = append(p.specs, spec)

	return stubFigure{spec: spec}, nil
}

func allShapes() []Distribution {
	return []Distribution{
		Must(NewChoice("choice", "a", "b")),
		Must(NewWeightedChoice("weighted", map[string]int{"a": 1, "b": 2})),
		Must(NewUniform("uniform", 0, 1)),
		Must(NewQUniform("quniform", 0, 10, 1)),
		Must(NewLogUniform("loguniform", 1, 10)),
		Must(NewQLogUniform("qloguniform", 1, 10, 1)),
		Must(NewNormal("normal", 0, 1)),
		Must(NewQNormal("qnormal", 0, 1, 0.5)),
		Must(NewLogNormal("lognormal", 0, 1)),
		Must(NewQLogNormal("qlognormal", 0, 1, 0.5)),
	}
}

func TestPlotWithoutBackend(t *testing.T) {
	RegisterPlotter(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	assert.False(t, PlottingAvailable())

	// Every shape reports the same condition.
	for _, d := range allShapes() {
		fig, err := d.Plot()

		assert.Nil(t, fig, d.String())
		assert.ErrorIs(t, err, ErrPlotterMissing, d.String())
	}

	assert.Contains(t, buf.String(), "no plotter registered")
}

func TestPlotWithBackend(t *testing.T) {
	plotter := &stubPlotter{}

	RegisterPlotter(plotter)
	t.Cleanup(func() { RegisterPlotter(nil) })

	assert.True(t, PlottingAvailable())

	for _, d := range allShapes() {
		fig, err := d.Plot()
		require.NoError(t, err, d.String())

		assert.Equal(t, d.PlotSpec().Title, fig.(stubFigure).spec.Title)
	}

	assert.Len(t, plotter.specs, len(allShapes()))
}

func TestPlotBackendError(t *testing.T) {
	boom := errors.New("boom")

	RegisterPlotter(&stubPlotter{err: boom})
	t.Cleanup(func() { RegisterPlotter(nil) })

	_, err := Must(NewNormal("gamma", 0, 1)).Plot()

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Normal<gamma>")
}

func TestCurvePlotSpec(t *testing.T) {
	spec := Must(NewNormal("gamma", 0, 1)).PlotSpec()

	assert.Equal(t, PlotLine, spec.Kind)
	assert.Equal(t, "X", spec.XLabel)
	assert.Equal(t, "loc=0, scale=1", spec.Legend)

	// The window is 6 wide, so the minimum number of points is used.
	require.Len(t, spec.Points, DefaultPlotConfig().MinPoints)
	assert.Equal(t, -3.0, spec.Points[0].X)
	assert.Equal(t, 3.0, spec.Points[len(spec.Points)-1].X)

	require.NotNil(t, spec.Mean)
	assert.Equal(t, 0.0, spec.Mean.X)
	assert.Equal(t, "Mean: 0", spec.Mean.Label)
}

func TestPlotConfig(t *testing.T) {
	t.Cleanup(func() { SetPlotConfig(DefaultPlotConfig()) })

	SetPlotConfig(PlotConfig{MinPoints: 10, MaxPoints: 20})

	cfg := CurrentPlotConfig()
	assert.Equal(t, 10, cfg.MinPoints)
	assert.Equal(t, 20, cfg.MaxPoints)
	assert.Equal(t, DefaultPlotConfig().Width, cfg.Width)

	// Wide windows are capped.
	spec := Must(NewUniform("wide", 0, 1000)).PlotSpec()
	assert.Len(t, spec.Points, 20)

	// Narrow windows get the minimum.
	spec = Must(NewUniform("narrow", 0, 1)).PlotSpec()
	assert.Len(t, spec.Points, 10)
}
