package autoopt

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantizerQ(t *testing.T) {
	q := rand.Float64()

	assert.Equal(t, q, NewQuantizer(q).Q())
}

func TestRoundToGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		q := rng.Float64() + 1e-3
		z := NewQuantizer(q)

		value := rng.Float64()*200 - 100
		check := math.RoundToEven(value/q) * q

		assert.Equal(t, check, z.RoundToGrid(value))
	}
}

func TestRoundToGridHalfToEven(t *testing.T) {
	z := NewQuantizer(1)

	assert.Equal(t, 0.0, z.RoundToGrid(0.5))
	assert.Equal(t, 2.0, z.RoundToGrid(1.5))
	assert.Equal(t, 2.0, z.RoundToGrid(2.5))
	assert.Equal(t, -2.0, z.RoundToGrid(-2.5))

	half := NewQuantizer(0.5)
	assert.Equal(t, 1.5, half.RoundToGrid(1.4))
}

func TestRoundToGridIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 1000; i++ {
		z := NewQuantizer(rng.ExpFloat64())
		value := rng.NormFloat64() * 1e4

		once := z.RoundToGrid(value)

		assert.Equal(t, once, z.RoundToGrid(once), "q=%v value=%v", z.Q(), value)
	}
}

func TestDiscretizedShapes(t *testing.T) {
	shapes := []Distribution{
		Must(NewQUniform("a", 0, 10, 0.5)),
		Must(NewQLogUniform("b", 1, 10, 0.5)),
		Must(NewQNormal("c", 0, 1, 0.5)),
		Must(NewQLogNormal("d", 0, 1, 0.5)),
	}

	for _, d := range shapes {
		z, ok := d.(Discretized)
		if assert.True(t, ok, d.String()) {
			assert.Equal(t, 0.5, z.Q())
		}
	}

	_, ok := Distribution(Must(NewUniform("e", 0, 1))).(Discretized)
	assert.False(t, ok)
}

func TestInvalidStep(t *testing.T) {
	for _, q := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewQUniform("a", 0, 10, q)
		assert.ErrorIs(t, err, ErrInvalidParameter)

		_, err = NewQLogUniform("b", 1, 10, q)
		assert.ErrorIs(t, err, ErrInvalidParameter)

		_, err = NewQNormal("c", 0, 1, q)
		assert.ErrorIs(t, err, ErrInvalidParameter)

		_, err = NewQLogNormal("d", 0, 1, q)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	}
}
