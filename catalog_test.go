package autoopt

import (
	"reflect"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type algorithm struct{}

type linearAlgorithm struct{ algorithm }

type kernelAlgorithm struct{ algorithm }

type ensemble struct {
	*linearAlgorithm
	kernelAlgorithm
}

func train(nu, gamma float64) error { return nil }

func evaluate(nu float64) error { return nil }

func TestApplyReturnsTargetUnchanged(t *testing.T) {
	catalog := NewCatalog()
	nu := Must(NewUniform("nu", 0, 1))

	// Functions keep their identity.
	got := catalog.Apply(nu, train)
	assert.Equal(t, reflect.ValueOf(train).Pointer(), reflect.ValueOf(got).Pointer())

	// Values are handed back as they are.
	value := &algorithm{}
	assert.Same(t, value, catalog.Apply(nu, value))
}

func TestApplySameNameOverrides(t *testing.T) {
	catalog := NewCatalog()

	first := Must(NewUniform("nu", 0, 1))
	second := Must(NewNormal("nu", 0, 1))

	catalog.Apply(first, train)
	catalog.Apply(second, train)

	params := catalog.Hyperparameters(train)

	// Exactly one entry, the later one wins.
	require.Len(t, params, 1)
	assert.Same(t, second, params["nu"])
}

func TestApplyDifferentNames(t *testing.T) {
	catalog := NewCatalog()

	catalog.Apply(Must(NewUniform("nu", 0, 1)), train)
	catalog.Apply(Must(NewNormal("gamma", 0, 1)), train)

	assert.Equal(t, []string{"gamma", "nu"}, catalog.Hyperparameters(train).Names())

	// Another function is not affected.
	assert.Empty(t, catalog.Hyperparameters(evaluate))
	assert.False(t, catalog.Has(evaluate))
}

func TestTypeTargetsShareRegistry(t *testing.T) {
	catalog := NewCatalog()

	catalog.Apply(Must(NewUniform("a", 0, 1)), algorithm{})
	catalog.Apply(Must(NewUniform("b", 0, 1)), &algorithm{})
	catalog.Apply(Must(NewUniform("c", 0, 1)), TypeOf[algorithm]())
	catalog.Apply(Must(NewUniform("d", 0, 1)), TypeOf[*algorithm]())

	assert.Equal(t, []string{"a", "b", "c", "d"}, catalog.Hyperparameters(algorithm{}).Names())
	assert.Equal(t, 1, catalog.Len())
}

func TestEmbeddedInheritanceIsolation(t *testing.T) {
	catalog := NewCatalog()

	catalog.Apply(Must(NewUniform("nu", 0, 1)), algorithm{})

	// Before decoration the subtypes see the base registry.
	assert.Equal(t, []string{"nu"}, catalog.Hyperparameters(linearAlgorithm{}).Names())
	assert.False(t, catalog.Has(linearAlgorithm{}))

	override := Must(NewNormal("nu", 0, 1))
	catalog.Apply(override, linearAlgorithm{})
	catalog.Apply(Must(NewChoice("kernel", "rbf", "poly")), kernelAlgorithm{})

	base := catalog.Hyperparameters(algorithm{})
	linear := catalog.Hyperparameters(linearAlgorithm{})
	kernel := catalog.Hyperparameters(kernelAlgorithm{})

	// The base registry is untouched.
	assert.Equal(t, []string{"nu"}, base.Names())
	assert.Equal(t, "Uniform<nu>", base["nu"].String())

	// Each subtype starts from a copy of the base registry.
	assert.Same(t, override, linear["nu"])
	if diff := cmp.Diff([]string{"kernel", "nu"}, kernel.Names()); diff != "" {
		t.Errorf("kernel parameters mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "Uniform<nu>", kernel["nu"].String())
}

func TestEmbeddedResolutionOrder(t *testing.T) {
	catalog := NewCatalog()

	catalog.Apply(Must(NewUniform("a", 0, 1)), linearAlgorithm{})
	catalog.Apply(Must(NewUniform("b", 0, 1)), kernelAlgorithm{})

	// The first embedded field with a registry wins, pointers included.
	assert.Equal(t, []string{"a"}, catalog.Hyperparameters(ensemble{}).Names())
}

func TestLateBaseDecorationAfterChildOwnsRegistry(t *testing.T) {
	catalog := NewCatalog()

	catalog.Apply(Must(NewUniform("a", 0, 1)), algorithm{})
	catalog.Apply(Must(NewUniform("b", 0, 1)), linearAlgorithm{})
	catalog.Apply(Must(NewUniform("c", 0, 1)), algorithm{})

	// The child copied the base when it was decorated and does not see "c".
	assert.Equal(t, []string{"a", "b"}, catalog.Hyperparameters(linearAlgorithm{}).Names())
	assert.Equal(t, []string{"a", "c"}, catalog.Hyperparameters(algorithm{}).Names())
}

func TestInheritExplicitParent(t *testing.T) {
	catalog := NewCatalog()

	catalog.Apply(Must(NewUniform("nu", 0, 1)), train)
	catalog.Inherit(evaluate, train)
	catalog.Inherit(evaluate, train)
	catalog.Inherit(train, train)

	assert.Equal(t, []string{"nu"}, catalog.Hyperparameters(evaluate).Names())

	catalog.Apply(Must(NewUniform("extra", 0, 1)), evaluate)

	assert.Equal(t, []string{"extra", "nu"}, catalog.Hyperparameters(evaluate).Names())
	assert.Equal(t, []string{"nu"}, catalog.Hyperparameters(train).Names())
}

func TestInheritCycle(t *testing.T) {
	catalog := NewCatalog()

	catalog.Inherit(Named("a"), Named("b"))
	catalog.Inherit(Named("b"), Named("a"))

	assert.Empty(t, catalog.Hyperparameters(Named("a")))
}

func TestHyperparametersReturnsCopy(t *testing.T) {
	catalog := NewCatalog()

	catalog.Apply(Must(NewUniform("nu", 0, 1)), Named("svm"))

	params := catalog.Hyperparameters(Named("svm"))
	delete(params, "nu")

	assert.Len(t, catalog.Hyperparameters(Named("svm")), 1)
}

func TestApplyNilTargetPanics(t *testing.T) {
	catalog := NewCatalog()

	var fn func()

	assert.Panics(t, func() { catalog.Apply(Must(NewUniform("nu", 0, 1)), nil) })
	assert.Panics(t, func() { catalog.Apply(Must(NewUniform("nu", 0, 1)), fn) })
}

func TestConcurrentApply(t *testing.T) {
	catalog := NewCatalog()

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)

		go func(name string) {
			defer wg.Done()

			catalog.Apply(Must(NewUniform(name, 0, 1)), Named("shared"))
		}(name)
	}

	wg.Wait()

	assert.Equal(t, names, catalog.Hyperparameters(Named("shared")).Names())
}

func TestDefaultCatalog(t *testing.T) {
	type defaultTarget struct{}

	got := Annotate(defaultTarget{},
		Must(NewUniform("nu", 0, 1)),
		Must(NewChoice("mode", "solo")),
	)

	assert.Equal(t, defaultTarget{}, got)
	assert.Equal(t, []string{"mode", "nu"}, Hyperparameters(defaultTarget{}).Names())

	type derivedTarget struct{}

	Inherit(derivedTarget{}, defaultTarget{})
	assert.Len(t, Hyperparameters(derivedTarget{}), 2)
}
