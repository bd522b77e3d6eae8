package autoopt

import (
	"fmt"
	"reflect"
)

//////
// Const, vars, types.
//////

// named is anything exposing a parameter name.
type named interface {
	Name() string
}

// base carries the state shared by every shape: the parameter name. It is
// embedded by value so the name cannot change after construction.
type base struct {
	name string
}

//////
// Methods.
//////

// Name returns the parameter identifier supplied at construction.
func (b base) Name() string {
	return b.name
}

// Equal reports whether other is a named value with the same name. The shape
// and every other field are ignored: the name is the sole identity key of a
// registry entry.
func (b base) Equal(other any) bool {
	return sameName(b.name, other)
}

//////
// Exported functionalities.
//////

// Equal reports whether a and b are both named and share the same name.
func Equal(a, b any) bool {
	n, ok := asNamed(a)
	if !ok {
		return false
	}

	return sameName(n.Name(), b)
}

// Must panics if err is not nil and returns d otherwise. It is meant for
// package-level declarations, so that a malformed distribution breaks the
// program at initialization instead of at optimization time.
//
// Usage example:
//
//	var _ = autoopt.Must(autoopt.NewChoice("kernel", "linear", "rbf")).Apply(SVM{})
func Must[D Distribution](d D, err error) D {
	if err != nil {
		panic(err)
	}

	return d
}

// Annotate registers every distribution on target in the Default catalog and
// returns target unchanged.
//
// Usage example:
//
//	var train = autoopt.Annotate(func(nu, gamma float64) error { ... },
//	    autoopt.Must(autoopt.NewUniform("nu", 0, 1)),
//	    autoopt.Must(autoopt.NewNormal("gamma", 0, 1)),
//	)
func Annotate[T any](target T, dists ...Distribution) T {
	for _, d := range dists {
		Default.Apply(d, target)
	}

	return target
}

//////
// Helper functions.
//////

func asNamed(v any) (named, bool) {
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}

	n, ok := v.(named)

	return n, ok
}

func sameName(name string, other any) bool {
	o, ok := asNamed(other)
	if !ok {
		return false
	}

	return o.Name() == name
}

// describe renders the debug form shared by all shapes, e.g. "Normal<gamma>".
func describe(shape, name string) string {
	return fmt.Sprintf("%s<%s>", shape, name)
}
