package autoopt

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

//////
// Const, vars, types.
//////

// Default is the catalog used by the Apply method of every shape and by the
// package-level Hyperparameters, Inherit and Annotate functions.
var Default = NewCatalog()

// NamedTarget is a free-standing target identified by a name only, for
// parameter sets that are not attached to a Go function or type.
type NamedTarget string

// targetKey identifies a decorated target. Exactly one field is set.
type targetKey struct {
	typ  reflect.Type
	fn   uintptr
	name string
}

// Catalog owns the registry of every decorated target.
//
// Targets can be:
//   - A type: pass TypeOf[T](), a value of T or a pointer to T. Pointer types
//     are dereferenced, so all of them share the same registry
//   - A function: keyed by its code pointer. Closures created from the same
//     function literal therefore share one registry
//   - A NamedTarget created with Named.
//
// Registries are copy-on-write: Apply never mutates a registry that another
// target may observe. A target without its own registry inherits the one of
// its parents (see Inherit) or of its embedded struct fields, and the first
// Apply on it clones that inherited registry before adding the new entry.
//
// Thread safety:
// - All methods are safe for concurrent use
// - Apply holds the write lock for the whole read-copy-store sequence
// - Decoration is still expected to happen while the program initializes.
type Catalog struct {
	// mu protects own and parents.
	mu sync.RWMutex

	// own holds the registry each target stores for itself.
	own map[targetKey]Parameters

	// parents holds the explicit inheritance links set with Inherit, in
	// resolution order.
	parents map[targetKey][]targetKey
}

//////
// Methods.
//////

// Clone returns a shallow copy of p. The copy is never nil.
func (p Parameters) Clone() Parameters {
	c := make(Parameters, len(p))
	for name, d := range p {
		c[name] = d
	}

	return c
}

// Names returns the parameter names in ascending order.
func (p Parameters) Names() []string {
	var names []string
	for name := range p {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Apply binds d to target and returns target unchanged.
//
// How it works:
// 1. Looks up the registry of target, its own or an inherited one
// 2. Copies it into a new map (an empty one if nothing was found)
// 3. Stores d under d.Name(), replacing a previous entry with the same name
// 4. Stores the new map as the registry of target
//
// Panics if target is nil.
func (c *Catalog) Apply(d Distribution, target any) any {
	key := keyOf(target)

	c.mu.Lock()
	defer c.mu.Unlock()

	current, _ := c.lookup(key, map[targetKey]bool{})

	params := current.Clone()

	if prev, ok := params[d.Name()]; ok {
		logger().Debug("overriding hyperparameter",
			"target", key.String(),
			"parameter", d.Name(),
			"previous", prev.String(),
			"current", d.String(),
		)
	}

	params[d.Name()] = d

	c.own[key] = params

	return target
}

// Inherit makes child fall back to the registry of parent as long as child has
// no registry of its own. Parents are consulted in the order they were added,
// before embedded struct fields.
func (c *Catalog) Inherit(child, parent any) {
	ck, pk := keyOf(child), keyOf(parent)
	if ck == pk {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if slices.Contains(c.parents[ck], pk) {
		return
	}

	c.parents[ck] = append(c.parents[ck], pk)
}

// Hyperparameters returns the registry of target, own or inherited. The
// result is a copy and never nil; a target that was never decorated yields an
// empty map.
func (c *Catalog) Hyperparameters(target any) Parameters {
	key := keyOf(target)

	c.mu.RLock()
	defer c.mu.RUnlock()

	params, _ := c.lookup(key, map[targetKey]bool{})

	return params.Clone()
}

// Has reports whether target stores a registry of its own.
func (c *Catalog) Has(target any) bool {
	key := keyOf(target)

	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.own[key]

	return ok
}

// Len returns the number of targets owning a registry.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.own)
}

// lookup resolves the registry visible on key. Callers must hold c.mu.
func (c *Catalog) lookup(key targetKey, seen map[targetKey]bool) (Parameters, bool) {
	if seen[key] {
		return nil, false
	}

	seen[key] = true

	if params, ok := c.own[key]; ok {
		return params, true
	}

	for _, parent := range c.parents[key] {
		if params, ok := c.lookup(parent, seen); ok {
			return params, true
		}
	}

	if key.typ == nil || key.typ.Kind() != reflect.Struct {
		return nil, false
	}

	for i := 0; i < key.typ.NumField(); i++ {
		field := key.typ.Field(i)
		if !field.Anonymous {
			continue
		}

		if params, ok := c.lookup(targetKey{typ: deref(field.Type)}, seen); ok {
			return params, true
		}
	}

	return nil, false
}

func (k targetKey) String() string {
	switch {
	case k.typ != nil:
		return k.typ.String()
	case k.fn != 0:
		return fmt.Sprintf("func@%#x", k.fn)
	default:
		return k.name
	}
}

//////
// Exported functionalities.
//////

// TypeOf returns the type target of T.
//
// Usage example:
//
//	autoopt.Must(autoopt.NewNormal("gamma", 0, 1)).Apply(autoopt.TypeOf[Algorithm]())
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Named returns a free-standing target identified by name.
func Named(name string) NamedTarget {
	return NamedTarget(name)
}

// Hyperparameters returns the registry of target in the Default catalog.
func Hyperparameters(target any) Parameters {
	return Default.Hyperparameters(target)
}

// Inherit links child to parent in the Default catalog.
func Inherit(child, parent any) {
	Default.Inherit(child, parent)
}

//////
// Helper functions.
//////

func keyOf(target any) targetKey {
	switch t := target.(type) {
	case nil:
		panic("autoopt: nil target")
	case NamedTarget:
		return targetKey{name: string(t)}
	case reflect.Type:
		return targetKey{typ: deref(t)}
	}

	v := reflect.ValueOf(target)
	if v.Kind() == reflect.Func {
		if v.IsNil() {
			panic("autoopt: nil function target")
		}

		return targetKey{fn: v.Pointer()}
	}

	return targetKey{typ: deref(v.Type())}
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

//////
// Factory.
//////

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		own:     make(map[targetKey]Parameters),
		parents: make(map[targetKey][]targetKey),
	}
}
