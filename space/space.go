// Package space reads search-space declarations from YAML files and turns
// them into autoopt distributions.
//
// A file declares the parameters of one target:
//
//	target: svm
//	parameters:
//	  - name: kernel
//	    type: choice
//	    choices: [linear, rbf]
//	  - name: nu
//	    type: weighted_choice
//	    weights: {A: 1, B: 3}
//	  - name: C
//	    type: loguniform
//	    min: 0.001
//	    max: 100
//	  - name: degree
//	    type: quniform
//	    min: 1
//	    max: 5
//	    q: 1
//
// Supported types: choice, weighted_choice, uniform, quniform, loguniform,
// qloguniform, normal, qnormal, lognormal and qlognormal.
package space

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/thalesfsp/autoopt"
)

//////
// Const, vars, types.
//////

// MaxFileSize is the maximum size of a space file (1MB).
const MaxFileSize = 1024 * 1024

// ErrInvalidSpace is returned for malformed declarations.
var ErrInvalidSpace = errors.New("invalid search space")

// validate is the validator instance for space declarations.
var validate = validator.New()

// File is a decoded search-space declaration.
type File struct {
	// Target names the free-standing target used by Apply when no explicit
	// target is given.
	Target string `yaml:"target"`

	// Parameters lists the declared parameters in file order.
	Parameters []Parameter `yaml:"parameters" validate:"required,min=1,unique=Name,dive"`
}

// Parameter declares one distribution. Which fields are needed depends on
// Type:
//   - choice: Choices
//   - weighted_choice: Weights
//   - uniform, loguniform: Min, Max
//   - normal, lognormal: Loc, Scale
//   - the q-prefixed variants additionally need Q.
type Parameter struct {
	Name    string             `yaml:"name" validate:"required"`
	Type    string             `yaml:"type" validate:"required,oneof=choice weighted_choice uniform quniform loguniform qloguniform normal qnormal lognormal qlognormal"`
	Choices Labels             `yaml:"choices" validate:"required_if=Type choice"`
	Weights map[string]float64 `yaml:"weights" validate:"required_if=Type weighted_choice"`
	Min     *float64           `yaml:"min"`
	Max     *float64           `yaml:"max"`
	Loc     *float64           `yaml:"loc"`
	Scale   *float64           `yaml:"scale"`
	Q       *float64           `yaml:"q"`
}

// Labels are the choices of a choice parameter. A single scalar is a
// one-label list: "choices: solo" equals "choices: [solo]".
type Labels []any

//////
// Methods.
//////

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Labels) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		var list []any
		if err := value.Decode(&list); err != nil {
			return err
		}

		*l = list

		return nil
	}

	if value.ShortTag() == "!!null" {
		*l = nil

		return nil
	}

	var label any
	if err := value.Decode(&label); err != nil {
		return err
	}

	*l = Labels{label}

	return nil
}

// Distribution builds the distribution declared by p.
func (p Parameter) Distribution() (autoopt.Distribution, error) {
	switch p.Type {
	case "choice":
		return wrap(autoopt.NewChoice[any](p.Name, p.Choices...))
	case "weighted_choice":
		return wrap(autoopt.NewWeightedChoice(p.Name, p.Weights))
	}

	values, err := p.numbers()
	if err != nil {
		return nil, err
	}

	switch p.Type {
	case "uniform":
		return wrap(autoopt.NewUniform(p.Name, values["min"], values["max"]))
	case "quniform":
		return wrap(autoopt.NewQUniform(p.Name, values["min"], values["max"], values["q"]))
	case "loguniform":
		return wrap(autoopt.NewLogUniform(p.Name, values["min"], values["max"]))
	case "qloguniform":
		return wrap(autoopt.NewQLogUniform(p.Name, values["min"], values["max"], values["q"]))
	case "normal":
		return wrap(autoopt.NewNormal(p.Name, values["loc"], values["scale"]))
	case "qnormal":
		return wrap(autoopt.NewQNormal(p.Name, values["loc"], values["scale"], values["q"]))
	case "lognormal":
		return wrap(autoopt.NewLogNormal(p.Name, values["loc"], values["scale"]))
	case "qlognormal":
		return wrap(autoopt.NewQLogNormal(p.Name, values["loc"], values["scale"], values["q"]))
	default:
		return nil, fmt.Errorf("%w: parameter %q has unknown type %q", ErrInvalidSpace, p.Name, p.Type)
	}
}

// numbers collects the numeric fields needed by p.Type.
func (p Parameter) numbers() (map[string]float64, error) {
	fields := map[string]*float64{}

	switch p.Type {
	case "uniform", "quniform", "loguniform", "qloguniform":
		fields["min"], fields["max"] = p.Min, p.Max
	case "normal", "qnormal", "lognormal", "qlognormal":
		fields["loc"], fields["scale"] = p.Loc, p.Scale
	}

	if strings.HasPrefix(p.Type, "q") {
		fields["q"] = p.Q
	}

	values := make(map[string]float64, len(fields))

	for name, v := range fields {
		if v == nil {
			return nil, fmt.Errorf("%w: parameter %q of type %s needs %q", ErrInvalidSpace, p.Name, p.Type, name)
		}

		values[name] = *v
	}

	return values, nil
}

// Distributions builds every declared distribution in file order. It fails on
// the first malformed declaration.
func (f *File) Distributions() ([]autoopt.Distribution, error) {
	dists := make([]autoopt.Distribution, 0, len(f.Parameters))

	for _, p := range f.Parameters {
		d, err := p.Distribution()
		if err != nil {
			return nil, err
		}

		dists = append(dists, d)
	}

	return dists, nil
}

// Apply registers every declared distribution on target in catalog and
// returns the resulting registry. A nil catalog means autoopt.Default; a nil
// target means autoopt.Named(f.Target). Nothing is registered if a
// declaration is malformed.
func (f *File) Apply(catalog *autoopt.Catalog, target any) (autoopt.Parameters, error) {
	if catalog == nil {
		catalog = autoopt.Default
	}

	if target == nil {
		if f.Target == "" {
			return nil, fmt.Errorf("%w: no target given and the file does not name one", ErrInvalidSpace)
		}

		target = autoopt.Named(f.Target)
	}

	dists, err := f.Distributions()
	if err != nil {
		return nil, err
	}

	for _, d := range dists {
		catalog.Apply(d, target)
	}

	return catalog.Hyperparameters(target), nil
}

//////
// Exported functionalities.
//////

// Parse decodes and validates a space declaration. Unknown fields are
// rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unmarshaling YAML: %w", ErrInvalidSpace, err)
	}

	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpace, err)
	}

	if _, err := f.Distributions(); err != nil {
		return nil, err
	}

	return &f, nil
}

// Load reads and parses the space file at path.
func Load(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading space file: %w", err)
	}

	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: file too large: %d bytes (max %d)", ErrInvalidSpace, info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading space file: %w", err)
	}

	return Parse(data)
}

//////
// Helper functions.
//////

// wrap converts a typed constructor result into a Distribution, keeping the
// autoopt error and tagging it as an invalid space.
func wrap[D autoopt.Distribution](d D, err error) (autoopt.Distribution, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpace, err)
	}

	return d, nil
}
