// Package pipelines chains processing nodes whose parameters are optimized
// together. Each node exposes the parameter space read from the autoopt
// registry; the pipeline aggregates them per node name.
package pipelines

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thalesfsp/autoopt"
)

//////
// Const, vars, types.
//////

// AnyType is the data type of an empty pipeline. It accepts every node.
const AnyType = "Any"

var (
	// ErrTypeMismatch is returned by AddNode when the node input type does
	// not match the output type of the pipeline.
	ErrTypeMismatch = errors.New("input types don't match")

	// ErrDuplicateNode is returned by AddNode when a node with the same name
	// is already part of the pipeline.
	ErrDuplicateNode = errors.New("duplicate node name")
)

// Node is one processing step.
type Node interface {
	// Name identifies the node inside a pipeline.
	Name() string

	// InputType and OutputType name the data types the node consumes and
	// produces, e.g. "image" or "[]float64".
	InputType() string
	OutputType() string

	// ParameterSpace returns the distributions of the node parameters,
	// usually autoopt.Hyperparameters of the node type.
	ParameterSpace() autoopt.Parameters

	// Execute runs the node on input with the sampled params and returns
	// the data passed to the next node.
	Execute(ctx context.Context, input any, params map[string]any) (any, error)
}

// BaseNode implements the naming part of Node and is meant to be embedded.
type BaseNode struct {
	name       string
	inputType  string
	outputType string
}

// Pipeline runs nodes in the order they were added. The zero value is an
// empty pipeline logging through slog.Default().
type Pipeline struct {
	nodes  []Node
	logger *slog.Logger
}

//////
// Methods.
//////

// Name returns the node name.
func (b BaseNode) Name() string { return b.name }

// InputType returns the consumed data type.
func (b BaseNode) InputType() string { return b.inputType }

// OutputType returns the produced data type.
func (b BaseNode) OutputType() string { return b.outputType }

// ParameterName makes parameter unique across the pipeline:
// "<node name>_<parameter>".
func (b BaseNode) ParameterName(parameter string) string {
	return fmt.Sprintf("%s_%s", b.name, parameter)
}

// ParameterSpaceOf returns the registry of the node v, usually the value
// embedding b. It lets a node implement ParameterSpace as
// n.ParameterSpaceOf(n).
func (b BaseNode) ParameterSpaceOf(v any) autoopt.Parameters {
	return autoopt.Hyperparameters(v)
}

// AddNode appends node. Its input type has to match the current output type
// of the pipeline unless the pipeline is still empty.
func (p *Pipeline) AddNode(node Node) error {
	if out := p.OutputType(); out != AnyType && out != node.InputType() {
		return fmt.Errorf("can't add node %q: %w, expected %q but got %q",
			node.Name(), ErrTypeMismatch, out, node.InputType())
	}

	for _, n := range p.nodes {
		if n.Name() == node.Name() {
			return fmt.Errorf("can't add node %q: %w", node.Name(), ErrDuplicateNode)
		}
	}

	p.nodes = append(p.nodes, node)

	return nil
}

// Nodes returns the nodes in execution order.
func (p *Pipeline) Nodes() []Node {
	return append([]Node(nil), p.nodes...)
}

// InputType is the input type of the first node, AnyType if empty.
func (p *Pipeline) InputType() string {
	if len(p.nodes) == 0 {
		return AnyType
	}

	return p.nodes[0].InputType()
}

// OutputType is the output type of the last node, AnyType if empty.
func (p *Pipeline) OutputType() string {
	if len(p.nodes) == 0 {
		return AnyType
	}

	return p.nodes[len(p.nodes)-1].OutputType()
}

// ParameterSpace returns the parameter space of every node keyed by node
// name.
func (p *Pipeline) ParameterSpace() map[string]autoopt.Parameters {
	space := make(map[string]autoopt.Parameters, len(p.nodes))
	for _, n := range p.nodes {
		space[n.Name()] = n.ParameterSpace()
	}

	return space
}

// Execute passes input through every node and returns the result of the last
// one. params holds the sampled values keyed by node name, then by parameter
// name; nodes without an entry get an empty map.
//
// Execution stops at the first failing node or when ctx is done.
func (p *Pipeline) Execute(ctx context.Context, input any, params map[string]map[string]any) (any, error) {
	data := input

	for _, n := range p.nodes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline stopped before node %q: %w", n.Name(), err)
		}

		nodeParams := params[n.Name()]
		if nodeParams == nil {
			nodeParams = map[string]any{}
		}

		p.log().DebugContext(ctx, "executing node", "node", n.Name(), "params", nodeParams)

		out, err := n.Execute(ctx, data, nodeParams)
		if err != nil {
			p.log().ErrorContext(ctx, "node failed", "node", n.Name(), "error", err)

			return nil, fmt.Errorf("node %q: %w", n.Name(), err)
		}

		data = out
	}

	return data, nil
}

//////
// Helper functions.
//////

func (p *Pipeline) log() *slog.Logger {
	if p.logger == nil {
		return slog.Default()
	}

	return p.logger
}

//////
// Factory.
//////

// NewBaseNode returns the naming part of a node.
func NewBaseNode(name, inputType, outputType string) BaseNode {
	return BaseNode{name: name, inputType: inputType, outputType: outputType}
}

// New returns an empty pipeline logging through logger, slog.Default() if
// nil.
func New(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{logger: logger}
}
