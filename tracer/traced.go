package tracer

import (
	"context"

	"github.com/vk/symtrace/graph"
	"github.com/vk/symtrace/nn"
)

// TracedModule pairs a module tree with the graph recorded from it. Rendering
// the graph into an executable form and evaluating it are the concern of
// other layers; this is a plain pairing.
type TracedModule struct {
	Module nn.Module
	Graph  *graph.Graph
}

// SymbolicTrace records the operations seen while executing root's forward
// computation once over symbolic inputs, using a fresh tracer with the
// default policy.
func SymbolicTrace(ctx context.Context, root nn.Module) (*TracedModule, error) {
	return New().Trace(ctx, root)
}
