package graph

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Graph is an append-only, ordered store of IR nodes. Node order is creation
// order, which for a trace equals execution order. A finished graph has
// exactly one output node, appended last.
//
// Graph is not safe for concurrent use; a trace is strictly sequential.
type Graph struct {
	nodes  []*Node
	names  map[string]struct{}
	output *Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{names: make(map[string]struct{})}
}

// Insert appends a new node and assigns it a unique name derived from the
// target, suffixed with an incrementing counter on collision.
func (g *Graph) Insert(op OpKind, target string, args []Argument, kwargs map[string]Argument) *Node {
	n := &Node{
		Op:     op,
		Name:   g.uniqueName(baseName(op, target)),
		Target: target,
		Args:   args,
		Kwargs: kwargs,
	}
	g.nodes = append(g.nodes, n)
	return n
}

// SetOutput creates the terminal node holding the graph's result and appends
// it. It fails if the graph already has an output.
func (g *Graph) SetOutput(arg Argument) (*Node, error) {
	if g.output != nil {
		return nil, fmt.Errorf("graph already has an output node %q", g.output.Name)
	}
	n := g.Insert(Output, "output", []Argument{arg}, nil)
	g.output = n
	return n, nil
}

// Nodes returns all nodes in creation order. The returned slice must not be
// mutated.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// OutputNode returns the terminal node, or nil if SetOutput has not run.
func (g *Graph) OutputNode() *Node {
	return g.output
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// String renders the graph as an aligned table, one node per line.
func (g *Graph) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "name\top\ttarget\targs\tkwargs")
	for _, n := range g.nodes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			n.Name, n.Op, n.Target, formatArgs(n.Args), formatKwargs(n.Kwargs))
	}
	w.Flush()
	return sb.String()
}

// uniqueName reserves and returns base, or base_1, base_2, ... on collision.
func (g *Graph) uniqueName(base string) string {
	name := base
	for i := 1; ; i++ {
		if _, taken := g.names[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
	g.names[name] = struct{}{}
	return name
}

// baseName derives a name candidate from a node target: qualified-path dots
// become underscores and variadic markers are stripped.
func baseName(op OpKind, target string) string {
	base := strings.TrimLeft(target, "*")
	base = strings.ReplaceAll(base, ".", "_")
	if base == "" {
		base = string(op)
	}
	return base
}
