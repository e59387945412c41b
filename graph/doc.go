// Package graph holds the static intermediate representation produced by a
// symbolic trace: an ordered, append-only sequence of nodes, each describing
// one operation performed during a single execution of the traced computation.
//
// # Structure
//
// A Graph owns its nodes. Nodes are appended in execution order and never
// removed or reordered; node names are unique within the graph. Arguments
// reference earlier nodes, cty literal values, or containers of those, so the
// reference structure forms a DAG without any explicit cycle check: a node
// can only refer to nodes that existed before it.
//
// # Lifecycle
//
//  1. Created empty by the tracer at the start of a trace
//  2. Populated via Insert as operations are recorded
//  3. Sealed by SetOutput, which appends the single terminal node
//  4. Treated as immutable from then on
//
// The graph is a pure data structure: rendering it into an executable form
// and evaluating it are the concern of other layers.
package graph
