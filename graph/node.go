package graph

// OpKind identifies what a node in the IR represents.
type OpKind string

const (
	// Placeholder is an as-yet-unbound input of the traced computation. Its
	// target is the declared parameter name, with variadic parameters marked
	// by a "*" or "**" prefix.
	Placeholder OpKind = "placeholder"
	// GetConstant fetches an external value by its qualified name on the
	// traced module tree: a learnable parameter or a constant tensor.
	GetConstant OpKind = "get-constant"
	// CallComposite invokes a sub-module treated as an atomic operation. Its
	// target is the sub-module's qualified path.
	CallComposite OpKind = "call-composite"
	// CallMethod invokes a named method on its first argument.
	CallMethod OpKind = "call-method"
	// CallFunction invokes a free function by name.
	CallFunction OpKind = "call-function"
	// Output marks the terminal value of the graph.
	Output OpKind = "output"
)

// Argument is one input to a node. It holds a *Node reference, a cty.Value
// literal, a []Argument, or a map[string]Argument. Nothing else is
// representable in the IR.
type Argument any

// Node is a single recorded operation in the IR.
//
// Nodes are created exclusively by Graph.Insert and Graph.SetOutput, which
// assign the unique Name. Argument references always point at nodes inserted
// earlier, so the reference structure is acyclic by construction.
type Node struct {
	// Op is the node's kind.
	Op OpKind
	// Name is the node's unique name within its owning graph.
	Name string
	// Target identifies what the node operates on: a parameter name for
	// placeholders, a qualified path for get-constant and call-composite,
	// a method or function name for the call kinds.
	Target string
	// Args are the positional arguments, in call order.
	Args []Argument
	// Kwargs are the keyword arguments.
	Kwargs map[string]Argument
}

func (n *Node) String() string {
	return "%" + n.Name
}
