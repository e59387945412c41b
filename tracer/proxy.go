package tracer

import (
	"github.com/vk/symtrace/graph"
	"github.com/vk/symtrace/nn"
)

// Proxy is the symbolic stand-in for a value during a trace. It binds a graph
// node to the tracer that created it; every operation performed on a proxy
// records a new node and returns a new proxy wrapping it.
//
// Proxies are transient: they are only valid while their trace is running and
// must not be retained after it ends.
type Proxy struct {
	node *graph.Node
	tr   *Tracer
}

// Node returns the graph node this proxy stands for.
func (p *Proxy) Node() *graph.Node {
	return p.node
}

// Tracer returns the tracer that owns this proxy.
func (p *Proxy) Tracer() *Tracer {
	return p.tr
}

// CallMethod records a call-method node invoking the named method on this
// value, with the receiver as the leading argument, and returns a proxy for
// the result.
func (p *Proxy) CallMethod(name string, args ...nn.Value) (*Proxy, error) {
	all := make([]nn.Value, 0, len(args)+1)
	all = append(all, p)
	all = append(all, args...)
	return p.tr.emit(graph.CallMethod, name, all, nil)
}

func (p *Proxy) String() string {
	return "Proxy(" + p.node.String() + ")"
}
