// Package tracer builds a static intermediate representation of a module
// tree's computation by executing it exactly once over symbolic stand-ins.
//
// # How a trace works
//
// Trace reflects over the root's Forward declaration and creates one
// placeholder node and Proxy per declared parameter, expanding
// variable-positional and variable-keyword declarations into extra marked
// placeholders bound through the fixed-arity calling convention. It then
// installs itself as the nn.Interceptor on the context and runs the forward
// once.
//
// Every nn.Call in the tree routes to InterceptModule, which resolves the
// module to its qualified path by identity and consults the classification
// policy: atomic modules are recorded as call-composite nodes and never
// executed, composites run for real so their nested calls are intercepted in
// turn. A per-call dispatch frame threaded through the context detects when a
// handler re-invokes the instance it is already redirecting, running the real
// forward exactly once instead of recursing.
//
// Arguments and the final result are normalized recursively: proxies become
// node references, containers keep their shape, literals become cty values,
// and parameters and constant tensors resolve by identity to get-constant
// targets, with unknown tensors attached to the root under synthesized
// tensorConstantN names.
//
// Data-dependent control flow cannot be recorded: the graph reflects the one
// execution path the trace took. A failed trace yields no graph; the tracer
// resets on every exit path and interception dies with the trace context.
package tracer
