// Package nn models the tree-structured computations the tracer operates on.
//
// A model is a tree of Modules: struct pointers embedding Base whose exported
// fields hold sub-modules, learnable Parameters, and constant tensor
// attributes. The traversal functions (NamedModules, NamedParameters,
// FindTensor) discover that structure reflectively and address everything by
// dotted qualified names.
//
// A module's computation is its Forward method. Because Go reflection cannot
// see parameter names, modules declare them through ForwardParams, including
// "*" and "**" markers for variable-positional and variable-keyword slots;
// Signature adapts between the normal calling convention (extras re-collected
// into the variadic slots) and the fixed-arity convention a trace needs.
//
// All invocations between modules go through Call/CallKw, which route through
// an Interceptor when one is installed on the context. That dispatch seam is
// what lets a single tracer observe every nested invocation in the tree
// without any process-global state.
//
// The package also ships a small standard library of leaf operations (Linear,
// ReLU, Sigmoid) and the Sequential container; the classification policy
// treats modules from this package as atomic except for containers.
package nn
