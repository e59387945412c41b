package nn

import (
	"fmt"

	"github.com/vk/symtrace/tensor"
)

// Value is any value flowing through a module's forward computation: tensors,
// parameters, literals, containers, or symbolic stand-ins during a trace.
type Value = any

// Module is a node in a model tree. Concrete modules are struct pointers that
// embed Base and define a Forward method; their sub-modules, parameters, and
// tensor attributes are exported struct fields, discovered reflectively by
// the traversal functions in this package.
type Module interface {
	ModuleBase() *Base
}

// Base carries the per-instance state every module shares. Embed it by value:
//
//	type Linear struct {
//	    nn.Base
//	    Weight *nn.Parameter
//	    Bias   *nn.Parameter
//	}
type Base struct {
	leafOverride *bool

	// Constants attached at runtime, keyed by synthesized attribute name.
	// Insertion order is kept so lookups are deterministic.
	constNames []string
	consts     map[string]*tensor.Tensor
}

// ModuleBase returns the embedded base, satisfying Module.
func (b *Base) ModuleBase() *Base {
	return b
}

// SetLeaf overrides the classification of this module instance: true forces
// it to be treated as an atomic operation, false forces tracing through it.
func (b *Base) SetLeaf(leaf bool) {
	b.leafOverride = &leaf
}

// LeafOverride reports the per-instance classification override, if any.
func (b *Base) LeafOverride() (leaf, ok bool) {
	if b.leafOverride == nil {
		return false, false
	}
	return *b.leafOverride, true
}

// AttachConstant stores a tensor under a synthesized attribute name so it can
// be referenced from a graph by a stable qualified name.
func (b *Base) AttachConstant(name string, t *tensor.Tensor) error {
	if _, exists := b.consts[name]; exists {
		return fmt.Errorf("constant %q already attached", name)
	}
	if b.consts == nil {
		b.consts = make(map[string]*tensor.Tensor)
	}
	b.constNames = append(b.constNames, name)
	b.consts[name] = t
	return nil
}

// Constant returns an attached tensor by name.
func (b *Base) Constant(name string) (*tensor.Tensor, bool) {
	t, ok := b.consts[name]
	return t, ok
}

// ConstantNames returns the attached constant names in attachment order.
func (b *Base) ConstantNames() []string {
	return b.constNames
}

// Parameter is a learnable tensor belonging to a module. Parameters are
// resolved by identity during tracing, so they are always handled as
// pointers.
type Parameter struct {
	Data *tensor.Tensor
}

// NewParameter wraps a tensor as a learnable parameter.
func NewParameter(t *tensor.Tensor) *Parameter {
	return &Parameter{Data: t}
}
