// Package policy decides, per sub-module, whether a trace treats it as an
// atomic operation (a single call-composite node) or traces through its
// internals.
//
// The default policy mirrors the structure of the standard module library:
// modules whose concrete type is declared in the nn package are atomic,
// except for ordered containers like Sequential, which only organize other
// modules and are traced through. Which container types get that treatment
// is configuration, not a hard-coded special case.
//
// Precedence, most specific first: per-instance override (Base.SetLeaf),
// per-qualified-path override, container trace-through list, leaf package
// prefixes.
package policy

import (
	"reflect"
	"strings"

	"github.com/vk/symtrace/nn"
)

// nnPackage is the import path of the standard module library.
var nnPackage = reflect.TypeOf(nn.Base{}).PkgPath()

// Policy classifies modules as atomic leaves or traced-through composites.
// The zero value classifies nothing as a leaf; use Default for the standard
// behavior.
type Policy struct {
	// LeafPackages lists import path prefixes whose module types are atomic.
	LeafPackages []string
	// TraceThrough lists type names that are traced through even when their
	// package matches LeafPackages. These are structural containers.
	TraceThrough []string

	overrides map[string]bool
}

// Default returns the standard policy: the nn package is atomic, Sequential
// is traced through.
func Default() *Policy {
	return &Policy{
		LeafPackages: []string{nnPackage},
		TraceThrough: []string{"Sequential"},
	}
}

// Override forces the classification of the module at the given qualified
// path.
func (p *Policy) Override(path string, leaf bool) {
	if p.overrides == nil {
		p.overrides = make(map[string]bool)
	}
	p.overrides[path] = leaf
}

// IsLeaf reports whether the module at the given qualified path is atomic.
func (p *Policy) IsLeaf(path string, m nn.Module) bool {
	if leaf, ok := m.ModuleBase().LeafOverride(); ok {
		return leaf
	}
	if leaf, ok := p.overrides[path]; ok {
		return leaf
	}

	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if !p.inLeafPackage(t.PkgPath()) {
		return false
	}
	for _, name := range p.TraceThrough {
		if t.Name() == name {
			return false
		}
	}
	return true
}

func (p *Policy) inLeafPackage(pkg string) bool {
	for _, prefix := range p.LeafPackages {
		if pkg == prefix || strings.HasPrefix(pkg, prefix+"/") {
			return true
		}
	}
	return false
}
