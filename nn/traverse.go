package nn

import (
	"reflect"
	"strconv"

	"github.com/vk/symtrace/qualname"
	"github.com/vk/symtrace/tensor"
)

// NamedModule pairs a module with its qualified path from the root.
type NamedModule struct {
	Name   string
	Module Module
}

// NamedParameter pairs a parameter with its qualified path from the root.
type NamedParameter struct {
	Name  string
	Param *Parameter
}

// NamedModules returns the root and every module reachable from it through
// exported fields, depth-first in field declaration order. The root itself is
// first with the empty name. Each module instance is reported once even if it
// appears at several places in the tree.
func NamedModules(root Module) []NamedModule {
	seen := make(map[Module]struct{})
	var out []NamedModule

	var walk func(prefix string, m Module)
	walk = func(prefix string, m Module) {
		if _, dup := seen[m]; dup {
			return
		}
		seen[m] = struct{}{}
		out = append(out, NamedModule{Name: prefix, Module: m})
		for _, child := range Children(m) {
			walk(qualname.Join(prefix, child.Name), child.Module)
		}
	}
	walk("", root)
	return out
}

// Children returns a module's direct sub-modules in field declaration order.
// A field of type []Module contributes one child per element, named by index.
func Children(m Module) []NamedModule {
	var out []NamedModule
	forEachField(m, func(name string, fv reflect.Value) {
		if child, ok := asModule(fv); ok {
			out = append(out, NamedModule{Name: name, Module: child})
			return
		}
		if fv.Kind() == reflect.Slice {
			for i := 0; i < fv.Len(); i++ {
				if child, ok := asModule(fv.Index(i)); ok {
					out = append(out, NamedModule{Name: name + "." + strconv.Itoa(i), Module: child})
				}
			}
		}
	})
	return out
}

// NamedParameters returns every learnable parameter reachable from the root,
// with dotted qualified names, in traversal order.
func NamedParameters(root Module) []NamedParameter {
	var out []NamedParameter
	for _, nm := range NamedModules(root) {
		forEachField(nm.Module, func(name string, fv reflect.Value) {
			if p, ok := fv.Interface().(*Parameter); ok && p != nil {
				out = append(out, NamedParameter{Name: qualname.Join(nm.Name, name), Param: p})
			}
		})
	}
	return out
}

// FindTensor locates a tensor by identity among the module tree's attributes:
// the module's own tensor-valued fields and attached constants first, then
// its sub-modules depth-first. The first match wins. The returned name is the
// dotted path of attribute lookups from m.
func FindTensor(m Module, t *tensor.Tensor) (string, bool) {
	found := ""
	forEachField(m, func(name string, fv reflect.Value) {
		if found != "" {
			return
		}
		if attr, ok := fv.Interface().(*tensor.Tensor); ok && attr == t {
			found = name
		}
	})
	if found != "" {
		return found, true
	}
	base := m.ModuleBase()
	for _, name := range base.ConstantNames() {
		if attr, _ := base.Constant(name); attr == t {
			return name, true
		}
	}
	for _, child := range Children(m) {
		if sub, ok := FindTensor(child.Module, t); ok {
			return qualname.Join(child.Name, sub), true
		}
	}
	return "", false
}

// HasAttribute reports whether name is taken on the module, either by an
// exported struct field or an attached constant.
func HasAttribute(m Module, name string) bool {
	if _, ok := m.ModuleBase().Constant(name); ok {
		return true
	}
	rv := reflect.ValueOf(m)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return false
	}
	return rv.Elem().FieldByName(name).IsValid()
}

// forEachField visits the exported fields of a module's underlying struct in
// declaration order. Modules that are not struct pointers have no fields.
func forEachField(m Module, visit func(name string, fv reflect.Value)) {
	rv := reflect.ValueOf(m)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sv := rv.Elem()
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() || field.Anonymous {
			continue
		}
		visit(field.Name, sv.Field(i))
	}
}

// asModule extracts a non-nil Module from a reflected field value.
func asModule(fv reflect.Value) (Module, bool) {
	if !fv.CanInterface() {
		return nil, false
	}
	switch fv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if fv.IsNil() {
			return nil, false
		}
	}
	m, ok := fv.Interface().(Module)
	return m, ok && m != nil
}
