package tracer

import "fmt"

// UnregisteredParameterError reports a learnable parameter encountered during
// argument normalization that is not identity-reachable from the traced
// root's parameter tree.
type UnregisteredParameterError struct {
	Shape []int
}

func (e *UnregisteredParameterError) Error() string {
	return fmt.Sprintf("parameter with shape %v is not a member of the traced module tree", e.Shape)
}

// UnregisteredComponentError reports an intercepted invocation of a module
// that is not identity-reachable from the traced root.
type UnregisteredComponentError struct {
	Module string
}

func (e *UnregisteredComponentError) Error() string {
	return fmt.Sprintf("module %s is not installed as a sub-module of the traced root", e.Module)
}

// UnrepresentableArgumentError reports a value that cannot be normalized into
// any recognized argument shape.
type UnrepresentableArgumentError struct {
	Value any
}

func (e *UnrepresentableArgumentError) Error() string {
	return fmt.Sprintf("value of type %T cannot be represented as a graph argument", e.Value)
}
