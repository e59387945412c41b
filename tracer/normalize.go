package tracer

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/symtrace/graph"
	"github.com/vk/symtrace/nn"
	"github.com/vk/symtrace/tensor"
)

// constFamily is the name family for constants the trace attaches to the
// root. Synthesized names count up within it: tensorConstant0, 1, ...
const constFamily = "tensorConstant"

// normalize converts a runtime value into a graph argument. Symbolic values
// become node references, containers keep their shape with elements
// normalized, literals become cty values, and parameters and constant
// tensors resolve to get-constant nodes by identity (see resolveParameter and
// resolveTensor).
func (t *Tracer) normalize(v nn.Value) (graph.Argument, error) {
	switch x := v.(type) {
	case *Proxy:
		if x.tr != t {
			return nil, fmt.Errorf("proxy %s belongs to a different trace", x)
		}
		return x.node, nil

	case *nn.Parameter:
		return t.resolveParameter(x)

	case *tensor.Tensor:
		return t.resolveTensor(x)

	case []nn.Value:
		out := make([]graph.Argument, len(x))
		for i, elem := range x {
			a, err := t.normalize(elem)
			if err != nil {
				return nil, err
			}
			out[i] = a
		}
		return out, nil

	case map[string]nn.Value:
		out := make(map[string]graph.Argument, len(x))
		for k, elem := range x {
			a, err := t.normalize(elem)
			if err != nil {
				return nil, err
			}
			out[k] = a
		}
		return out, nil

	case cty.Value:
		return x, nil

	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil

	default:
		ty, err := gocty.ImpliedType(v)
		if err != nil {
			return nil, &UnrepresentableArgumentError{Value: v}
		}
		val, err := gocty.ToCtyValue(v, ty)
		if err != nil {
			return nil, &UnrepresentableArgumentError{Value: v}
		}
		return val, nil
	}
}

// normalizeAll normalizes positional and keyword argument sets.
func (t *Tracer) normalizeAll(args []nn.Value, kwargs map[string]nn.Value) ([]graph.Argument, map[string]graph.Argument, error) {
	var nargs []graph.Argument
	if len(args) > 0 {
		a, err := t.normalize([]nn.Value(args))
		if err != nil {
			return nil, nil, err
		}
		nargs = a.([]graph.Argument)
	}
	var nkwargs map[string]graph.Argument
	if len(kwargs) > 0 {
		a, err := t.normalize(map[string]nn.Value(kwargs))
		if err != nil {
			return nil, nil, err
		}
		nkwargs = a.(map[string]graph.Argument)
	}
	return nargs, nkwargs, nil
}

// resolveParameter emits a get-constant node for a learnable parameter,
// located by identity among the root's named parameters.
func (t *Tracer) resolveParameter(p *nn.Parameter) (graph.Argument, error) {
	for _, np := range nn.NamedParameters(t.root) {
		if np.Param == p {
			return t.graph.Insert(graph.GetConstant, np.Name, nil, nil), nil
		}
	}
	var shape []int
	if p.Data != nil {
		shape = p.Data.Shape()
	}
	return nil, &UnregisteredParameterError{Shape: shape}
}

// resolveTensor emits a get-constant node for a constant tensor. The tensor
// is located by identity among the tree's attributes, own attributes first,
// first match wins; a tensor found nowhere is attached to the root under a
// fresh name in the constFamily.
//
// Each resolution walks the tree. For large trees an identity-keyed index
// built once per trace would make this O(1); the first-match-wins order must
// be kept if that is ever done.
func (t *Tracer) resolveTensor(v *tensor.Tensor) (graph.Argument, error) {
	name, found := nn.FindTensor(t.root, v)
	if !found {
		name = t.attachConstant(v)
	}
	return t.graph.Insert(graph.GetConstant, name, nil, nil), nil
}

// attachConstant stows a tensor on the root under the first free name of the
// constFamily and returns that name.
func (t *Tracer) attachConstant(v *tensor.Tensor) string {
	for i := 0; ; i++ {
		name := fmt.Sprintf("%s%d", constFamily, i)
		if nn.HasAttribute(t.root, name) {
			continue
		}
		if err := t.root.ModuleBase().AttachConstant(name, v); err == nil {
			return name
		}
	}
}
