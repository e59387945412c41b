// Package ops provides the free functions a composite module's forward logic
// uses on values that may be real tensors or symbolic stand-ins.
//
// Outside a trace every function computes real tensor math. Under a trace,
// as soon as any operand is a symbolic value the operation is recorded as a
// call-function node instead, and a new symbolic value is returned. That
// dual behavior is what lets one forward implementation serve both normal
// execution and tracing without being rewritten.
package ops

import (
	"fmt"

	"github.com/vk/symtrace/nn"
	"github.com/vk/symtrace/tensor"
	"github.com/vk/symtrace/tracer"
)

// Add returns a+b element-wise.
func Add(a, b nn.Value) (nn.Value, error) {
	if p := firstProxy(a, b); p != nil {
		return p.Tracer().EmitCallFunction("add", []nn.Value{a, b}, nil)
	}
	ta, tb, err := wantTensors("add", a, b)
	if err != nil {
		return nil, err
	}
	return tensor.Add(ta, tb)
}

// Sub returns a-b element-wise.
func Sub(a, b nn.Value) (nn.Value, error) {
	if p := firstProxy(a, b); p != nil {
		return p.Tracer().EmitCallFunction("sub", []nn.Value{a, b}, nil)
	}
	ta, tb, err := wantTensors("sub", a, b)
	if err != nil {
		return nil, err
	}
	return tensor.Sub(ta, tb)
}

// Mul returns a*b element-wise.
func Mul(a, b nn.Value) (nn.Value, error) {
	if p := firstProxy(a, b); p != nil {
		return p.Tracer().EmitCallFunction("mul", []nn.Value{a, b}, nil)
	}
	ta, tb, err := wantTensors("mul", a, b)
	if err != nil {
		return nil, err
	}
	return tensor.Mul(ta, tb)
}

// MatMul returns the matrix product of two rank-2 values.
func MatMul(a, b nn.Value) (nn.Value, error) {
	if p := firstProxy(a, b); p != nil {
		return p.Tracer().EmitCallFunction("matmul", []nn.Value{a, b}, nil)
	}
	ta, tb, err := wantTensors("matmul", a, b)
	if err != nil {
		return nil, err
	}
	return tensor.MatMul(ta, tb)
}

// Relu returns max(0, a) element-wise.
func Relu(a nn.Value) (nn.Value, error) {
	if p := firstProxy(a); p != nil {
		return p.Tracer().EmitCallFunction("relu", []nn.Value{a}, nil)
	}
	ta, ok := a.(*tensor.Tensor)
	if !ok {
		return nil, fmt.Errorf("relu: want *tensor.Tensor, got %T", a)
	}
	return tensor.Relu(ta), nil
}

// firstProxy returns the first symbolic operand, if any. Its tracer records
// the operation.
func firstProxy(vals ...nn.Value) *tracer.Proxy {
	for _, v := range vals {
		if p, ok := v.(*tracer.Proxy); ok {
			return p
		}
	}
	return nil
}

func wantTensors(op string, a, b nn.Value) (*tensor.Tensor, *tensor.Tensor, error) {
	ta, ok := a.(*tensor.Tensor)
	if !ok {
		return nil, nil, fmt.Errorf("%s: want *tensor.Tensor, got %T", op, a)
	}
	tb, ok := b.(*tensor.Tensor)
	if !ok {
		return nil, nil, fmt.Errorf("%s: want *tensor.Tensor, got %T", op, b)
	}
	return ta, tb, nil
}
