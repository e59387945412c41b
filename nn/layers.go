package nn

import (
	"context"
	"fmt"

	"github.com/vk/symtrace/tensor"
)

// Linear applies y = x·Wᵀ + b to a (batch, in) input.
type Linear struct {
	Base
	In     int
	Out    int
	Weight *Parameter
	Bias   *Parameter
}

// NewLinear creates a zero-initialized linear layer. Weight has shape
// (out, in) and Bias shape (out).
func NewLinear(in, out int) *Linear {
	return &Linear{
		In:     in,
		Out:    out,
		Weight: NewParameter(tensor.Zeros(out, in)),
		Bias:   NewParameter(tensor.Zeros(out)),
	}
}

func (l *Linear) ForwardParams() []string {
	return []string{"x"}
}

func (l *Linear) Forward(x Value) (Value, error) {
	xt, err := wantTensor("Linear", x)
	if err != nil {
		return nil, err
	}
	wt := transpose(l.Weight.Data)
	y, err := tensor.MatMul(xt, wt)
	if err != nil {
		return nil, err
	}
	return tensor.AddRow(y, l.Bias.Data)
}

// ReLU applies max(0, x) element-wise.
type ReLU struct {
	Base
}

func NewReLU() *ReLU {
	return &ReLU{}
}

func (r *ReLU) ForwardParams() []string {
	return []string{"x"}
}

func (r *ReLU) Forward(x Value) (Value, error) {
	xt, err := wantTensor("ReLU", x)
	if err != nil {
		return nil, err
	}
	return tensor.Relu(xt), nil
}

// Sigmoid applies 1/(1+exp(-x)) element-wise.
type Sigmoid struct {
	Base
}

func NewSigmoid() *Sigmoid {
	return &Sigmoid{}
}

func (s *Sigmoid) ForwardParams() []string {
	return []string{"x"}
}

func (s *Sigmoid) Forward(x Value) (Value, error) {
	xt, err := wantTensor("Sigmoid", x)
	if err != nil {
		return nil, err
	}
	return tensor.Sigmoid(xt), nil
}

// Sequential chains its layers in order, feeding each layer's output to the
// next. It is an ordered container rather than an operation of its own: the
// default classification policy traces through it so only its layers appear
// in a graph.
type Sequential struct {
	Base
	Layers []Module
}

func NewSequential(layers ...Module) *Sequential {
	return &Sequential{Layers: layers}
}

func (s *Sequential) ForwardParams() []string {
	return []string{"x"}
}

func (s *Sequential) Forward(ctx context.Context, x Value) (Value, error) {
	var err error
	for _, layer := range s.Layers {
		x, err = Call(ctx, layer, x)
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}

func wantTensor(layer string, v Value) (*tensor.Tensor, error) {
	t, ok := v.(*tensor.Tensor)
	if !ok {
		return nil, fmt.Errorf("%s: want *tensor.Tensor input, got %T", layer, v)
	}
	return t, nil
}

// transpose returns Wᵀ for a rank-2 weight.
func transpose(w *tensor.Tensor) *tensor.Tensor {
	shape := w.Shape()
	rows, cols := shape[0], shape[1]
	out := tensor.Zeros(cols, rows)
	wd, od := w.Data(), out.Data()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			od[j*rows+i] = wd[i*cols+j]
		}
	}
	return out
}
