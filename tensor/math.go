package tensor

import (
	"fmt"
	"math"
)

// Add returns the element-wise sum of two same-shaped tensors.
func Add(a, b *Tensor) (*Tensor, error) {
	if err := sameShape("add", a, b); err != nil {
		return nil, err
	}
	out := Zeros(a.shape...)
	for i := range a.data {
		out.data[i] = a.data[i] + b.data[i]
	}
	return out, nil
}

// Sub returns the element-wise difference of two same-shaped tensors.
func Sub(a, b *Tensor) (*Tensor, error) {
	if err := sameShape("sub", a, b); err != nil {
		return nil, err
	}
	out := Zeros(a.shape...)
	for i := range a.data {
		out.data[i] = a.data[i] - b.data[i]
	}
	return out, nil
}

// Mul returns the element-wise product of two same-shaped tensors.
func Mul(a, b *Tensor) (*Tensor, error) {
	if err := sameShape("mul", a, b); err != nil {
		return nil, err
	}
	out := Zeros(a.shape...)
	for i := range a.data {
		out.data[i] = a.data[i] * b.data[i]
	}
	return out, nil
}

// MatMul multiplies a (m,k) matrix by a (k,n) matrix.
func MatMul(a, b *Tensor) (*Tensor, error) {
	if len(a.shape) != 2 || len(b.shape) != 2 {
		return nil, fmt.Errorf("matmul requires rank-2 tensors, got %v and %v", a.shape, b.shape)
	}
	m, k := a.shape[0], a.shape[1]
	if b.shape[0] != k {
		return nil, fmt.Errorf("matmul shape mismatch: %v x %v", a.shape, b.shape)
	}
	n := b.shape[1]
	out := Zeros(m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for l := 0; l < k; l++ {
				sum += a.data[i*k+l] * b.data[l*n+j]
			}
			out.data[i*n+j] = sum
		}
	}
	return out, nil
}

// AddRow adds a rank-1 bias of length n to every row of a (m,n) matrix.
func AddRow(a, bias *Tensor) (*Tensor, error) {
	if len(a.shape) != 2 || len(bias.shape) != 1 {
		return nil, fmt.Errorf("addrow requires a matrix and a vector, got %v and %v", a.shape, bias.shape)
	}
	m, n := a.shape[0], a.shape[1]
	if bias.shape[0] != n {
		return nil, fmt.Errorf("addrow shape mismatch: %v + %v", a.shape, bias.shape)
	}
	out := Zeros(m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			out.data[i*n+j] = a.data[i*n+j] + bias.data[j]
		}
	}
	return out, nil
}

// Relu returns max(0, x) element-wise.
func Relu(a *Tensor) *Tensor {
	out := Zeros(a.shape...)
	for i, v := range a.data {
		if v > 0 {
			out.data[i] = v
		}
	}
	return out
}

// Sigmoid returns 1/(1+exp(-x)) element-wise.
func Sigmoid(a *Tensor) *Tensor {
	out := Zeros(a.shape...)
	for i, v := range a.data {
		out.data[i] = 1 / (1 + math.Exp(-v))
	}
	return out
}

func sameShape(op string, a, b *Tensor) error {
	if len(a.shape) != len(b.shape) {
		return fmt.Errorf("%s shape mismatch: %v vs %v", op, a.shape, b.shape)
	}
	for i, d := range a.shape {
		if b.shape[i] != d {
			return fmt.Errorf("%s shape mismatch: %v vs %v", op, a.shape, b.shape)
		}
	}
	return nil
}
