// Package tensor provides the dense numeric value type that flows through
// module trees, plus the small set of kernels the built-in modules need.
//
// Tensors are deliberately minimal: a shape and a flat float64 buffer. The
// rest of the system cares about tensor identity (two tensors holding equal
// data are still two distinct values), so Tensor is always handled as a
// pointer and never copied implicitly.
package tensor

import "fmt"

// Tensor is a dense, row-major float64 tensor.
type Tensor struct {
	shape []int
	data  []float64
}

// New creates a tensor from a flat row-major buffer and a shape. The buffer
// length must equal the product of the shape dimensions.
func New(data []float64, shape ...int) (*Tensor, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("tensor shape cannot contain negative dimension %d", d)
		}
		n *= d
	}
	if len(data) != n {
		return nil, fmt.Errorf("tensor data length %d does not match shape %v (want %d)", len(data), shape, n)
	}
	return &Tensor{shape: append([]int(nil), shape...), data: data}, nil
}

// Zeros creates a zero-filled tensor with the given shape.
func Zeros(shape ...int) *Tensor {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return &Tensor{shape: append([]int(nil), shape...), data: make([]float64, n)}
}

// Full creates a tensor with every element set to v.
func Full(v float64, shape ...int) *Tensor {
	t := Zeros(shape...)
	for i := range t.data {
		t.data[i] = v
	}
	return t
}

// Shape returns the tensor's dimensions. The returned slice must not be
// mutated.
func (t *Tensor) Shape() []int {
	return t.shape
}

// Len returns the total number of elements.
func (t *Tensor) Len() int {
	return len(t.data)
}

// Data returns the underlying flat buffer. The returned slice must not be
// resized; mutating elements mutates the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Equal reports whether two tensors have the same shape and element values.
// This is value equality; identity comparisons use plain pointer equality.
func (t *Tensor) Equal(other *Tensor) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.shape) != len(other.shape) {
		return false
	}
	for i, d := range t.shape {
		if other.shape[i] != d {
			return false
		}
	}
	for i, v := range t.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// Clone returns a deep copy with fresh identity.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{shape: append([]int(nil), t.shape...), data: data}
}

func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v", t.shape)
}
