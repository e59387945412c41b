package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tn, err := New([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, tn.Shape())
	assert.Equal(t, 6, tn.Len())

	_, err = New([]float64{1, 2}, 2, 3)
	require.Error(t, err)
}

func TestEqualIsValueEquality(t *testing.T) {
	a, err := New([]float64{1, 2}, 2)
	require.NoError(t, err)
	b, err := New([]float64{1, 2}, 2)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a == b, "equal tensors are still distinct values")
	assert.False(t, a.Equal(Zeros(2)))
	assert.False(t, a.Equal(Zeros(2, 1)))
}

func TestAdd(t *testing.T) {
	a, _ := New([]float64{1, 2, 3}, 3)
	b, _ := New([]float64{10, 20, 30}, 3)

	sum, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 33}, sum.Data())

	_, err = Add(a, Zeros(2))
	require.Error(t, err)
}

func TestMatMul(t *testing.T) {
	a, _ := New([]float64{1, 2, 3, 4}, 2, 2)
	b, _ := New([]float64{5, 6, 7, 8}, 2, 2)

	out, err := MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, out.Shape())
	assert.Equal(t, []float64{19, 22, 43, 50}, out.Data())

	_, err = MatMul(a, Zeros(3, 2))
	require.Error(t, err)
	_, err = MatMul(a, Zeros(4))
	require.Error(t, err)
}

func TestAddRow(t *testing.T) {
	a, _ := New([]float64{1, 2, 3, 4}, 2, 2)
	bias, _ := New([]float64{10, 20}, 2)

	out, err := AddRow(a, bias)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 13, 24}, out.Data())
}

func TestRelu(t *testing.T) {
	a, _ := New([]float64{-1, 0, 2}, 3)
	assert.Equal(t, []float64{0, 0, 2}, Relu(a).Data())
}

func TestClone(t *testing.T) {
	a, _ := New([]float64{1, 2}, 2)
	c := a.Clone()
	assert.True(t, a.Equal(c))
	assert.False(t, a == c)

	c.Data()[0] = 99
	assert.Equal(t, float64(1), a.Data()[0], "clone must not share the buffer")
}
