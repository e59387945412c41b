package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/symtrace/tensor"
)

type twoStage struct {
	Base
	Stage1 *Linear
	Stage2 *ReLU
	Scale  *tensor.Tensor
}

func (m *twoStage) ForwardParams() []string { return []string{"x"} }

func (m *twoStage) Forward(x Value) (Value, error) { return x, nil }

func newTwoStage() *twoStage {
	return &twoStage{
		Stage1: NewLinear(2, 2),
		Stage2: NewReLU(),
		Scale:  tensor.Full(2, 2),
	}
}

func TestNamedModules(t *testing.T) {
	root := newTwoStage()
	mods := NamedModules(root)

	names := make([]string, len(mods))
	for i, nm := range mods {
		names[i] = nm.Name
	}
	assert.Equal(t, []string{"", "Stage1", "Stage2"}, names)
	assert.Same(t, root, mods[0].Module.(*twoStage))
	assert.Same(t, root.Stage1, mods[1].Module.(*Linear))
}

func TestNamedModules_SequentialChildrenByIndex(t *testing.T) {
	seq := NewSequential(NewLinear(2, 2), NewReLU())
	mods := NamedModules(seq)

	names := make([]string, len(mods))
	for i, nm := range mods {
		names[i] = nm.Name
	}
	assert.Equal(t, []string{"", "Layers.0", "Layers.1"}, names)
}

func TestNamedModules_SharedInstanceReportedOnce(t *testing.T) {
	shared := NewReLU()
	seq := NewSequential(shared, shared)

	mods := NamedModules(seq)
	require.Len(t, mods, 2)
	assert.Equal(t, "Layers.0", mods[1].Name)
}

func TestNamedParameters(t *testing.T) {
	root := newTwoStage()
	params := NamedParameters(root)

	names := make([]string, len(params))
	for i, np := range params {
		names[i] = np.Name
	}
	assert.Equal(t, []string{"Stage1.Weight", "Stage1.Bias"}, names)
	assert.Same(t, root.Stage1.Weight, params[0].Param)
}

func TestFindTensor(t *testing.T) {
	root := newTwoStage()

	name, ok := FindTensor(root, root.Scale)
	require.True(t, ok)
	assert.Equal(t, "Scale", name)

	// Identity, not equality: an equal tensor that is a distinct value is
	// not found.
	_, ok = FindTensor(root, tensor.Full(2, 2))
	assert.False(t, ok)
}

func TestFindTensor_AttachedConstant(t *testing.T) {
	root := newTwoStage()
	c := tensor.Full(7, 1)
	require.NoError(t, root.ModuleBase().AttachConstant("tensorConstant0", c))

	name, ok := FindTensor(root, c)
	require.True(t, ok)
	assert.Equal(t, "tensorConstant0", name)
}

type childWithConst struct {
	Base
	Gamma *tensor.Tensor
}

func (c *childWithConst) Forward(x Value) (Value, error) { return x, nil }

type constHolder struct {
	Base
	Inner *childWithConst
}

func (h *constHolder) Forward(x Value) (Value, error) { return x, nil }

func TestFindTensor_SearchesChildrenDepthFirst(t *testing.T) {
	g := tensor.Full(3, 2)
	root := &constHolder{Inner: &childWithConst{Gamma: g}}

	name, ok := FindTensor(root, g)
	require.True(t, ok)
	assert.Equal(t, "Inner.Gamma", name)
}

func TestHasAttribute(t *testing.T) {
	root := newTwoStage()
	assert.True(t, HasAttribute(root, "Scale"))
	assert.True(t, HasAttribute(root, "Stage1"))
	assert.False(t, HasAttribute(root, "tensorConstant0"))

	require.NoError(t, root.ModuleBase().AttachConstant("tensorConstant0", tensor.Zeros(1)))
	assert.True(t, HasAttribute(root, "tensorConstant0"))
}

func TestAttachConstant_RejectsDuplicates(t *testing.T) {
	root := newTwoStage()
	require.NoError(t, root.ModuleBase().AttachConstant("tensorConstant0", tensor.Zeros(1)))
	assert.Error(t, root.ModuleBase().AttachConstant("tensorConstant0", tensor.Zeros(1)))
}
