package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/symtrace/nn"
)

type customBlock struct {
	nn.Base
	Inner *nn.Linear
}

func (c *customBlock) Forward(x nn.Value) (nn.Value, error) { return x, nil }

func TestDefault_Classification(t *testing.T) {
	p := Default()

	testCases := []struct {
		name string
		mod  nn.Module
		leaf bool
	}{
		{name: "standard library op is a leaf", mod: nn.NewLinear(1, 1), leaf: true},
		{name: "activation is a leaf", mod: nn.NewReLU(), leaf: true},
		{name: "Sequential container is traced through", mod: nn.NewSequential(), leaf: false},
		{name: "user module is traced through", mod: &customBlock{}, leaf: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.leaf, p.IsLeaf("m", tc.mod))
		})
	}
}

func TestInstanceOverrideWins(t *testing.T) {
	p := Default()

	block := &customBlock{Inner: nn.NewLinear(1, 1)}
	block.SetLeaf(true)
	assert.True(t, p.IsLeaf("block", block))

	lin := nn.NewLinear(1, 1)
	lin.SetLeaf(false)
	assert.False(t, p.IsLeaf("lin", lin))
}

func TestPathOverride(t *testing.T) {
	p := Default()
	p.Override("encoder.block1", true)
	p.Override("decoder", false)

	block := &customBlock{}
	assert.True(t, p.IsLeaf("encoder.block1", block))
	assert.False(t, p.IsLeaf("encoder.block2", block))

	lin := nn.NewLinear(1, 1)
	assert.False(t, p.IsLeaf("decoder", lin))

	// Instance override still beats a path override.
	lin.SetLeaf(true)
	assert.True(t, p.IsLeaf("decoder", lin))
}

func TestTraceThroughIsConfigurable(t *testing.T) {
	p := Default()
	p.TraceThrough = nil
	assert.True(t, p.IsLeaf("seq", nn.NewSequential()),
		"with an empty trace_through list even Sequential is atomic")

	p = Default()
	p.TraceThrough = append(p.TraceThrough, "ReLU")
	assert.False(t, p.IsLeaf("act", nn.NewReLU()))
	assert.True(t, p.IsLeaf("lin", nn.NewLinear(1, 1)))
}

func TestParseHCL(t *testing.T) {
	src := `
leaf {
  trace_through = ["Sequential", "ReLU"]
}

override "encoder.block1" {
  leaf = true
}

override "decoder" {
  leaf = false
}
`
	p, err := ParseHCL("policy.hcl", []byte(src))
	require.NoError(t, err)

	assert.False(t, p.IsLeaf("act", nn.NewReLU()))
	assert.True(t, p.IsLeaf("lin", nn.NewLinear(1, 1)), "packages default is kept")
	assert.True(t, p.IsLeaf("encoder.block1", &customBlock{}))
	assert.False(t, p.IsLeaf("decoder", nn.NewLinear(1, 1)))
}

func TestParseHCL_Defaults(t *testing.T) {
	p, err := ParseHCL("empty.hcl", []byte(""))
	require.NoError(t, err)
	assert.True(t, p.IsLeaf("lin", nn.NewLinear(1, 1)))
	assert.False(t, p.IsLeaf("seq", nn.NewSequential()))
}

func TestParseHCL_Errors(t *testing.T) {
	_, err := ParseHCL("bad.hcl", []byte(`leaf { packages = `))
	require.Error(t, err)

	_, err = ParseHCL("bad.hcl", []byte(`override "a..b" { leaf = true }`))
	require.Error(t, err, "override labels must be valid qualified names")
}
