package nn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pair records what a Forward invocation was bound to.
type pair struct {
	Base
	gotX Value
	gotY Value
}

func (p *pair) ForwardParams() []string { return []string{"x", "y"} }

func (p *pair) Forward(x, y Value) (Value, error) {
	p.gotX, p.gotY = x, y
	return []Value{x, y}, nil
}

// flexible declares a fixed slot plus both variadic slots.
type flexible struct {
	Base
	gotX    Value
	gotRest Value
	gotKw   Value
}

func (f *flexible) ForwardParams() []string { return []string{"x", "*rest", "**opts"} }

func (f *flexible) Forward(x, rest, opts Value) (Value, error) {
	f.gotX, f.gotRest, f.gotKw = x, rest, opts
	return x, nil
}

// goVariadic uses a native Go variadic tail.
type goVariadic struct {
	Base
	gotAll []Value
}

func (g *goVariadic) ForwardParams() []string { return []string{"x", "*rest"} }

func (g *goVariadic) Forward(x Value, rest ...Value) Value {
	g.gotAll = append([]Value{x}, rest...)
	return x
}

// unnamed has no ForwardParams declaration.
type unnamed struct {
	Base
}

func (u *unnamed) Forward(a, b Value) Value { return a }

func TestSignatureOf_DeclaredParams(t *testing.T) {
	sig, err := SignatureOf(&pair{})
	require.NoError(t, err)

	params := sig.Params()
	require.Len(t, params, 2)
	assert.Equal(t, Param{Name: "x"}, params[0])
	assert.Equal(t, Param{Name: "y"}, params[1])
}

func TestSignatureOf_VariadicMarkers(t *testing.T) {
	sig, err := SignatureOf(&flexible{})
	require.NoError(t, err)

	params := sig.Params()
	require.Len(t, params, 3)
	assert.Equal(t, Param{Name: "x", Kind: ParamFixed}, params[0])
	assert.Equal(t, Param{Name: "rest", Kind: ParamVarPositional}, params[1])
	assert.Equal(t, Param{Name: "opts", Kind: ParamVarKeyword}, params[2])
	assert.Equal(t, "*rest", params[1].Marked())
	assert.Equal(t, "**opts", params[2].Marked())
}

func TestSignatureOf_SynthesizedNames(t *testing.T) {
	sig, err := SignatureOf(&unnamed{})
	require.NoError(t, err)

	params := sig.Params()
	require.Len(t, params, 2)
	assert.Equal(t, "arg0", params[0].Name)
	assert.Equal(t, "arg1", params[1].Name)
}

type badArity struct{ Base }

func (b *badArity) ForwardParams() []string { return []string{"x"} }
func (b *badArity) Forward(x, y Value) Value { return x }

type noForward struct{ Base }

func TestSignatureOf_Errors(t *testing.T) {
	_, err := SignatureOf(&badArity{})
	require.Error(t, err)

	_, err = SignatureOf(&noForward{})
	require.Error(t, err)
}

func TestCall_BindsFixedParams(t *testing.T) {
	m := &pair{}
	sig, err := SignatureOf(m)
	require.NoError(t, err)

	_, err = sig.Call(context.Background(), []Value{1, 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, m.gotX)
	assert.Equal(t, 2, m.gotY)

	_, err = sig.Call(context.Background(), []Value{1}, nil)
	require.Error(t, err, "missing argument")

	_, err = sig.Call(context.Background(), []Value{1, 2, 3}, nil)
	require.Error(t, err, "extra argument with no variadic slot")

	_, err = sig.Call(context.Background(), []Value{1, 2}, map[string]Value{"k": 1})
	require.Error(t, err, "kwargs with no keyword slot")
}

func TestCall_RecollectsExtras(t *testing.T) {
	m := &flexible{}
	sig, err := SignatureOf(m)
	require.NoError(t, err)

	_, err = sig.Call(context.Background(), []Value{"a", "b", "c"}, map[string]Value{"k": 9})
	require.NoError(t, err)
	assert.Equal(t, "a", m.gotX)
	assert.Equal(t, []Value{"b", "c"}, m.gotRest)
	assert.Equal(t, map[string]Value{"k": 9}, m.gotKw)
}

func TestCall_EmptyVariadicSlots(t *testing.T) {
	m := &flexible{}
	sig, err := SignatureOf(m)
	require.NoError(t, err)

	_, err = sig.Call(context.Background(), []Value{"a"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []Value{}, m.gotRest)
	assert.Equal(t, map[string]Value{}, m.gotKw)
}

func TestCall_GoVariadic(t *testing.T) {
	m := &goVariadic{}
	sig, err := SignatureOf(m)
	require.NoError(t, err)

	_, err = sig.Call(context.Background(), []Value{1, 2, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, []Value{1, 2, 3}, m.gotAll)
}

func TestCallExact_OneValuePerParam(t *testing.T) {
	m := &flexible{}
	sig, err := SignatureOf(m)
	require.NoError(t, err)

	_, err = sig.CallExact(context.Background(), []Value{"x", "r", "k"})
	require.NoError(t, err)
	assert.Equal(t, "x", m.gotX)
	assert.Equal(t, "r", m.gotRest, "the variadic slot binds the value directly")
	assert.Equal(t, "k", m.gotKw)

	_, err = sig.CallExact(context.Background(), []Value{"x"})
	require.Error(t, err)
}

type failing struct{ Base }

func (f *failing) Forward(x Value) (Value, error) {
	return nil, errors.New("forward exploded")
}

func TestCall_PropagatesForwardError(t *testing.T) {
	sig, err := SignatureOf(&failing{})
	require.NoError(t, err)

	_, err = sig.Call(context.Background(), []Value{1}, nil)
	require.EqualError(t, err, "forward exploded")
}

type ctxAware struct {
	Base
	gotCtx context.Context
}

func (c *ctxAware) Forward(ctx context.Context, x Value) (Value, error) {
	c.gotCtx = ctx
	return x, nil
}

func TestCall_PassesContext(t *testing.T) {
	m := &ctxAware{}
	sig, err := SignatureOf(m)
	require.NoError(t, err)

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	_, err = sig.Call(ctx, []Value{1}, nil)
	require.NoError(t, err)
	assert.Equal(t, "v", m.gotCtx.Value(key{}))

	// The context does not occupy a declared parameter slot.
	assert.Len(t, sig.Params(), 1)
}
