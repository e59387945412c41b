package nn

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// ParamKind classifies a declared forward parameter.
type ParamKind int

const (
	// ParamFixed is an ordinary positional parameter.
	ParamFixed ParamKind = iota
	// ParamVarPositional collects extra positional arguments ("*name").
	ParamVarPositional
	// ParamVarKeyword collects keyword arguments ("**name").
	ParamVarKeyword
)

// Param is one declared parameter of a module's forward computation.
type Param struct {
	Name string
	Kind ParamKind
}

// Marked returns the name with its variadic marker, e.g. "*rest" or "**opts".
func (p Param) Marked() string {
	switch p.Kind {
	case ParamVarPositional:
		return "*" + p.Name
	case ParamVarKeyword:
		return "**" + p.Name
	default:
		return p.Name
	}
}

// ParamNamer is implemented by modules that declare the names of their
// forward parameters. Go reflection does not expose parameter names, so the
// declaration travels with the module, the way a handler's inputs are
// declared in a manifest. A "*" prefix marks the variable-positional
// parameter and "**" the variable-keyword parameter; both are declared as
// plain Value slots in the Go signature.
type ParamNamer interface {
	ForwardParams() []string
}

// Signature describes and invokes a module's Forward method. It is built once
// per module by SignatureOf and adapts between two calling conventions:
//
//   - Call binds like a normal invocation: fixed parameters take one argument
//     each, extra positional arguments are re-collected into the
//     variable-positional slot as a []Value, and keyword arguments into the
//     variable-keyword slot as a map.
//   - CallExact supplies exactly one value per declared parameter, variadic
//     markers cleared. This is the convention a trace uses to bind one
//     placeholder per declared name.
type Signature struct {
	method     reflect.Value
	takesCtx   bool
	goVariadic bool
	returnsErr bool
	params     []Param
}

var (
	ctxType   = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// SignatureOf inspects m's Forward method. The method may take an optional
// leading context.Context; the remaining parameters are the computation's
// declared inputs. It must return a Value or (Value, error).
func SignatureOf(m Module) (*Signature, error) {
	rv := reflect.ValueOf(m)
	method := rv.MethodByName("Forward")
	if !method.IsValid() {
		return nil, fmt.Errorf("module %T has no Forward method", m)
	}
	mt := method.Type()

	s := &Signature{method: method, goVariadic: mt.IsVariadic()}

	numIn := mt.NumIn()
	if numIn > 0 && mt.In(0) == ctxType {
		s.takesCtx = true
	}
	numValues := numIn
	if s.takesCtx {
		numValues--
	}

	switch mt.NumOut() {
	case 1:
		if mt.Out(0) == errorType {
			return nil, fmt.Errorf("module %T: Forward must return a value", m)
		}
	case 2:
		if mt.Out(1) != errorType {
			return nil, fmt.Errorf("module %T: Forward's second result must be error", m)
		}
		s.returnsErr = true
	default:
		return nil, fmt.Errorf("module %T: Forward must return a value or (value, error)", m)
	}

	names, err := declaredNames(m, numValues, s.goVariadic)
	if err != nil {
		return nil, err
	}
	s.params = names

	return s, nil
}

// declaredNames resolves the forward parameter declaration, either from the
// module's ForwardParams or synthesized as arg0..argN-1.
func declaredNames(m Module, numValues int, goVariadic bool) ([]Param, error) {
	var params []Param
	if namer, ok := m.(ParamNamer); ok {
		declared := namer.ForwardParams()
		if len(declared) != numValues {
			return nil, fmt.Errorf("module %T declares %d forward params but Forward takes %d values",
				m, len(declared), numValues)
		}
		for _, d := range declared {
			p := Param{Name: d}
			switch {
			case strings.HasPrefix(d, "**"):
				p = Param{Name: d[2:], Kind: ParamVarKeyword}
			case strings.HasPrefix(d, "*"):
				p = Param{Name: d[1:], Kind: ParamVarPositional}
			}
			if p.Name == "" {
				return nil, fmt.Errorf("module %T declares an empty forward param name", m)
			}
			params = append(params, p)
		}
	} else {
		for i := 0; i < numValues; i++ {
			params = append(params, Param{Name: fmt.Sprintf("arg%d", i)})
		}
	}

	if goVariadic {
		if len(params) == 0 {
			return nil, fmt.Errorf("module %T: variadic Forward with no parameters", m)
		}
		last := &params[len(params)-1]
		if last.Kind == ParamVarKeyword {
			return nil, fmt.Errorf("module %T: a Go-variadic parameter cannot be variable-keyword", m)
		}
		last.Kind = ParamVarPositional
	}

	return validateParamOrder(m, params)
}

// validateParamOrder enforces fixed params first, then at most one "*" slot,
// then at most one "**" slot.
func validateParamOrder(m Module, params []Param) ([]Param, error) {
	stage := ParamFixed
	for _, p := range params {
		if p.Kind < stage {
			return nil, fmt.Errorf("module %T: forward param %q declared out of order", m, p.Name)
		}
		if p.Kind == stage && stage != ParamFixed {
			return nil, fmt.Errorf("module %T: duplicate %q forward param", m, p.Marked())
		}
		if p.Kind > stage {
			stage = p.Kind
		}
	}
	return params, nil
}

// Params returns the declared parameters in order.
func (s *Signature) Params() []Param {
	return s.params
}

// numFixed returns the count of ordinary positional parameters.
func (s *Signature) numFixed() int {
	n := 0
	for _, p := range s.params {
		if p.Kind == ParamFixed {
			n++
		}
	}
	return n
}

func (s *Signature) varSlot(kind ParamKind) (int, bool) {
	for i, p := range s.params {
		if p.Kind == kind {
			return i, true
		}
	}
	return 0, false
}

// Call invokes Forward with the normal calling convention.
func (s *Signature) Call(ctx context.Context, args []Value, kwargs map[string]Value) (Value, error) {
	fixed := s.numFixed()
	if len(args) < fixed {
		return nil, fmt.Errorf("not enough arguments: got %d, want at least %d", len(args), fixed)
	}
	extras := args[fixed:]

	if s.goVariadic {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("unexpected keyword arguments for a variadic Forward")
		}
		vals := make([]Value, 0, len(args))
		vals = append(vals, args[:fixed]...)
		vals = append(vals, extras...)
		return s.invoke(ctx, vals, len(args))
	}

	vals := make([]Value, len(s.params))
	copy(vals, args[:fixed])

	if slot, ok := s.varSlot(ParamVarPositional); ok {
		rest := make([]Value, len(extras))
		copy(rest, extras)
		vals[slot] = rest
	} else if len(extras) > 0 {
		return nil, fmt.Errorf("too many arguments: got %d, want %d", len(args), fixed)
	}

	if slot, ok := s.varSlot(ParamVarKeyword); ok {
		kw := make(map[string]Value, len(kwargs))
		for k, v := range kwargs {
			kw[k] = v
		}
		vals[slot] = kw
	} else if len(kwargs) > 0 {
		return nil, fmt.Errorf("unexpected keyword arguments: %d given", len(kwargs))
	}

	return s.invoke(ctx, vals, len(vals))
}

// CallExact invokes Forward with exactly one value per declared parameter.
// Variadic markers are cleared: the value for a "*" or "**" parameter binds
// to that parameter directly instead of being re-collected.
func (s *Signature) CallExact(ctx context.Context, vals []Value) (Value, error) {
	if len(vals) != len(s.params) {
		return nil, fmt.Errorf("exact call needs %d values, got %d", len(s.params), len(vals))
	}
	return s.invoke(ctx, vals, len(vals))
}

// invoke performs the reflective call. numArgs positions map onto the
// method's value parameters; for a Go-variadic method the tail positions feed
// the variadic slot.
func (s *Signature) invoke(ctx context.Context, vals []Value, numArgs int) (Value, error) {
	mt := s.method.Type()
	in := make([]reflect.Value, 0, numArgs+1)
	if s.takesCtx {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(ctx))
	}
	for i := 0; i < numArgs; i++ {
		pos := len(in)
		var pt reflect.Type
		if s.goVariadic && pos >= mt.NumIn()-1 {
			pt = mt.In(mt.NumIn() - 1).Elem()
		} else {
			pt = mt.In(pos)
		}
		av, err := conform(vals[i], pt)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in = append(in, av)
	}

	results := s.method.Call(in)
	if s.returnsErr {
		if errv := results[1].Interface(); errv != nil {
			return nil, errv.(error)
		}
	}
	return results[0].Interface(), nil
}

// conform converts a Value into a reflect.Value assignable to the parameter
// type, handling untyped nil.
func conform(v Value, pt reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch pt.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
			return reflect.Zero(pt), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot pass nil as %s", pt)
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(pt) {
		return reflect.Value{}, fmt.Errorf("cannot pass %T as %s", v, pt)
	}
	return rv, nil
}
