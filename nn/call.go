package nn

import "context"

// Interceptor redirects module invocations. During a trace, the tracer
// installs itself on the context so that every Call in the module tree is
// routed through it instead of running the module's real Forward.
type Interceptor interface {
	InterceptModule(ctx context.Context, m Module, args []Value, kwargs map[string]Value) (Value, error)
}

type interceptorKey struct{}

// WithInterceptor returns a context that routes Call through the interceptor.
// The interception scope is exactly the lifetime of the returned context;
// nothing process-wide is mutated.
func WithInterceptor(ctx context.Context, ic Interceptor) context.Context {
	return context.WithValue(ctx, interceptorKey{}, ic)
}

// InterceptorFrom returns the interceptor installed on the context, if any.
func InterceptorFrom(ctx context.Context) (Interceptor, bool) {
	ic, ok := ctx.Value(interceptorKey{}).(Interceptor)
	return ic, ok
}

// Call invokes a module's forward computation with positional arguments.
// All module invocations inside a model tree must go through Call (or CallKw)
// so that a trace can observe them.
func Call(ctx context.Context, m Module, args ...Value) (Value, error) {
	return CallKw(ctx, m, args, nil)
}

// CallKw invokes a module's forward computation with positional and keyword
// arguments. If the context carries an interceptor the invocation is handed
// to it; otherwise the module's Forward runs directly via its signature.
func CallKw(ctx context.Context, m Module, args []Value, kwargs map[string]Value) (Value, error) {
	if ic, ok := InterceptorFrom(ctx); ok {
		return ic.InterceptModule(ctx, m, args, kwargs)
	}
	return Invoke(ctx, m, args, kwargs)
}

// Invoke runs the module's real Forward, bypassing any interceptor.
func Invoke(ctx context.Context, m Module, args []Value, kwargs map[string]Value) (Value, error) {
	sig, err := SignatureOf(m)
	if err != nil {
		return nil, err
	}
	return sig.Call(ctx, args, kwargs)
}
