package tracer

import (
	"context"
	"fmt"

	"github.com/vk/symtrace/graph"
	"github.com/vk/symtrace/internal/ctxlog"
	"github.com/vk/symtrace/nn"
	"github.com/vk/symtrace/policy"
)

// CallModuleFunc handles one intercepted module invocation. args and kwargs
// are the raw runtime values; target is the module's qualified path from the
// root.
type CallModuleFunc func(ctx context.Context, m nn.Module, target string, args []nn.Value, kwargs map[string]nn.Value) (nn.Value, error)

// Tracer records a single execution of a module tree as a static graph.
//
// A Tracer serves one trace at a time. The interception it performs is scoped
// to the context of that trace, so independent tracers never interfere.
type Tracer struct {
	// Policy classifies sub-modules as atomic leaves or traced-through
	// composites.
	Policy *policy.Policy

	// CallModule handles every intercepted invocation once the module has
	// been resolved and the redirect frame pushed. The default emits a
	// call-composite node for leaves and runs composites for real. Replace
	// it to change leaf handling, e.g. to trace leaf sub-modules into their
	// own graphs; a handler that re-invokes the same module instance gets
	// the real, unrecorded execution exactly once.
	CallModule CallModuleFunc

	root    nn.Module
	graph   *graph.Graph
	tracing bool
}

// New creates a tracer with the default classification policy and leaf
// handling.
func New() *Tracer {
	t := &Tracer{Policy: policy.Default()}
	t.CallModule = t.defaultCallModule
	return t
}

// Trace executes the root's forward computation exactly once with one
// symbolic placeholder per declared parameter, recording every atomic
// invocation and constant reference as graph nodes, and returns the finished
// graph paired with the root.
//
// On any error the partial graph is discarded, the tracer is reset, and the
// error surfaces to the caller; interception never outlives the call because
// it is carried only by the context used inside it.
func (t *Tracer) Trace(ctx context.Context, root nn.Module) (*TracedModule, error) {
	if root == nil {
		return nil, fmt.Errorf("cannot trace a nil module")
	}
	if t.tracing {
		return nil, fmt.Errorf("a trace is already in progress on this tracer")
	}
	logger := ctxlog.FromContext(ctx)

	t.tracing = true
	t.root = root
	t.graph = graph.New()
	defer func() {
		t.tracing = false
		t.root = nil
		t.graph = nil
	}()

	sig, err := nn.SignatureOf(root)
	if err != nil {
		return nil, err
	}

	params := sig.Params()
	placeholders := make([]nn.Value, 0, len(params))
	for _, p := range params {
		node := t.graph.Insert(graph.Placeholder, p.Marked(), nil, nil)
		placeholders = append(placeholders, &Proxy{node: node, tr: t})
	}
	logger.Debug("trace: placeholders built", "count", len(placeholders))

	ctx = nn.WithInterceptor(ctx, t)
	logger.Debug("trace: interceptor installed, executing forward")

	out, err := sig.CallExact(ctx, placeholders)
	if err != nil {
		return nil, fmt.Errorf("executing forward: %w", err)
	}

	result, err := t.normalize(out)
	if err != nil {
		return nil, err
	}
	if _, err := t.graph.SetOutput(result); err != nil {
		return nil, err
	}

	g := t.graph
	logger.Debug("trace: complete", "nodes", g.Len())
	return &TracedModule{Module: root, Graph: g}, nil
}

// InterceptModule implements nn.Interceptor. Every module invocation in the
// tree reaches here during a trace.
func (t *Tracer) InterceptModule(ctx context.Context, m nn.Module, args []nn.Value, kwargs map[string]nn.Value) (nn.Value, error) {
	target, err := t.resolveModule(m)
	if err != nil {
		return nil, err
	}

	// If the innermost dispatch frame is already redirecting this exact
	// instance, its handler is re-invoking the module it is processing:
	// run the real forward, unrecorded, instead of recursing.
	if f := frameFrom(ctx); f != nil && f.module == m && f.redirected {
		return nn.Invoke(ctx, m, args, kwargs)
	}

	f := &dispatchFrame{module: m}
	ctx = withFrame(ctx, f)
	f.redirected = true
	return t.CallModule(ctx, m, target, args, kwargs)
}

// defaultCallModule emits a call-composite node for atomic modules without
// running them, and runs composite modules for real so their nested
// invocations are themselves intercepted.
func (t *Tracer) defaultCallModule(ctx context.Context, m nn.Module, target string, args []nn.Value, kwargs map[string]nn.Value) (nn.Value, error) {
	if !t.Policy.IsLeaf(target, m) {
		return nn.Invoke(ctx, m, args, kwargs)
	}
	ctxlog.FromContext(ctx).Debug("trace: recording atomic call", "target", target)
	return t.emit(graph.CallComposite, target, args, kwargs)
}

// resolveModule locates m by identity among the root's named sub-modules.
func (t *Tracer) resolveModule(m nn.Module) (string, error) {
	if !t.tracing {
		return "", fmt.Errorf("no trace in progress")
	}
	for _, nm := range nn.NamedModules(t.root) {
		if nm.Module == m {
			return nm.Name, nil
		}
	}
	return "", &UnregisteredComponentError{Module: fmt.Sprintf("%T", m)}
}

// emit normalizes the arguments, inserts a node, and wraps it in a fresh
// proxy.
func (t *Tracer) emit(op graph.OpKind, target string, args []nn.Value, kwargs map[string]nn.Value) (*Proxy, error) {
	if !t.tracing {
		return nil, fmt.Errorf("no trace in progress; proxies must not outlive their trace")
	}
	nargs, nkwargs, err := t.normalizeAll(args, kwargs)
	if err != nil {
		return nil, err
	}
	node := t.graph.Insert(op, target, nargs, nkwargs)
	return &Proxy{node: node, tr: t}, nil
}

// EmitCallFunction records a call-function node for a free operation applied
// to at least one symbolic value and returns a proxy for its result. The ops
// package is the primary caller.
func (t *Tracer) EmitCallFunction(name string, args []nn.Value, kwargs map[string]nn.Value) (*Proxy, error) {
	return t.emit(graph.CallFunction, name, args, kwargs)
}

// dispatchFrame is the per-call token the interceptor threads through the
// context to detect re-entrant dispatch of the same module instance.
type dispatchFrame struct {
	module     nn.Module
	redirected bool
}

type frameKey struct{}

func withFrame(ctx context.Context, f *dispatchFrame) context.Context {
	return context.WithValue(ctx, frameKey{}, f)
}

// frameFrom returns the innermost enclosing dispatch frame, if any.
func frameFrom(ctx context.Context) *dispatchFrame {
	f, _ := ctx.Value(frameKey{}).(*dispatchFrame)
	return f
}
