// Package sam0 is the module façade: it wires the value model (dat),
// the managed heap (heap), the collector (gc), the frame stack
// (frame), generic dispatch (dispatch), the core library bindings
// (corelib), and the evaluator (eval) into a single runtime a caller
// can feed parsed code and an environment: (environment, code) in,
// optional value out.
package sam0

import (
	"github.com/samizdat0/sam0/corelib"
	"github.com/samizdat0/sam0/dat"
	"github.com/samizdat0/sam0/diag"
	"github.com/samizdat0/sam0/eval"
	"github.com/samizdat0/sam0/frame"
	"github.com/samizdat0/sam0/gc"
	"github.com/samizdat0/sam0/heap"
)

// Options configures a Runtime. The zero value is a reasonable
// default for production use; tests typically set GCThreshold low to
// force deterministic collections on a handful of allocations.
type Options struct {
	// GCThreshold overrides heap.DefaultThreshold. Zero keeps the
	// default.
	GCThreshold int
}

// Runtime bundles one process's worth of the core's process-wide
// state: the universe (class registry, interned symbols, caches), the
// frame stack, the managed heap, its collector, and the root
// environment the core library is bound into.
type Runtime struct {
	universe  *dat.Universe
	frames    *frame.Stack
	heap      *heap.Heap
	collector *gc.Collector
	evaluator *eval.Evaluator
	rootEnv   *eval.Env
}

// New constructs a Runtime with the core library already bound into
// its root environment, ready to accept caller bindings via Bind and
// run code via Eval.
func New(opts Options) *Runtime {
	u := dat.NewUniverse()
	frames := frame.NewStack()
	h := heap.New(frames)
	if opts.GCThreshold > 0 {
		h.SetThreshold(opts.GCThreshold)
	}
	collector := gc.New(h, frames, u)
	h.SetCollector(collector)

	ev := eval.New(h, u, frames)
	rootEnv := eval.NewEnv(h, u, nil)
	corelib.Install(h, u, frames, rootEnv)
	installPrimitiveStubs(h, u, rootEnv)

	return &Runtime{
		universe:  u,
		frames:    frames,
		heap:      h,
		collector: collector,
		evaluator: ev,
		rootEnv:   rootEnv,
	}
}

// Universe exposes the runtime's value-model universe, for callers
// that need to construct values directly (e.g. an external parser
// building literal nodes).
func (r *Runtime) Universe() *dat.Universe { return r.universe }

// Allocator exposes the runtime's heap as a dat.Allocator, for callers
// constructing values to feed into Eval.
func (r *Runtime) Allocator() dat.Allocator { return r.heap }

// Bind merges env's bindings into the runtime's root environment (so
// they persist across subsequent Eval calls, the way importing a
// module's exports would) and returns a snapshot SymbolTable of the
// resulting combined bindings — "corelib + caller bindings" — for the
// caller's inspection.
func (r *Runtime) Bind(env *dat.SymbolTable) *dat.SymbolTable {
	if env != nil {
		env.Each(func(sym *dat.Symbol, val dat.Value) {
			box := dat.NewBox(r.heap, r.universe, dat.BoxCell, val)
			if !r.rootEnv.Bind(sym, box) {
				raiseAlreadyBound(sym.Name())
			}
		})
	}
	return r.rootEnv.Snapshot(r.heap, r.universe, r.frames)
}

// Eval runs code (expected to be a Record AST node, or a Record whose
// tag is a statement-sequence wrapper — package eval dispatches on
// whatever tag it finds) against a fresh environment chained under
// the root environment and seeded with env's bindings, returning the
// produced value or nil for void. Any fatal diagnostic raised during
// evaluation is recovered here and returned as a normal error.
func (r *Runtime) Eval(env *dat.SymbolTable, code *dat.Record) (result dat.Value, err error) {
	saved := r.frames.Start()
	// Registered before Recover so it runs after it (LIFO): the frame
	// region is popped even when evaluation unwinds with a fatal
	// diagnostic, not just on the clean path.
	defer func() { r.frames.Return(saved, result) }()
	defer diag.Recover(r.evaluator.Giblet, &err)

	callEnv := eval.NewEnv(r.heap, r.universe, r.rootEnv)
	if env != nil {
		env.Each(func(sym *dat.Symbol, val dat.Value) {
			callEnv.Bind(sym, dat.NewBox(r.heap, r.universe, dat.BoxCell, val))
		})
	}
	result = r.evaluator.Eval(callEnv, code)
	return result, nil
}

// CollectGarbage forces an immediate mark-sweep cycle.
func (r *Runtime) CollectGarbage() {
	r.collector.Collect()
}

// installPrimitiveStubs binds the primitive names the core cannot
// express — I/O, parse-binary-module, and process-exit — to Functions
// that raise a clear diagnostic if actually invoked. Bind rejects
// these names like any other name already in the root environment; a
// caller wanting real behavior passes its own binding for the name in
// the env given to Eval, which shadows the stub. The core only needs
// their presence as callable symbols.
func installPrimitiveStubs(a dat.Allocator, u *dat.Universe, env *eval.Env) {
	stub := func(name string) *dat.Function {
		return dat.NewFunction(a, u, name, func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			raisePrimitiveUnbound(name)
			return nil
		})
	}
	for _, name := range []string{"readFile", "writeFile", "parseBinaryModule", "processExit"} {
		env.Bind(u.Intern(name), dat.NewBox(a, u, dat.BoxResult, stub(name)))
	}
}
