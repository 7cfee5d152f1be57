// Package dispatch implements generic-function dispatch: callables
// whose body is a dense array from class sequence number to Function,
// selected by the runtime class of the call's first argument. It is
// the mechanism every method call in the core goes through — there is
// no separate virtual-dispatch path.
package dispatch

import "github.com/samizdat0/sam0/dat"

// Generic is a callable whose implementation varies by the class of
// its first argument. A Generic starts unsealed (open to new bindings)
// and may be sealed, after which bind panics.
type Generic struct {
	dat.Header
	name      string
	minArgs   int
	maxArgs   int             // -1 means unbounded
	sameClass bool            // require every argument's class to match args[0]'s
	table     []*dat.Function // dense, indexed by Class.SeqNum(); sized to dat.MaxClasses
	defaultFn *dat.Function
	sealed    bool
}

// New allocates a fresh, unsealed Generic. minArgs/maxArgs bound the
// call's argument count (maxArgs -1 for unbounded); sameClass, if
// true, requires every argument to share the first argument's class.
func New(a dat.Allocator, u *dat.Universe, name string, minArgs, maxArgs int, sameClass bool) *Generic {
	g := &Generic{
		name:      name,
		minArgs:   minArgs,
		maxArgs:   maxArgs,
		sameClass: sameClass,
		table:     make([]*dat.Function, dat.MaxClasses),
	}
	v := a.Alloc(u.ClassGeneric(), g)
	return v.(*Generic)
}

func (g *Generic) Name() string { return g.name }
func (g *Generic) Sealed() bool { return g.sealed }

// Bind installs fn as class's implementation. Fatal (invariant error)
// if the generic is sealed or class already has a non-null entry —
// both are forbidden rather than silently overwriting.
func (g *Generic) Bind(class *dat.Class, fn *dat.Function) {
	if g.sealed {
		raiseBindOnSealed(g.name)
	}
	seq := class.SeqNum()
	if g.table[seq] != nil {
		raiseDuplicateBind(g.name, class.Name().Name())
	}
	g.table[seq] = fn
}

// BindDefault installs fn as the generic's fallback, used when no
// class-specific entry exists. Also forbidden once sealed.
func (g *Generic) BindDefault(fn *dat.Function) {
	if g.sealed {
		raiseBindOnSealed(g.name)
	}
	g.defaultFn = fn
}

// Seal freezes the generic: no further Bind or BindDefault calls are
// permitted.
func (g *Generic) Seal() { g.sealed = true }

// Call checks arity and (if sameClass) that every argument shares the
// first argument's class, looks up the dispatch table by the first
// argument's class sequence number, falls back to the default, and
// invokes the resolved Function. Any of these failing is fatal.
func (g *Generic) Call(a dat.Allocator, u *dat.Universe, args []dat.Value) dat.Value {
	if len(args) < g.minArgs || (g.maxArgs >= 0 && len(args) > g.maxArgs) {
		raiseArity(g.name, len(args))
	}
	if len(args) == 0 {
		raiseArity(g.name, 0)
	}
	first := args[0].Hdr().Class()
	if g.sameClass {
		for i := 1; i < len(args); i++ {
			if args[i].Hdr().Class() != first {
				raiseSameClass(g.name)
			}
		}
	}
	fn := g.table[first.SeqNum()]
	if fn == nil {
		fn = g.defaultFn
	}
	if fn == nil {
		raiseNoMethod(g.name, first.Name().Name())
	}
	return fn.Call(a, u, args)
}

func (g *Generic) GCMark(mark func(dat.Value)) {
	for _, fn := range g.table {
		if fn != nil {
			mark(fn)
		}
	}
	if g.defaultFn != nil {
		mark(g.defaultFn)
	}
}

func (g *Generic) DebugString() string { return "Generic:" + g.name }
