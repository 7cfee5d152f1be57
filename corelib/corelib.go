// Package corelib binds the standard library of generics the
// evaluator's AST relies on: structural operations over the built-in
// containers (get, nth, get_size, cat, del, put, fetch, store,
// debugString, totalOrder, totalEq, nextValue, collect, gcMark) and
// arithmetic/comparison over Int. Binding sites are expressed as
// (class, generic-name, native-fn) triples loaded once at init and
// installed into an environment Env the evaluator then runs code
// against.
package corelib

import (
	"github.com/samizdat0/sam0/dat"
	"github.com/samizdat0/sam0/dispatch"
	"github.com/samizdat0/sam0/eval"
	"github.com/samizdat0/sam0/frame"
)

// Install binds every core generic into env under its name, using a
// to allocate and frames to root the values fetch returns.
func Install(a dat.Allocator, u *dat.Universe, frames *frame.Stack, env *eval.Env) {
	installArithmetic(a, u, env)
	installComparison(a, u, env)
	installStructural(a, u, frames, env)
}

// bindName interns name and binds it in env to val, wrapped in an
// immutable (Result-mode) Box — core library bindings are not
// rebindable by surface code.
func bindName(a dat.Allocator, u *dat.Universe, env *eval.Env, name string, val dat.Value) {
	box := dat.NewBox(a, u, dat.BoxResult, val)
	env.Bind(u.Intern(name), box)
}

func boolInt(a dat.Allocator, u *dat.Universe, b bool) *dat.Int {
	if b {
		return dat.NewInt(a, u, 1)
	}
	return dat.NewInt(a, u, 0)
}

func installArithmetic(a dat.Allocator, u *dat.Universe, env *eval.Env) {
	type binOp struct {
		name string
		fn   func(x, y int32) int32
	}
	ops := []binOp{
		{"+", func(x, y int32) int32 { return x + y }},
		{"-", func(x, y int32) int32 { return x - y }},
		{"*", func(x, y int32) int32 { return x * y }},
		{"/", func(x, y int32) int32 {
			if y == 0 {
				raiseDivByZero()
			}
			return x / y
		}},
		{"%", func(x, y int32) int32 {
			if y == 0 {
				raiseModByZero()
			}
			return x % y
		}},
	}
	for _, op := range ops {
		op := op
		fn := dat.NewFunction(a, u, op.name, func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			x, y := mustInt(args[0]), mustInt(args[1])
			return dat.NewInt(fa, fu, int64(op.fn(x.Value(), y.Value())))
		})
		bindName(a, u, env, op.name, fn)
	}
}

func mustInt(v dat.Value) *dat.Int {
	n, ok := v.(*dat.Int)
	if !ok {
		raiseNotInt()
	}
	return n
}

func installComparison(a dat.Allocator, u *dat.Universe, env *eval.Env) {
	type cmpOp struct {
		name string
		ok   func(c int) bool
	}
	ops := []cmpOp{
		{"<", func(c int) bool { return c < 0 }},
		{">", func(c int) bool { return c > 0 }},
		{"<=", func(c int) bool { return c <= 0 }},
		{">=", func(c int) bool { return c >= 0 }},
		{"==", func(c int) bool { return c == 0 }},
		{"!=", func(c int) bool { return c != 0 }},
	}
	for _, op := range ops {
		op := op
		fn := dat.NewFunction(a, u, op.name, func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			return boolInt(fa, fu, op.ok(dat.Compare(args[0], args[1])))
		})
		bindName(a, u, env, op.name, fn)
	}
}

// classBindings pairs a core class name with the native function the
// generic should dispatch to for that class.
type classBinding struct {
	class string
	fn    dat.NativeFn
}

// bindGeneric builds a Generic, installs one binding per class (looked
// up by name in the registry, where every core class was already
// registered by dat.NewUniverse), optionally installs a default,
// seals it, and binds it into env — the (class, generic-name,
// native-fn) triple form every core-library binding takes.
func bindGeneric(a dat.Allocator, u *dat.Universe, env *eval.Env, name string, minArgs, maxArgs int, sameClass bool, binds []classBinding, def dat.NativeFn) {
	g := dispatch.New(a, u, name, minArgs, maxArgs, sameClass)
	for _, b := range binds {
		class := u.Classes().Lookup(b.class)
		if class == nil {
			raiseNoMethod(name + ": unknown class " + b.class)
			continue
		}
		g.Bind(class, dat.NewFunction(a, u, name, b.fn))
	}
	if def != nil {
		g.BindDefault(dat.NewFunction(a, u, name, def))
	}
	g.Seal()
	bindName(a, u, env, name, g)
}

func installStructural(a dat.Allocator, u *dat.Universe, frames *frame.Stack, env *eval.Env) {
	bindGeneric(a, u, env, "get_size", 1, 1, false, []classBinding{
		{"List", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			return dat.NewInt(fa, fu, int64(args[0].(*dat.List).Size()))
		}},
		{"Map", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			return dat.NewInt(fa, fu, int64(args[0].(*dat.Map).Size()))
		}},
		{"SymbolTable", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			return dat.NewInt(fa, fu, int64(args[0].(*dat.SymbolTable).Size()))
		}},
		{"String", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			return dat.NewInt(fa, fu, int64(args[0].(*dat.String).Size()))
		}},
	}, nil)

	bindGeneric(a, u, env, "nth", 2, 2, false, []classBinding{
		{"List", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			e, ok := args[0].(*dat.List).Nth(int(mustInt(args[1]).Value()))
			if !ok {
				return nil
			}
			return e
		}},
		{"Map", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			m, ok := args[0].(*dat.Map).Nth(fa, fu, int(mustInt(args[1]).Value()))
			if !ok {
				return nil
			}
			return m
		}},
		{"String", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			r, ok := args[0].(*dat.String).Nth(int(mustInt(args[1]).Value()))
			if !ok {
				return nil
			}
			return dat.NewStringFromCodepoints(fa, fu, []rune{r})
		}},
	}, nil)

	bindGeneric(a, u, env, "get", 2, 2, false, []classBinding{
		{"Map", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			val, ok := args[0].(*dat.Map).Get(fu, args[1])
			if !ok {
				return nil
			}
			return val
		}},
		{"SymbolTable", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			sym, ok := args[1].(*dat.Symbol)
			if !ok {
				raiseNotSymbol()
			}
			val, ok := args[0].(*dat.SymbolTable).Get(sym)
			if !ok {
				return nil
			}
			return val
		}},
	}, nil)

	bindGeneric(a, u, env, "put", 3, 3, false, []classBinding{
		{"Map", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			return args[0].(*dat.Map).Put(fa, fu, args[1], args[2])
		}},
		{"SymbolTable", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			sym, ok := args[1].(*dat.Symbol)
			if !ok {
				raiseNotSymbol()
			}
			return args[0].(*dat.SymbolTable).Put(fa, fu, sym, args[2])
		}},
		{"List", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			return args[0].(*dat.List).PutNth(fa, fu, int(mustInt(args[1]).Value()), args[2])
		}},
	}, nil)

	bindGeneric(a, u, env, "del", 2, 2, false, []classBinding{
		{"Map", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			return args[0].(*dat.Map).Del(fa, fu, args[1])
		}},
		{"SymbolTable", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			sym, ok := args[1].(*dat.Symbol)
			if !ok {
				raiseNotSymbol()
			}
			return args[0].(*dat.SymbolTable).Del(fa, fu, sym)
		}},
		{"List", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			return args[0].(*dat.List).DelNth(fa, fu, int(mustInt(args[1]).Value()))
		}},
	}, nil)

	bindGeneric(a, u, env, "cat", 2, -1, true, []classBinding{
		{"List", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			result := args[0].(*dat.List)
			for _, o := range args[1:] {
				result = result.Cat(fa, fu, o.(*dat.List))
			}
			return result
		}},
		{"String", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			result := args[0].(*dat.String)
			for _, o := range args[1:] {
				result = result.Cat(fa, fu, o.(*dat.String))
			}
			return result
		}},
		{"Map", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			others := make([]*dat.Map, len(args)-1)
			for i, o := range args[1:] {
				others[i] = o.(*dat.Map)
			}
			return args[0].(*dat.Map).Cat(fa, fu, others...)
		}},
		{"SymbolTable", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			others := make([]*dat.SymbolTable, len(args)-1)
			for i, o := range args[1:] {
				others[i] = o.(*dat.SymbolTable)
			}
			return args[0].(*dat.SymbolTable).Cat(fa, fu, others...)
		}},
	}, nil)

	bindGeneric(a, u, env, "fetch", 1, 1, false, []classBinding{
		{"Box", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			v, _ := args[0].(*dat.Box).Fetch(frames)
			return v
		}},
	}, nil)

	bindGeneric(a, u, env, "store", 1, 2, false, []classBinding{
		{"Box", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			var val dat.Value
			if len(args) > 1 {
				val = args[1]
			}
			args[0].(*dat.Box).Store(val)
			return val
		}},
	}, nil)

	// debugString, totalOrder, and totalEq apply uniformly to every
	// class, so they are wired entirely through a default binding
	// rather than one entry per class.
	bindGeneric(a, u, env, "debugString", 1, 1, false, nil,
		func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			return dat.NewStringFromUTF8(fa, fu, []byte(args[0].DebugString()))
		})

	bindGeneric(a, u, env, "totalOrder", 2, 2, false, nil,
		func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			return dat.NewInt(fa, fu, int64(dat.Compare(args[0], args[1])))
		})

	bindGeneric(a, u, env, "totalEq", 2, 2, false, nil,
		func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			return boolInt(fa, fu, dat.Compare(args[0], args[1]) == 0)
		})

	// nextValue is the generator protocol's pull step: it yields the
	// next generated value, storing the generator state for the
	// remaining elements into box, or returns void (nil) once the
	// source is exhausted. A persistent container is its own remaining-
	// generator state, so "the rest" is simply the container with its
	// first element removed.
	bindGeneric(a, u, env, "nextValue", 2, 2, false, []classBinding{
		{"List", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			list := args[0].(*dat.List)
			box := mustBox(args[1])
			if list.Size() == 0 {
				return nil
			}
			box.Store(list.Slice(fa, fu, 1, list.Size()))
			v, _ := list.Nth(0)
			return v
		}},
		{"Map", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			m := args[0].(*dat.Map)
			box := mustBox(args[1])
			if m.Size() == 0 {
				return nil
			}
			one, _ := m.Nth(fa, fu, 0)
			box.Store(m.Del(fa, fu, one.MappingKey()))
			return one
		}},
		{"SymbolTable", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			st := args[0].(*dat.SymbolTable)
			box := mustBox(args[1])
			if st.Size() == 0 {
				return nil
			}
			one, _ := st.Nth(fa, fu, 0)
			box.Store(st.Del(fa, fu, one.MappingKey()))
			return one
		}},
	}, nil)

	// collect drains a source into a List of its generated values. A
	// List is already such a list; Map and SymbolTable collect into the
	// one-mapping-per-entry form their own Nth already establishes.
	bindGeneric(a, u, env, "collect", 1, 1, false, []classBinding{
		{"List", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			return args[0]
		}},
		{"Map", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			m := args[0].(*dat.Map)
			out := make([]dat.Value, m.Size())
			for i := range out {
				out[i], _ = m.Nth(fa, fu, i)
			}
			return dat.NewList(fa, fu, out...)
		}},
		{"SymbolTable", func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			st := args[0].(*dat.SymbolTable)
			out := make([]dat.Value, st.Size())
			for i := range out {
				out[i], _ = st.Nth(fa, fu, i)
			}
			return dat.NewList(fa, fu, out...)
		}},
	}, nil)

	// gcMark applies uniformly to every class. The collector itself
	// calls Value.GCMark directly (native Go interface dispatch, since every
	// value's concrete type is already known in-process — see
	// gc/collector.go), so this binding exposes the identical traversal
	// to surface/evaluator code as a List of the value's direct
	// children, rather than duplicating the collector's mark-bit
	// bookkeeping through the generic-dispatch path.
	bindGeneric(a, u, env, "gcMark", 1, 1, false, nil,
		func(fa dat.Allocator, fu *dat.Universe, args []dat.Value) dat.Value {
			var children []dat.Value
			args[0].GCMark(func(v dat.Value) { children = append(children, v) })
			return dat.NewList(fa, fu, children...)
		})
}

func mustBox(v dat.Value) *dat.Box {
	box, ok := v.(*dat.Box)
	if !ok {
		raiseNotABox()
	}
	return box
}
