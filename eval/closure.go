package eval

import "github.com/samizdat0/sam0/dat"

// formalSpec is one parsed formal-parameter entry: a bound name and an
// optional repetition marker ('?', '*', or '+'; zero byte for a plain
// required parameter). Only the last formal in a closure's list may
// carry a marker — the common "varargs-last" shape; anywhere else the
// binding order would be ambiguous, so it raises a structural error.
type formalSpec struct {
	name   *dat.Symbol
	repeat byte
}

func parseFormals(u *dat.Universe, list *dat.List) []formalSpec {
	out := make([]formalSpec, list.Size())
	for i := range out {
		elem, _ := list.Nth(i)
		rec, ok := elem.(*dat.Record)
		if !ok {
			raiseBadFormal()
		}
		nameVal, ok := rec.Get(u, "name")
		if !ok {
			raiseBadFormal()
		}
		sym, ok := nameVal.(*dat.Symbol)
		if !ok {
			raiseBadFormal()
		}
		spec := formalSpec{name: sym}
		if repVal, ok := rec.Get(u, "repeat"); ok {
			s, ok := repVal.(*dat.String)
			if !ok || s.Size() != 1 {
				raiseBadFormal()
			}
			r, _ := s.Nth(0)
			spec.repeat = byte(r)
		}
		out[i] = spec
	}
	return out
}

// bindFormals binds args into callEnv per formals: a plain formal
// consumes one required argument; '?' binds a List of the next
// argument if there is one (zero or one element); '*' and '+' bind a
// List of every remaining argument (at least one element for '+').
func (ev *Evaluator) bindFormals(callEnv *Env, formals []formalSpec, args []dat.Value) {
	idx := 0
	for i, f := range formals {
		last := i == len(formals)-1
		switch f.repeat {
		case 0:
			if idx >= len(args) {
				raiseClosureArity()
			}
			box := dat.NewBox(ev.A, ev.U, dat.BoxCell, args[idx])
			callEnv.Bind(f.name, box)
			idx++
		case '?':
			if !last {
				raiseTrailingRepeatOnly()
			}
			var elems []dat.Value
			if idx < len(args) {
				elems = []dat.Value{args[idx]}
				idx++
			}
			callEnv.Bind(f.name, dat.NewBox(ev.A, ev.U, dat.BoxCell, dat.NewList(ev.A, ev.U, elems...)))
		case '+':
			if !last {
				raiseTrailingRepeatOnly()
			}
			if idx >= len(args) {
				raiseClosureArity()
			}
			rest := args[idx:]
			callEnv.Bind(f.name, dat.NewBox(ev.A, ev.U, dat.BoxCell, dat.NewList(ev.A, ev.U, rest...)))
			idx = len(args)
		case '*':
			if !last {
				raiseTrailingRepeatOnly()
			}
			rest := args[idx:]
			callEnv.Bind(f.name, dat.NewBox(ev.A, ev.U, dat.BoxCell, dat.NewList(ev.A, ev.U, rest...)))
			idx = len(args)
		default:
			raiseBadFormal()
		}
	}
	if idx != len(args) {
		raiseClosureArity()
	}
}

// evalClosure builds the Function a `closure` AST node denotes: it
// captures env, parses its formals and optional yield-def name, and
// returns a Function whose native implementation creates a fresh
// call Env on every invocation.
func (ev *Evaluator) evalClosure(env *Env, rec *dat.Record) dat.Value {
	formalsVal, _ := rec.Get(ev.U, "formals")
	var formals []formalSpec
	if formalsList, ok := formalsVal.(*dat.List); ok {
		formals = parseFormals(ev.U, formalsList)
	}

	var yieldDef *dat.Symbol
	if v, ok := rec.Get(ev.U, "yieldDef"); ok {
		if sym, ok := v.(*dat.Symbol); ok {
			yieldDef = sym
		}
	}

	stmtsVal, _ := rec.Get(ev.U, "statements")
	stmts, _ := stmtsVal.(*dat.List)
	if stmts == nil {
		stmts = dat.NewList(ev.A, ev.U)
	}

	name := ""
	if v, ok := rec.Get(ev.U, "name"); ok {
		if sym, ok := v.(*dat.Symbol); ok {
			name = sym.Name()
		}
	}

	capturedEnv := env
	impl := func(a dat.Allocator, u *dat.Universe, args []dat.Value) (result dat.Value) {
		callEnv := NewEnv(a, u, capturedEnv)
		ev.bindFormals(callEnv, formals, args)

		if yieldDef != nil {
			target := callEnv
			exitFn := dat.NewFunction(a, u, "", func(ea dat.Allocator, eu *dat.Universe, eargs []dat.Value) dat.Value {
				var v dat.Value
				if len(eargs) > 0 {
					v = eargs[0]
				}
				target.SetPending(v)
				panic(&nonlocalJump{target: target, value: v})
			})
			callEnv.Bind(yieldDef, dat.NewBox(a, u, dat.BoxPromise, exitFn))
		}

		saved := ev.Frames.Start()
		// Registered before the recover defer so it runs last (LIFO):
		// the call's frame region is popped even when that defer
		// re-panics a fatal diagnostic or a jump bound for an
		// ancestor frame.
		defer func() { ev.Frames.Return(saved, result) }()
		defer func() {
			if r := recover(); r != nil {
				nj, ok := r.(*nonlocalJump)
				if !ok || nj.target != callEnv {
					panic(r)
				}
				result = nj.value
			}
		}()
		return ev.ExecStatements(callEnv, stmts)
	}

	return dat.NewClosure(ev.A, ev.U, name, impl, capturedEnv)
}
