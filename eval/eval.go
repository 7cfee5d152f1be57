package eval

import (
	"github.com/samizdat0/sam0/dat"
	"github.com/samizdat0/sam0/diag"
	"github.com/samizdat0/sam0/dispatch"
	"github.com/samizdat0/sam0/frame"
)

// Evaluator bundles the three collaborators every evaluation step
// needs: the allocator (heap), the universe (classes/symbols/caches),
// and the frame stack intermediates are rooted on. Native functions
// constructed by this package (closures, exit functions) close over
// an *Evaluator in their Go closure rather than threading it through
// dat.NativeFn's signature, since dat must not depend on eval.
//
// Giblet is the sidecar call-name stack kept alongside the frame
// stack: ev.call pushes the called Function/Generic's display name
// before invoking it and pops it again on a clean return, so a fatal
// diagnostic raised deep in a call chain is printed with the chain of
// enclosing call names that led to it.
type Evaluator struct {
	A      dat.Allocator
	U      *dat.Universe
	Frames *frame.Stack
	Giblet *diag.Giblet
}

// New builds an Evaluator over the given collaborators, with a fresh
// giblet stack.
func New(a dat.Allocator, u *dat.Universe, frames *frame.Stack) *Evaluator {
	return &Evaluator{A: a, U: u, Frames: frames, Giblet: diag.NewGiblet()}
}

// nonlocalJump is panicked by an exit function to unwind straight to
// its owning Env, discarding intermediate evaluations. It is a
// distinct type from *diag.Error so
// diag.Recover's façade-boundary recovery never catches it by
// accident; a jump that escapes every owning call frame (a logic bug
// in the evaluator, since every jump's target must be an ancestor
// Env) is deliberately left to crash the process rather than silently
// swallowed.
type nonlocalJump struct {
	target *Env
	value  dat.Value
}

// Eval walks node (expected to be a *dat.Record whose tag names the
// AST node kind) against env, dispatching on the tag. Returns the
// produced value, or nil for "void".
func (ev *Evaluator) Eval(env *Env, node dat.Value) dat.Value {
	if node == nil {
		return nil
	}
	rec, ok := node.(*dat.Record)
	if !ok {
		raiseNotARecord()
	}
	switch rec.Tag().Name() {
	case "literal":
		v, _ := rec.Get(ev.U, "value")
		return v

	case "varRef":
		sym := ev.mustSymbolField(rec, "name")
		box, ok := env.Lookup(sym)
		if !ok {
			raiseUnbound(sym.Name())
		}
		v, _ := box.Fetch(ev.Frames)
		return v

	case "varDef", "varDefMutable":
		sym := ev.mustSymbolField(rec, "name")
		valNode, _ := rec.Get(ev.U, "value")
		val := ev.Eval(env, valNode)
		mode := dat.BoxPromise
		if rec.Tag().Name() == "varDefMutable" {
			mode = dat.BoxCell
		}
		box := dat.NewBox(ev.A, ev.U, mode, val)
		if !env.Bind(sym, box) {
			raiseDuplicateDef(sym.Name())
		}
		return val

	case "fn":
		sym := ev.mustSymbolField(rec, "name")
		closureNode, _ := rec.Get(ev.U, "closure")
		box := dat.NewBox(ev.A, ev.U, dat.BoxPromise, nil)
		if !env.Bind(sym, box) {
			raiseDuplicateDef(sym.Name())
		}
		fn := ev.Eval(env, closureNode)
		box.Store(fn)
		return fn

	case "store":
		sym := ev.mustSymbolField(rec, "name")
		box, ok := env.Lookup(sym)
		if !ok {
			raiseUnbound(sym.Name())
		}
		valNode, _ := rec.Get(ev.U, "value")
		val := ev.Eval(env, valNode)
		box.Store(val)
		return val

	case "fetch":
		exprNode, _ := rec.Get(ev.U, "expr")
		boxVal := ev.Eval(env, exprNode)
		box, ok := boxVal.(*dat.Box)
		if !ok {
			raiseFetchNonBox()
		}
		v, _ := box.Fetch(ev.Frames)
		return v

	case "call":
		targetNode, _ := rec.Get(ev.U, "target")
		target := ev.Eval(env, targetNode)
		args := ev.evalArgList(env, rec, "args")
		return ev.call(target, args)

	case "apply":
		targetNode, _ := rec.Get(ev.U, "target")
		target := ev.Eval(env, targetNode)
		argsExprNode, _ := rec.Get(ev.U, "args")
		argsVal := ev.Eval(env, argsExprNode)
		list, ok := argsVal.(*dat.List)
		if !ok {
			raiseApplyNonList()
		}
		args := make([]dat.Value, list.Size())
		for i := range args {
			args[i], _ = list.Nth(i)
		}
		return ev.call(target, args)

	case "closure":
		return ev.evalClosure(env, rec)

	case "return", "yield":
		valNode, hasVal := rec.Get(ev.U, "value")
		var val dat.Value
		if hasVal {
			val = ev.Eval(env, valNode)
		}
		env.SetPending(val)
		return val

	case "nonlocalExit":
		fnNode, _ := rec.Get(ev.U, "fn")
		fnVal := ev.Eval(env, fnNode)
		var args []dat.Value
		if valNode, ok := rec.Get(ev.U, "value"); ok {
			args = []dat.Value{ev.Eval(env, valNode)}
		}
		return ev.call(fnVal, args)

	case "noYield":
		raiseNoYield()
		return nil

	case "maybe":
		exprNode, _ := rec.Get(ev.U, "expr")
		val := ev.Eval(env, exprNode)
		if val == nil {
			return dat.NewList(ev.A, ev.U)
		}
		return dat.NewList(ev.A, ev.U, val)

	default:
		raiseUnknownTag(rec.Tag().Name())
		return nil
	}
}

// ExecStatements evaluates stmts in order under env, implementing the
// block-body contract shared by closures and top-level program
// evaluation: the last statement's value is the implicit result,
// unless an earlier statement set env's pending-return slot (an
// explicit return/yield or a nonlocal exit jump unwinding back to
// env), in which case remaining statements are skipped and the
// pending value wins.
func (ev *Evaluator) ExecStatements(env *Env, stmts *dat.List) dat.Value {
	var last dat.Value
	for i := 0; i < stmts.Size(); i++ {
		stmt, _ := stmts.Nth(i)
		last = ev.Eval(env, stmt)
		if v, pending := env.Pending(); pending {
			env.ClearPending()
			return v
		}
	}
	return last
}

// callName returns the display name ev.call pushes onto the giblet
// stack before invoking target, falling back to a placeholder for
// anonymous callables.
func callName(target dat.Value) string {
	switch fn := target.(type) {
	case *dat.Function:
		if fn.Name() != "" {
			return fn.Name()
		}
		return "<anonymous>"
	case *dispatch.Generic:
		return fn.Name()
	default:
		return "<call>"
	}
}

func (ev *Evaluator) call(target dat.Value, args []dat.Value) (result dat.Value) {
	ev.Giblet.Push(callName(target))
	defer func() {
		if r := recover(); r != nil {
			// Leave the frame name on the giblet stack when a fatal
			// diagnostic is in flight, so the module façade prints the
			// full call chain once it reaches the outermost recover;
			// any other panic (e.g. a nonlocal-exit jump passing
			// through on its way to an ancestor frame) is ordinary
			// control flow and pops normally.
			if _, fatal := r.(*diag.Error); !fatal {
				ev.Giblet.Pop()
			}
			panic(r)
		}
		ev.Giblet.Pop()
	}()

	switch fn := target.(type) {
	case *dat.Function:
		return fn.Call(ev.A, ev.U, args)
	case *dispatch.Generic:
		return fn.Call(ev.A, ev.U, args)
	default:
		raiseNotCallable()
		return nil
	}
}

func (ev *Evaluator) evalArgList(env *Env, rec *dat.Record, key string) []dat.Value {
	node, ok := rec.Get(ev.U, key)
	if !ok {
		return nil
	}
	list, ok := node.(*dat.List)
	if !ok {
		raiseApplyNonList()
	}
	args := make([]dat.Value, list.Size())
	for i := range args {
		args[i] = ev.Eval(env, mustElem(list, i))
	}
	return args
}

func mustElem(list *dat.List, i int) dat.Value {
	v, _ := list.Nth(i)
	return v
}

func (ev *Evaluator) mustSymbolField(rec *dat.Record, key string) *dat.Symbol {
	v, ok := rec.Get(ev.U, key)
	if !ok {
		raiseMissingField(key)
	}
	sym, ok := v.(*dat.Symbol)
	if !ok {
		raiseFieldNotSymbol(key)
	}
	return sym
}
