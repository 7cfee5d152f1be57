// Package eval implements the tree-walking evaluator: it walks
// Record-shaped AST nodes against a chain of execution contexts,
// dispatching on each node's tag symbol, with closures, nonlocal
// exits, and boxed variable bindings.
package eval

import "github.com/samizdat0/sam0/dat"

// Env is a single execution context: a chain of lexical frames each
// holding a Symbol -> Box bindings table and an optional pending
// nonlocal-return slot. Unlike the
// persistent containers in package dat, Env is the one structure the
// evaluator genuinely mutates in place — new bindings are added to it
// as statements execute, and a closure capturing it observes later
// additions the same way a closure over a real stack frame would.
//
// Env is itself a heap value (GCMark walks its bindings and parent)
// because execution contexts are part of the traced object graph: a
// closure's captured Env must stay reachable for as long as the
// Function that closes over it does.
type Env struct {
	dat.Header
	parent   *Env
	bindings map[*dat.Symbol]*dat.Box
	pending  bool
	pendingV dat.Value
}

// classEnv is registered once, lazily, the first time an Env is
// allocated in a given process — mirroring how DerivedData classes
// are created on first use (dat.NewDerivedData) rather than wired into
// Universe's fixed bootstrap set, since Env is an evaluator-level
// concept the value model itself has no notion of.
var classEnvName = "Env"

func classEnv(u *dat.Universe) *dat.Class {
	return u.Classes().Create(u.Intern(classEnvName), nil, true)
}

// NewEnv allocates a fresh Env chained to parent (nil for the
// outermost/module-level context).
func NewEnv(a dat.Allocator, u *dat.Universe, parent *Env) *Env {
	e := &Env{parent: parent, bindings: make(map[*dat.Symbol]*dat.Box)}
	v := a.Alloc(classEnv(u), e)
	return v.(*Env)
}

// Lookup walks e and its ancestors for sym's Box.
func (e *Env) Lookup(sym *dat.Symbol) (*dat.Box, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[sym]; ok {
			return b, true
		}
	}
	return nil, false
}

// Bind adds sym -> box to e's own bindings. Returns false if sym is
// already bound in this exact frame (the caller turns that into the
// "duplicate variable definition" fatal error).
func (e *Env) Bind(sym *dat.Symbol, box *dat.Box) bool {
	if _, exists := e.bindings[sym]; exists {
		return false
	}
	e.bindings[sym] = box
	return true
}

// SetPending records a nonlocal-return value on e and reports it to
// the statement-execution loop that owns e.
func (e *Env) SetPending(v dat.Value) { e.pending = true; e.pendingV = v }

// Pending reports whether a nonlocal return has been recorded on e,
// and its value.
func (e *Env) Pending() (dat.Value, bool) { return e.pendingV, e.pending }

// ClearPending resets e's pending-return slot, used once the owning
// call has consumed it.
func (e *Env) ClearPending() { e.pending = false; e.pendingV = nil }

// Snapshot flattens e and its ancestors into a single SymbolTable,
// innermost binding winning on name collision, omitting any binding
// currently void. Used by the module façade to hand the caller back a
// plain, inspectable view of "corelib + caller bindings" after Bind.
func (e *Env) Snapshot(a dat.Allocator, u *dat.Universe, frames dat.Rooter) *dat.SymbolTable {
	seen := make(map[*dat.Symbol]bool)
	var kvs []dat.Value
	for cur := e; cur != nil; cur = cur.parent {
		for sym, box := range cur.bindings {
			if seen[sym] {
				continue
			}
			seen[sym] = true
			val, ok := box.Fetch(frames)
			if !ok {
				continue
			}
			kvs = append(kvs, sym, val)
		}
	}
	return dat.NewSymbolTable(a, u, kvs)
}

func (e *Env) GCMark(mark func(dat.Value)) {
	for _, b := range e.bindings {
		mark(b)
	}
	if e.pendingV != nil {
		mark(e.pendingV)
	}
	if e.parent != nil {
		mark(e.parent)
	}
}

func (e *Env) DebugString() string { return "Env" }
