package dat

// NativeFn is the Go-level implementation backing a Function: it
// receives the evaluator's allocator/universe handle and the call's
// argument values, and returns a result value. When a Generic
// dispatches to it, Generic.Call has already checked arity; when the
// evaluator calls a Function directly, args arrive unchecked and the
// NativeFn itself is responsible for arity (closures check it while
// binding their formals).
type NativeFn func(a Allocator, u *Universe, args []Value) Value

// Function is an opaque callable: either a native primitive binding
// (NativeFn set, Captured nil) or the closure produced by evaluating a
// `closure` AST node (NativeFn set to the evaluator's generic closure
// trampoline, Captured holding whatever state that trampoline needs —
// package eval defines the concrete captured-state type it stores
// here as a Value so dat need not know about it).
//
// Every Function carries a fixed-identity ordering token (its
// Header's identity id, since ClassFunction is registered identified)
// so that two distinct Function values never compare equal and order
// deterministically by construction order.
type Function struct {
	Header
	name     string // display name, empty if anonymous
	impl     NativeFn
	captured Value // nil for a plain native Function
}

func (v *Function) Name() string    { return v.name }
func (v *Function) Captured() Value { return v.captured }

// Call invokes the function's native implementation with args.
func (v *Function) Call(a Allocator, u *Universe, args []Value) Value {
	return v.impl(a, u, args)
}

// NewFunction allocates a native Function. name may be empty.
func NewFunction(a Allocator, u *Universe, name string, impl NativeFn) *Function {
	v := &Function{name: name, impl: impl}
	return allocAs[*Function](a, u.classFunction, v)
}

// NewClosure allocates a Function that carries captured evaluator
// state (an environment frame reference, opaquely typed from dat's
// point of view). Used exclusively by package eval when evaluating a
// `closure` AST node.
func NewClosure(a Allocator, u *Universe, name string, impl NativeFn, captured Value) *Function {
	v := &Function{name: name, impl: impl, captured: captured}
	return allocAs[*Function](a, u.classFunction, v)
}

func (v *Function) GCMark(mark func(Value)) {
	if v.captured != nil {
		mark(v.captured)
	}
}

func (v *Function) DebugString() string {
	if v.name != "" {
		return "Function:" + v.name
	}
	return "Function#" + itoa(v.Header.id)
}

// CompareSameClass orders Functions by their fixed-identity ordering
// token, never by name or behavior.
func (v *Function) CompareSameClass(other Value) int {
	o := other.(*Function)
	switch {
	case v.Header.id < o.Header.id:
		return -1
	case v.Header.id > o.Header.id:
		return 1
	default:
		return 0
	}
}
