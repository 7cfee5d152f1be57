package dat

// Allocator is the seam between the value model and the managed heap
// (package heap). Every constructor that produces a heap-tracked value
// takes one, an accept-an-interface seam: the value model neither
// knows nor cares whether the implementation behind it is a
// mark-sweep heap, a pooled allocator, or (as in tests) a bare
// pass-through.
//
// Alloc must: stamp v's header with Magic and class, assign an
// identity id if class.identified, push v onto the current frame of
// the frame stack, and return v unchanged so constructors can chain
// it directly into their own return value.
type Allocator interface {
	Alloc(class *Class, v Value) Value
}

// allocAs is a package-level convenience that type-asserts the
// Allocator's return value back to the concrete type T, so
// constructors read as `return allocAs[*Int](a, u.classInt, v)` instead of
// repeating the assertion at every call site.
func allocAs[T Value](a Allocator, class *Class, v T) T {
	return a.Alloc(class, v).(T)
}
