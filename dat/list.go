package dat

// List is a persistent, finite ordered sequence of arbitrary values.
// Every mutator returns a new List backed by a flat copy of the
// elements. Structural sharing would also be correct, but the flat
// copy keeps every list independent and the mutators trivial.
type List struct {
	Header
	elems []Value
}

func (v *List) Size() int { return len(v.elems) }

// Nth returns the element at i, or (nil, false) if i is out of
// [0,size).
func (v *List) Nth(i int) (Value, bool) {
	if i < 0 || i >= len(v.elems) {
		return nil, false
	}
	return v.elems[i], true
}

func newList(a Allocator, u *Universe, elems []Value) *List {
	if len(elems) == 0 {
		return u.emptyList
	}
	v := &List{elems: elems}
	return allocAs[*List](a, u.classList, v)
}

// NewList builds a List holding a copy of elems.
func NewList(a Allocator, u *Universe, elems ...Value) *List {
	out := make([]Value, len(elems))
	copy(out, elems)
	return newList(a, u, out)
}

// Cat returns the logical concatenation of a and b.
func (v *List) Cat(a Allocator, u *Universe, other *List) *List {
	out := make([]Value, len(v.elems)+len(other.elems))
	copy(out, v.elems)
	copy(out[len(v.elems):], other.elems)
	return newList(a, u, out)
}

// InsNth inserts val before index i, producing a list one element
// longer. Requires 0 <= i <= size.
func (v *List) InsNth(a Allocator, u *Universe, i int, val Value) *List {
	if i < 0 || i > len(v.elems) {
		raiseRange("List.InsNth index out of range")
	}
	out := make([]Value, len(v.elems)+1)
	copy(out, v.elems[:i])
	out[i] = val
	copy(out[i+1:], v.elems[i:])
	return newList(a, u, out)
}

// DelNth removes the element at index i, producing a list one element
// shorter. Requires 0 <= i < size.
func (v *List) DelNth(a Allocator, u *Universe, i int) *List {
	if i < 0 || i >= len(v.elems) {
		raiseRange("List.DelNth index out of range")
	}
	out := make([]Value, len(v.elems)-1)
	copy(out, v.elems[:i])
	copy(out[i:], v.elems[i+1:])
	return newList(a, u, out)
}

// PutNth replaces the element at index i, producing a same-length
// list. Requires 0 <= i < size.
func (v *List) PutNth(a Allocator, u *Universe, i int, val Value) *List {
	if i < 0 || i >= len(v.elems) {
		raiseRange("List.PutNth index out of range")
	}
	out := make([]Value, len(v.elems))
	copy(out, v.elems)
	out[i] = val
	return newList(a, u, out)
}

// Slice returns the elements in [s,e). Requires 0 <= s <= e <= size.
func (v *List) Slice(a Allocator, u *Universe, s, e int) *List {
	if s < 0 || e < s || e > len(v.elems) {
		raiseRange("List.Slice indices out of range")
	}
	out := make([]Value, e-s)
	copy(out, v.elems[s:e])
	return newList(a, u, out)
}

func (v *List) GCMark(mark func(Value)) {
	for _, e := range v.elems {
		mark(e)
	}
}

func (v *List) DebugString() string {
	s := "["
	for i, e := range v.elems {
		if i > 0 {
			s += ", "
		}
		s += e.DebugString()
	}
	return s + "]"
}

// CompareSameClass orders two Lists lexicographically, shorter-prefix
// wins when elements compare equal up to the shorter length.
func (v *List) CompareSameClass(other Value) int {
	o := other.(*List)
	n := len(v.elems)
	if len(o.elems) < n {
		n = len(o.elems)
	}
	for i := 0; i < n; i++ {
		if c := Compare(v.elems[i], o.elems[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(v.elems) < len(o.elems):
		return -1
	case len(v.elems) > len(o.elems):
		return 1
	default:
		return 0
	}
}
