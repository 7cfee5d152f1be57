package dat

// Orderable is implemented by every value class that participates in
// the total order. CompareSameClass is only ever called
// with an other of the exact same concrete type as the receiver;
// Compare itself handles the cross-class and identity cases.
type Orderable interface {
	Value
	CompareSameClass(other Value) int
}

// Compare implements the total order over all values: identical
// pointers compare equal without inspecting contents; values of
// different classes order by their class names; values of the same
// class defer to that class's CompareSameClass.
//
// Every built-in value class except Box, Class and Generic implements
// Orderable (Box is deliberately excluded: box identity and content
// are orthogonal). Ordering two values of one of those classes is a
// type error.
func Compare(a, b Value) int {
	if sameIdentity(a, b) {
		return 0
	}
	ca, cb := a.Hdr().Class(), b.Hdr().Class()
	if ca != cb {
		return compareStrings(ca.Name().Name(), cb.Name().Name())
	}
	oa, ok := a.(Orderable)
	if !ok {
		raiseType("value's class does not support ordering")
	}
	return oa.CompareSameClass(b)
}

// sameIdentity reports whether a and b are the same Go value behind
// the Value interface: either the identical pointer, or (for the rare
// case of two differently-typed wrappers around the same header,
// which never occurs for well-formed values) the identical header.
func sameIdentity(a, b Value) bool {
	return a.Hdr() == b.Hdr()
}

func compareStrings(x, y string) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
