package dat

// Magic is the constant stamped into every value header. Any
// dereference of a value whose header lacks this tag is a fatal
// structural error, catching stray and dangling pointers early.
const Magic uint32 = 0x5a30564c // "Z0VL"

// Header is the uniform prefix every heap value carries: a magic tag,
// a pointer to the value's Class, a GC mark bit, and an optional
// identity id for classes where ordering or equality depends on
// construction order rather than content (Uniqlet, unlisted Symbol,
// Function, Box, Generic). Class values are stamped directly by the
// registry and carry no id.
//
// Embed Header as the first field of a concrete type; its pointer
// receiver methods are then promoted, satisfying Value.
type Header struct {
	magic uint32
	class *Class
	mark  bool
	id    int64
}

// Hdr returns h itself; it exists so that Header satisfies Value by
// promotion into every embedding type. It is named Hdr rather than
// Header because an anonymous Header field would otherwise shadow a
// method of the same name in the embedding type's method set.
func (h *Header) Hdr() *Header { return h }

// Class returns the value's class. Panics with a structural error if
// the header was never initialized by an Allocator (magic unset).
func (h *Header) Class() *Class {
	if h.magic != Magic {
		raiseBadMagic()
	}
	return h.class
}

// Valid reports whether the header carries the live magic tag.
func (h *Header) Valid() bool { return h.magic == Magic }

// Mark reports the current GC mark bit.
func (h *Header) Mark() bool { return h.mark }

// SetMark sets the GC mark bit. Called only by package gc.
func (h *Header) SetMark(v bool) { h.mark = v }

// ID returns the header's identity id (0 if the class does not use
// one).
func (h *Header) ID() int64 { return h.id }

// Invalidate scrubs the magic tag, so any later dereference of the
// value through Class fails the magic check. Called by the heap's
// sweep phase on every freed object.
func (h *Header) Invalidate() {
	h.magic = 0
	h.class = nil
}

// Init stamps h as live, owned by class, assigning a fresh identity
// id when class.Identified() and none has been assigned yet. It is
// exported for Allocator implementations outside package dat (package
// heap); inside dat, immortalAllocator calls it as well, while the
// class registry and interned-symbol bootstrap set these fields
// directly.
func (h *Header) Init(class *Class) {
	h.magic = Magic
	h.class = class
	if class.Identified() && h.id == 0 {
		h.id = nextID()
	}
}

// idCounter hands out monotonically increasing identity ids for
// identified classes (Uniqlet, unlisted Symbol, Function, Box, Generic). It
// is process-wide and single-writer, consistent with the core's
// single-threaded execution model.
var idCounter int64

func nextID() int64 {
	idCounter++
	return idCounter
}

// Value is implemented by every heap-resident runtime value.
type Value interface {
	Hdr() *Header
	// GCMark reports every outgoing value reference to mark, so the
	// collector can recurse into it. Built-in leaf classes (Int,
	// interned Symbol, Uniqlet) have no children and implement this
	// as a no-op.
	GCMark(mark func(Value))
	// DebugString renders a short human-readable form, used by
	// diagnostics and by the "debugString" core generic.
	DebugString() string
}
