package dat

// MaxClasses bounds the number of classes the registry can hold. It
// sizes every per-generic dispatch table (package dispatch).
const MaxClasses = 2500

// Class is the runtime metadata object naming a class of values: its
// name, optional parent, whether instances carry an identity id, and
// the dense sequence number used to index every generic's dispatch
// table. Class is itself a value in the model: its own
// Header.Class() returns the
// registry's bootstrap "Class" class, which in turn is its own class.
type Class struct {
	Header
	name       *Symbol
	parent     *Class
	identified bool
	seq        int32
}

// Name returns the class's name symbol.
func (c *Class) Name() *Symbol { return c.name }

// Parent returns the class's declared parent, or nil for a root
// class.
func (c *Class) Parent() *Class { return c.parent }

// Identified reports whether instances of this class carry a
// meaningful identity id in their header.
func (c *Class) Identified() bool { return c.identified }

// SeqNum returns the class's dense, process-lifetime-stable sequence
// number, used to index generic dispatch tables.
func (c *Class) SeqNum() int32 { return c.seq }

func (c *Class) GCMark(mark func(Value)) {
	if c.parent != nil {
		mark(c.parent)
	}
	mark(c.name)
}

func (c *Class) DebugString() string { return "Class:" + c.name.Name() }

// ClassRegistry assigns and owns every Class in the process, keyed by
// name for the core classes (idempotent creation) and tracking a
// dense seq-number -> *Class table for dispatch.
//
// Not safe for concurrent use: the registry is process-wide but
// single-writer, mutated only during init and bind.
type ClassRegistry struct {
	byName map[string]*Class
	bySeq  []*Class
	// classClass is the bootstrap metaclass: every Class's own class.
	classClass *Class
}

// newClassRegistry creates an empty registry and bootstraps the
// self-referential "Class" metaclass from a raw (not-yet-classed)
// name symbol. The Universe constructor calls this once at process
// init, before the Symbol class itself exists.
func newClassRegistry(nameClass *Symbol) *ClassRegistry {
	r := &ClassRegistry{
		byName: make(map[string]*Class, 64),
		bySeq:  make([]*Class, 0, 64),
	}
	cc := &Class{name: nameClass, identified: false}
	cc.seq = r.register(cc)
	cc.Header.magic = Magic
	cc.Header.class = cc // the Class class is its own class
	r.classClass = cc
	r.byName["Class"] = cc
	return r
}

func (r *ClassRegistry) register(c *Class) int32 {
	if len(r.bySeq) >= MaxClasses {
		raiseStructural("class registry overflow: exceeded MaxClasses")
	}
	seq := int32(len(r.bySeq))
	r.bySeq = append(r.bySeq, c)
	return seq
}

// Create returns the class named by name, creating it (idempotently)
// if it does not yet exist. Used for both core classes and
// DerivedData classes, which share one creation discipline (see
// DESIGN.md: DerivedData is modeled as a Record tagged by a
// registry-created Class, not a separate Go type).
func (r *ClassRegistry) Create(name *Symbol, parent *Class, identified bool) *Class {
	if existing, ok := r.byName[name.Name()]; ok {
		return existing
	}
	c := &Class{name: name, parent: parent, identified: identified}
	c.seq = r.register(c)
	c.Header.magic = Magic
	c.Header.class = r.classClass
	r.byName[name.Name()] = c
	return c
}

// Lookup returns the class registered under name, or nil.
func (r *ClassRegistry) Lookup(name string) *Class {
	return r.byName[name]
}

// BySeq returns the class with the given sequence number. Panics with
// a range error if seq is out of bounds — dispatch tables are sized
// to MaxClasses precisely so this never happens for a live class.
func (r *ClassRegistry) BySeq(seq int32) *Class {
	if seq < 0 || int(seq) >= len(r.bySeq) {
		raiseRange("class sequence number out of range")
	}
	return r.bySeq[seq]
}

// Len returns the number of registered classes.
func (r *ClassRegistry) Len() int { return len(r.bySeq) }

// GCMark marks every registered class (and transitively their parent
// chain and name symbols) as a root set. The registry is immortalized
// at module init.
func (r *ClassRegistry) GCMark(mark func(Value)) {
	for _, c := range r.bySeq {
		mark(c)
	}
}
