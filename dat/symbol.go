package dat

// MaxSymbols bounds the interned-symbol table; interning past it is a
// fatal structural error.
const MaxSymbols = 500

// Symbol is a name. An interned Symbol is uniqued by text and carries
// a dense, process-lifetime-stable index used as a dispatch-table key
// elsewhere; two interned symbols with the same name are the
// identical *Symbol. An unlisted Symbol has its own identity even
// when its name collides with another symbol.
type Symbol struct {
	Header
	name     string
	interned bool
	index    int32 // valid iff interned
}

func (s *Symbol) Name() string   { return s.name }
func (s *Symbol) Interned() bool { return s.interned }

// Index returns the symbol's dense dispatch index. Valid only for
// interned symbols; panics with a type error otherwise.
func (s *Symbol) Index() int32 {
	if !s.interned {
		raiseType("Index called on an unlisted symbol")
	}
	return s.index
}

// CompareSameClass orders Symbols: interned before unlisted globally;
// within each group, by name; unlisted symbols with equal names then
// order by their per-instance identity id (two
// interned symbols with equal names are always pointer-identical, so
// that branch never returns 0 for distinct values).
func (s *Symbol) CompareSameClass(other Value) int {
	o := other.(*Symbol)
	if s.interned != o.interned {
		if s.interned {
			return -1
		}
		return 1
	}
	if c := compareStrings(s.name, o.name); c != 0 {
		return c
	}
	if !s.interned {
		switch {
		case s.ID() < o.ID():
			return -1
		case s.ID() > o.ID():
			return 1
		}
	}
	return 0
}

func (s *Symbol) GCMark(func(Value)) {} // leaf value
func (s *Symbol) DebugString() string {
	if s.interned {
		return s.name
	}
	return s.name + "#unlisted"
}

// symbolTable is the process-wide interned-symbol table, immortalized
// at module init. It also mints unlisted symbols,
// which are never interned but pass through the same identity
// counter so their per-instance ordering id is stable.
type symbolTable struct {
	byName map[string]*Symbol
	byIdx  []*Symbol
	class  *Class // patched in once ClassSymbol exists
}

func newInternTable() *symbolTable {
	return &symbolTable{
		byName: make(map[string]*Symbol, MaxSymbols),
		byIdx:  make([]*Symbol, 0, MaxSymbols),
	}
}

// internRaw interns name without requiring the Symbol class to exist
// yet; used only during Universe bootstrap. Every symbol produced
// this way is patched with its real class once ClassSymbol is
// registered (see patchClass).
func (t *symbolTable) internRaw(name string) *Symbol {
	if s, ok := t.byName[name]; ok {
		return s
	}
	if len(t.byIdx) >= MaxSymbols {
		raiseStructural("interned symbol table overflow")
	}
	s := &Symbol{name: name, interned: true, index: int32(len(t.byIdx))}
	s.Header.magic = Magic
	t.byIdx = append(t.byIdx, s)
	t.byName[name] = s
	return s
}

// patchClass stamps every symbol interned so far (and remembered for
// future interns) with cls as its class. Called once, right after
// ClassSymbol is registered during bootstrap.
func (t *symbolTable) patchClass(cls *Class) {
	t.class = cls
	for _, s := range t.byIdx {
		s.Header.class = cls
	}
}

// Intern returns the interned symbol named name, creating it if
// necessary. Post-bootstrap entry point used by the evaluator, parser
// output consumers, and corelib.
func (t *symbolTable) Intern(name string) *Symbol {
	if s, ok := t.byName[name]; ok {
		return s
	}
	s := t.internRaw(name)
	s.Header.class = t.class
	return s
}

// NewUnlisted mints a fresh unlisted symbol named name. Every call
// returns a distinct *Symbol even when name repeats. Unlike interned
// symbols, unlisted symbols are ordinary heap values: they are rooted
// on the current frame and subject to collection like any other
// value.
func (t *symbolTable) NewUnlisted(a Allocator, name string) *Symbol {
	s := &Symbol{name: name, interned: false}
	return allocAs[*Symbol](a, t.class, s)
}

func (t *symbolTable) GCMark(mark func(Value)) {
	for _, s := range t.byIdx {
		mark(s)
	}
}
