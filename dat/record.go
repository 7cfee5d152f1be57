package dat

// Record is a tagged value: an interned tag Symbol plus optional
// SymbolTable data. It is the AST node representation the evaluator
// walks (package eval) and, doubling as DerivedData, the general
// tagged-variant value user code can construct at runtime (see
// DESIGN.md for why this implementation does not give DerivedData a
// separate Go type).
type Record struct {
	Header
	tag  *Symbol
	data *SymbolTable // nil means "no data"
}

func (v *Record) Tag() *Symbol { return v.tag }

// Data returns the record's data table, or (nil, false) if it has
// none.
func (v *Record) Data() (*SymbolTable, bool) {
	if v.data == nil {
		return nil, false
	}
	return v.data, true
}

// Get is a convenience for reading a single key out of the record's
// data table, used pervasively by the evaluator to pull `name`,
// `value`, `statements`, etc. out of AST nodes.
func (v *Record) Get(u *Universe, key string) (Value, bool) {
	if v.data == nil {
		return nil, false
	}
	return v.data.Get(u.symbols.Intern(key))
}

// NewRecord builds a Record tagged by tag with the given data table
// (nil for no data).
func NewRecord(a Allocator, u *Universe, tag *Symbol, data *SymbolTable) *Record {
	if !tag.Interned() {
		raiseType("Record tag must be an interned Symbol")
	}
	v := &Record{tag: tag, data: data}
	return allocAs[*Record](a, u.classRecord, v)
}

// NewDerivedData builds a Record tagged by a runtime-registered
// DerivedData class's name, the idiom used whenever surface code
// defines its own algebraic data type.
func NewDerivedData(a Allocator, u *Universe, className *Symbol, data *SymbolTable) *Record {
	u.classes.Create(className, nil, false)
	return NewRecord(a, u, className, data)
}

func (v *Record) GCMark(mark func(Value)) {
	mark(v.tag)
	if v.data != nil {
		mark(v.data)
	}
}

func (v *Record) DebugString() string {
	s := "@" + v.tag.Name()
	if v.data != nil {
		s += v.data.DebugString()
	}
	return s
}

// CompareSameClass orders Records by tag then data.
func (v *Record) CompareSameClass(other Value) int {
	o := other.(*Record)
	if c := Compare(v.tag, o.tag); c != 0 {
		return c
	}
	switch {
	case v.data == nil && o.data == nil:
		return 0
	case v.data == nil:
		return -1
	case o.data == nil:
		return 1
	default:
		return Compare(v.data, o.data)
	}
}
