package dat

import "sort"

// SymbolTable is a persistent mapping from Symbol keys to arbitrary
// values, functionally equivalent to a Map restricted to Symbol keys
// but using symbol dispatch indices for fast average-case lookup.
type SymbolTable struct {
	Header
	pairs     []Mapping     // Key is always *Symbol, sorted by Compare
	fastIndex map[int32]int // interned symbol index -> position in pairs
}

func (v *SymbolTable) Size() int { return len(v.pairs) }

func newSymbolTable(a Allocator, u *Universe, pairs []Mapping) *SymbolTable {
	if len(pairs) == 0 {
		return u.emptySymbolTable
	}
	st := &SymbolTable{pairs: pairs, fastIndex: buildFastIndex(pairs)}
	return allocAs[*SymbolTable](a, u.classSymbolTable, st)
}

func buildFastIndex(pairs []Mapping) map[int32]int {
	idx := make(map[int32]int, len(pairs))
	for i, p := range pairs {
		if sym := p.Key.(*Symbol); sym.Interned() {
			idx[sym.Index()] = i
		}
	}
	return idx
}

func sortDedupMappings(pairs []Mapping) []Mapping {
	sort.SliceStable(pairs, func(i, j int) bool {
		return Compare(pairs[i].Key, pairs[j].Key) < 0
	})
	out := pairs[:0:0]
	for i := 0; i < len(pairs); i++ {
		if i+1 < len(pairs) && Compare(pairs[i].Key, pairs[i+1].Key) == 0 {
			continue
		}
		out = append(out, pairs[i])
	}
	return out
}

// NewSymbolTable builds a SymbolTable from an even-length, alternating
// key/value array. Odd length is an arity error; a non-Symbol key is
// a type error.
func NewSymbolTable(a Allocator, u *Universe, kvs []Value) *SymbolTable {
	if len(kvs)%2 != 0 {
		raiseArity("SymbolTable construction requires an even-length key/value array")
	}
	pairs := make([]Mapping, 0, len(kvs)/2)
	for i := 0; i < len(kvs); i += 2 {
		sym, ok := kvs[i].(*Symbol)
		if !ok {
			raiseType("SymbolTable keys must be symbols")
		}
		pairs = append(pairs, Mapping{Key: sym, Val: kvs[i+1]})
	}
	return newSymbolTable(a, u, sortDedupMappings(pairs))
}

// Get returns the value bound to sym, or (nil, false) if absent.
// Interned keys resolve via the dense per-instance index in O(1);
// unlisted keys fall back to binary search on the total order.
func (v *SymbolTable) Get(sym *Symbol) (Value, bool) {
	if sym.Interned() {
		if pos, ok := v.fastIndex[sym.Index()]; ok {
			return v.pairs[pos].Val, true
		}
		return nil, false
	}
	idx := sort.Search(len(v.pairs), func(i int) bool {
		return Compare(v.pairs[i].Key, sym) >= 0
	})
	if idx < len(v.pairs) && Compare(v.pairs[idx].Key, sym) == 0 {
		return v.pairs[idx].Val, true
	}
	return nil, false
}

// Put returns a new SymbolTable with sym bound to val.
func (v *SymbolTable) Put(a Allocator, u *Universe, sym *Symbol, val Value) *SymbolTable {
	out := make([]Mapping, len(v.pairs))
	copy(out, v.pairs)
	idx := sort.Search(len(out), func(i int) bool {
		return Compare(out[i].Key, sym) >= 0
	})
	if idx < len(out) && Compare(out[idx].Key, sym) == 0 {
		out[idx].Val = val
		return newSymbolTable(a, u, out)
	}
	grown := make([]Mapping, len(out)+1)
	copy(grown, out[:idx])
	grown[idx] = Mapping{Key: sym, Val: val}
	copy(grown[idx+1:], out[idx:])
	return newSymbolTable(a, u, grown)
}

// Del returns a new SymbolTable with sym's binding removed.
func (v *SymbolTable) Del(a Allocator, u *Universe, sym *Symbol) *SymbolTable {
	idx := sort.Search(len(v.pairs), func(i int) bool {
		return Compare(v.pairs[i].Key, sym) >= 0
	})
	if idx >= len(v.pairs) || Compare(v.pairs[idx].Key, sym) != 0 {
		return v
	}
	out := make([]Mapping, len(v.pairs)-1)
	copy(out, v.pairs[:idx])
	copy(out[idx:], v.pairs[idx+1:])
	return newSymbolTable(a, u, out)
}

// Nth returns the i-th mapping (in sorted key order) as a one-mapping
// SymbolTable, mirroring Map.Nth.
func (v *SymbolTable) Nth(a Allocator, u *Universe, i int) (*SymbolTable, bool) {
	if i < 0 || i >= len(v.pairs) {
		return nil, false
	}
	return newSymbolTable(a, u, []Mapping{v.pairs[i]}), true
}

// MappingKey and MappingValue are defined only for a one-mapping
// SymbolTable, mirroring Map.MappingKey/MappingValue.
func (v *SymbolTable) MappingKey() *Symbol {
	if len(v.pairs) != 1 {
		raiseType("mappingKey requires a one-mapping SymbolTable")
	}
	return v.pairs[0].Key.(*Symbol)
}

func (v *SymbolTable) MappingValue() Value {
	if len(v.pairs) != 1 {
		raiseType("mappingValue requires a one-mapping SymbolTable")
	}
	return v.pairs[0].Val
}

// Cat concatenates symbol tables left to right; later bindings win.
func (v *SymbolTable) Cat(a Allocator, u *Universe, others ...*SymbolTable) *SymbolTable {
	all := append([]Mapping{}, v.pairs...)
	for _, o := range others {
		all = append(all, o.pairs...)
	}
	return newSymbolTable(a, u, sortDedupMappings(all))
}

// ToMap converts the table to an equivalent Map, as long as no two
// unlisted symbol keys in the table share a name — that conversion is
// forbidden, since it would conflate distinct identities under a
// name-based view.
func (v *SymbolTable) ToMap(a Allocator, u *Universe) *Map {
	seen := make(map[string]int)
	for _, p := range v.pairs {
		sym := p.Key.(*Symbol)
		if sym.Interned() {
			continue
		}
		seen[sym.Name()]++
		if seen[sym.Name()] > 1 {
			raiseInvariant("SymbolTable->Map conversion forbidden: unlisted symbols share a name")
		}
	}
	mappings := make([]Mapping, len(v.pairs))
	copy(mappings, v.pairs)
	return NewMap(a, u, mappings)
}

// Each invokes fn for every key/value pair, in sorted key order. Used
// by the module façade to seed an evaluator environment from a plain
// SymbolTable without exposing the table's internal representation.
func (v *SymbolTable) Each(fn func(key *Symbol, val Value)) {
	for _, p := range v.pairs {
		fn(p.Key.(*Symbol), p.Val)
	}
}

func (v *SymbolTable) GCMark(mark func(Value)) {
	for _, p := range v.pairs {
		mark(p.Key)
		mark(p.Val)
	}
}

func (v *SymbolTable) DebugString() string {
	s := "{"
	for i, p := range v.pairs {
		if i > 0 {
			s += ", "
		}
		s += p.Key.DebugString() + ": " + p.Val.DebugString()
	}
	return s + "}"
}

func (v *SymbolTable) CompareSameClass(other Value) int {
	o := other.(*SymbolTable)
	n := len(v.pairs)
	if len(o.pairs) < n {
		n = len(o.pairs)
	}
	for i := 0; i < n; i++ {
		if c := Compare(v.pairs[i].Key, o.pairs[i].Key); c != 0 {
			return c
		}
	}
	if len(v.pairs) != len(o.pairs) {
		if len(v.pairs) < len(o.pairs) {
			return -1
		}
		return 1
	}
	for i := 0; i < len(v.pairs); i++ {
		if c := Compare(v.pairs[i].Val, o.pairs[i].Val); c != 0 {
			return c
		}
	}
	return 0
}
