package dat

import (
	"sort"
	"unsafe"
)

// Mapping is a single key/value pair, used both as Map's internal
// storage unit and as the one-mapping-Map representation Nth returns.
type Mapping struct {
	Key Value
	Val Value
}

// Map is a persistent, finite ordered mapping from arbitrary keys to
// arbitrary values, stored in key-sorted order under the total order
// of Compare.
type Map struct {
	Header
	pairs []Mapping
}

func (v *Map) Size() int { return len(v.pairs) }

func newMap(a Allocator, u *Universe, pairs []Mapping) *Map {
	if len(pairs) == 0 {
		return u.emptyMap
	}
	m := &Map{pairs: pairs}
	return allocAs[*Map](a, u.classMap, m)
}

// NewMap builds a Map from an array of mappings. The array is stably
// sorted by key and, within any run of equal keys, only the last
// survives — so NewMap doubles as the implementation of Cat's
// "rightmost wins" semantics when the caller simply appends arguments
// in order before calling it.
func NewMap(a Allocator, u *Universe, mappings []Mapping) *Map {
	if len(mappings) == 0 {
		return u.emptyMap
	}
	sorted := make([]Mapping, len(mappings))
	copy(sorted, mappings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(sorted[i].Key, sorted[j].Key) < 0
	})
	out := sorted[:0:0]
	for i := 0; i < len(sorted); i++ {
		if i+1 < len(sorted) && Compare(sorted[i].Key, sorted[i+1].Key) == 0 {
			continue // a later equal key follows; it wins
		}
		out = append(out, sorted[i])
	}
	return newMap(a, u, out)
}

// NewMap1 builds a single-mapping Map.
func NewMap1(a Allocator, u *Universe, key, val Value) *Map {
	return newMap(a, u, []Mapping{{Key: key, Val: val}})
}

// Get returns the value for k, or (nil, false) if absent. Binary
// search is O(log n); a cache hit on the exact (map, key) pointer pair
// bypasses it entirely.
func (v *Map) Get(u *Universe, k Value) (Value, bool) {
	if idx, ok := u.mapCache.get(v, k); ok {
		if idx < 0 {
			return nil, false
		}
		return v.pairs[idx].Val, true
	}
	idx := sort.Search(len(v.pairs), func(i int) bool {
		return Compare(v.pairs[i].Key, k) >= 0
	})
	if idx < len(v.pairs) && Compare(v.pairs[idx].Key, k) == 0 {
		u.mapCache.put(v, k, idx)
		return v.pairs[idx].Val, true
	}
	u.mapCache.put(v, k, -1)
	return nil, false
}

// Put returns a new Map with k bound to val (replacing any existing
// binding for k).
func (v *Map) Put(a Allocator, u *Universe, k, val Value) *Map {
	out := make([]Mapping, len(v.pairs))
	copy(out, v.pairs)
	idx := sort.Search(len(out), func(i int) bool {
		return Compare(out[i].Key, k) >= 0
	})
	if idx < len(out) && Compare(out[idx].Key, k) == 0 {
		out[idx].Val = val
		return newMap(a, u, out)
	}
	grown := make([]Mapping, len(out)+1)
	copy(grown, out[:idx])
	grown[idx] = Mapping{Key: k, Val: val}
	copy(grown[idx+1:], out[idx:])
	return newMap(a, u, grown)
}

// Del returns a new Map with k's binding removed, or v itself
// (well, an equal Map) if k was absent.
func (v *Map) Del(a Allocator, u *Universe, k Value) *Map {
	idx := sort.Search(len(v.pairs), func(i int) bool {
		return Compare(v.pairs[i].Key, k) >= 0
	})
	if idx >= len(v.pairs) || Compare(v.pairs[idx].Key, k) != 0 {
		return v
	}
	out := make([]Mapping, len(v.pairs)-1)
	copy(out, v.pairs[:idx])
	copy(out[idx:], v.pairs[idx+1:])
	return newMap(a, u, out)
}

// Cat concatenates maps left to right; keys from later maps win over
// earlier ones.
func (v *Map) Cat(a Allocator, u *Universe, others ...*Map) *Map {
	total := len(v.pairs)
	for _, m := range others {
		total += len(m.pairs)
	}
	all := make([]Mapping, 0, total)
	all = append(all, v.pairs...)
	for _, m := range others {
		all = append(all, m.pairs...)
	}
	return NewMap(a, u, all)
}

// Nth returns the i-th mapping (in sorted order) as a one-mapping Map.
func (v *Map) Nth(a Allocator, u *Universe, i int) (*Map, bool) {
	if i < 0 || i >= len(v.pairs) {
		return nil, false
	}
	return NewMap1(a, u, v.pairs[i].Key, v.pairs[i].Val), true
}

// MappingKey and MappingValue are defined only for a one-mapping Map.
func (v *Map) MappingKey() Value {
	if len(v.pairs) != 1 {
		raiseType("mappingKey requires a one-mapping Map")
	}
	return v.pairs[0].Key
}

func (v *Map) MappingValue() Value {
	if len(v.pairs) != 1 {
		raiseType("mappingValue requires a one-mapping Map")
	}
	return v.pairs[0].Val
}

// ToSymbolTable converts the map to an equivalent SymbolTable,
// provided every key is a Symbol (the SymbolTable/Map round-trip
// direction; see SymbolTable.ToMap for the forbidden case in the
// other direction).
func (v *Map) ToSymbolTable(a Allocator, u *Universe) *SymbolTable {
	pairs := make([]Mapping, len(v.pairs))
	for i, p := range v.pairs {
		if _, ok := p.Key.(*Symbol); !ok {
			raiseType("Map->SymbolTable conversion requires every key to be a Symbol")
		}
		pairs[i] = p
	}
	return newSymbolTable(a, u, pairs)
}

func (v *Map) GCMark(mark func(Value)) {
	for _, p := range v.pairs {
		mark(p.Key)
		mark(p.Val)
	}
}

func (v *Map) DebugString() string {
	s := "{"
	for i, p := range v.pairs {
		if i > 0 {
			s += ", "
		}
		s += p.Key.DebugString() + ": " + p.Val.DebugString()
	}
	return s + "}"
}

// CompareSameClass orders Maps by key-sequence lexicographic order,
// ties broken by value-sequence lexicographic order.
func (v *Map) CompareSameClass(other Value) int {
	o := other.(*Map)
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

// mapLookupCache is the process-wide, transient, pointer-keyed cache
// that remembers the last-seen index for an exact (map, key) pair.
// Its entries are non-owning (they do not keep values alive; package
// gc clears it at the start of every mark phase).
type mapLookupCache struct {
	entries map[uint64]cacheEntry
}

type cacheEntry struct {
	m   *Map
	k   Value
	idx int // -1 means "confirmed absent"
}

func newMapLookupCache() *mapLookupCache {
	return &mapLookupCache{entries: make(map[uint64]cacheEntry, 1024)}
}

func mapCacheHash(m *Map, k Value) uint64 {
	mp := uintptr(unsafe.Pointer(m))
	var kp uintptr
	if k != nil {
		kp = uintptr(unsafe.Pointer(k.Hdr()))
	}
	return uint64(mp ^ kp)
}

func (c *mapLookupCache) get(m *Map, k Value) (int, bool) {
	e, ok := c.entries[mapCacheHash(m, k)]
	if !ok || e.m != m || e.k != k {
		return 0, false
	}
	return e.idx, true
}

func (c *mapLookupCache) put(m *Map, k Value, idx int) {
	c.entries[mapCacheHash(m, k)] = cacheEntry{m: m, k: k, idx: idx}
}

// Clear empties the cache. Called by package gc at the start of every
// collection cycle.
func (c *mapLookupCache) Clear() {
	c.entries = make(map[uint64]cacheEntry, 1024)
}
