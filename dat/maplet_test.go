package dat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strVal(a Allocator, u *Universe, s string) *String {
	return NewStringFromCodepoints(a, u, []rune(s))
}

func TestMapPutGetDelInvariants(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	m := NewMap1(a, u, strVal(a, u, "a"), NewInt(a, u, 1))
	put := m.Put(a, u, strVal(a, u, "b"), NewInt(a, u, 2))

	got, ok := put.Get(u, strVal(a, u, "b"))
	require.True(t, ok)
	assert.Equal(t, 0, Compare(got, NewInt(a, u, 2)), "get(put(m,k,v), k) == v")

	del := put.Del(a, u, strVal(a, u, "b"))
	_, ok = del.Get(u, strVal(a, u, "b"))
	assert.False(t, ok, "get(del(m,k), k) == void")
}

func TestMapConstructionKeepsLastOfDuplicateKeys(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	mappings := []Mapping{
		{Key: strVal(a, u, "a"), Val: NewInt(a, u, 1)},
		{Key: strVal(a, u, "b"), Val: NewInt(a, u, 2)},
		{Key: strVal(a, u, "a"), Val: NewInt(a, u, 3)},
	}
	m := NewMap(a, u, mappings)

	require.Equal(t, 2, m.Size())
	av, ok := m.Get(u, strVal(a, u, "a"))
	require.True(t, ok)
	assert.Equal(t, int32(3), av.(*Int).Value())
	bv, ok := m.Get(u, strVal(a, u, "b"))
	require.True(t, ok)
	assert.Equal(t, int32(2), bv.(*Int).Value())
}

func TestMapKeysAreStrictlyAscending(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	m := NewMap(a, u, []Mapping{
		{Key: strVal(a, u, "c"), Val: NewInt(a, u, 3)},
		{Key: strVal(a, u, "a"), Val: NewInt(a, u, 1)},
		{Key: strVal(a, u, "b"), Val: NewInt(a, u, 2)},
	})

	for i := 1; i < m.Size(); i++ {
		prev, _ := m.Nth(a, u, i-1)
		cur, _ := m.Nth(a, u, i)
		assert.Equal(t, -1, Compare(prev.MappingKey(), cur.MappingKey()))
	}
}

func TestMapLookupCacheHitsAndMisses(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	k := strVal(a, u, "k")
	m := NewMap1(a, u, k, NewInt(a, u, 7))

	v1, ok := m.Get(u, k)
	require.True(t, ok)
	v2, ok := m.Get(u, k) // second lookup should hit the pointer-pair cache
	require.True(t, ok)
	assert.Equal(t, 0, Compare(v1, v2))

	_, ok = m.Get(u, strVal(a, u, "missing"))
	assert.False(t, ok)
}

func TestMapCacheClearedAcrossGC(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	k := strVal(a, u, "k")
	m := NewMap1(a, u, k, NewInt(a, u, 7))
	_, _ = m.Get(u, k) // populate the cache

	u.ClearMapCache()
	v, ok := m.Get(u, k)
	require.True(t, ok, "clearing the cache must not lose correctness on the next lookup")
	assert.Equal(t, int32(7), v.(*Int).Value())
}

func TestMapCat(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	m1 := NewMap1(a, u, strVal(a, u, "a"), NewInt(a, u, 1))
	m2 := NewMap1(a, u, strVal(a, u, "a"), NewInt(a, u, 2))
	cat := m1.Cat(a, u, m2)

	require.Equal(t, 1, cat.Size())
	v, _ := cat.Get(u, strVal(a, u, "a"))
	assert.Equal(t, int32(2), v.(*Int).Value(), "rightmost map wins on key collision")
}

func TestMapEmptyIsSingleton(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	e1 := NewMap(a, u, nil)
	e2 := NewMap(a, u, nil)
	assert.Same(t, e1, e2)
}

func TestMapOrderingByKeysThenValues(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	m1 := NewMap1(a, u, strVal(a, u, "a"), NewInt(a, u, 1))
	m2 := NewMap1(a, u, strVal(a, u, "a"), NewInt(a, u, 2))
	assert.Equal(t, -1, Compare(m1, m2), "equal keys, ties broken by value sequence")

	short := NewMap1(a, u, strVal(a, u, "a"), NewInt(a, u, 1))
	long := m1.Put(a, u, strVal(a, u, "b"), NewInt(a, u, 1))
	assert.Equal(t, -1, Compare(short, long))
}
