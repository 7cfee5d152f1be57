package dat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intVals(a Allocator, u *Universe, ns ...int64) []Value {
	out := make([]Value, len(ns))
	for i, n := range ns {
		out[i] = NewInt(a, u, n)
	}
	return out
}

func TestListPutNthSizeInvariants(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	l := NewList(a, u, intVals(a, u, 1, 2, 3)...)
	v := NewInt(a, u, 99)

	put := l.PutNth(a, u, 1, v)
	nth, ok := put.Nth(1)
	require.True(t, ok)
	assert.Equal(t, 0, Compare(v, nth), "nth(putNth(l,i,v), i) == v")
	assert.Equal(t, l.Size(), put.Size(), "size(putNth(l,i,v)) == size(l)")

	ins := l.InsNth(a, u, 1, v)
	assert.Equal(t, l.Size()+1, ins.Size(), "size(insNth(l,i,v)) == size(l)+1")

	del := l.DelNth(a, u, 1)
	assert.Equal(t, l.Size()-1, del.Size(), "size(delNth(l,i)) == size(l)-1")
}

func TestListNthOutOfRangeIsVoid(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}
	l := NewList(a, u, intVals(a, u, 1, 2)...)

	_, ok := l.Nth(-1)
	assert.False(t, ok)
	_, ok = l.Nth(2)
	assert.False(t, ok)
}

func TestListCat(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	x := NewList(a, u, intVals(a, u, 1, 2)...)
	y := NewList(a, u, intVals(a, u, 3, 4)...)
	cat := x.Cat(a, u, y)

	require.Equal(t, 4, cat.Size())
	for i, want := range []int64{1, 2, 3, 4} {
		v, _ := cat.Nth(i)
		assert.Equal(t, want, int64(v.(*Int).Value()))
	}
}

func TestListEmptyIsSingleton(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	e1 := NewList(a, u)
	e2 := NewList(a, u)
	assert.Same(t, e1, e2)
}

func TestListOrderingShorterPrefixWins(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	short := NewList(a, u, intVals(a, u, 1, 2)...)
	long := NewList(a, u, intVals(a, u, 1, 2, 3)...)
	assert.Equal(t, -1, Compare(short, long))

	a2 := NewList(a, u, intVals(a, u, 1, 2)...)
	b2 := NewList(a, u, intVals(a, u, 1, 3)...)
	assert.Equal(t, -1, Compare(a2, b2))
}

func TestListSliceRequiresOrderedBounds(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}
	l := NewList(a, u, intVals(a, u, 1, 2, 3)...)

	require.Panics(t, func() { l.Slice(a, u, 2, 1) })
	require.Panics(t, func() { l.Slice(a, u, 0, 4) })

	s := l.Slice(a, u, 1, 3)
	assert.Equal(t, 2, s.Size())
}
