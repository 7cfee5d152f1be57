package dat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionOrderingByConstructionIdentityNotName(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	noop := func(Allocator, *Universe, []Value) Value { return nil }
	f1 := NewFunction(a, u, "same", noop)
	f2 := NewFunction(a, u, "same", noop)

	assert.NotEqual(t, 0, Compare(f1, f2), "two distinct Functions never compare equal even with the same name")
	assert.Equal(t, -1, Compare(f1, f2), "orders by construction order")
}

func TestFunctionCall(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	double := NewFunction(a, u, "double", func(fa Allocator, fu *Universe, args []Value) Value {
		return NewInt(fa, fu, int64(args[0].(*Int).Value())*2)
	})
	result := double.Call(a, u, []Value{NewInt(a, u, 21)})
	assert.Equal(t, int32(42), result.(*Int).Value())
}
