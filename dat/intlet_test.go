package dat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntSmallRangeIsInterned(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	tests := []struct {
		name string
		n    int64
	}{
		{"zero", 0},
		{"low bound", SmallIntLow},
		{"high bound", SmallIntHigh},
		{"negative small", -42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v1 := NewInt(a, u, tt.n)
			v2 := NewInt(a, u, tt.n)
			assert.Same(t, v1, v2, "small Ints in the cached range must be pointer-equal")
			assert.Equal(t, int32(tt.n), v1.Value())
		})
	}
}

func TestNewIntOutsideRangeAllocatesFresh(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	v1 := NewInt(a, u, SmallIntHigh+1)
	v2 := NewInt(a, u, SmallIntHigh+1)
	assert.NotSame(t, v1, v2, "Ints outside the cached range are distinct allocations")
	assert.Equal(t, 0, Compare(v1, v2), "but still compare equal by value")
}

func TestNewIntRejectsOutOfWindowMagnitude(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	require.Panics(t, func() { NewInt(a, u, int64(IntMax)+1) })
	require.Panics(t, func() { NewInt(a, u, int64(IntMin)-1) })
}

func TestIntOrdering(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	lo := NewInt(a, u, 1)
	hi := NewInt(a, u, 2)
	assert.Equal(t, -1, Compare(lo, hi))
	assert.Equal(t, 1, Compare(hi, lo))
	assert.Equal(t, 0, Compare(lo, NewInt(a, u, 1)))
}

func TestIntBit(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	v := NewInt(a, u, 5) // 0b101
	assert.Equal(t, 1, v.Bit(0))
	assert.Equal(t, 0, v.Bit(1))
	assert.Equal(t, 1, v.Bit(2))
	assert.Equal(t, 0, v.Bit(40), "sign-extends to 0 beyond size for non-negative values")

	neg := NewInt(a, u, -1)
	assert.Equal(t, 1, neg.Bit(40), "sign-extends to 1 beyond size for negative values")
}

func TestIntBitSize(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	tests := []struct {
		n    int64
		want int
	}{
		{0, 1},
		{1, 2},
		{255, 9},
		{-1, 1},
		{-2, 2},
		{256, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewInt(a, u, tt.n).BitSize(), "bit size of %d", tt.n)
	}
}
