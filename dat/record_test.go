package dat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEqualityTagAndData(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	tag := u.Intern("literal")
	data := NewSymbolTable(a, u, []Value{u.Intern("value"), NewInt(a, u, 42)})

	r1 := NewRecord(a, u, tag, data)
	r2 := NewRecord(a, u, tag, data)
	assert.Equal(t, 0, Compare(r1, r2))

	noData := NewRecord(a, u, tag, nil)
	assert.NotEqual(t, 0, Compare(r1, noData))
}

func TestRecordGetField(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	data := NewSymbolTable(a, u, []Value{u.Intern("value"), NewInt(a, u, 42)})
	r := NewRecord(a, u, u.Intern("literal"), data)

	v, ok := r.Get(u, "value")
	require.True(t, ok)
	assert.Equal(t, int32(42), v.(*Int).Value())

	_, ok = r.Get(u, "missing")
	assert.False(t, ok)
}

func TestRecordRequiresInternedTag(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	unlisted := u.NewUnlistedSymbol(a, "literal")
	require.Panics(t, func() { NewRecord(a, u, unlisted, nil) })
}

func TestRecordOrderingByTagThenData(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	r1 := NewRecord(a, u, u.Intern("a"), nil)
	r2 := NewRecord(a, u, u.Intern("b"), nil)
	assert.Equal(t, -1, Compare(r1, r2))

	withData := NewRecord(a, u, u.Intern("a"), NewSymbolTable(a, u, []Value{u.Intern("x"), NewInt(a, u, 1)}))
	assert.Equal(t, -1, Compare(r1, withData), "absent data sorts before present data for the same tag")
}

func TestNewDerivedDataCreatesClassOnFirstUse(t *testing.T) {
	u := NewUniverse()
	a := immortalAllocator{}

	className := u.Intern("MyShape")
	before := u.Classes().Lookup("MyShape")
	require.Nil(t, before)

	rec := NewDerivedData(a, u, className, nil)
	assert.Equal(t, className, rec.Tag())
	after := u.Classes().Lookup("MyShape")
	require.NotNil(t, after)
}
