package sam0

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samizdat0/sam0/dat"
	"github.com/samizdat0/sam0/diag"
)

func rec(a dat.Allocator, u *dat.Universe, tag string, kvs ...dat.Value) *dat.Record {
	var data *dat.SymbolTable
	if len(kvs) > 0 {
		data = dat.NewSymbolTable(a, u, kvs)
	}
	return dat.NewRecord(a, u, u.Intern(tag), data)
}

func literal(a dat.Allocator, u *dat.Universe, v dat.Value) *dat.Record {
	return rec(a, u, "literal", u.Intern("value"), v)
}

func varRef(a dat.Allocator, u *dat.Universe, name string) *dat.Record {
	return rec(a, u, "varRef", u.Intern("name"), u.Intern(name))
}

func formal(a dat.Allocator, u *dat.Universe, name string) *dat.Record {
	return rec(a, u, "formal", u.Intern("name"), u.Intern(name))
}

// TestEvalLiteral42 exercises scenario 1: a bare literal node evaluates
// to the value it carries.
func TestEvalLiteral42(t *testing.T) {
	r := New(Options{})
	u, a := r.Universe(), r.Allocator()

	v, err := r.Eval(nil, literal(a, u, dat.NewInt(a, u, 42)))
	require.NoError(t, err)
	assert.Equal(t, int32(42), v.(*dat.Int).Value())
}

// TestEvalVarDefAndRefYields7AndRejectsDuplicate exercises scenario 2:
// defining a variable and reading it back yields the bound value,
// while defining the same name twice in one environment is fatal.
func TestEvalVarDefAndRefYields7AndRejectsDuplicate(t *testing.T) {
	r := New(Options{})
	u, a := r.Universe(), r.Allocator()

	def := rec(a, u, "varDef", u.Intern("name"), u.Intern("x"), u.Intern("value"), literal(a, u, dat.NewInt(a, u, 7)))
	ref := varRef(a, u, "x")
	body := dat.NewList(a, u, def, ref)
	closureNode := rec(a, u, "closure", u.Intern("statements"), body)
	call := rec(a, u, "call", u.Intern("target"), closureNode, u.Intern("args"), dat.NewList(a, u))

	v, err := r.Eval(nil, call)
	require.NoError(t, err)
	assert.Equal(t, int32(7), v.(*dat.Int).Value())

	dupDef := rec(a, u, "varDef", u.Intern("name"), u.Intern("x"), u.Intern("value"), literal(a, u, dat.NewInt(a, u, 1)))
	dupBody := dat.NewList(a, u, def, dupDef)
	dupClosure := rec(a, u, "closure", u.Intern("statements"), dupBody)
	dupCall := rec(a, u, "call", u.Intern("target"), dupClosure, u.Intern("args"), dat.NewList(a, u))

	_, err = r.Eval(nil, dupCall)
	assert.Error(t, err, "defining x twice in the same scope must be a fatal diagnostic")
}

// TestEvalClosureCall37Yields7 exercises scenario 3:
// (fn(a,b){yield a+b})(3,4) == 7, using the core library's "+" binding.
func TestEvalClosureCall37Yields7(t *testing.T) {
	r := New(Options{})
	u, a := r.Universe(), r.Allocator()

	formals := dat.NewList(a, u, formal(a, u, "a"), formal(a, u, "b"))
	sum := rec(a, u, "call",
		u.Intern("target"), varRef(a, u, "+"),
		u.Intern("args"), dat.NewList(a, u, varRef(a, u, "a"), varRef(a, u, "b")),
	)
	yield := rec(a, u, "yield", u.Intern("value"), sum)
	closureNode := rec(a, u, "closure",
		u.Intern("formals"), formals,
		u.Intern("statements"), dat.NewList(a, u, yield),
	)
	call := rec(a, u, "call",
		u.Intern("target"), closureNode,
		u.Intern("args"), dat.NewList(a, u, literal(a, u, dat.NewInt(a, u, 3)), literal(a, u, dat.NewInt(a, u, 4))),
	)

	v, err := r.Eval(nil, call)
	require.NoError(t, err)
	assert.Equal(t, int32(7), v.(*dat.Int).Value())
}

// TestMapConstructionSequentialPutsLastWriteWins exercises scenario 4:
// building {"a":1,"b":2,"a":3} via sequential "put" calls, then reading
// back get("a")==3 and get("b")==2.
func TestMapConstructionSequentialPutsLastWriteWins(t *testing.T) {
	r := New(Options{})
	u, a := r.Universe(), r.Allocator()

	keyA := literal(a, u, dat.NewStringFromCodepoints(a, u, []rune("a")))
	keyB := literal(a, u, dat.NewStringFromCodepoints(a, u, []rune("b")))
	emptyMap := literal(a, u, dat.NewMap(a, u, nil))

	put1 := rec(a, u, "call", u.Intern("target"), varRef(a, u, "put"),
		u.Intern("args"), dat.NewList(a, u, emptyMap, keyA, literal(a, u, dat.NewInt(a, u, 1))))
	def1 := rec(a, u, "varDef", u.Intern("name"), u.Intern("m"), u.Intern("value"), put1)

	put2 := rec(a, u, "call", u.Intern("target"), varRef(a, u, "put"),
		u.Intern("args"), dat.NewList(a, u, varRef(a, u, "m"), keyB, literal(a, u, dat.NewInt(a, u, 2))))
	def2 := rec(a, u, "varDef", u.Intern("name"), u.Intern("m2"), u.Intern("value"), put2)

	put3 := rec(a, u, "call", u.Intern("target"), varRef(a, u, "put"),
		u.Intern("args"), dat.NewList(a, u, varRef(a, u, "m2"), keyA, literal(a, u, dat.NewInt(a, u, 3))))
	def3 := rec(a, u, "varDef", u.Intern("name"), u.Intern("m3"), u.Intern("value"), put3)

	getA := rec(a, u, "call", u.Intern("target"), varRef(a, u, "get"),
		u.Intern("args"), dat.NewList(a, u, varRef(a, u, "m3"), keyA))
	getB := rec(a, u, "call", u.Intern("target"), varRef(a, u, "get"),
		u.Intern("args"), dat.NewList(a, u, varRef(a, u, "m3"), keyB))

	body := dat.NewList(a, u, def1, def2, def3, getB, getA)
	closureNode := rec(a, u, "closure", u.Intern("statements"), body)
	call := rec(a, u, "call", u.Intern("target"), closureNode, u.Intern("args"), dat.NewList(a, u))

	v, err := r.Eval(nil, call)
	require.NoError(t, err)
	assert.Equal(t, int32(3), v.(*dat.Int).Value(), "get(\"a\") must reflect the later put")

	bodyB := dat.NewList(a, u, def1, def2, def3, getB)
	closureB := rec(a, u, "closure", u.Intern("statements"), bodyB)
	callB := rec(a, u, "call", u.Intern("target"), closureB, u.Intern("args"), dat.NewList(a, u))
	vb, err := r.Eval(nil, callB)
	require.NoError(t, err)
	assert.Equal(t, int32(2), vb.(*dat.Int).Value(), "get(\"b\") must be unaffected by the later put to \"a\"")
}

// TestPromiseBoxStoreFetchAndReStoreFatal exercises scenario 5: a
// Promise box may be stored into once and fetched freely, but a second
// store is a fatal diagnostic.
func TestPromiseBoxStoreFetchAndReStoreFatal(t *testing.T) {
	r := New(Options{})
	u, a := r.Universe(), r.Allocator()

	def := rec(a, u, "varDef", u.Intern("name"), u.Intern("p"), u.Intern("value"), literal(a, u, dat.NewInt(a, u, 10)))
	ref := varRef(a, u, "p")
	body := dat.NewList(a, u, def, ref)
	closureNode := rec(a, u, "closure", u.Intern("statements"), body)
	call := rec(a, u, "call", u.Intern("target"), closureNode, u.Intern("args"), dat.NewList(a, u))

	v, err := r.Eval(nil, call)
	require.NoError(t, err)
	assert.Equal(t, int32(10), v.(*dat.Int).Value())

	restore := rec(a, u, "store", u.Intern("name"), u.Intern("p"), u.Intern("value"), literal(a, u, dat.NewInt(a, u, 11)))
	reBody := dat.NewList(a, u, def, restore)
	reClosure := rec(a, u, "closure", u.Intern("statements"), reBody)
	reCall := rec(a, u, "call", u.Intern("target"), reClosure, u.Intern("args"), dat.NewList(a, u))

	_, err = r.Eval(nil, reCall)
	assert.Error(t, err, "re-storing an already-set Promise box must be fatal")
}

// TestUniqletIdentityThroughMapLookup exercises scenario 6: two
// distinct Uniqlets are never equal, and a Map keyed by one Uniqlet
// returns void for an unrelated fresh one.
func TestUniqletIdentityThroughMapLookup(t *testing.T) {
	r := New(Options{})
	u, a := r.Universe(), r.Allocator()

	u1 := dat.NewUniqlet(a, u)
	u2 := dat.NewUniqlet(a, u)
	require.NotEqual(t, 0, dat.Compare(u1, u2))

	xVal := dat.NewStringFromCodepoints(a, u, []rune("x"))
	m := dat.NewMap1(a, u, u1, xVal)

	getHit := rec(a, u, "call", u.Intern("target"), varRef(a, u, "get"),
		u.Intern("args"), dat.NewList(a, u, literal(a, u, m), literal(a, u, u1)))
	v, err := r.Eval(nil, getHit)
	require.NoError(t, err)
	assert.Equal(t, "x", v.(*dat.String).DebugString())

	getMiss := rec(a, u, "call", u.Intern("target"), varRef(a, u, "get"),
		u.Intern("args"), dat.NewList(a, u, literal(a, u, m), literal(a, u, u2)))
	miss, err := r.Eval(nil, getMiss)
	require.NoError(t, err)
	assert.Nil(t, miss, "lookup of an unrelated Uniqlet key must be void")
}

// TestFatalErrorReportsGibletCallChain exercises the call-chain
// diagnostic augmentation end-to-end: a fatal error raised inside a
// closure called from another named closure must surface, on the
// error Eval returns, the full chain of enclosing call names,
// innermost first.
func TestFatalErrorReportsGibletCallChain(t *testing.T) {
	r := New(Options{})
	u, a := r.Universe(), r.Allocator()

	innerClosure := rec(a, u, "closure",
		u.Intern("name"), u.Intern("inner"),
		u.Intern("statements"), dat.NewList(a, u, varRef(a, u, "undefinedName")),
	)
	innerCall := rec(a, u, "call", u.Intern("target"), innerClosure, u.Intern("args"), dat.NewList(a, u))
	outerClosure := rec(a, u, "closure",
		u.Intern("name"), u.Intern("outer"),
		u.Intern("statements"), dat.NewList(a, u, innerCall),
	)
	outerCall := rec(a, u, "call", u.Intern("target"), outerClosure, u.Intern("args"), dat.NewList(a, u))

	_, err := r.Eval(nil, outerCall)
	require.Error(t, err)
	var derr *diag.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, []string{"inner", "outer"}, derr.Giblet, "innermost frame first")

	v, err := r.Eval(nil, literal(a, u, dat.NewInt(a, u, 1)))
	require.NoError(t, err)
	assert.Equal(t, int32(1), v.(*dat.Int).Value(), "a later successful Eval must not be poisoned by the prior fatal's giblet state")
}
