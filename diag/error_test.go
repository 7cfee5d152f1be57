package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStringNames(t *testing.T) {
	cases := map[Kind]string{
		KindStructural: "structural",
		KindType:       "type",
		KindArity:      "arity",
		KindInvariant:  "invariant",
		KindRange:      "range",
		Kind(99):       "unknown",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}

func TestErrorMessageFormatting(t *testing.T) {
	e := New(KindType, "wrong class")
	assert.Equal(t, "type: wrong class", e.Error())

	cause := errors.New("boom")
	wrapped := Wrap(KindStructural, "bad magic", cause)
	assert.Equal(t, "structural: bad magic: boom", wrapped.Error())
	assert.Same(t, cause, errors.Unwrap(wrapped))
}

func TestNilErrorMessage(t *testing.T) {
	var e *Error
	assert.Equal(t, "<nil>", e.Error())
}

func TestConstructorHelpers(t *testing.T) {
	assert.Equal(t, KindStructural, Structural("x").Kind)
	assert.Equal(t, KindType, TypeErr("x").Kind)
	assert.Equal(t, KindArity, Arity("x").Kind)
	assert.Equal(t, KindInvariant, Invariant("x").Kind)
	assert.Equal(t, KindRange, Range("x").Kind)
}

func TestRecoverConvertsFatalPanicToError(t *testing.T) {
	var err error
	func() {
		defer Recover(nil, &err)
		Raise(KindInvariant, "oops")
	}()
	require.Error(t, err)
	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindInvariant, de.Kind)
}

func TestRecoverAttachesGibletLines(t *testing.T) {
	var err error
	g := NewGiblet()
	func() {
		defer Recover(g, &err)
		g.Push("outer")
		g.Push("inner")
		Raise(KindArity, "bad arity")
	}()
	require.Error(t, err)
	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []string{"inner", "outer"}, de.Giblet)
}

func TestRecoverRepanicsNonDiagPanics(t *testing.T) {
	var err error
	assert.Panics(t, func() {
		defer Recover(nil, &err)
		panic("not a diag error")
	})
}

func TestRecoverNoPanicLeavesDstUntouched(t *testing.T) {
	err := errors.New("preexisting")
	func() {
		defer Recover(nil, &err)
	}()
	assert.Equal(t, "preexisting", err.Error())
}
