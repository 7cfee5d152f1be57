// Package diag provides the core runtime's fatal-error taxonomy and the
// giblet stack used to add call-site context to diagnostics.
//
// The core has no recoverable error path; every condition here is
// raised via Fatal and unwinds as a Go
// panic carrying an *Error until the module façade's outermost call
// recovers it and turns it back into a normal error return.
package diag

import "fmt"

// Kind classifies a fatal condition so callers can branch on intent
// rather than on message text, mirroring the typed-error style used
// throughout this codebase's surrounding tooling.
type Kind int

const (
	// KindStructural covers bad magic, misaligned pointer, allocation
	// failure, and overflow of a fixed table (symbols, classes, stack).
	KindStructural Kind = iota
	// KindType covers an operation applied to the wrong class.
	KindType
	// KindArity covers too few/many call arguments or an odd-length
	// key/value array where pairs are required.
	KindArity
	// KindInvariant covers duplicate definitions, duplicate/sealed
	// generic binds, and non-local returns to a deeper frame.
	KindInvariant
	// KindRange covers out-of-range indices, Int magnitude overflow,
	// and invalid Unicode codepoints.
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindType:
		return "type"
	case KindArity:
		return "arity"
	case KindInvariant:
		return "invariant"
	case KindRange:
		return "range"
	default:
		return "unknown"
	}
}

// Error is the single typed-error shape raised by every layer of the
// core (dat, dispatch, heap, gc, eval). Err, when present, is an
// underlying cause (e.g. a wrapped stdlib error).
type Error struct {
	Kind   Kind
	Msg    string
	Err    error
	Giblet []string // function-name frames captured at raise time, innermost first
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error of the given kind without an underlying cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an *Error of the given kind around an underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func Structural(msg string) *Error { return New(KindStructural, msg) }
func TypeErr(msg string) *Error    { return New(KindType, msg) }
func Arity(msg string) *Error      { return New(KindArity, msg) }
func Invariant(msg string) *Error  { return New(KindInvariant, msg) }
func Range(msg string) *Error      { return New(KindRange, msg) }
