package diag

import (
	"fmt"
	"os"
)

// printing guards against infinite recursion if rendering a diagnostic
// itself raises a fatal error.
var printing bool

// Fatal raises err as a Go panic. By convention every exported
// function in dat, dispatch, heap, gc, and eval that can fail calls
// Fatal instead of returning an error, since the core has no
// recoverable error path; the module façade is the only place that
// recovers it (see Recover).
func Fatal(err *Error) {
	panic(err)
}

// Raise is a convenience wrapper for Fatal(New(kind, msg)).
func Raise(kind Kind, msg string) {
	Fatal(New(kind, msg))
}

// Recover turns a panic carrying an *Error back into a normal error
// return, printing a diagnostic (with giblet context, if g is
// non-nil) to stderr first. It must be called via defer/recover at the
// module façade's outermost call boundary. Panics that do not carry an
// *Error are re-panicked unchanged.
func Recover(g *Giblet, dst *error) {
	r := recover()
	if r == nil {
		return
	}
	err, ok := r.(*Error)
	if !ok {
		panic(r)
	}
	if g != nil {
		err.Giblet = g.Lines()
		g.Reset()
	}
	printDiagnostic(err)
	*dst = err
}

func printDiagnostic(err *Error) {
	if printing {
		return
	}
	printing = true
	defer func() { printing = false }()

	fmt.Fprintln(os.Stderr, "fatal:", err.Error())
	for _, line := range err.Giblet {
		fmt.Fprintln(os.Stderr, "  at", line)
	}
}
