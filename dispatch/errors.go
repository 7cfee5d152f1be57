package dispatch

import (
	"strconv"

	"github.com/samizdat0/sam0/diag"
)

func raiseBindOnSealed(name string) {
	diag.Raise(diag.KindInvariant, "bind on sealed generic "+name)
}

func raiseDuplicateBind(name, class string) {
	diag.Raise(diag.KindInvariant, "duplicate bind on generic "+name+" for class "+class)
}

func raiseArity(name string, got int) {
	diag.Raise(diag.KindArity, "wrong argument count ("+strconv.Itoa(got)+") calling generic "+name)
}

func raiseSameClass(name string) {
	diag.Raise(diag.KindType, "generic "+name+" requires all arguments to share the first argument's class")
}

func raiseNoMethod(name, class string) {
	diag.Raise(diag.KindType, "no method for generic "+name+" on class "+class)
}
