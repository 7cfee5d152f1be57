package corelib

import "github.com/samizdat0/sam0/diag"

func raiseDivByZero() {
	diag.Raise(diag.KindInvariant, "division by zero")
}

func raiseModByZero() {
	diag.Raise(diag.KindInvariant, "modulo by zero")
}

func raiseNotInt() {
	diag.Raise(diag.KindType, "expected an Int argument")
}

func raiseNotSymbol() {
	diag.Raise(diag.KindType, "expected a Symbol key")
}

func raiseNoMethod(name string) {
	diag.Raise(diag.KindType, "no core binding of "+name+" for this class")
}

func raiseNotABox() {
	diag.Raise(diag.KindType, "nextValue requires a Box to store the remaining generator into")
}
