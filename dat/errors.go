package dat

import "github.com/samizdat0/sam0/diag"

func raiseBadMagic() {
	diag.Raise(diag.KindStructural, "dereference of value with bad or missing magic tag")
}

func raiseType(msg string) {
	diag.Raise(diag.KindType, msg)
}

func raiseArity(msg string) {
	diag.Raise(diag.KindArity, msg)
}

func raiseRange(msg string) {
	diag.Raise(diag.KindRange, msg)
}

func raiseInvariant(msg string) {
	diag.Raise(diag.KindInvariant, msg)
}

func raiseStructural(msg string) {
	diag.Raise(diag.KindStructural, msg)
}
