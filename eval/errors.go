package eval

import "github.com/samizdat0/sam0/diag"

func raiseNotARecord() {
	diag.Raise(diag.KindType, "AST node must be a Record")
}

func raiseUnknownTag(tag string) {
	diag.Raise(diag.KindType, "unrecognized AST node tag "+tag)
}

func raiseUnbound(name string) {
	diag.Raise(diag.KindInvariant, "unbound variable "+name)
}

func raiseDuplicateDef(name string) {
	diag.Raise(diag.KindInvariant, "duplicate variable definition "+name)
}

func raiseFetchNonBox() {
	diag.Raise(diag.KindType, "fetch requires a Box")
}

func raiseNotCallable() {
	diag.Raise(diag.KindType, "call target is not callable")
}

func raiseApplyNonList() {
	diag.Raise(diag.KindType, "apply requires its argument expression to evaluate to a List")
}

func raiseNoYield() {
	diag.Raise(diag.KindInvariant, "noYield node evaluated")
}

func raiseMissingField(key string) {
	diag.Raise(diag.KindStructural, "AST node missing required field "+key)
}

func raiseFieldNotSymbol(key string) {
	diag.Raise(diag.KindType, "AST field "+key+" must be a Symbol")
}

func raiseBadFormal() {
	diag.Raise(diag.KindStructural, "malformed closure formal parameter")
}

func raiseTrailingRepeatOnly() {
	diag.Raise(diag.KindStructural, "a repeated formal parameter must be the last one")
}

func raiseClosureArity() {
	diag.Raise(diag.KindArity, "wrong argument count calling closure")
}
