package frame

import "github.com/samizdat0/sam0/diag"

func raiseOverflow() {
	diag.Raise(diag.KindStructural, "frame stack overflow: exceeded MaxDepth")
}

func raiseDeeperReturn() {
	diag.Raise(diag.KindInvariant, "frame stack return to a deeper frame than current")
}
