package sam0

import "github.com/samizdat0/sam0/diag"

func raiseAlreadyBound(name string) {
	diag.Raise(diag.KindInvariant, "binding "+name+" already present in the root environment")
}

func raisePrimitiveUnbound(name string) {
	diag.Raise(diag.KindInvariant, "primitive "+name+" invoked without a real binding")
}
