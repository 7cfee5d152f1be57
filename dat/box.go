package dat

// BoxMode selects one of Box's three storage disciplines.
type BoxMode int

const (
	// BoxCell may be stored into freely.
	BoxCell BoxMode = iota
	// BoxPromise may be stored into exactly once.
	BoxPromise
	// BoxResult may never be stored into after construction.
	BoxResult
)

// Box is the single-slot mutable container used for generator state,
// closure-captured variables, and the evaluator's yield value. It is
// the one value class the model does not treat as immutable.
type Box struct {
	Header
	mode     BoxMode
	hasVal   bool
	val      Value
	canStore bool
}

// NewBox allocates a Box in the given mode; mode BoxResult may carry
// an initial value (set hasVal by passing initial non-nil) or start
// empty.
func NewBox(a Allocator, u *Universe, mode BoxMode, initial Value) *Box {
	v := &Box{mode: mode}
	switch mode {
	case BoxCell:
		v.canStore = true
	case BoxPromise:
		v.canStore = true
	case BoxResult:
		v.canStore = false
	}
	if initial != nil {
		v.val = initial
		v.hasVal = true
		if mode == BoxPromise {
			v.canStore = false // the one permitted store is already spent
		}
	}
	return allocAs[*Box](a, u.classBox, v)
}

// Fetch returns the stored value, or (nil, false) if the box has
// never been stored into (void). The fetched value is rooted on the
// current frame before returning, so it survives any allocations the
// caller performs afterward even if the box itself is dropped.
func (v *Box) Fetch(frames Rooter) (Value, bool) {
	if !v.hasVal {
		return nil, false
	}
	frames.Root(v.val)
	return v.val, true
}

// Store sets the box's value (val == nil stores void). Fatal if the
// box's discipline forbids it: a Result box, or a Promise that has
// already been stored into.
func (v *Box) Store(val Value) {
	switch v.mode {
	case BoxResult:
		raiseInvariant("store on a Result box is forbidden")
	case BoxPromise:
		if !v.canStore {
			raiseInvariant("re-store on an already-set Promise box")
		}
		v.canStore = false
	}
	v.val = val
	v.hasVal = val != nil
}

func (v *Box) GCMark(mark func(Value)) {
	if v.hasVal && v.val != nil {
		mark(v.val)
	}
}

func (v *Box) DebugString() string {
	if !v.hasVal {
		return "Box(void)"
	}
	return "Box(" + v.val.DebugString() + ")"
}

// Rooter is the minimal frame-stack capability Box.Fetch needs: the
// ability to add a value to the current frame. Package frame's Stack
// implements it; defined in dat to avoid dat importing frame.
type Rooter interface {
	Root(v Value)
}
