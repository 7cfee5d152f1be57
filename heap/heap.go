// Package heap implements dat.Allocator: the managed heap that owns
// every non-immortal value's lifetime, roots fresh allocations on the
// frame stack, and triggers a collection when its allocation budget
// runs out.
package heap

import (
	"github.com/samizdat0/sam0/dat"
	"github.com/samizdat0/sam0/frame"
)

// DefaultThreshold is the allocation-count trigger for an automatic
// collection cycle.
const DefaultThreshold = 500_000

// Collector is the capability a Heap needs to reclaim memory: a full
// mark-sweep cycle. Heap depends on this interface rather than
// package gc directly, the same accept-interface seam dat.Allocator
// uses to keep heap from importing its own caller.
type Collector interface {
	Collect()
}

// Heap is the managed heap: it stamps headers, roots every allocation
// on the frame stack, keeps the live-object list package gc sweeps,
// and fires Collect once allocCount crosses threshold.
type Heap struct {
	frames     *frame.Stack
	collector  Collector
	threshold  int
	allocCount int
	live       []dat.Value
}

// New builds a Heap rooting allocations on frames. Call SetCollector
// once the owning package has also constructed its gc.Collector —
// the two are circularly dependent at the value level but not at the
// package level.
func New(frames *frame.Stack) *Heap {
	return &Heap{frames: frames, threshold: DefaultThreshold, live: make([]dat.Value, 0, 4096)}
}

// SetCollector wires in the collector to invoke automatically. Must be
// called before any allocation that might cross the threshold;
// allocations before it accumulate in allocCount, and if the count has
// reached the threshold, the first allocation after it is set runs a
// collection.
func (h *Heap) SetCollector(c Collector) { h.collector = c }

// SetThreshold overrides DefaultThreshold, chiefly for tests that want
// to force collections deterministically on a small number of
// allocations.
func (h *Heap) SetThreshold(n int) { h.threshold = n }

// Alloc implements dat.Allocator: stamps v's header, appends it to the
// live-object list, roots it on the current frame, and returns it.
// Triggers a collection first if the allocation budget is exhausted.
func (h *Heap) Alloc(class *dat.Class, v dat.Value) dat.Value {
	if h.collector != nil && h.allocCount >= h.threshold {
		h.collector.Collect()
		h.allocCount = 0
	}
	v.Hdr().Init(class)
	h.live = append(h.live, v)
	h.allocCount++
	h.frames.Add(v)
	return v
}

// CollectNow forces an immediate collection regardless of the
// allocation counter.
func (h *Heap) CollectNow() {
	if h.collector != nil {
		h.collector.Collect()
	}
	h.allocCount = 0
}

// LiveCount returns the number of objects the heap currently retains
// (diagnostic/test use only).
func (h *Heap) LiveCount() int { return len(h.live) }

// Each invokes fn for every object the heap currently retains. Package
// gc uses this during the mark phase's bookkeeping and, destructively,
// during sweep via Sweep.
func (h *Heap) Each(fn func(dat.Value)) {
	for _, v := range h.live {
		fn(v)
	}
}

// Sweep drops every object whose mark bit is clear and clears the mark
// bit of every object that survives.
// Freed objects get their headers invalidated, so a stray pointer to
// one fails the magic check instead of reading reclaimed state.
// Returns the number of objects freed. Called only by package gc, at
// the end of a mark phase.
func (h *Heap) Sweep() int {
	kept := h.live[:0]
	freed := 0
	for _, v := range h.live {
		if v.Hdr().Mark() {
			v.Hdr().SetMark(false)
			kept = append(kept, v)
		} else {
			v.Hdr().Invalidate()
			freed++
		}
	}
	h.live = kept
	return freed
}
