// Package gc implements the runtime's mark-sweep collector, tracing
// from the frame stack and the universe's immortal roots through
// every value's GCMark method, then sweeping the heap's live-object
// list.
package gc

import (
	"github.com/samizdat0/sam0/dat"
	"github.com/samizdat0/sam0/frame"
	"github.com/samizdat0/sam0/heap"
)

// Collector ties together a Heap, a frame Stack, and a Universe to run
// full mark-sweep cycles. It implements heap.Collector so a Heap can
// invoke it automatically when its allocation budget runs out.
type Collector struct {
	heap      *heap.Heap
	frames    *frame.Stack
	universe  *dat.Universe
	cycles    int
	lastFreed int
}

// New builds a Collector. Callers should immediately wire it back into
// h via h.SetCollector(c) so automatic collection works.
func New(h *heap.Heap, frames *frame.Stack, u *dat.Universe) *Collector {
	return &Collector{heap: h, frames: frames, universe: u}
}

// Collect runs one full mark-sweep cycle: clears the map lookup
// cache, marks every root transitively, then sweeps the heap. The
// mark phase performs no allocation.
func (c *Collector) Collect() {
	c.universe.ClearMapCache()

	var mark func(v dat.Value)
	mark = func(v dat.Value) {
		if v == nil {
			return
		}
		h := v.Hdr()
		if h.Mark() {
			return
		}
		h.SetMark(true)
		v.GCMark(mark)
	}

	c.frames.Each(mark)
	c.universe.MarkImmortalRoots(mark)

	c.lastFreed = c.heap.Sweep()
	c.cycles++
}

// Cycles returns the number of collections run so far.
func (c *Collector) Cycles() int { return c.cycles }

// LastFreed returns how many objects the most recent cycle reclaimed.
func (c *Collector) LastFreed() int { return c.lastFreed }
