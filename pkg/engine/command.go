package engine

import "sync/atomic"

// commandOp identifies a control-path request applied by the render path.
type commandOp int32

const (
	opStart commandOp = iota
	opRetarget
	opRelease
	opForceStop
	opSetCapacity
)

// command is one control-to-render message. Fields are overloaded per op:
// opStart uses freq/cutoff/q/amp, opRetarget uses freq/cutoff,
// opSetCapacity carries the new capacity in slot.
type command struct {
	op     commandOp
	slot   int32
	gen    uint32
	freq   float64
	cutoff float64
	q      float64
	amp    float64
}

// ringSize must be a power of two. 256 outstanding commands is far beyond
// what a touch surface generates between two render blocks.
const ringSize = 256

// commandRing is a wait-free single-producer single-consumer ring. The
// control path pushes, the render path pops at block start. Neither side
// ever blocks; a full ring drops the command (the producer is told).
type commandRing struct {
	buf  [ringSize]command
	head atomic.Uint32 // consumer position
	tail atomic.Uint32 // producer position
}

// push enqueues a command. Returns false if the ring is full.
func (r *commandRing) push(c command) bool {
	tail := r.tail.Load()
	if tail-r.head.Load() >= ringSize {
		return false
	}
	r.buf[tail&(ringSize-1)] = c
	r.tail.Store(tail + 1)
	return true
}

// pop dequeues a command. Returns false if the ring is empty.
func (r *commandRing) pop() (command, bool) {
	head := r.head.Load()
	if head == r.tail.Load() {
		return command{}, false
	}
	c := r.buf[head&(ringSize-1)]
	r.head.Store(head + 1)
	return c, true
}
