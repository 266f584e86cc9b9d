package engine

import "testing"

func TestCommandRingFIFO(t *testing.T) {
	r := &commandRing{}
	for i := 0; i < 10; i++ {
		if !r.push(command{op: opStart, slot: int32(i)}) {
			t.Fatalf("push %d failed on empty ring", i)
		}
	}
	for i := 0; i < 10; i++ {
		c, ok := r.pop()
		if !ok {
			t.Fatalf("pop %d failed", i)
		}
		if c.slot != int32(i) {
			t.Errorf("pop %d = slot %d, want %d", i, c.slot, i)
		}
	}
	if _, ok := r.pop(); ok {
		t.Error("pop on drained ring = true, want false")
	}
}

func TestCommandRingFullDrops(t *testing.T) {
	r := &commandRing{}
	for i := 0; i < ringSize; i++ {
		if !r.push(command{slot: int32(i)}) {
			t.Fatalf("push %d failed before ring was full", i)
		}
	}
	if r.push(command{}) {
		t.Error("push on full ring = true, want false")
	}

	// Draining one makes room for exactly one.
	if _, ok := r.pop(); !ok {
		t.Fatal("pop on full ring failed")
	}
	if !r.push(command{}) {
		t.Error("push after one pop failed")
	}
	if r.push(command{}) {
		t.Error("second push after one pop = true, want false")
	}
}

func TestCommandRingWrapsIndices(t *testing.T) {
	r := &commandRing{}
	// Cycle well past the ring size to cross the index wrap.
	for i := 0; i < ringSize*3; i++ {
		if !r.push(command{slot: int32(i % 128)}) {
			t.Fatalf("push %d failed", i)
		}
		c, ok := r.pop()
		if !ok || c.slot != int32(i%128) {
			t.Fatalf("pop %d = (%v, %v), want slot %d", i, c.slot, ok, i%128)
		}
	}
}
