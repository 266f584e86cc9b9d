package engine

import "sync/atomic"

// inputRingSize must be a power of two; ~340ms of mono audio at 48kHz,
// enough to ride out scheduling jitter between the capture and render
// goroutines.
const inputRingSize = 16384

// inputRing is a wait-free single-producer single-consumer sample ring
// carrying external (microphone) audio into the render path. The producer
// is the capture goroutine; the consumer is RenderBlock. A full ring drops
// the newest samples rather than blocking the producer.
type inputRing struct {
	buf  [inputRingSize]float32
	head atomic.Uint32 // consumer position
	tail atomic.Uint32 // producer position
}

// push copies as much of block as fits. Returns the number of samples
// accepted.
func (r *inputRing) push(block []float32) int {
	tail := r.tail.Load()
	free := inputRingSize - (tail - r.head.Load())
	n := len(block)
	if uint32(n) > free {
		n = int(free)
	}
	for i := 0; i < n; i++ {
		r.buf[(tail+uint32(i))&(inputRingSize-1)] = block[i]
	}
	r.tail.Store(tail + uint32(n))
	return n
}

// mixInto adds buffered samples into both channels, consuming at most
// len(outL) samples. An underrun mixes silence for the remainder.
func (r *inputRing) mixInto(outL, outR []float32) {
	head := r.head.Load()
	avail := r.tail.Load() - head
	n := len(outL)
	if uint32(n) > avail {
		n = int(avail)
	}
	for i := 0; i < n; i++ {
		s := r.buf[(head+uint32(i))&(inputRingSize-1)]
		outL[i] += s
		outR[i] += s
	}
	r.head.Store(head + uint32(n))
}

// PushInput feeds a block of external mono audio into the live output mix.
// Safe to call from a capture goroutine; never blocks. The mixed-in audio
// reaches the loop tap, so external sound can be layered into a loop.
func (e *Engine) PushInput(block []float32) {
	e.input.push(block)
}
