package engine

import "sync/atomic"

// MaxVoices is the hard upper bound on the voice pool; the complexity
// scalar resizes the usable capacity below this.
const MaxVoices = 5

// Published slot states, written by the render path and read lock-free by
// the control path for allocation decisions.
const (
	slotSilent int32 = iota
	slotPlaying
	slotReleasing
)

// pool is the fixed arena of voice slots. The voices themselves are owned
// exclusively by the render path; only the per-slot stage atomics and the
// capacity are shared.
type pool struct {
	voices   [MaxVoices]*voice
	stages   [MaxVoices]atomic.Int32
	capacity atomic.Int32
}

func newPool(sampleRate float64) *pool {
	p := &pool{}
	for i := range p.voices {
		p.voices[i] = newVoice(sampleRate)
	}
	p.capacity.Store(MaxVoices)
	return p
}

// apply executes one control command on the render path.
func (p *pool) apply(c command, now int64) {
	switch c.op {
	case opStart:
		if int(c.slot) >= MaxVoices {
			return
		}
		// Starting into an occupied slot is the steal path: the previous
		// voice is force-released before the slot is reused.
		v := p.voices[c.slot]
		if v.active() {
			v.forceStop()
		}
		v.start(c.freq, c.cutoff, c.q, c.amp, c.gen, now)

	case opRetarget:
		if int(c.slot) >= MaxVoices {
			return
		}
		v := p.voices[c.slot]
		if v.gen == c.gen && v.active() {
			v.retarget(c.freq, c.cutoff)
		}

	case opRelease:
		if int(c.slot) >= MaxVoices {
			return
		}
		v := p.voices[c.slot]
		if v.gen == c.gen {
			v.release()
		}

	case opForceStop:
		if int(c.slot) >= MaxVoices {
			return
		}
		v := p.voices[c.slot]
		if v.gen == c.gen {
			v.forceStop()
		}

	case opSetCapacity:
		n := c.slot
		if n < 0 {
			n = 0
		}
		if n > MaxVoices {
			n = MaxVoices
		}
		p.capacity.Store(n)
		// Shrinking immediately silences the excess trailing voices.
		for i := int(n); i < MaxVoices; i++ {
			p.voices[i].forceStop()
			p.publish(i)
		}
	}
}

// renderAdd mixes all sounding voices into mix and republishes slot stages.
func (p *pool) renderAdd(mix []float32) {
	for i, v := range p.voices {
		v.renderAdd(mix)
		p.publish(i)
	}
}

func (p *pool) publish(i int) {
	v := p.voices[i]
	switch {
	case !v.active():
		p.stages[i].Store(slotSilent)
	case v.playing():
		p.stages[i].Store(slotPlaying)
	default:
		p.stages[i].Store(slotReleasing)
	}
}

// stage returns the published stage of a slot.
func (p *pool) stage(i int) int32 {
	return p.stages[i].Load()
}

// activeCount counts voices that still occupy their slot, releasing tails
// included.
func (p *pool) activeCount() int {
	n := 0
	for i := range p.stages {
		if p.stages[i].Load() != slotSilent {
			n++
		}
	}
	return n
}

// playingCount counts voices in their attack or sustain body.
func (p *pool) playingCount() int {
	n := 0
	for i := range p.stages {
		if p.stages[i].Load() == slotPlaying {
			n++
		}
	}
	return n
}
