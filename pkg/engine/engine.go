package engine

import (
	"math"

	"github.com/tactus-audio/tactus/pkg/dsp/scale"
)

// Config carries the explicit session configuration threaded into the
// engine at construction. Zero fields take defaults.
type Config struct {
	SampleRate float64
	BlockSize  int
}

// DefaultSampleRate is the session sample rate used when none is given.
const DefaultSampleRate = 48000.0

// defaultBlockSize is the internal render chunk size.
const defaultBlockSize = 512

// Handle identifies a started voice. The zero Handle is invalid. Handles
// are generation-tagged so operations on a stolen slot become no-ops
// instead of touching the slot's new occupant.
type Handle struct {
	slot int32
	gen  uint32
}

// Valid reports whether the handle refers to a started voice.
func (h Handle) Valid() bool {
	return h.gen != 0
}

// LoopProcessor is the per-block hook the loop engine plugs into the render
// path: it receives the live mix tap and writes the final output.
type LoopProcessor interface {
	Process(outL, outR, liveL, liveR []float32)
}

// Engine is the polyphonic voice engine. Control-path methods (touch
// events, parameters, complexity) may be called from one goroutine; the
// render path pulls audio through RenderBlock. The two sides communicate
// only through atomics and the wait-free command ring.
type Engine struct {
	sampleRate float64
	params     *Params
	chain      *EffectChain
	pool       *pool
	ring       *commandRing
	input      *inputRing

	loop LoopProcessor

	// Render-path scratch buffers.
	voiceMix []float32
	liveL    []float32
	liveR    []float32

	sampleClock int64 // render-owned

	// Control-path bookkeeping. Single writer: the control goroutine.
	touches map[int]Handle
	claimed [MaxVoices]bool
	gens    [MaxVoices]uint32
	ctrlCap int
	nextGen uint32
	ready   bool
}

// New creates an initialized engine.
func New(cfg Config) *Engine {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = defaultBlockSize
	}
	return &Engine{
		sampleRate: cfg.SampleRate,
		params:     NewParams(),
		chain:      NewEffectChain(cfg.SampleRate),
		pool:       newPool(cfg.SampleRate),
		ring:       &commandRing{},
		input:      &inputRing{},
		voiceMix:   make([]float32, cfg.BlockSize),
		liveL:      make([]float32, cfg.BlockSize),
		liveR:      make([]float32, cfg.BlockSize),
		touches:    make(map[int]Handle),
		ctrlCap:    MaxVoices,
		ready:      true,
	}
}

// SampleRate returns the session sample rate.
func (e *Engine) SampleRate() float64 {
	return e.sampleRate
}

// Close tears the engine down; further voice starts fail.
func (e *Engine) Close() {
	e.ready = false
}

// SetLooper attaches the loop engine's render hook.
func (e *Engine) SetLooper(lp LoopProcessor) {
	e.loop = lp
}

// SetParameter stores a named control value, clamped to [0,1].
func (e *Engine) SetParameter(name string, value float64) bool {
	return e.params.Set(name, value)
}

// GetParameter returns a named control value.
func (e *Engine) GetParameter(name string) float64 {
	return e.params.Get(name)
}

// StartVoice starts a voice for a touch at (x, y) with the given intensity.
// Returns an invalid handle if the engine is not ready or the pool capacity
// is zero. When the pool is full the lowest-index slot is stolen.
func (e *Engine) StartVoice(x, y, intensity float64) (Handle, bool) {
	if e == nil || !e.ready || e.ctrlCap == 0 {
		return Handle{}, false
	}

	e.reclaimSlots()

	slot := -1
	for i := 0; i < e.ctrlCap; i++ {
		if !e.claimed[i] {
			slot = i
			break
		}
	}
	if slot == -1 {
		// FIFO-by-index steal: always the lowest slot.
		slot = 0
	}

	e.nextGen++
	gen := e.nextGen
	e.claimed[slot] = true
	e.gens[slot] = gen

	freq := scale.Frequency(x, y, e.params.Octave())
	ok := e.ring.push(command{
		op:     opStart,
		slot:   int32(slot),
		gen:    gen,
		freq:   freq,
		cutoff: touchCutoff(y),
		q:      touchResonance(y),
		amp:    clampUnit(intensity),
	})
	if !ok {
		e.claimed[slot] = false
		return Handle{}, false
	}
	return Handle{slot: int32(slot), gen: gen}, true
}

// UpdateVoice retargets a voice's pitch and filter from a new position.
// Stale handles are ignored.
func (e *Engine) UpdateVoice(h Handle, x, y float64) {
	if e == nil || !e.ready || !h.Valid() || e.gens[h.slot] != h.gen {
		return
	}
	freq := scale.Frequency(x, y, e.params.Octave())
	e.ring.push(command{
		op:     opRetarget,
		slot:   h.slot,
		gen:    h.gen,
		freq:   freq,
		cutoff: touchCutoff(y),
	})
}

// StopVoice releases a voice. Stopping an already-stopped voice is a no-op.
func (e *Engine) StopVoice(h Handle) {
	if e == nil || !e.ready || !h.Valid() {
		return
	}
	e.ring.push(command{op: opRelease, slot: h.slot, gen: h.gen})
}

// TouchStart routes a touch-down event into a voice.
func (e *Engine) TouchStart(id int, x, y, intensity float64) bool {
	if h, ok := e.touches[id]; ok {
		// A repeated down for a live touch id retargets instead of stacking.
		e.UpdateVoice(h, x, y)
		return true
	}
	h, ok := e.StartVoice(x, y, intensity)
	if !ok {
		return false
	}
	e.touches[id] = h
	return true
}

// TouchMove retargets the voice tracking a touch. Unknown ids are ignored.
func (e *Engine) TouchMove(id int, x, y, intensity float64) {
	if h, ok := e.touches[id]; ok {
		e.UpdateVoice(h, x, y)
	}
}

// TouchEnd releases the voice tracking a touch.
func (e *Engine) TouchEnd(id int) {
	if h, ok := e.touches[id]; ok {
		e.StopVoice(h)
		delete(e.touches, id)
	}
}

// SetComplexity rescales the voice pool capacity as ceil(MaxVoices*scalar).
// Shrinking force-stops the excess trailing voices immediately.
func (e *Engine) SetComplexity(scalar float64) {
	scalar = clampUnit(scalar)
	n := int(math.Ceil(float64(MaxVoices) * scalar))
	e.ctrlCap = n
	e.ring.push(command{op: opSetCapacity, slot: int32(n)})
}

// ActiveVoices counts slots still occupied, releasing tails included.
func (e *Engine) ActiveVoices() int {
	return e.pool.activeCount()
}

// PlayingVoices counts voices in their attack or sustain body.
func (e *Engine) PlayingVoices() int {
	return e.pool.playingCount()
}

// reclaimSlots drops control-side claims on slots the render path has
// reported silent.
func (e *Engine) reclaimSlots() {
	for i := range e.claimed {
		if e.claimed[i] && e.pool.stage(i) == slotSilent {
			e.claimed[i] = false
		}
	}
}

// RenderBlock renders into the stereo output buffers. This is the realtime
// entry point: it never allocates, locks, or blocks.
func (e *Engine) RenderBlock(outL, outR []float32) {
	for c, ok := e.ring.pop(); ok; c, ok = e.ring.pop() {
		e.pool.apply(c, e.sampleClock)
	}
	e.chain.ApplyParams(e.params)

	n := len(outL)
	if len(outR) < n {
		n = len(outR)
	}
	for off := 0; off < n; off += len(e.voiceMix) {
		end := off + len(e.voiceMix)
		if end > n {
			end = n
		}
		chunk := end - off

		mix := e.voiceMix[:chunk]
		liveL := e.liveL[:chunk]
		liveR := e.liveR[:chunk]

		for i := range mix {
			mix[i] = 0
		}
		e.pool.renderAdd(mix)
		e.chain.Process(mix, liveL, liveR)
		e.input.mixInto(liveL, liveR)

		if e.loop != nil {
			e.loop.Process(outL[off:end], outR[off:end], liveL, liveR)
		} else {
			copy(outL[off:end], liveL)
			copy(outR[off:end], liveR)
		}

		e.sampleClock += int64(chunk)
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
