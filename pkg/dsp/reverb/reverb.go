// Package reverb provides the fixed-decay reverb tail of the shared chain.
package reverb

import "math"

// Comb and allpass tunings in samples at 44.1kHz, scaled to the session
// rate at construction.
var combTuning = [8]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}

var allpassTuning = [4]int{556, 441, 341, 225}

// stereoSpread offsets the right-channel delay lengths to decorrelate the
// channels.
const stereoSpread = 23

const allpassFeedback = 0.5

// damping of the comb feedback path.
const combDamp = 0.2

type comb struct {
	buffer   []float32
	pos      int
	feedback float32
	dampVal  float32
}

func newComb(size int, feedback float64) *comb {
	return &comb{
		buffer:   make([]float32, size),
		feedback: float32(feedback),
	}
}

func (c *comb) process(input float32) float32 {
	out := c.buffer[c.pos]
	c.dampVal = out*(1-combDamp) + c.dampVal*combDamp
	c.buffer[c.pos] = input + c.dampVal*c.feedback
	c.pos++
	if c.pos >= len(c.buffer) {
		c.pos = 0
	}
	return out
}

func (c *comb) reset() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}
	c.pos = 0
	c.dampVal = 0
}

type allpass struct {
	buffer []float32
	pos    int
}

func newAllpass(size int) *allpass {
	return &allpass{buffer: make([]float32, size)}
}

func (a *allpass) process(input float32) float32 {
	delayed := a.buffer[a.pos]
	out := -input + delayed
	a.buffer[a.pos] = input + delayed*allpassFeedback
	a.pos++
	if a.pos >= len(a.buffer) {
		a.pos = 0
	}
	return out
}

func (a *allpass) reset() {
	for i := range a.buffer {
		a.buffer[i] = 0
	}
	a.pos = 0
}

// Reverb is a parallel-comb/series-allpass network with a fixed decay time,
// standing in for the source design's synthetic-impulse convolver. Mono in,
// stereo out; only the output level is performance-controlled.
type Reverb struct {
	combL    [8]*comb
	combR    [8]*comb
	allpassL [4]*allpass
	allpassR [4]*allpass

	inputGain float32
	level     float32
}

// DefaultDecay is the fixed tail length in seconds.
const DefaultDecay = 2.0

// New creates a reverb with the fixed ~2s decay.
func New(sampleRate float64) *Reverb {
	return NewWithDecay(sampleRate, DefaultDecay)
}

// NewWithDecay creates a reverb with the given decay time in seconds. Each
// comb's feedback is derived so its tail reaches -60dB at the decay time.
func NewWithDecay(sampleRate, decaySeconds float64) *Reverb {
	r := &Reverb{
		inputGain: 0.015,
		level:     0.25,
	}
	scale := sampleRate / 44100.0
	for i := range combTuning {
		sizeL := int(float64(combTuning[i]) * scale)
		sizeR := int(float64(combTuning[i]+stereoSpread) * scale)
		r.combL[i] = newComb(sizeL, combFeedback(sizeL, sampleRate, decaySeconds))
		r.combR[i] = newComb(sizeR, combFeedback(sizeR, sampleRate, decaySeconds))
	}
	for i := range allpassTuning {
		sizeL := int(float64(allpassTuning[i]) * scale)
		sizeR := int(float64(allpassTuning[i]+stereoSpread) * scale)
		r.allpassL[i] = newAllpass(sizeL)
		r.allpassR[i] = newAllpass(sizeR)
	}
	return r
}

// combFeedback derives the feedback gain that decays a comb of the given
// length to -60dB over decaySeconds.
func combFeedback(sizeSamples int, sampleRate, decaySeconds float64) float64 {
	loopSeconds := float64(sizeSamples) / sampleRate
	return math.Pow(10, -3.0*loopSeconds/decaySeconds)
}

// SetLevel sets the wet output level.
func (r *Reverb) SetLevel(level float64) {
	r.level = float32(math.Max(0, math.Min(1, level)))
}

// Reset clears all delay state.
func (r *Reverb) Reset() {
	for i := range r.combL {
		r.combL[i].reset()
		r.combR[i].reset()
	}
	for i := range r.allpassL {
		r.allpassL[i].reset()
		r.allpassR[i].reset()
	}
}

// Next processes one mono input sample into stereo wet outputs.
func (r *Reverb) Next(input float32) (left, right float32) {
	in := input * r.inputGain

	var sumL, sumR float32
	for i := range r.combL {
		sumL += r.combL[i].process(in)
		sumR += r.combR[i].process(in)
	}
	for i := range r.allpassL {
		sumL = r.allpassL[i].process(sumL)
		sumR = r.allpassR[i].process(sumR)
	}
	return sumL * r.level, sumR * r.level
}

// ProcessAdd adds the stereo wet signal for in into outL/outR - no
// allocations.
func (r *Reverb) ProcessAdd(in, outL, outR []float32) {
	for i := range in {
		l, rr := r.Next(in[i])
		outL[i] += l
		outR[i] += rr
	}
}
