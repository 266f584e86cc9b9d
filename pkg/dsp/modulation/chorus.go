package modulation

import (
	"math"

	"github.com/tactus-audio/tactus/pkg/dsp/delay"
)

// Chorus is a single-voice stereo chorus: one modulated delay per channel
// with quadrature LFOs. Depth is a time-domain modulation depth in seconds,
// matching how the shimmer control drives it.
type Chorus struct {
	sampleRate float64

	baseDelay float64 // seconds
	depth     float64 // seconds
	level     float32

	lineL *delay.Line
	lineR *delay.Line
	lfoL  *LFO
	lfoR  *LFO
}

// NewChorus creates a chorus at the given sample rate.
func NewChorus(sampleRate float64) *Chorus {
	c := &Chorus{
		sampleRate: sampleRate,
		baseDelay:  0.020,
		depth:      0.003,
		level:      0.5,
		lineL:      delay.NewLine(0.1, sampleRate),
		lineR:      delay.NewLine(0.1, sampleRate),
		lfoL:       NewLFO(sampleRate),
		lfoR:       NewLFO(sampleRate),
	}
	c.lfoL.SetFrequency(1.5)
	c.lfoR.SetFrequency(1.5)
	// Quadrature offset keeps the two channels decorrelated.
	c.lfoR.SetPhase(0.25)
	return c
}

// SetRate sets the modulation rate in Hz.
func (c *Chorus) SetRate(hz float64) {
	c.lfoL.SetFrequency(hz)
	c.lfoR.SetFrequency(hz)
}

// SetDepth sets the time-domain modulation depth in seconds.
func (c *Chorus) SetDepth(seconds float64) {
	c.depth = math.Max(0, math.Min(0.03, seconds))
}

// SetLevel sets the wet output level.
func (c *Chorus) SetLevel(level float64) {
	c.level = float32(math.Max(0, math.Min(1, level)))
}

// Reset clears the delay state.
func (c *Chorus) Reset() {
	c.lineL.Reset()
	c.lineR.Reset()
	c.lfoL.Reset()
	c.lfoR.Reset()
	c.lfoR.SetPhase(0.25)
}

// Next processes one mono input sample into stereo wet outputs.
func (c *Chorus) Next(input float32) (left, right float32) {
	delayL := (c.baseDelay + c.depth*c.lfoL.Next()) * c.sampleRate
	delayR := (c.baseDelay + c.depth*c.lfoR.Next()) * c.sampleRate

	c.lineL.Write(input)
	c.lineR.Write(input)

	left = c.lineL.Read(delayL) * c.level
	right = c.lineR.Read(delayR) * c.level
	return left, right
}

// ProcessAdd adds the stereo wet signal for in into outL/outR - no
// allocations.
func (c *Chorus) ProcessAdd(in, outL, outR []float32) {
	for i := range in {
		l, r := c.Next(in[i])
		outL[i] += l
		outR[i] += r
	}
}
