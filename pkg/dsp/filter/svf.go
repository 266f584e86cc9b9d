// Package filter provides the per-voice lowpass filter.
package filter

import "math"

// SVF implements a state variable filter with a zero-delay feedback
// topology, used here as the per-voice lowpass. Cutoff changes glide with a
// one-pole smoother so touch-move retargeting never produces clicks.
type SVF struct {
	sampleRate float64

	cutoff       float64 // smoothed, currently applied
	cutoffTarget float64
	glideCoef    float64
	q            float64

	g float32 // frequency coefficient
	k float32 // damping coefficient (1/Q)

	// Integrator state
	ic1eq float32
	ic2eq float32
}

// NewSVF creates a state variable filter.
func NewSVF(sampleRate float64) *SVF {
	f := &SVF{
		sampleRate:   sampleRate,
		cutoff:       1000,
		cutoffTarget: 1000,
		q:            0.707,
	}
	f.SetGlideTime(0.02)
	f.updateCoefficients()
	return f
}

// SetGlideTime sets the cutoff retargeting time constant in seconds.
func (f *SVF) SetGlideTime(seconds float64) {
	if seconds <= 0 {
		f.glideCoef = 0
		return
	}
	f.glideCoef = math.Exp(-1.0 / (seconds * f.sampleRate))
}

// SetCutoff jumps immediately to a cutoff frequency.
func (f *SVF) SetCutoff(hz float64) {
	f.cutoff = f.clampCutoff(hz)
	f.cutoffTarget = f.cutoff
	f.updateCoefficients()
}

// GlideCutoffTo retargets the cutoff smoothly.
func (f *SVF) GlideCutoffTo(hz float64) {
	f.cutoffTarget = f.clampCutoff(hz)
}

// Cutoff returns the currently applied cutoff frequency.
func (f *SVF) Cutoff() float64 {
	return f.cutoff
}

// SetResonance sets the filter Q.
func (f *SVF) SetResonance(q float64) {
	f.q = math.Max(0.5, q)
	f.k = float32(1.0 / f.q)
}

// Reset clears the filter state.
func (f *SVF) Reset() {
	f.ic1eq = 0
	f.ic2eq = 0
	f.cutoff = f.cutoffTarget
	f.updateCoefficients()
}

func (f *SVF) clampCutoff(hz float64) float64 {
	nyquist := f.sampleRate * 0.49
	return math.Max(20, math.Min(nyquist, hz))
}

func (f *SVF) updateCoefficients() {
	// Pre-warp for the bilinear transform.
	f.g = float32(math.Tan(math.Pi * f.cutoff / f.sampleRate))
	f.k = float32(1.0 / f.q)
}

// Lowpass processes one sample through the lowpass path.
func (f *SVF) Lowpass(input float32) float32 {
	if f.cutoff != f.cutoffTarget {
		f.cutoff = f.cutoffTarget + (f.cutoff-f.cutoffTarget)*f.glideCoef
		if math.Abs(f.cutoff-f.cutoffTarget) < 0.01 {
			f.cutoff = f.cutoffTarget
		}
		f.updateCoefficients()
	}

	g := f.g
	k := f.k
	a1 := 1.0 / (1.0 + g*(g+k))
	a2 := g * a1
	a3 := g * a2

	v3 := input - f.ic2eq
	v1 := a1*f.ic1eq + a2*v3
	v2 := f.ic2eq + a2*f.ic1eq + a3*v3

	f.ic1eq = 2.0*v1 - f.ic1eq
	f.ic2eq = 2.0*v2 - f.ic2eq

	return v2
}

// ProcessLowpass filters buffer in place - no allocations.
func (f *SVF) ProcessLowpass(buffer []float32) {
	for i := range buffer {
		buffer[i] = f.Lowpass(buffer[i])
	}
}
