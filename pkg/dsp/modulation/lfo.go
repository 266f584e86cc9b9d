// Package modulation provides the LFO and chorus used by the shared chain.
package modulation

import "math"

// LFO is a low frequency sine oscillator for modulating effect parameters.
type LFO struct {
	sampleRate float64
	frequency  float64
	phase      float64
}

// NewLFO creates an LFO at the given sample rate.
func NewLFO(sampleRate float64) *LFO {
	return &LFO{
		sampleRate: sampleRate,
		frequency:  1.0,
	}
}

// SetFrequency sets the LFO rate in Hz.
func (l *LFO) SetFrequency(hz float64) {
	l.frequency = math.Max(0.01, math.Min(20.0, hz))
}

// SetPhase sets the phase (0-1).
func (l *LFO) SetPhase(phase float64) {
	l.phase = phase - math.Floor(phase)
}

// Reset returns the phase to zero.
func (l *LFO) Reset() {
	l.phase = 0
}

// Next returns the next value in [-1, 1].
func (l *LFO) Next() float64 {
	v := math.Sin(2 * math.Pi * l.phase)
	l.phase += l.frequency / l.sampleRate
	if l.phase >= 1 {
		l.phase -= 1
	}
	return v
}
