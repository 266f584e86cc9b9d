// Package oscillator provides the phase-accumulator oscillators behind each
// touch voice.
package oscillator

import "math"

// Waveform selects the generated wave shape.
type Waveform int

const (
	// WaveSine generates a sine wave
	WaveSine Waveform = iota
	// WaveSaw generates a sawtooth wave
	WaveSaw
	// WaveTriangle generates a triangle wave
	WaveTriangle
	// WaveSquare generates a square wave
	WaveSquare
)

// Oscillator generates a periodic waveform at a retargetable frequency.
// Frequency changes glide with a one-pole smoother so touch-move retuning
// never produces clicks.
type Oscillator struct {
	sampleRate float64
	waveform   Waveform

	frequency float64 // smoothed, currently sounding
	target    float64
	glideCoef float64

	phase float64
}

// New creates an oscillator at the given sample rate.
func New(sampleRate float64, waveform Waveform) *Oscillator {
	o := &Oscillator{
		sampleRate: sampleRate,
		waveform:   waveform,
		frequency:  440.0,
		target:     440.0,
	}
	o.SetGlideTime(0.02)
	return o
}

// SetGlideTime sets the retuning time constant in seconds.
func (o *Oscillator) SetGlideTime(seconds float64) {
	if seconds <= 0 {
		o.glideCoef = 0
		return
	}
	o.glideCoef = math.Exp(-1.0 / (seconds * o.sampleRate))
}

// SetFrequency jumps immediately to a frequency. Used at note start.
func (o *Oscillator) SetFrequency(freq float64) {
	o.frequency = freq
	o.target = freq
}

// GlideTo retargets the frequency smoothly.
func (o *Oscillator) GlideTo(freq float64) {
	o.target = freq
}

// Frequency returns the currently sounding frequency.
func (o *Oscillator) Frequency() float64 {
	return o.frequency
}

// Reset returns the phase to zero.
func (o *Oscillator) Reset() {
	o.phase = 0
	o.frequency = o.target
}

// Next generates one sample and advances the phase.
func (o *Oscillator) Next() float32 {
	o.frequency = o.target + (o.frequency-o.target)*o.glideCoef

	var sample float32
	switch o.waveform {
	case WaveSine:
		sample = float32(math.Sin(2 * math.Pi * o.phase))
	case WaveSaw:
		sample = float32(2*o.phase - 1)
	case WaveTriangle:
		if o.phase < 0.5 {
			sample = float32(4*o.phase - 1)
		} else {
			sample = float32(3 - 4*o.phase)
		}
	case WaveSquare:
		if o.phase < 0.5 {
			sample = 1
		} else {
			sample = -1
		}
	}

	o.phase += o.frequency / o.sampleRate
	if o.phase >= 1 {
		o.phase -= math.Floor(o.phase)
	}
	return sample
}

// Process fills buffer with samples - no allocations.
func (o *Oscillator) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] = o.Next()
	}
}

// DetuneRatio converts a detune in cents to a frequency ratio.
func DetuneRatio(cents float64) float64 {
	return math.Pow(2, cents/1200)
}
