package engine

import (
	"github.com/tactus-audio/tactus/pkg/dsp/envelope"
	"github.com/tactus-audio/tactus/pkg/dsp/filter"
	"github.com/tactus-audio/tactus/pkg/dsp/oscillator"
)

// Voice tuning: a detuned second saw thickens the tone, a sub-octave sine
// anchors it.
const (
	detuneCents = 6.0
	subGain     = 0.5
	detuneGain  = 0.5
	voiceGain   = 0.25 // headroom for the pool summing into one mix
)

// Filter scaling with touch y.
const (
	cutoffBase = 400.0
	cutoffSpan = 4600.0
	resoBase   = 1.0
	resoSpan   = 6.0
)

// voice is one synthesis unit: three oscillators, a touch envelope, and a
// lowpass filter. It is owned exclusively by the render path.
type voice struct {
	main *oscillator.Oscillator
	det  *oscillator.Oscillator
	sub  *oscillator.Oscillator
	env  *envelope.Touch
	lp   *filter.SVF

	gen       uint32
	amplitude float32
	startedAt int64 // engine sample clock at trigger
}

func newVoice(sampleRate float64) *voice {
	return &voice{
		main: oscillator.New(sampleRate, oscillator.WaveSaw),
		det:  oscillator.New(sampleRate, oscillator.WaveSaw),
		sub:  oscillator.New(sampleRate, oscillator.WaveSine),
		env:  envelope.NewTouch(sampleRate),
		lp:   filter.NewSVF(sampleRate),
	}
}

// start tunes and triggers the voice.
func (v *voice) start(freq, cutoff, q, amplitude float64, gen uint32, now int64) {
	v.gen = gen
	v.amplitude = float32(amplitude)
	v.startedAt = now

	v.main.SetFrequency(freq)
	v.det.SetFrequency(freq * oscillator.DetuneRatio(detuneCents))
	v.sub.SetFrequency(freq / 2)
	v.lp.SetCutoff(cutoff)
	v.lp.SetResonance(q)
	v.lp.Reset()
	v.env.Trigger()
}

// retarget glides the voice to a new frequency and filter cutoff.
func (v *voice) retarget(freq, cutoff float64) {
	v.main.GlideTo(freq)
	v.det.GlideTo(freq * oscillator.DetuneRatio(detuneCents))
	v.sub.GlideTo(freq / 2)
	v.lp.GlideCutoffTo(cutoff)
}

// release starts the envelope release ramp.
func (v *voice) release() {
	v.env.Release()
}

// forceStop silences the voice immediately, as on a steal.
func (v *voice) forceStop() {
	v.env.Reset()
}

func (v *voice) active() bool {
	return v.env.IsActive()
}

// playing reports whether the voice is in its attack or sustain body, as
// opposed to releasing or silent.
func (v *voice) playing() bool {
	s := v.env.GetStage()
	return s == envelope.StageAttack || s == envelope.StageSustain
}

// renderAdd mixes the voice into the mono mix buffer - no allocations.
func (v *voice) renderAdd(mix []float32) {
	if !v.active() {
		return
	}
	for i := range mix {
		s := v.main.Next() + v.det.Next()*detuneGain + v.sub.Next()*subGain
		s = v.lp.Lowpass(s)
		s *= v.env.Next() * v.amplitude * voiceGain
		mix[i] += s
		if !v.active() {
			break
		}
	}
}

// touchCutoff maps a normalized y position to a filter cutoff in Hz.
func touchCutoff(y float64) float64 {
	return cutoffBase + cutoffSpan*y
}

// touchResonance maps a normalized y position to a filter Q.
func touchResonance(y float64) float64 {
	return resoBase + resoSpan*y
}
