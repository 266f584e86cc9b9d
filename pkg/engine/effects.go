package engine

import (
	"github.com/tactus-audio/tactus/pkg/dsp/delay"
	"github.com/tactus-audio/tactus/pkg/dsp/distortion"
	"github.com/tactus-audio/tactus/pkg/dsp/modulation"
	"github.com/tactus-audio/tactus/pkg/dsp/reverb"
)

// EffectState is the explicit, fully derived state of the shared chain.
// It is computed from the parameter surface and handed to the chain as a
// value, so no effect settings are aliased between voices or threads.
type EffectState struct {
	DistortionDrive float64
	DistortionWet   float64
	DistortionDry   float64

	DelayTimeMs   float64
	DelayLevel    float64
	DelayFeedback float64

	ChorusLevel float64
	ChorusDepth float64 // seconds

	ReverbLevel float64
}

// DeriveEffectState maps the control values onto effect settings.
func DeriveEffectState(grime, flow, shimmer, depth float64) EffectState {
	return EffectState{
		DistortionDrive: 20 + 200*grime,
		DistortionWet:   grime,
		DistortionDry:   1 - grime,

		DelayTimeMs:   50 + 450*flow,
		DelayLevel:    0.8 * flow,
		DelayFeedback: 0.85 * flow,

		ChorusLevel: 0.8 * shimmer,
		ChorusDepth: 0.01 * shimmer,

		ReverbLevel: 0.5 * depth,
	}
}

// EffectChain is the fixed shared topology every voice feeds:
// distortion (wet+dry taps) -> {delay, chorus} -> reverb -> output.
// It is owned by the render path; the control path reaches it only through
// parameter writes picked up at block boundaries.
type EffectChain struct {
	shaper *distortion.Waveshaper
	delay  *delay.Feedback
	chorus *modulation.Chorus
	reverb *reverb.Reverb

	appliedVersion uint64
}

// maxDelaySeconds covers the full flow range (50-500ms) with headroom.
const maxDelaySeconds = 1.0

// NewEffectChain builds the chain for one session.
func NewEffectChain(sampleRate float64) *EffectChain {
	c := &EffectChain{
		shaper: distortion.NewWaveshaper(),
		delay:  delay.NewFeedback(maxDelaySeconds, sampleRate),
		chorus: modulation.NewChorus(sampleRate),
		reverb: reverb.New(sampleRate),
	}
	c.Apply(DeriveEffectState(
		paramDefaults[paramGrime],
		paramDefaults[paramFlow],
		paramDefaults[paramShimmer],
		paramDefaults[paramDepth],
	))
	return c
}

// Apply pushes a derived state into the processors.
func (c *EffectChain) Apply(s EffectState) {
	c.shaper.SetDrive(s.DistortionDrive)
	c.shaper.SetWet(s.DistortionWet)
	c.shaper.SetDry(s.DistortionDry)

	c.delay.SetTimeMs(s.DelayTimeMs)
	c.delay.SetLevel(s.DelayLevel)
	c.delay.SetFeedback(s.DelayFeedback)

	c.chorus.SetLevel(s.ChorusLevel)
	c.chorus.SetDepth(s.ChorusDepth)

	c.reverb.SetLevel(s.ReverbLevel)
}

// ApplyParams re-derives and applies effect state when the parameter
// surface has changed since the last block.
func (c *EffectChain) ApplyParams(p *Params) {
	v := p.Version()
	if v == c.appliedVersion {
		return
	}
	c.appliedVersion = v
	c.Apply(DeriveEffectState(p.Grime(), p.Flow(), p.Shimmer(), p.Depth()))
}

// Reset clears all time-based effect state.
func (c *EffectChain) Reset() {
	c.delay.Reset()
	c.chorus.Reset()
	c.reverb.Reset()
}

// Process runs the mono voice mix through the chain into stereo outputs.
// outL/outR are overwritten - no allocations.
func (c *EffectChain) Process(voiceMix, outL, outR []float32) {
	for i := range voiceMix {
		s := c.shaper.Next(voiceMix[i])

		// Post-distortion signal feeds the delay and chorus stage; the
		// reverb sits after that stage, so echoes and chorus wet carry a
		// reverb tail. The reverb input is mono: fold the chorus channels.
		d := c.delay.Next(s)
		cl, cr := c.chorus.Next(s)
		rl, rr := c.reverb.Next(s + d + 0.5*(cl+cr))

		outL[i] = s + d + cl + rl
		outR[i] = s + d + cr + rr
	}
}
