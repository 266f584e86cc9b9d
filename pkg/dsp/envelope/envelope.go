// Package envelope provides the amplitude envelope shaping each touch voice.
package envelope

import "math"

// Stage represents the current envelope stage.
type Stage int

const (
	// StageIdle: the envelope is silent and the voice slot is reclaimable
	StageIdle Stage = iota
	// StageAttack: linear ramp from zero to full amplitude
	StageAttack
	// StageSustain: exponential settle onto the sustained body of the tone
	StageSustain
	// StageRelease: exponential ramp to silence
	StageRelease
)

// Touch is the envelope used by the voice engine: a fast linear attack to
// full amplitude, an exponential settle to the sustained body, and an
// exponential release ramp after which the envelope reports idle.
//
// A release is never skipped: the only path from a sounding stage to idle
// runs through StageRelease (or an explicit Reset on voice steal).
type Touch struct {
	sampleRate float64

	attack  float64 // seconds to full amplitude
	sustain float64 // sustained level, 0-1
	settle  float64 // time constant of the post-attack settle
	release float64 // total release ramp length in seconds

	attackStep  float64
	settleCoef  float64
	releaseCoef float64

	stage Stage
	value float64
}

// releaseSpan is how many time constants make up the release ramp; the ramp
// is considered complete once the value decays below silenceThreshold.
const releaseSpan = 5.0

const silenceThreshold = 0.005

// NewTouch creates a touch envelope with the engine defaults: 10 ms attack,
// settle to 0.7 by ~100 ms, 200 ms release.
func NewTouch(sampleRate float64) *Touch {
	e := &Touch{
		sampleRate: sampleRate,
		attack:     0.01,
		sustain:    0.7,
		settle:     0.03,
		release:    0.2,
	}
	e.updateCoefficients()
	return e
}

// SetAttack sets the linear attack time in seconds.
func (e *Touch) SetAttack(seconds float64) {
	e.attack = math.Max(0.001, seconds)
	e.updateCoefficients()
}

// SetSustain sets the sustained level (0-1).
func (e *Touch) SetSustain(level float64) {
	e.sustain = math.Max(0.0, math.Min(1.0, level))
}

// SetRelease sets the release ramp length in seconds.
func (e *Touch) SetRelease(seconds float64) {
	e.release = math.Max(0.001, seconds)
	e.updateCoefficients()
}

func (e *Touch) updateCoefficients() {
	e.attackStep = 1.0 / (e.attack * e.sampleRate)
	e.settleCoef = calcCoef(e.settle, e.sampleRate)
	e.releaseCoef = calcCoef(e.release/releaseSpan, e.sampleRate)
}

// calcCoef calculates the one-pole coefficient for a time constant.
func calcCoef(timeSeconds, sampleRate float64) float64 {
	if timeSeconds <= 0 {
		return 0
	}
	return math.Exp(-1.0 / (timeSeconds * sampleRate))
}

// Trigger starts the envelope from its current value.
func (e *Touch) Trigger() {
	e.stage = StageAttack
}

// Release starts the release ramp. Releasing an idle or already-releasing
// envelope is a no-op.
func (e *Touch) Release() {
	if e.stage != StageIdle {
		e.stage = StageRelease
	}
}

// Reset silences the envelope immediately. Used on voice steal.
func (e *Touch) Reset() {
	e.stage = StageIdle
	e.value = 0
}

// IsActive reports whether the envelope is producing output.
func (e *Touch) IsActive() bool {
	return e.stage != StageIdle
}

// GetStage returns the current stage.
func (e *Touch) GetStage() Stage {
	return e.stage
}

// Next generates the next envelope value.
func (e *Touch) Next() float32 {
	switch e.stage {
	case StageAttack:
		e.value += e.attackStep
		if e.value >= 1.0 {
			e.value = 1.0
			e.stage = StageSustain
		}

	case StageSustain:
		e.value = e.sustain + (e.value-e.sustain)*e.settleCoef

	case StageRelease:
		e.value *= e.releaseCoef
		if e.value <= silenceThreshold {
			e.value = 0
			e.stage = StageIdle
		}

	case StageIdle:
		e.value = 0
	}
	return float32(e.value)
}

// ProcessMultiply multiplies buffer by envelope values - no allocations.
func (e *Touch) ProcessMultiply(buffer []float32) {
	for i := range buffer {
		buffer[i] *= e.Next()
	}
}
