// Package scale maps normalized 2-D touch positions to pitched frequencies.
package scale

import "math"

// ReferenceHz is the frequency of octave 0 (C0).
const ReferenceHz = 16.35

// BaseOctave anchors the playing surface around the low-mid register.
const BaseOctave = 3

// pentatonic is the interval set used for pitch quantization, in semitones.
var pentatonic = [5]float64{0, 2, 4, 7, 9}

// octaveAnchors are the only valid positions for the octave parameter.
// Intermediate values snap to the nearest anchor so the octave control
// never produces a detuned in-between range.
var octaveAnchors = [7]float64{0.0, 0.2, 0.35, 0.5, 0.65, 0.8, 1.0}

// anchorSemitones holds the semitone offset for each octave anchor.
var anchorSemitones = [7]float64{-24, -12, -6, 0, 6, 12, 24}

// Frequency maps a touch position and octave parameter to a frequency in Hz.
// x selects one of the five pentatonic pitch classes, y selects one of two
// octave bands, and octaveParam (snapped to an anchor) shifts the whole
// surface by a fixed semitone offset.
func Frequency(x, y, octaveParam float64) float64 {
	interval := pentatonic[pitchClassIndex(x)]
	octave := octaveBand(y) + BaseOctave
	semitones := interval + float64(octave)*12 + OctaveSemitones(octaveParam)
	return ReferenceHz * math.Pow(2, semitones/12)
}

// QuantizeOctave snaps an octave parameter value to the nearest anchor.
// Ties resolve to the first minimal distance in anchor order. Quantizing an
// anchor returns that anchor.
func QuantizeOctave(v float64) float64 {
	best := octaveAnchors[0]
	bestDist := math.Abs(v - best)
	for _, a := range octaveAnchors[1:] {
		if d := math.Abs(v - a); d < bestDist {
			best = a
			bestDist = d
		}
	}
	return best
}

// OctaveSemitones returns the semitone offset for an octave parameter value,
// snapping to the nearest anchor first.
func OctaveSemitones(v float64) float64 {
	idx := 0
	bestDist := math.Abs(v - octaveAnchors[0])
	for i, a := range octaveAnchors[1:] {
		if d := math.Abs(v - a); d < bestDist {
			idx = i + 1
			bestDist = d
		}
	}
	return anchorSemitones[idx]
}

// pitchClassIndex selects a pentatonic index from a normalized x position.
func pitchClassIndex(x float64) int {
	idx := int(math.Floor(x * 5))
	if idx < 0 {
		idx = 0
	}
	if idx > 4 {
		idx = 4
	}
	return idx
}

// octaveBand selects the octave band (0 or 1) from a normalized y position.
func octaveBand(y float64) int {
	band := int(math.Floor(y * 2))
	if band < 0 {
		band = 0
	}
	if band > 1 {
		band = 1
	}
	return band
}
