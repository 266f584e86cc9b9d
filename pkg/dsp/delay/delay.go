// Package delay provides the delay line and feedback delay effect.
package delay

import "math"

// Line is a delay line with linear-interpolated reads.
type Line struct {
	buffer     []float32
	size       int
	writePos   int
	sampleRate float64
}

// NewLine creates a delay line holding up to maxDelaySeconds of audio.
func NewLine(maxDelaySeconds, sampleRate float64) *Line {
	size := int(maxDelaySeconds*sampleRate) + 1
	return &Line{
		buffer:     make([]float32, size),
		size:       size,
		sampleRate: sampleRate,
	}
}

// Reset clears the delay buffer.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// Write pushes a sample into the line.
func (d *Line) Write(sample float32) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= d.size {
		d.writePos = 0
	}
}

// Read returns the sample delaySamples behind the write head, with linear
// interpolation for fractional delays.
func (d *Line) Read(delaySamples float64) float32 {
	if delaySamples < 0 {
		delaySamples = 0
	}
	if max := float64(d.size - 1); delaySamples > max {
		delaySamples = max
	}

	readPos := float64(d.writePos) - delaySamples
	if readPos < 0 {
		readPos += float64(d.size)
	}

	idx := int(readPos)
	frac := float32(readPos - float64(idx))
	s1 := d.buffer[idx%d.size]
	s2 := d.buffer[(idx+1)%d.size]
	return s1*(1-frac) + s2*frac
}

// Feedback is the delay effect in the shared chain: a delay line with a
// feedback path, a smoothed delay time, and an output level.
type Feedback struct {
	line       *Line
	sampleRate float64

	delaySamples  float64 // smoothed, currently applied
	targetSamples float64
	smoothCoef    float64

	feedback float32
	level    float32
}

// NewFeedback creates a feedback delay holding up to maxDelaySeconds.
func NewFeedback(maxDelaySeconds, sampleRate float64) *Feedback {
	f := &Feedback{
		line:          NewLine(maxDelaySeconds, sampleRate),
		sampleRate:    sampleRate,
		delaySamples:  0.25 * sampleRate,
		targetSamples: 0.25 * sampleRate,
		feedback:      0.3,
		level:         0.5,
	}
	f.smoothCoef = math.Exp(-1.0 / (0.05 * sampleRate))
	return f
}

// SetTimeMs retargets the delay time in milliseconds. The change is
// smoothed to avoid pitch artifacts while the time slews.
func (f *Feedback) SetTimeMs(ms float64) {
	f.targetSamples = math.Max(1, ms*f.sampleRate/1000.0)
}

// SetFeedback sets the feedback amount (0-0.95).
func (f *Feedback) SetFeedback(fb float64) {
	f.feedback = float32(math.Max(0, math.Min(0.95, fb)))
}

// SetLevel sets the wet output level.
func (f *Feedback) SetLevel(level float64) {
	f.level = float32(math.Max(0, math.Min(1, level)))
}

// Reset clears the delay state.
func (f *Feedback) Reset() {
	f.line.Reset()
	f.delaySamples = f.targetSamples
}

// Next processes one input sample and returns the wet output.
func (f *Feedback) Next(input float32) float32 {
	f.delaySamples = f.targetSamples + (f.delaySamples-f.targetSamples)*f.smoothCoef

	delayed := f.line.Read(f.delaySamples)
	f.line.Write(input + delayed*f.feedback)
	return delayed * f.level
}

// ProcessAdd adds the wet signal for in into out - no allocations.
func (f *Feedback) ProcessAdd(in, out []float32) {
	for i := range in {
		out[i] += f.Next(in[i])
	}
}
