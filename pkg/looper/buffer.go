// Package looper implements live loop recording: capture of the shared
// output into a fixed-length buffer, looped playback, and sample-accurate
// overdub layering with cyclic wraparound.
package looper

import (
	"errors"
	"math"

	"github.com/tactus-audio/tactus/pkg/dsp/mix"
)

// OverdubGain is the attenuation applied to each overdub layer before the
// additive mix. Combined with the hard clip it allows unlimited layers at
// the cost of gradual headroom loss.
const OverdubGain = 0.6

// ErrEmptyClip is returned when an overdub commit has no captured audio.
var ErrEmptyClip = errors.New("looper: empty overdub clip")

// Buffer is an immutable multi-channel loop buffer. It is replaced as a
// whole unit on every overdub commit, never mutated in place.
type Buffer struct {
	channels [][]float32
	samples  int
}

// NewBuffer creates a silent buffer.
func NewBuffer(channelCount, sampleCount int) *Buffer {
	ch := make([][]float32, channelCount)
	for i := range ch {
		ch[i] = make([]float32, sampleCount)
	}
	return &Buffer{channels: ch, samples: sampleCount}
}

// ChannelCount returns the number of channels.
func (b *Buffer) ChannelCount() int {
	return len(b.channels)
}

// Samples returns the per-channel sample count.
func (b *Buffer) Samples() int {
	return b.samples
}

// Channel returns one channel's samples.
func (b *Buffer) Channel(i int) []float32 {
	return b.channels[i]
}

// Sample reads one sample, treating a missing channel as silent.
func (b *Buffer) Sample(channel, i int) float32 {
	if channel >= len(b.channels) {
		return 0
	}
	return b.channels[channel][i]
}

// clone copies the buffer, widening to channelCount channels if needed.
func (b *Buffer) clone(channelCount int) *Buffer {
	if channelCount < len(b.channels) {
		channelCount = len(b.channels)
	}
	out := NewBuffer(channelCount, b.samples)
	for i, ch := range b.channels {
		copy(out.channels[i], ch)
	}
	return out
}

// MixOverdub folds an overdub clip onto an existing loop and returns the
// result as a new buffer. startSample is the loop phase (in samples) at
// which the overdub began; clip indices wrap around the loop length, so a
// clip longer than one cycle layers onto itself. The existing buffer is
// never modified: the caller publishes the result with a single swap only
// after the mix has fully completed.
func MixOverdub(existing *Buffer, clip *Buffer, startSample int) (*Buffer, error) {
	if clip == nil || clip.samples == 0 || clip.ChannelCount() == 0 {
		return nil, ErrEmptyClip
	}

	out := existing.clone(clip.ChannelCount())
	if out.samples == 0 {
		return nil, ErrEmptyClip
	}

	for c := 0; c < out.ChannelCount(); c++ {
		// A mono clip layers onto every output channel.
		src := clip.channels[c%clip.ChannelCount()]
		mix.AddScaledClampedAt(out.channels[c], src, startSample, OverdubGain)
	}
	return out, nil
}

// samplesForDuration converts a duration to a sample count.
func samplesForDuration(seconds, sampleRate float64) int {
	return int(math.Round(seconds * sampleRate))
}
