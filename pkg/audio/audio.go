// Package audio binds the render path to the host sound hardware: realtime
// stereo playback through oto and live input capture through portaudio.
// Building with the headless tag swaps both for inert stubs.
package audio

import "math"

// Renderer is the audio source the output backend pulls from. RenderBlock
// fills both channels completely and must be realtime-safe.
type Renderer interface {
	RenderBlock(outL, outR []float32)
}

// Output is a started/stopped playback backend.
type Output interface {
	Start()
	Stop()
	Close()
	IsStarted() bool
}

// bytesPerFrame is one stereo frame of little-endian float32 samples.
const bytesPerFrame = 8

// interleaveStereo packs planar stereo float32 samples into little-endian
// bytes, frame by frame.
func interleaveStereo(dst []byte, l, r []float32) {
	for i := range l {
		putFloat32LE(dst[i*bytesPerFrame:], l[i])
		putFloat32LE(dst[i*bytesPerFrame+4:], r[i])
	}
}

func putFloat32LE(b []byte, f float32) {
	bits := math.Float32bits(f)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

func zeroFill(p []byte) {
	for i := range p {
		p[i] = 0
	}
}
