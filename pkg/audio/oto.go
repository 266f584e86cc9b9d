//go:build !headless

package audio

import (
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// rendererBox wraps the source interface so the hot path can swap it with
// one atomic pointer store.
type rendererBox struct {
	r Renderer
}

// OtoOutput drives the host sound device through oto. The device pulls
// samples by calling Read from its own goroutine; the renderer pointer is
// read atomically there so attaching a source never blocks playback.
type OtoOutput struct {
	ctx    *oto.Context
	player *oto.Player
	source atomic.Pointer[rendererBox]

	// Pre-allocated planar scratch for the Read hot path.
	bufL []float32
	bufR []float32

	mu      sync.Mutex // setup and transport only
	started bool
}

// NewOtoOutput opens the default output device for stereo float32 playback
// and blocks until the device is ready.
func NewOtoOutput(sampleRate int) (*OtoOutput, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	o := &OtoOutput{
		ctx:  ctx,
		bufL: make([]float32, 1024),
		bufR: make([]float32, 1024),
	}
	o.player = ctx.NewPlayer(o)
	return o, nil
}

// SetSource attaches the renderer the device pulls from. Safe to call while
// playing; a nil-source output plays silence.
func (o *OtoOutput) SetSource(r Renderer) {
	o.source.Store(&rendererBox{r: r})
}

// Read renders the next chunk of interleaved stereo float32 audio. Called
// by the oto device goroutine.
func (o *OtoOutput) Read(p []byte) (int, error) {
	box := o.source.Load()
	if box == nil || box.r == nil {
		zeroFill(p)
		return len(p), nil
	}

	frames := len(p) / bytesPerFrame
	if len(o.bufL) < frames {
		o.bufL = make([]float32, frames)
		o.bufR = make([]float32, frames)
	}
	l := o.bufL[:frames]
	r := o.bufR[:frames]

	box.r.RenderBlock(l, r)
	interleaveStereo(p, l, r)
	return frames * bytesPerFrame, nil
}

// Start begins playback.
func (o *OtoOutput) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.started && o.player != nil {
		o.player.Play()
		o.started = true
	}
}

// Stop pauses playback; the device stays open.
func (o *OtoOutput) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started && o.player != nil {
		o.player.Pause()
		o.started = false
	}
}

// Close releases the device.
func (o *OtoOutput) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	o.started = false
}

// IsStarted reports whether playback is running.
func (o *OtoOutput) IsStarted() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.started
}
