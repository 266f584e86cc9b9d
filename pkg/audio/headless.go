//go:build headless

package audio

// OtoOutput is the inert headless playback stub.
type OtoOutput struct {
	source  Renderer
	started bool
}

// NewOtoOutput returns a stub output that discards audio.
func NewOtoOutput(sampleRate int) (*OtoOutput, error) {
	return &OtoOutput{}, nil
}

// SetSource attaches the renderer.
func (o *OtoOutput) SetSource(r Renderer) {
	o.source = r
}

// Read reports the requested bytes as written.
func (o *OtoOutput) Read(p []byte) (int, error) {
	return len(p), nil
}

// Start marks playback as running.
func (o *OtoOutput) Start() { o.started = true }

// Stop marks playback as stopped.
func (o *OtoOutput) Stop() { o.started = false }

// Close stops the stub.
func (o *OtoOutput) Close() { o.started = false }

// IsStarted reports whether playback is running.
func (o *OtoOutput) IsStarted() bool { return o.started }

// InputCapture is the inert headless capture stub.
type InputCapture struct{}

// NewInputCapture returns a stub capture that never produces blocks.
func NewInputCapture(sampleRate float64, sink func(block []float32)) (*InputCapture, error) {
	return &InputCapture{}, nil
}

// Start is a no-op.
func (c *InputCapture) Start() error { return nil }

// Stop is a no-op.
func (c *InputCapture) Stop() {}

// Close is a no-op.
func (c *InputCapture) Close() {}
