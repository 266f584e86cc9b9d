//go:build !headless

package audio

import (
	"sync"

	"github.com/gordonklaus/portaudio"
)

// captureFrames is the portaudio read size; small enough to keep input
// latency under 6ms at 48kHz.
const captureFrames = 256

// InputCapture streams mono audio from the default input device and hands
// each block to a sink function, for layering external sound into a loop.
type InputCapture struct {
	stream *portaudio.Stream
	buf    []float32
	sink   func(block []float32)

	mu      sync.Mutex
	done    chan struct{}
	running bool
}

// NewInputCapture opens the default input device. The sink is called from
// the capture goroutine with a buffer that is reused between calls.
func NewInputCapture(sampleRate float64, sink func(block []float32)) (*InputCapture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	c := &InputCapture{
		buf:  make([]float32, captureFrames),
		sink: sink,
	}
	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, captureFrames, c.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	c.stream = stream
	return c, nil
}

// Start begins pulling input blocks.
func (c *InputCapture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return nil
	}
	if err := c.stream.Start(); err != nil {
		return err
	}
	c.done = make(chan struct{})
	c.running = true
	go c.run(c.done)
	return nil
}

func (c *InputCapture) run(done chan struct{}) {
	for {
		select {
		case <-done:
			return
		default:
		}
		if err := c.stream.Read(); err != nil {
			return
		}
		c.sink(c.buf)
	}
}

// Stop halts capture; the device stays open.
func (c *InputCapture) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	close(c.done)
	c.stream.Stop()
	c.running = false
}

// Close releases the input device and the portaudio runtime.
func (c *InputCapture) Close() {
	c.Stop()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stream != nil {
		c.stream.Close()
		c.stream = nil
		portaudio.Terminate()
	}
}
