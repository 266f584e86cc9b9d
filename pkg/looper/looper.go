package looper

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/tactus-audio/tactus/pkg/debug"
)

// Status is the loop session state.
type Status int32

const (
	// StatusIdle: no loop, nothing recording
	StatusIdle Status = iota
	// StatusRecordingNew: capturing the first take
	StatusRecordingNew
	// StatusRecordingOverdub: capturing a layer while the loop plays
	StatusRecordingOverdub
	// StatusPlaying: looping playback
	StatusPlaying
	// StatusPaused: loop retained, playback frozen
	StatusPaused
)

// MinLoopSeconds is the shortest committable loop.
const MinLoopSeconds = 0.1

// DefaultMaxLoopSeconds bounds the first take.
const DefaultMaxLoopSeconds = 30.0

// volumeSmoothSeconds is the time constant for playback volume changes.
const volumeSmoothSeconds = 0.02

// Config carries the loop engine construction parameters.
type Config struct {
	SampleRate     float64
	MaxLoopSeconds float64
	Logger         *debug.Logger
}

// State is the control-surface snapshot of the session.
type State struct {
	IsRecording bool
	IsPlaying   bool
	HasLoop     bool
	Duration    float64
	Volume      float64
}

// capture is the preallocated stereo take buffer. The render path appends;
// the control path allocates, snapshots and discards.
type capture struct {
	left  []float32
	right []float32
	n     atomic.Int64
}

func newCapture(samples int) *capture {
	return &capture{
		left:  make([]float32, samples),
		right: make([]float32, samples),
	}
}

// append copies a live block into the take. Material past the buffer end
// is dropped.
func (c *capture) append(liveL, liveR []float32) {
	n := c.n.Load()
	for i := range liveL {
		if int(n) >= len(c.left) {
			break
		}
		c.left[n] = liveL[i]
		c.right[n] = liveR[i]
		n++
	}
	c.n.Store(n)
}

// Looper owns the loop buffer and the record/playback state machine.
// Control-path methods lock a mutex; the render path (Process) reads only
// atomics and never blocks. The loop buffer is swapped as a whole unit.
type Looper struct {
	sampleRate     float64
	minLoopSamples int
	maxLoopSamples int
	logger         *debug.Logger

	status  atomic.Int32
	buffer  atomic.Pointer[Buffer]
	capture atomic.Pointer[capture]
	playPos atomic.Int64
	volBits atomic.Uint64

	// Render-owned smoothed volume.
	vol     float32
	volCoef float32

	mu           sync.Mutex
	overdubStart int64
	epoch        uint64 // invalidates in-flight overdub commits after Clear
	mixWG        sync.WaitGroup
	ready        bool
}

// New creates a loop engine.
func New(cfg Config) *Looper {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 48000
	}
	if cfg.MaxLoopSeconds <= 0 {
		cfg.MaxLoopSeconds = DefaultMaxLoopSeconds
	}
	if cfg.Logger == nil {
		cfg.Logger = debug.Default()
	}
	l := &Looper{
		sampleRate:     cfg.SampleRate,
		minLoopSamples: samplesForDuration(MinLoopSeconds, cfg.SampleRate),
		maxLoopSamples: samplesForDuration(cfg.MaxLoopSeconds, cfg.SampleRate),
		logger:         cfg.Logger,
		ready:          true,
	}
	l.volCoef = float32(1 - math.Exp(-1/(volumeSmoothSeconds*cfg.SampleRate)))
	l.SetVolume(0.8)
	l.vol = 0.8
	return l
}

// Status returns the current session status.
func (l *Looper) Status() Status {
	return Status(l.status.Load())
}

// StartRecording arms capture. While the loop is playing it begins an
// overdub that taps only the live input, so the loop's own playback is
// never re-captured. From any non-playing state it begins a new take,
// replacing an existing (paused) loop when the take commits. Returns
// false when the engine is not ready or a take is already recording.
func (l *Looper) StartRecording() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.ready {
		return false
	}

	switch l.Status() {
	case StatusIdle, StatusPaused:
		l.capture.Store(newCapture(l.maxLoopSamples))
		l.status.Store(int32(StatusRecordingNew))
		return true

	case StatusPlaying:
		// Overdub clips may run past the loop end; wraparound folds up to
		// two full extra cycles, anything longer is dropped at capture.
		l.capture.Store(newCapture(2 * l.maxLoopSamples))
		l.overdubStart = l.playPos.Load()
		l.status.Store(int32(StatusRecordingOverdub))
		return true
	}
	return false
}

// StopRecording commits the active take. A new take fixes the loop
// duration (clamped to [MinLoopSeconds, max]) and starts playback at phase
// zero. An overdub never changes the duration: the captured clip is mixed
// into the loop off the render path and published with one buffer swap,
// while playback runs on uninterrupted.
func (l *Looper) StopRecording() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.Status() {
	case StatusRecordingNew:
		take := l.capture.Swap(nil)
		l.commitNewLoop(take)
		return true

	case StatusRecordingOverdub:
		take := l.capture.Swap(nil)
		l.status.Store(int32(StatusPlaying))
		l.spawnOverdubCommit(take)
		return true
	}
	return false
}

// commitNewLoop builds the loop buffer from a first take.
func (l *Looper) commitNewLoop(take *capture) {
	captured := 0
	if take != nil {
		captured = int(take.n.Load())
	}

	samples := captured
	if samples < l.minLoopSamples {
		samples = l.minLoopSamples
	}
	if samples > l.maxLoopSamples {
		samples = l.maxLoopSamples
	}

	buf := NewBuffer(2, samples)
	if take != nil {
		n := captured
		if n > samples {
			n = samples
		}
		copy(buf.Channel(0), take.left[:n])
		copy(buf.Channel(1), take.right[:n])
	}

	// An overdub commit still in flight targets the replaced loop; it
	// must not land on the new one.
	l.epoch++
	l.buffer.Store(buf)
	l.playPos.Store(0)
	l.status.Store(int32(StatusPlaying))
	l.logger.Infof("loop committed: %0.2fs", float64(samples)/l.sampleRate)
}

// spawnOverdubCommit mixes a captured overdub into the loop on a worker
// goroutine. The swap is guarded by the epoch so a Clear issued while the
// mix runs wins: the stale result is dropped, never resurrected.
func (l *Looper) spawnOverdubCommit(take *capture) {
	existing := l.buffer.Load()
	if existing == nil {
		l.logger.Warnf("overdub commit with no loop buffer, dropped")
		return
	}

	var clip *Buffer
	if take != nil {
		n := int(take.n.Load())
		clip = &Buffer{
			channels: [][]float32{take.left[:n], take.right[:n]},
			samples:  n,
		}
	}
	start := int(l.overdubStart % int64(existing.Samples()))
	epoch := l.epoch

	l.mixWG.Add(1)
	go func() {
		defer l.mixWG.Done()
		mixed, err := MixOverdub(existing, clip, start)
		if err != nil {
			l.logger.Errorf("overdub mix failed: %v", err)
			return
		}
		l.mu.Lock()
		if l.epoch == epoch {
			l.buffer.Store(mixed)
		}
		l.mu.Unlock()
	}()
}

// Sync waits for any in-flight overdub commit. Call before teardown or
// before inspecting the buffer from a non-render context.
func (l *Looper) Sync() {
	l.mixWG.Wait()
}

// TogglePlayback flips between playing and paused. Returns the resulting
// playing state; false when there is no loop or a take is recording.
func (l *Looper) TogglePlayback() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.Status() {
	case StatusPlaying:
		l.status.Store(int32(StatusPaused))
		return false
	case StatusPaused:
		l.status.Store(int32(StatusPlaying))
		return true
	}
	return false
}

// SetVolume sets the playback volume target. The render path slews toward
// it so volume changes never step.
func (l *Looper) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	l.volBits.Store(math.Float64bits(v))
}

// Volume returns the playback volume target.
func (l *Looper) Volume() float64 {
	return math.Float64frombits(l.volBits.Load())
}

// Clear stops recording and playback and discards the loop. Idempotent.
func (l *Looper) Clear() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.epoch++
	l.capture.Store(nil)
	l.buffer.Store(nil)
	l.playPos.Store(0)
	l.overdubStart = 0
	l.status.Store(int32(StatusIdle))
	return true
}

// Close tears the loop engine down.
func (l *Looper) Close() {
	l.Clear()
	l.Sync()
	l.mu.Lock()
	l.ready = false
	l.mu.Unlock()
}

// Duration returns the committed loop duration in seconds.
func (l *Looper) Duration() float64 {
	buf := l.buffer.Load()
	if buf == nil {
		return 0
	}
	return float64(buf.Samples()) / l.sampleRate
}

// PlaybackPosition returns the phase within the loop cycle in [0, 1).
// Frozen while paused, zero without a loop.
func (l *Looper) PlaybackPosition() float64 {
	buf := l.buffer.Load()
	if buf == nil || buf.Samples() == 0 {
		return 0
	}
	return float64(l.playPos.Load()) / float64(buf.Samples())
}

// GetState returns the control-surface snapshot.
func (l *Looper) GetState() State {
	st := l.Status()
	return State{
		IsRecording: st == StatusRecordingNew || st == StatusRecordingOverdub,
		IsPlaying:   st == StatusPlaying || st == StatusRecordingOverdub,
		HasLoop:     l.buffer.Load() != nil,
		Duration:    l.Duration(),
		Volume:      l.Volume(),
	}
}

// Process is the render-path hook: it writes the final output (live mix
// plus loop playback), advances the loop phase, and appends the live tap
// to any armed capture. Never allocates, locks, or blocks.
func (l *Looper) Process(outL, outR, liveL, liveR []float32) {
	copy(outL, liveL)
	copy(outR, liveR)

	if take := l.capture.Load(); take != nil {
		take.append(liveL, liveR)
	}

	st := Status(l.status.Load())
	if st != StatusPlaying && st != StatusRecordingOverdub {
		return
	}
	buf := l.buffer.Load()
	if buf == nil || buf.Samples() == 0 {
		return
	}

	chL := buf.Channel(0)
	chR := chL
	if buf.ChannelCount() > 1 {
		chR = buf.Channel(1)
	}
	n := int64(buf.Samples())
	target := float32(l.Volume())

	pos := l.playPos.Load()
	for i := range outL {
		l.vol += (target - l.vol) * l.volCoef
		outL[i] += chL[pos] * l.vol
		outR[i] += chR[pos] * l.vol
		pos++
		if pos >= n {
			pos = 0
		}
	}
	l.playPos.Store(pos)
}
