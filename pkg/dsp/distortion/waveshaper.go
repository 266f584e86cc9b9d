// Package distortion provides the waveshaping stage of the shared chain.
package distortion

import "math"

// Waveshaper applies a fixed sigmoid transfer curve parameterized by drive,
// with independent wet and dry taps. Every voice feeds both taps, so the
// distortion amount is controlled globally without per-voice routing.
type Waveshaper struct {
	drive float64
	wet   float32
	dry   float32
}

// NewWaveshaper creates a waveshaper with a clean default mix.
func NewWaveshaper() *Waveshaper {
	return &Waveshaper{
		drive: 20,
		wet:   0,
		dry:   1,
	}
}

// SetDrive sets the distortion drive.
func (w *Waveshaper) SetDrive(drive float64) {
	w.drive = math.Max(0, drive)
}

// SetWet sets the shaped tap level.
func (w *Waveshaper) SetWet(level float64) {
	w.wet = float32(math.Max(0, math.Min(1, level)))
}

// SetDry sets the unshaped tap level.
func (w *Waveshaper) SetDry(level float64) {
	w.dry = float32(math.Max(0, math.Min(1, level)))
}

// shape applies the transfer curve to one sample.
func (w *Waveshaper) shape(x float64) float64 {
	k := w.drive
	deg := math.Pi / 180
	return (3 + k) * x * 20 * deg / (math.Pi + k*math.Abs(x))
}

// Next processes one sample through both taps.
func (w *Waveshaper) Next(input float32) float32 {
	shaped := float32(w.shape(float64(input)))
	return input*w.dry + shaped*w.wet
}

// Process shapes buffer in place - no allocations.
func (w *Waveshaper) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] = w.Next(buffer[i])
	}
}
