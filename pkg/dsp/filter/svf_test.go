package filter

import (
	"math"
	"testing"
)

const sampleRate = 48000.0

// rms of a processed sine at the given frequency.
func filteredRMS(f *SVF, freq float64) float64 {
	var sum float64
	n := int(sampleRate / 2)
	phase := 0.0
	for i := 0; i < n; i++ {
		in := float32(math.Sin(2 * math.Pi * phase))
		out := f.Lowpass(in)
		// Skip the settling half.
		if i > n/2 {
			sum += float64(out) * float64(out)
		}
		phase += freq / sampleRate
	}
	return math.Sqrt(sum / float64(n/2))
}

func TestLowpassPassesLowFrequencies(t *testing.T) {
	f := NewSVF(sampleRate)
	f.SetCutoff(2000)
	f.SetResonance(0.707)

	rms := filteredRMS(f, 100)
	// A 100Hz tone through a 2kHz lowpass should be nearly unity.
	if rms < 0.6 {
		t.Errorf("low frequency attenuated: rms = %f", rms)
	}
}

func TestLowpassAttenuatesHighFrequencies(t *testing.T) {
	f := NewSVF(sampleRate)
	f.SetCutoff(500)
	f.SetResonance(0.707)

	rms := filteredRMS(f, 8000)
	if rms > 0.1 {
		t.Errorf("high frequency not attenuated: rms = %f", rms)
	}
}

func TestCutoffGlide(t *testing.T) {
	f := NewSVF(sampleRate)
	f.SetCutoff(500)
	f.GlideCutoffTo(5000)

	f.Lowpass(0)
	c := f.Cutoff()
	if c <= 500 || c >= 5000 {
		t.Errorf("cutoff after one glide step = %f, want between 500 and 5000", c)
	}

	for i := 0; i < int(sampleRate); i++ {
		f.Lowpass(0)
	}
	if got := f.Cutoff(); math.Abs(got-5000) > 1 {
		t.Errorf("cutoff after glide = %f, want 5000", got)
	}
}

func TestCutoffClamped(t *testing.T) {
	f := NewSVF(sampleRate)
	f.SetCutoff(1e9)
	if f.Cutoff() >= sampleRate/2 {
		t.Errorf("cutoff not clamped below nyquist: %f", f.Cutoff())
	}
	f.SetCutoff(-10)
	if f.Cutoff() < 20 {
		t.Errorf("cutoff not clamped above 20Hz: %f", f.Cutoff())
	}
}

func TestResetClearsState(t *testing.T) {
	f := NewSVF(sampleRate)
	f.SetCutoff(1000)
	for i := 0; i < 100; i++ {
		f.Lowpass(1.0)
	}
	f.Reset()
	if out := f.Lowpass(0); out != 0 {
		t.Errorf("output after reset = %f, want 0", out)
	}
}
