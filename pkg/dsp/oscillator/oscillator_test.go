package oscillator

import (
	"math"
	"testing"
)

func TestSineRange(t *testing.T) {
	osc := New(48000, WaveSine)
	osc.SetFrequency(440)

	for i := 0; i < 48000; i++ {
		s := osc.Next()
		if s < -1.0 || s > 1.0 {
			t.Fatalf("sample %d out of range: %f", i, s)
		}
	}
}

func TestSinePeriod(t *testing.T) {
	sampleRate := 48000.0
	osc := New(sampleRate, WaveSine)
	osc.SetFrequency(1000)

	// After exactly one period the phase should be back near zero, so the
	// sample should be near sin(0).
	period := int(sampleRate / 1000)
	var last float32
	for i := 0; i < period; i++ {
		last = osc.Next()
	}
	_ = last
	s := osc.Next()
	if math.Abs(float64(s)) > 0.01 {
		t.Errorf("sample after one period = %f, want ~0", s)
	}
}

func TestSawShape(t *testing.T) {
	osc := New(48000, WaveSaw)
	osc.SetFrequency(100)
	osc.Reset()

	// Saw should rise monotonically within a cycle.
	prev := osc.Next()
	for i := 0; i < 100; i++ {
		s := osc.Next()
		if s < prev {
			t.Fatalf("saw fell mid-cycle at sample %d: %f -> %f", i, prev, s)
		}
		prev = s
	}
}

func TestGlideSmoothsRetune(t *testing.T) {
	osc := New(48000, WaveSine)
	osc.SetFrequency(220)
	osc.GlideTo(880)

	osc.Next()
	if f := osc.Frequency(); f >= 880 || f <= 220 {
		t.Errorf("frequency after one glide step = %f, want between 220 and 880", f)
	}

	// After several time constants the target should be reached.
	for i := 0; i < 48000; i++ {
		osc.Next()
	}
	if f := osc.Frequency(); math.Abs(f-880) > 1.0 {
		t.Errorf("frequency after glide = %f, want ~880", f)
	}
}

func TestSetFrequencyIsImmediate(t *testing.T) {
	osc := New(48000, WaveSine)
	osc.SetFrequency(330)
	if f := osc.Frequency(); f != 330 {
		t.Errorf("Frequency = %f, want 330", f)
	}
}

func TestDetuneRatio(t *testing.T) {
	if got := DetuneRatio(1200); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("DetuneRatio(1200) = %f, want 2", got)
	}
	if got := DetuneRatio(0); got != 1.0 {
		t.Errorf("DetuneRatio(0) = %f, want 1", got)
	}
}
