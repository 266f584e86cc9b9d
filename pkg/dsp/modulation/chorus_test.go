package modulation

import (
	"math"
	"testing"
)

const sampleRate = 48000.0

func TestLFORange(t *testing.T) {
	lfo := NewLFO(sampleRate)
	lfo.SetFrequency(2.0)
	for i := 0; i < int(sampleRate); i++ {
		v := lfo.Next()
		if v < -1.0 || v > 1.0 {
			t.Fatalf("LFO value out of range: %f", v)
		}
	}
}

func TestLFOPeriod(t *testing.T) {
	lfo := NewLFO(sampleRate)
	lfo.SetFrequency(1.0)
	for i := 0; i < int(sampleRate); i++ {
		lfo.Next()
	}
	// After exactly one second at 1Hz the phase is back at zero.
	if v := lfo.Next(); math.Abs(v) > 0.001 {
		t.Errorf("LFO after one period = %f, want ~0", v)
	}
}

func TestChorusSilenceInSilenceOut(t *testing.T) {
	c := NewChorus(sampleRate)
	c.SetLevel(1.0)
	for i := 0; i < 1000; i++ {
		l, r := c.Next(0)
		if l != 0 || r != 0 {
			t.Fatalf("silence produced output: %f %f", l, r)
		}
	}
}

func TestChorusDelaysSignal(t *testing.T) {
	c := NewChorus(sampleRate)
	c.SetLevel(1.0)
	c.SetDepth(0)

	// Impulse in; with zero depth the wet tap sits at the 20ms base delay.
	l0, r0 := c.Next(1.0)
	if l0 != 0 || r0 != 0 {
		t.Errorf("wet output before base delay: %f %f", l0, r0)
	}

	baseSamples := int(0.020 * sampleRate)
	var peakL float32
	for i := 0; i < baseSamples+2; i++ {
		l, _ := c.Next(0)
		if l > peakL {
			peakL = l
		}
	}
	if peakL < 0.9 {
		t.Errorf("delayed impulse peak = %f, want ~1.0", peakL)
	}
}

func TestChorusLevelZeroMutesWet(t *testing.T) {
	c := NewChorus(sampleRate)
	c.SetLevel(0)
	c.Next(1.0)
	for i := 0; i < int(0.05*sampleRate); i++ {
		l, r := c.Next(0)
		if l != 0 || r != 0 {
			t.Fatalf("level 0 leaked signal: %f %f", l, r)
		}
	}
}

func TestChorusDepthClamped(t *testing.T) {
	c := NewChorus(sampleRate)
	c.SetDepth(10)
	if c.depth > 0.03 {
		t.Errorf("depth not clamped: %f", c.depth)
	}
	c.SetDepth(-1)
	if c.depth != 0 {
		t.Errorf("negative depth not clamped: %f", c.depth)
	}
}
