package reverb

import (
	"math"
	"testing"
)

const sampleRate = 48000.0

func TestImpulseProducesTail(t *testing.T) {
	r := New(sampleRate)
	r.SetLevel(1.0)

	r.Next(1.0)
	var energy float64
	for i := 0; i < int(0.5*sampleRate); i++ {
		l, rr := r.Next(0)
		energy += float64(l)*float64(l) + float64(rr)*float64(rr)
	}
	if energy == 0 {
		t.Error("impulse produced no reverb tail")
	}
}

func TestTailDecays(t *testing.T) {
	r := New(sampleRate)
	r.SetLevel(1.0)

	r.Next(1.0)

	window := int(0.25 * sampleRate)
	rms := func() float64 {
		var sum float64
		for i := 0; i < window; i++ {
			l, rr := r.Next(0)
			sum += float64(l)*float64(l) + float64(rr)*float64(rr)
		}
		return math.Sqrt(sum / float64(window))
	}

	early := rms()
	// Skip ahead to the late tail.
	for i := 0; i < int(2.5*sampleRate); i++ {
		r.Next(0)
	}
	late := rms()

	if late >= early {
		t.Errorf("tail did not decay: early rms %g, late rms %g", early, late)
	}
	// Past the 2s decay the tail should be far below the early energy.
	if early > 0 && late/early > 0.1 {
		t.Errorf("tail too hot after decay time: early %g late %g", early, late)
	}
}

func TestLevelZeroIsSilent(t *testing.T) {
	r := New(sampleRate)
	r.SetLevel(0)
	r.Next(1.0)
	for i := 0; i < 10000; i++ {
		l, rr := r.Next(0)
		if l != 0 || rr != 0 {
			t.Fatalf("level 0 leaked signal: %f %f", l, rr)
		}
	}
}

func TestResetClearsTail(t *testing.T) {
	r := New(sampleRate)
	r.SetLevel(1.0)
	for i := 0; i < 1000; i++ {
		r.Next(1.0)
	}
	r.Reset()
	l, rr := r.Next(0)
	if l != 0 || rr != 0 {
		t.Errorf("output after reset: %f %f, want silence", l, rr)
	}
}

func TestStereoDecorrelation(t *testing.T) {
	r := New(sampleRate)
	r.SetLevel(1.0)
	r.Next(1.0)

	same := true
	for i := 0; i < int(0.5 * sampleRate); i++ {
		l, rr := r.Next(0)
		if l != rr {
			same = false
			break
		}
	}
	if same {
		t.Error("left and right tails identical, want decorrelated channels")
	}
}
