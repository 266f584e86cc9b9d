package distortion

import (
	"math"
	"testing"
)

func TestDryPassthrough(t *testing.T) {
	w := NewWaveshaper()
	w.SetWet(0)
	w.SetDry(1)

	for _, in := range []float32{-0.8, -0.1, 0, 0.3, 0.9} {
		if out := w.Next(in); out != in {
			t.Errorf("dry passthrough altered %f -> %f", in, out)
		}
	}
}

func TestWetMuted(t *testing.T) {
	w := NewWaveshaper()
	w.SetWet(0)
	w.SetDry(0)
	if out := w.Next(0.7); out != 0 {
		t.Errorf("muted shaper output = %f, want 0", out)
	}
}

func TestShapeIsOddSymmetric(t *testing.T) {
	w := NewWaveshaper()
	w.SetDrive(120)
	w.SetWet(1)
	w.SetDry(0)

	pos := w.Next(0.5)
	neg := w.Next(-0.5)
	if math.Abs(float64(pos+neg)) > 1e-6 {
		t.Errorf("transfer curve not odd: f(0.5)=%f f(-0.5)=%f", pos, neg)
	}
}

func TestDriveCompressesPeaks(t *testing.T) {
	w := NewWaveshaper()
	w.SetWet(1)
	w.SetDry(0)

	// With higher drive the curve saturates: the ratio between a full-scale
	// and a half-scale input shrinks.
	w.SetDrive(20)
	lowRatio := w.Next(1.0) / w.Next(0.5)

	w.SetDrive(220)
	highRatio := w.Next(1.0) / w.Next(0.5)

	if highRatio >= lowRatio {
		t.Errorf("drive did not increase saturation: low=%f high=%f", lowRatio, highRatio)
	}
}

func TestZeroInZeroOut(t *testing.T) {
	w := NewWaveshaper()
	w.SetDrive(220)
	w.SetWet(1)
	if out := w.Next(0); out != 0 {
		t.Errorf("f(0) = %f, want 0", out)
	}
}
