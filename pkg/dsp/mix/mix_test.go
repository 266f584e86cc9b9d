package mix

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		in   float32
		want float32
	}{
		{0.5, 0.5},
		{1.5, 1.0},
		{-1.5, -1.0},
		{1.0, 1.0},
		{-1.0, -1.0},
		{0, 0},
	}
	for _, c := range cases {
		if got := Clamp(c.in); got != c.want {
			t.Errorf("Clamp(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestDryWet(t *testing.T) {
	if got := DryWet(1.0, 0.0, 0.0); got != 1.0 {
		t.Errorf("all dry = %f, want 1", got)
	}
	if got := DryWet(1.0, 0.0, 1.0); got != 0.0 {
		t.Errorf("all wet = %f, want 0", got)
	}
	if got := DryWet(1.0, 0.0, 0.25); got != 0.75 {
		t.Errorf("quarter wet = %f, want 0.75", got)
	}
}

func TestAddScaledClamped(t *testing.T) {
	dst := []float32{0, 0.5, 0.9}
	src := []float32{0.5, 0.5, 0.5}
	AddScaledClamped(dst, src, 0.6)

	want := []float32{0.3, 0.8, 1.0}
	for i := range want {
		if diff := dst[i] - want[i]; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("dst[%d] = %f, want %f", i, dst[i], want[i])
		}
	}
}

func TestAddScaledClampedAtWraps(t *testing.T) {
	dst := make([]float32, 4)
	src := []float32{1, 1, 1, 1, 1, 1} // 1.5x the destination
	AddScaledClampedAt(dst, src, 2, 0.5)

	// Samples 2,3 then wrap to 0,1, then 2,3 again.
	want := []float32{0.5, 0.5, 1.0, 1.0}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %f, want %f", i, dst[i], want[i])
		}
	}
}

func TestAddScaledClampedAtEmptyDst(t *testing.T) {
	// Must not panic.
	AddScaledClampedAt(nil, []float32{1, 2}, 3, 0.6)
}
