// Package mix provides mixing primitives shared by the effect chain and the
// loop overdub mixer.
package mix

// Clamp hard-limits a sample to [-1, 1].
func Clamp(s float32) float32 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}

// DryWet blends two signals. amount: 0 = all dry, 1 = all wet.
func DryWet(dry, wet, amount float32) float32 {
	return dry*(1-amount) + wet*amount
}

// AddScaledClamped adds gain*src into dst with hard clipping, the additive
// policy used when folding an overdub take onto an existing loop.
func AddScaledClamped(dst, src []float32, gain float32) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = Clamp(dst[i] + src[i]*gain)
	}
}

// AddScaledClampedAt adds gain*src into dst starting at offset, wrapping
// around the end of dst. A src longer than dst folds onto itself.
func AddScaledClampedAt(dst, src []float32, offset int, gain float32) {
	if len(dst) == 0 {
		return
	}
	offset %= len(dst)
	if offset < 0 {
		offset += len(dst)
	}
	for i := range src {
		j := (offset + i) % len(dst)
		dst[j] = Clamp(dst[j] + src[i]*gain)
	}
}
