package main

// The playing surface maps two keyboard rows onto the touch plane: the home
// row is the upper octave band, the bottom row the lower. Each key lands in
// the middle of one pitch column.
var (
	lowRowKeys  = []string{"z", "x", "c", "v", "b"}
	highRowKeys = []string{"a", "s", "d", "f", "g"}
)

// keyToTouch maps a note key to a touch position. ok is false for keys
// outside the playing surface.
func keyToTouch(key string) (x, y float64, ok bool) {
	for i, k := range lowRowKeys {
		if k == key {
			return (float64(i) + 0.5) / 5, 0.25, true
		}
	}
	for i, k := range highRowKeys {
		if k == key {
			return (float64(i) + 0.5) / 5, 0.75, true
		}
	}
	return 0, 0, false
}

// keyTouchID gives each note key a stable touch id so repeats retarget the
// same voice.
func keyTouchID(key string) int {
	for i, k := range lowRowKeys {
		if k == key {
			return i
		}
	}
	for i, k := range highRowKeys {
		if k == key {
			return 5 + i
		}
	}
	return -1
}

// slider renders a bracketed bar for a [0,1] value, width cells wide.
func slider(value float64, width int) string {
	filled := int(value*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}
