//go:build !headless

package audio

import "testing"

func TestReadWithoutSourceIsSilent(t *testing.T) {
	o := &OtoOutput{}
	p := make([]byte, 64)
	for i := range p {
		p[i] = 0xff
	}

	n, err := o.Read(p)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if n != len(p) {
		t.Errorf("Read = %d bytes, want %d", n, len(p))
	}
	for i, b := range p {
		if b != 0 {
			t.Fatalf("byte %d = %#x without a source, want 0", i, b)
		}
	}
}

func TestReadRendersFromSource(t *testing.T) {
	o := &OtoOutput{
		bufL: make([]float32, 16),
		bufR: make([]float32, 16),
	}
	o.SetSource(constantRenderer(0.5))

	p := make([]byte, 16*bytesPerFrame)
	n, err := o.Read(p)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if n != len(p) {
		t.Errorf("Read = %d bytes, want %d", n, len(p))
	}
	// float32(0.5) little-endian is 00 00 00 3f.
	for f := 0; f < 32; f++ {
		b := p[f*4 : f*4+4]
		if b[0] != 0 || b[1] != 0 || b[2] != 0 || b[3] != 0x3f {
			t.Fatalf("sample %d bytes = % x, want 00 00 00 3f", f, b)
		}
	}
}

type constantRenderer float32

func (c constantRenderer) RenderBlock(outL, outR []float32) {
	for i := range outL {
		outL[i] = float32(c)
		outR[i] = float32(c)
	}
}
