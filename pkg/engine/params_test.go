package engine

import "testing"

func TestParamsDefaults(t *testing.T) {
	p := NewParams()
	tests := []struct {
		name string
		want float64
	}{
		{ParamGrime, 0},
		{ParamFlow, 0},
		{ParamShimmer, 0},
		{ParamDepth, 0.3},
		{ParamOctave, 0.5},
	}
	for _, tt := range tests {
		if got := p.Get(tt.name); got != tt.want {
			t.Errorf("Get(%q) = %v, want default %v", tt.name, got, tt.want)
		}
	}
}

func TestParamsSetClamps(t *testing.T) {
	p := NewParams()

	p.Set(ParamGrime, 1.7)
	if got := p.Grime(); got != 1 {
		t.Errorf("Grime() = %v, want clamp to 1", got)
	}
	p.Set(ParamGrime, -0.3)
	if got := p.Grime(); got != 0 {
		t.Errorf("Grime() = %v, want clamp to 0", got)
	}
	p.Set(ParamFlow, 0.42)
	if got := p.Flow(); got != 0.42 {
		t.Errorf("Flow() = %v, want 0.42", got)
	}
}

func TestParamsUnknownName(t *testing.T) {
	p := NewParams()
	if p.Set("gritt", 0.5) {
		t.Error("Set on unknown name = true, want false")
	}
	if got := p.Get("gritt"); got != 0 {
		t.Errorf("Get on unknown name = %v, want 0", got)
	}
	if got := p.Version(); got != 1 {
		t.Errorf("Version() = %v after rejected write, want unchanged 1", got)
	}
}

func TestParamsVersionBumpsOnWrite(t *testing.T) {
	p := NewParams()
	v0 := p.Version()
	p.Set(ParamDepth, 0.9)
	if got := p.Version(); got != v0+1 {
		t.Errorf("Version() = %v after write, want %v", got, v0+1)
	}
	p.Set(ParamDepth, 0.9) // same value still counts as a write
	if got := p.Version(); got != v0+2 {
		t.Errorf("Version() = %v after second write, want %v", got, v0+2)
	}
}
