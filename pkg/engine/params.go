// Package engine implements the touch-driven polyphonic voice engine: the
// parameter surface, the shared effect chain, the voice pool, and the
// render-path command plumbing that ties them together.
package engine

import (
	"math"
	"sync/atomic"
)

// Parameter names accepted by the parameter surface.
const (
	ParamGrime   = "grime"
	ParamFlow    = "flow"
	ParamShimmer = "shimmer"
	ParamDepth   = "depth"
	ParamOctave  = "octave"
)

// paramCount indexes the fixed parameter set.
const (
	paramGrime = iota
	paramFlow
	paramShimmer
	paramDepth
	paramOctave
	paramCount
)

var paramNames = map[string]int{
	ParamGrime:   paramGrime,
	ParamFlow:    paramFlow,
	ParamShimmer: paramShimmer,
	ParamDepth:   paramDepth,
	ParamOctave:  paramOctave,
}

var paramDefaults = [paramCount]float64{
	paramGrime:   0.0,
	paramFlow:    0.0,
	paramShimmer: 0.0,
	paramDepth:   0.3,
	paramOctave:  0.5,
}

// Params is the parameter surface: named, bounded controls written by the
// UI and read lock-free by the render path. Values are stored as float64
// bits in atomics; the single writer is the control path.
type Params struct {
	values  [paramCount]atomic.Uint64
	version atomic.Uint64
}

// NewParams creates the surface with every control at its default.
func NewParams() *Params {
	p := &Params{}
	for i, def := range paramDefaults {
		p.values[i].Store(math.Float64bits(def))
	}
	p.version.Store(1)
	return p
}

// Set stores a parameter value, clamped to [0,1]. Unknown names are
// ignored and reported with false.
func (p *Params) Set(name string, value float64) bool {
	idx, ok := paramNames[name]
	if !ok {
		return false
	}
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	p.values[idx].Store(math.Float64bits(value))
	p.version.Add(1)
	return true
}

// Get returns a parameter value, or its default for unknown names.
func (p *Params) Get(name string) float64 {
	idx, ok := paramNames[name]
	if !ok {
		return 0
	}
	return math.Float64frombits(p.values[idx].Load())
}

// Version increments on every write; the render path uses it to skip
// re-deriving effect state when nothing changed.
func (p *Params) Version() uint64 {
	return p.version.Load()
}

func (p *Params) get(idx int) float64 {
	return math.Float64frombits(p.values[idx].Load())
}

// Grime returns the distortion control value.
func (p *Params) Grime() float64 { return p.get(paramGrime) }

// Flow returns the delay control value.
func (p *Params) Flow() float64 { return p.get(paramFlow) }

// Shimmer returns the chorus control value.
func (p *Params) Shimmer() float64 { return p.get(paramShimmer) }

// Depth returns the reverb control value.
func (p *Params) Depth() float64 { return p.get(paramDepth) }

// Octave returns the octave control value.
func (p *Params) Octave() float64 { return p.get(paramOctave) }
