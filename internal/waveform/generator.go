package waveform

import (
	"math"
	"math/rand/v2"
	"time"
)

// Heights is a sequence of normalised bar heights.
type Heights []float64

// Clone returns a copy that shares no storage with h.
func (h Heights) Clone() Heights {
	if h == nil {
		return nil
	}
	out := make(Heights, len(h))
	copy(out, h)
	return out
}

// Generate builds the at-rest waveform for p: a uniform random base per bar,
// optionally shaped by a two-sine speech envelope, clamped to [p.Floor, 1].
// The caller owns rng; Generate never touches shared random state.
func Generate(p Profile, rng *rand.Rand) Heights {
	n := p.Bars
	if n <= 0 {
		return Heights{}
	}
	h := make(Heights, n)
	for i := range h {
		v := p.BaseMin + rng.Float64()*(p.BaseMax-p.BaseMin)
		if p.Speech {
			pos := float64(i) / float64(n)
			v += math.Sin(pos*math.Pi*6)*0.3 + math.Sin(pos*math.Pi*12)*0.15
		}
		h[i] = clamp(v, p.Floor)
	}
	return h
}

// Animate perturbs base with the profile's oscillators evaluated at elapsed
// time t. Each bar is phase-shifted by its index so the bars do not move in
// lockstep. The result is always within [p.Floor, 1].
func Animate(base Heights, p Profile, t time.Duration) Heights {
	sec := t.Seconds()
	out := make(Heights, len(base))
	for i, h := range base {
		v := h
		for _, w := range p.Waves {
			v += w.Amplitude * math.Sin(sec*w.Frequency+float64(i)*w.Phase)
		}
		out[i] = clamp(v, p.Floor)
	}
	return out
}

// NewRand returns a per-visualizer random source. A zero seed draws one
// from the runtime.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func clamp(v, floor float64) float64 {
	if floor < MinFloor {
		floor = MinFloor
	}
	if math.IsNaN(v) || v < floor {
		return floor
	}
	if v > 1 {
		return 1
	}
	return v
}
