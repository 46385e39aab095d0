package waveform

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLengthAndBounds(t *testing.T) {
	for _, base := range []Profile{ProfileSpeech, ProfileCompact} {
		for _, n := range []int{1, 2, 7, 35, 50, 200} {
			p := base
			p.Bars = n
			h := Generate(p, NewRand(uint64(n)))
			require.Len(t, h, n, "profile %s", p.Name)
			for i, v := range h {
				if v < p.Floor || v > 1 {
					t.Errorf("%s n=%d: h[%d] = %v outside [%v, 1]", p.Name, n, i, v, p.Floor)
				}
			}
		}
	}
}

func TestGenerateSameSeedIsDeterministic(t *testing.T) {
	a := Generate(ProfileSpeech, NewRand(42))
	b := Generate(ProfileSpeech, NewRand(42))
	assert.Equal(t, a, b)

	c := Generate(ProfileSpeech, NewRand(43))
	assert.NotEqual(t, a, c)
}

func TestGenerateZeroBars(t *testing.T) {
	p := ProfileSpeech
	p.Bars = 0
	assert.Empty(t, Generate(p, NewRand(1)))
}

func TestAnimateStaysInBoundsAtPeaks(t *testing.T) {
	p := ProfileSpeech
	// Oscillations far larger than the range must still clamp.
	p.Waves = []Oscillator{
		{Amplitude: 5, Frequency: 5, Phase: 0.25},
		{Amplitude: 3, Frequency: 8, Phase: 0.4},
	}
	base := Generate(p, NewRand(7))
	for ms := 0; ms < 5000; ms += 13 {
		out := Animate(base, p, time.Duration(ms)*time.Millisecond)
		require.Len(t, out, len(base))
		for i, v := range out {
			if v < p.Floor || v > 1 || math.IsNaN(v) {
				t.Fatalf("t=%dms h[%d] = %v outside [%v, 1]", ms, i, v, p.Floor)
			}
		}
	}
}

func TestAnimateDoesNotMutateBase(t *testing.T) {
	base := Generate(ProfileCompact, NewRand(3))
	snapshot := base.Clone()
	Animate(base, ProfileCompact, 1234*time.Millisecond)
	assert.Equal(t, snapshot, base)
}

func TestAnimateBarsOutOfLockstep(t *testing.T) {
	p := ProfileSpeech
	flat := make(Heights, p.Bars)
	for i := range flat {
		flat[i] = 0.5
	}
	out := Animate(flat, p, 700*time.Millisecond)
	distinct := map[float64]bool{}
	for _, v := range out {
		distinct[v] = true
	}
	assert.Greater(t, len(distinct), p.Bars/2, "phase offset should spread the bars")
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, floor, want float64
	}{
		{-1, 0.08, 0.08},
		{0.05, 0.08, 0.08},
		{0.5, 0.08, 0.5},
		{1.7, 0.08, 1},
		{0.09, 0.1, 0.1},
		{0.01, 0, MinFloor},
		{math.NaN(), 0.08, 0.08},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clamp(tt.v, tt.floor), "clamp(%v, %v)", tt.v, tt.floor)
	}
}

func TestProfileValidate(t *testing.T) {
	assert.NoError(t, ProfileSpeech.Validate())
	assert.NoError(t, ProfileCompact.Validate())

	p := ProfileSpeech
	p.Bars = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidBarCount)

	p = ProfileSpeech
	p.Floor = 0.01
	assert.ErrorIs(t, p.Validate(), ErrInvalidProfile)

	p = ProfileSpeech
	p.BaseMin, p.BaseMax = 0.8, 0.2
	assert.ErrorIs(t, p.Validate(), ErrInvalidProfile)
}

func TestProfileByName(t *testing.T) {
	p, ok := ProfileByName("speech")
	require.True(t, ok)
	assert.Equal(t, 50, p.Bars)
	assert.Equal(t, 60*time.Millisecond, p.Throttle)

	// Returned waves are a copy.
	p.Waves[0].Amplitude = 99
	assert.Equal(t, 0.15, ProfileSpeech.Waves[0].Amplitude)

	_, ok = ProfileByName("nope")
	assert.False(t, ok)
	assert.Equal(t, []string{"compact", "speech"}, ProfileNames())
}
