// Package waveform animates a bar-height waveform in step with the playback
// of a media clip.
//
// A Visualizer combines three parts: a generated at-rest Heights sequence,
// a Driver that perturbs it on every animation frame while playing, and a
// Tracker that turns media notifications into a playback progress fraction.
package waveform

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// MinFloor is the lowest height any bar may be clamped to.
const MinFloor = 0.08

var (
	ErrInvalidBarCount = errors.New("bar count must be positive")
	ErrInvalidProfile  = errors.New("invalid waveform profile")
)

// Oscillator is one sinusoidal term added to every bar while animating.
// Bar i at time t (seconds) is offset by Amplitude*sin(t*Frequency + i*Phase).
type Oscillator struct {
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
	Frequency float64 `yaml:"frequency" json:"frequency"` // rad/s
	Phase     float64 `yaml:"phase" json:"phase"`         // rad per bar
}

// Profile parameterises generation and animation of one visualizer.
type Profile struct {
	Name    string  `yaml:"name" json:"name"`
	Bars    int     `yaml:"bars" json:"bars"`
	BaseMin float64 `yaml:"base_min" json:"base_min"`
	BaseMax float64 `yaml:"base_max" json:"base_max"`

	// Speech layers a syllabic envelope over the random base.
	Speech bool `yaml:"speech" json:"speech"`

	Floor    float64       `yaml:"floor" json:"floor"`
	Waves    []Oscillator  `yaml:"waves" json:"waves"`
	Throttle time.Duration `yaml:"throttle" json:"throttle"`
}

// ProfileSpeech is the full-width hero demo: 50 bars shaped like speech,
// updated at most every 60ms.
var ProfileSpeech = Profile{
	Name:    "speech",
	Bars:    50,
	BaseMin: 0.2,
	BaseMax: 0.7,
	Speech:  true,
	Floor:   MinFloor,
	Waves: []Oscillator{
		{Amplitude: 0.15, Frequency: 5, Phase: 0.25},
		{Amplitude: 0.10, Frequency: 8, Phase: 0.4},
	},
	Throttle: 60 * time.Millisecond,
}

// ProfileCompact is the smaller card player: 35 random bars animated on
// every frame.
var ProfileCompact = Profile{
	Name:    "compact",
	Bars:    35,
	BaseMin: 0.2,
	BaseMax: 0.7,
	Floor:   0.1,
	Waves: []Oscillator{
		{Amplitude: 0.15, Frequency: 3, Phase: 0.3},
		{Amplitude: 0.10, Frequency: 8, Phase: 0.5},
	},
}

var profiles = map[string]Profile{
	ProfileSpeech.Name:  ProfileSpeech,
	ProfileCompact.Name: ProfileCompact,
}

// ProfileByName looks up a preset.
func ProfileByName(name string) (Profile, bool) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, false
	}
	p.Waves = append([]Oscillator(nil), p.Waves...)
	return p, true
}

// ProfileNames returns the preset names in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that p describes a usable visualizer.
func (p Profile) Validate() error {
	if p.Bars <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBarCount, p.Bars)
	}
	if p.Floor < MinFloor || p.Floor >= 1 {
		return fmt.Errorf("%w: floor %.3f outside [%.2f, 1)", ErrInvalidProfile, p.Floor, MinFloor)
	}
	if p.BaseMin < 0 || p.BaseMax > 1 || p.BaseMin > p.BaseMax {
		return fmt.Errorf("%w: base range [%.3f, %.3f]", ErrInvalidProfile, p.BaseMin, p.BaseMax)
	}
	if p.Throttle < 0 {
		return fmt.Errorf("%w: negative throttle", ErrInvalidProfile)
	}
	return nil
}
