package waveform

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Frame is one displayed state of a visualizer.
type Frame struct {
	Seq     uint64  `json:"seq"`
	Heights Heights `json:"heights"`
	PlaybackState
}

// Config configures a Visualizer.
type Config struct {
	Profile Profile
	// Seed for the at-rest waveform. Zero picks a random seed.
	Seed uint64
	// Scheduler drives animation frames. Defaults to a 16ms TimerScheduler.
	Scheduler FrameScheduler
	Logger    *zap.Logger
	// Sink receives every new Frame, in order.
	Sink func(Frame)
}

// Visualizer is one waveform widget bound to one Media.
type Visualizer struct {
	profile Profile
	base    Heights
	log     *zap.Logger
	sink    func(Frame)

	driver  *Driver
	tracker *Tracker

	// pubMu orders sink deliveries.
	pubMu sync.Mutex

	mu      sync.Mutex
	heights Heights
	state   PlaybackState
	seq     uint64
	closed  bool
}

// NewVisualizer generates the at-rest waveform and subscribes to m.
func NewVisualizer(m Media, cfg Config) (*Visualizer, error) {
	if err := cfg.Profile.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	sched := cfg.Scheduler
	if sched == nil {
		sched = NewTimerScheduler(0)
	}

	base := Generate(cfg.Profile, NewRand(cfg.Seed))
	v := &Visualizer{
		profile: cfg.Profile,
		base:    base,
		log:     log,
		sink:    cfg.Sink,
		heights: base.Clone(),
	}
	v.driver = NewDriver(base, cfg.Profile, sched, v.onHeights)
	v.tracker = NewTracker(m, log, v.onState)
	return v, nil
}

// Profile returns the profile the visualizer was built with.
func (v *Visualizer) Profile() Profile { return v.profile }

// Base returns a copy of the at-rest waveform.
func (v *Visualizer) Base() Heights { return v.base.Clone() }

// State returns the current playback state.
func (v *Visualizer) State() PlaybackState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// AnimationState reports whether the animation loop is running.
func (v *Visualizer) AnimationState() State { return v.driver.State() }

// Frame returns the currently displayed frame.
func (v *Visualizer) Frame() Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frameLocked()
}

// TogglePlay plays or pauses. A rejected play leaves the visualizer paused
// and returns the error.
func (v *Visualizer) TogglePlay(ctx context.Context) error {
	return v.tracker.TogglePlay(ctx)
}

// Play starts playback if it is not already running.
func (v *Visualizer) Play(ctx context.Context) error { return v.tracker.Play(ctx) }

// Pause stops playback.
func (v *Visualizer) Pause() { v.tracker.Pause() }

// ToggleMute flips the mute flag.
func (v *Visualizer) ToggleMute() { v.tracker.ToggleMute() }

// Close unsubscribes from the media and stops the animation loop. No Sink
// delivery happens after Close returns.
func (v *Visualizer) Close() {
	v.tracker.Close()
	v.driver.Close()

	v.pubMu.Lock()
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	v.pubMu.Unlock()
}

func (v *Visualizer) onState(st PlaybackState) {
	v.mu.Lock()
	wasPlaying := v.state.Playing
	v.state = st
	v.mu.Unlock()

	switch {
	case st.Playing && !wasPlaying:
		v.driver.Start()
	case !st.Playing && wasPlaying:
		// Stop publishes the rest frame through onHeights.
		if v.driver.Stop() {
			return
		}
	}
	v.publish()
}

func (v *Visualizer) onHeights(h Heights) {
	v.mu.Lock()
	v.heights = h
	v.mu.Unlock()
	v.publish()
}

func (v *Visualizer) publish() {
	v.pubMu.Lock()
	defer v.pubMu.Unlock()

	v.mu.Lock()
	if v.closed || v.sink == nil {
		v.mu.Unlock()
		return
	}
	v.seq++
	f := v.frameLocked()
	v.mu.Unlock()

	v.sink(f)
}

func (v *Visualizer) frameLocked() Frame {
	return Frame{
		Seq:           v.seq,
		Heights:       v.heights.Clone(),
		PlaybackState: v.state,
	}
}
