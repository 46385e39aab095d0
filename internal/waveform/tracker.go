package waveform

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/satindergrewal/salient/internal/event"
)

// Media is the playback capability a Tracker observes and controls.
// Notifications may arrive on any goroutine. The query methods are called
// with the tracker locked and must not notify.
type Media interface {
	Play(ctx context.Context) error
	Pause()
	SetMuted(muted bool)
	Playing() bool
	Position() time.Duration
	Duration() time.Duration

	OnTimeUpdate(fn func()) *event.Subscription
	OnEnded(fn func()) *event.Subscription
	OnLoadedMetadata(fn func()) *event.Subscription
}

// PlaybackState is what the visualizer shows about the media.
type PlaybackState struct {
	Playing  bool    `json:"playing"`
	Muted    bool    `json:"muted"`
	Progress float64 `json:"progress"`
}

// Tracker derives PlaybackState from a Media and forwards user commands to
// it. onChange is called after every state change, serialised, and never
// after Close returns.
type Tracker struct {
	media    Media
	log      *zap.Logger
	onChange func(PlaybackState)

	// cbMu serialises state changes with their onChange delivery.
	cbMu sync.Mutex

	mu       sync.Mutex
	state    PlaybackState
	duration time.Duration
	subs     []*event.Subscription
	closed   bool
}

// NewTracker subscribes to m's time-update, ended and metadata-loaded
// notifications. Call Close to release them.
func NewTracker(m Media, log *zap.Logger, onChange func(PlaybackState)) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Tracker{media: m, log: log, onChange: onChange}
	t.subs = []*event.Subscription{
		m.OnTimeUpdate(t.notify(t.handleTimeUpdate)),
		m.OnEnded(t.notify(t.handleEnded)),
		m.OnLoadedMetadata(t.notify(t.handleMetadata)),
	}
	return t
}

// State returns a snapshot of the playback state.
func (t *Tracker) State() PlaybackState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Play asks the media to start. A rejected play is logged and returned;
// the state stays not-playing and no retry is attempted.
func (t *Tracker) Play(ctx context.Context) error {
	t.mu.Lock()
	if t.closed || t.state.Playing {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	if err := t.media.Play(ctx); err != nil {
		t.log.Warn("audio playback failed", zap.Error(err))
		return fmt.Errorf("play: %w", err)
	}
	t.apply(func() bool {
		// The media may already have ended again, and its ended
		// notification may have run before this.
		if t.state.Playing || !t.media.Playing() {
			return false
		}
		t.state.Playing = true
		return true
	})
	return nil
}

// Pause stops the media and marks the state not-playing.
func (t *Tracker) Pause() {
	t.mu.Lock()
	if t.closed || !t.state.Playing {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	t.media.Pause()
	t.apply(func() bool {
		if !t.state.Playing {
			return false
		}
		t.state.Playing = false
		return true
	})
}

// TogglePlay pauses when playing and plays otherwise.
func (t *Tracker) TogglePlay(ctx context.Context) error {
	if t.State().Playing {
		t.Pause()
		return nil
	}
	return t.Play(ctx)
}

// ToggleMute flips the mute flag on both the media and the state.
func (t *Tracker) ToggleMute() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	muted := !t.state.Muted
	t.mu.Unlock()

	t.media.SetMuted(muted)
	t.apply(func() bool {
		if t.state.Muted == muted {
			return false
		}
		t.state.Muted = muted
		return true
	})
}

// Close releases every media subscription. It waits for an in-flight
// notification to finish, so no callback runs after Close returns.
func (t *Tracker) Close() {
	t.cbMu.Lock()
	defer t.cbMu.Unlock()

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	subs := t.subs
	t.subs = nil
	t.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
}

func (t *Tracker) handleTimeUpdate() bool {
	d := t.media.Duration()
	if d <= 0 {
		d = t.duration
	}
	if d <= 0 {
		return false
	}
	t.duration = d
	p := progress(t.media.Position(), d)
	if p == t.state.Progress {
		return false
	}
	t.state.Progress = p
	return true
}

func (t *Tracker) handleEnded() bool {
	// A late notification from an earlier run while playback restarted.
	if t.media.Playing() {
		return false
	}
	changed := t.state.Playing || t.state.Progress != 0
	t.state.Playing = false
	t.state.Progress = 0
	return changed
}

func (t *Tracker) handleMetadata() bool {
	d := t.media.Duration()
	if d <= 0 {
		return false
	}
	t.duration = d
	p := progress(t.media.Position(), d)
	if p == t.state.Progress {
		return false
	}
	t.state.Progress = p
	return true
}

// notify wraps a handler so it runs under the tracker locks and is dropped
// once the tracker is closed.
func (t *Tracker) notify(handle func() bool) func() {
	return func() { t.apply(handle) }
}

func (t *Tracker) apply(change func() bool) {
	t.cbMu.Lock()
	defer t.cbMu.Unlock()

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	changed := change()
	st := t.state
	t.mu.Unlock()

	if changed && t.onChange != nil {
		t.onChange(st)
	}
}

func progress(pos, dur time.Duration) float64 {
	p := float64(pos) / float64(dur)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
