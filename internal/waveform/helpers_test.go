package waveform

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/satindergrewal/salient/internal/event"
)

// manualScheduler fires frames only when the test calls fire.
type manualScheduler struct {
	mu        sync.Mutex
	next      FrameID
	pending   map[FrameID]func(time.Time)
	requested int
	cancelled int
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{pending: make(map[FrameID]func(time.Time))}
}

func (s *manualScheduler) RequestFrame(fn func(time.Time)) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.requested++
	s.pending[s.next] = fn
	return s.next
}

func (s *manualScheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[id]; ok {
		s.cancelled++
		delete(s.pending, id)
	}
}

// fire runs every callback pending at call time, as one display refresh.
func (s *manualScheduler) fire(now time.Time) int {
	s.mu.Lock()
	fns := make([]func(time.Time), 0, len(s.pending))
	for id, fn := range s.pending {
		fns = append(fns, fn)
		delete(s.pending, id)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(now)
	}
	return len(fns)
}

// capture returns the pending callbacks without removing them, to model a
// frame that was already dispatched when the cancel arrived.
func (s *manualScheduler) capture() []func(time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fns := make([]func(time.Time), 0, len(s.pending))
	for _, fn := range s.pending {
		fns = append(fns, fn)
	}
	return fns
}

func (s *manualScheduler) pendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

var errAutoplay = errors.New("autoplay blocked")

// fakeMedia is a Media driven entirely by the test.
type fakeMedia struct {
	mu       sync.Mutex
	position time.Duration
	duration time.Duration
	muted    bool
	playing  bool
	playErr  error
	plays    int

	// endOnPlay makes the clip end as soon as it starts.
	endOnPlay bool

	timeUpdate event.Emitter
	ended      event.Emitter
	metadata   event.Emitter
}

func (m *fakeMedia) Play(context.Context) error {
	m.mu.Lock()
	m.plays++
	if m.playErr != nil {
		m.mu.Unlock()
		return m.playErr
	}
	if m.endOnPlay {
		m.position = 0
		m.mu.Unlock()
		m.ended.Emit()
		return nil
	}
	m.playing = true
	m.mu.Unlock()
	return nil
}

func (m *fakeMedia) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *fakeMedia) Pause() {
	m.mu.Lock()
	m.playing = false
	m.mu.Unlock()
}

func (m *fakeMedia) SetMuted(muted bool) {
	m.mu.Lock()
	m.muted = muted
	m.mu.Unlock()
}

func (m *fakeMedia) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *fakeMedia) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *fakeMedia) OnTimeUpdate(fn func()) *event.Subscription { return m.timeUpdate.Subscribe(fn) }
func (m *fakeMedia) OnEnded(fn func()) *event.Subscription      { return m.ended.Subscribe(fn) }
func (m *fakeMedia) OnLoadedMetadata(fn func()) *event.Subscription {
	return m.metadata.Subscribe(fn)
}

func (m *fakeMedia) seek(pos time.Duration) {
	m.mu.Lock()
	m.position = pos
	m.mu.Unlock()
	m.timeUpdate.Emit()
}

func (m *fakeMedia) load(d time.Duration) {
	m.mu.Lock()
	m.duration = d
	m.mu.Unlock()
	m.metadata.Emit()
}

func (m *fakeMedia) finish() {
	m.mu.Lock()
	m.playing = false
	m.position = 0
	m.mu.Unlock()
	m.ended.Emit()
}

func (m *fakeMedia) listeners() int {
	return m.timeUpdate.Len() + m.ended.Len() + m.metadata.Len()
}
