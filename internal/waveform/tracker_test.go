package waveform

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stateSpy struct {
	mu     sync.Mutex
	states []PlaybackState
}

func (s *stateSpy) record(st PlaybackState) {
	s.mu.Lock()
	s.states = append(s.states, st)
	s.mu.Unlock()
}

func (s *stateSpy) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

func TestTrackerProgress(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		position time.Duration
		want     float64
	}{
		{"quarter", 200 * time.Second, 50 * time.Second, 0.25},
		{"start", 200 * time.Second, 0, 0},
		{"end", 10 * time.Second, 10 * time.Second, 1},
		{"overrun clamps", 10 * time.Second, 12 * time.Second, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMedia{duration: tt.duration}
			tr := NewTracker(m, nil, nil)
			defer tr.Close()

			m.seek(tt.position)
			assert.InDelta(t, tt.want, tr.State().Progress, 1e-9)
		})
	}
}

func TestTrackerUnknownDurationLeavesProgress(t *testing.T) {
	m := &fakeMedia{duration: 100 * time.Second}
	spy := &stateSpy{}
	tr := NewTracker(m, nil, spy.record)
	defer tr.Close()

	m.seek(40 * time.Second)
	require.InDelta(t, 0.4, tr.State().Progress, 1e-9)

	// A media that loses its duration must not push NaN into the state.
	m.mu.Lock()
	m.duration = 0
	m.mu.Unlock()
	m.seek(70 * time.Second)
	assert.InDelta(t, 0.7, tr.State().Progress, 1e-9, "falls back to the last known duration")

	fresh := &fakeMedia{}
	tr2 := NewTracker(fresh, nil, nil)
	defer tr2.Close()
	fresh.seek(30 * time.Second)
	assert.Equal(t, 0.0, tr2.State().Progress, "no duration yet: progress unchanged")
}

func TestTrackerEndedResets(t *testing.T) {
	m := &fakeMedia{duration: 100 * time.Second}
	tr := NewTracker(m, nil, nil)
	defer tr.Close()

	require.NoError(t, tr.Play(context.Background()))
	m.seek(87 * time.Second)
	require.InDelta(t, 0.87, tr.State().Progress, 1e-9)

	m.finish()
	st := tr.State()
	assert.False(t, st.Playing)
	assert.Equal(t, 0.0, st.Progress)
}

func TestTrackerPlayEndingBeforeStateUpdate(t *testing.T) {
	m := &fakeMedia{duration: 20 * time.Millisecond, endOnPlay: true}
	spy := &stateSpy{}
	tr := NewTracker(m, nil, spy.record)
	defer tr.Close()

	require.NoError(t, tr.Play(context.Background()))
	st := tr.State()
	assert.False(t, st.Playing, "a clip that already ended is not playing")
	assert.Equal(t, 0.0, st.Progress)
	assert.Equal(t, 0, spy.count())
}

func TestTrackerIgnoresStaleEnded(t *testing.T) {
	m := &fakeMedia{duration: 100 * time.Second}
	tr := NewTracker(m, nil, nil)
	defer tr.Close()

	require.NoError(t, tr.Play(context.Background()))
	m.seek(10 * time.Second)

	// Ended from a previous run arrives while the media plays again.
	m.ended.Emit()
	st := tr.State()
	assert.True(t, st.Playing)
	assert.InDelta(t, 0.1, st.Progress, 1e-9)

	m.finish()
	assert.False(t, tr.State().Playing)
}

func TestTrackerMetadataLoaded(t *testing.T) {
	m := &fakeMedia{position: 5 * time.Second}
	tr := NewTracker(m, nil, nil)
	defer tr.Close()

	m.load(20 * time.Second)
	assert.InDelta(t, 0.25, tr.State().Progress, 1e-9)
}

func TestTrackerPlayRejected(t *testing.T) {
	m := &fakeMedia{duration: time.Second, playErr: errAutoplay}
	spy := &stateSpy{}
	tr := NewTracker(m, nil, spy.record)
	defer tr.Close()

	err := tr.Play(context.Background())
	require.ErrorIs(t, err, errAutoplay)
	assert.False(t, tr.State().Playing)
	assert.Equal(t, 0, spy.count(), "rejected play changes nothing")
	assert.Equal(t, 1, m.plays, "no retry")
}

func TestTrackerTogglePlayAndMute(t *testing.T) {
	m := &fakeMedia{duration: time.Second}
	spy := &stateSpy{}
	tr := NewTracker(m, nil, spy.record)
	defer tr.Close()

	require.NoError(t, tr.TogglePlay(context.Background()))
	assert.True(t, tr.State().Playing)
	assert.True(t, m.playing)

	require.NoError(t, tr.TogglePlay(context.Background()))
	assert.False(t, tr.State().Playing)
	assert.False(t, m.playing)

	tr.ToggleMute()
	assert.True(t, tr.State().Muted)
	assert.True(t, m.muted)
	tr.ToggleMute()
	assert.False(t, tr.State().Muted)

	assert.Equal(t, 4, spy.count())
}

func TestTrackerPlayWhilePlaying(t *testing.T) {
	m := &fakeMedia{duration: time.Second}
	tr := NewTracker(m, nil, nil)
	defer tr.Close()

	require.NoError(t, tr.Play(context.Background()))
	require.NoError(t, tr.Play(context.Background()))
	assert.Equal(t, 1, m.plays)
}

func TestTrackerCloseUnsubscribes(t *testing.T) {
	m := &fakeMedia{duration: 10 * time.Second}
	spy := &stateSpy{}
	tr := NewTracker(m, nil, spy.record)
	require.Equal(t, 3, m.listeners())

	m.seek(time.Second)
	before := spy.count()
	tr.Close()
	tr.Close()

	assert.Equal(t, 0, m.listeners())
	m.seek(5 * time.Second)
	m.finish()
	m.load(20 * time.Second)
	assert.Equal(t, before, spy.count(), "no listener callback after teardown")
	assert.NoError(t, tr.Play(context.Background()))
	assert.Equal(t, 0, m.plays, "closed tracker forwards nothing")
}
