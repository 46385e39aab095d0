// Package demo manages per-visitor voice demo sessions: one clip, one
// waveform visualizer and their outgoing streams each.
package demo

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/satindergrewal/salient/internal/audio"
	"github.com/satindergrewal/salient/internal/stream"
	"github.com/satindergrewal/salient/internal/waveform"
)

// Session is one visitor's demo player.
type Session struct {
	ID      string
	Created time.Time

	log   *zap.Logger
	clip  *audio.Clip
	vis   *waveform.Visualizer
	pcm   *stream.Broadcaster[[]int16]
	views *stream.Broadcaster[waveform.View]

	events http.Handler
	mp3    http.Handler
	rtc    *stream.WebRTCHandler

	lastSeen atomic.Int64
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	once     sync.Once
}

func newSession(clip *audio.Clip, cfg Config, log *zap.Logger) (*Session, error) {
	id := uuid.NewString()
	log = log.With(zap.String("session", id))

	s := &Session{
		ID:      id,
		Created: time.Now(),
		log:     log,
		clip:    clip,
		pcm:     stream.NewBroadcaster[[]int16](0),
		views:   stream.NewBroadcaster[waveform.View](32),
	}

	vis, err := waveform.NewVisualizer(clip, waveform.Config{
		Profile:   cfg.Profile,
		Seed:      cfg.Seed,
		Scheduler: waveform.NewTimerScheduler(cfg.FrameInterval),
		Logger:    log,
		Sink: func(f waveform.Frame) {
			s.views.Publish(waveform.Render(f))
		},
	})
	if err != nil {
		return nil, err
	}
	s.vis = vis
	s.events = stream.NewEventsHandler(s.views, s.View, log)
	s.mp3 = stream.NewHTTPHandler(s.pcm, log)
	s.rtc = stream.NewWebRTCHandler(s.pcm, log)
	s.touch()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.pcm.Run(ctx, clip.Frames())
	}()
	go func() {
		defer s.wg.Done()
		// Errors are logged by the clip; play is rejected until it loads.
		_ = clip.Load(ctx)
	}()

	return s, nil
}

// View returns the current rendered frame.
func (s *Session) View() waveform.View {
	return waveform.Render(s.vis.Frame())
}

// State returns the playback state.
func (s *Session) State() waveform.PlaybackState {
	return s.vis.State()
}

// Profile returns the waveform profile of the session.
func (s *Session) Profile() waveform.Profile {
	return s.vis.Profile()
}

// TogglePlay plays or pauses the clip.
func (s *Session) TogglePlay(ctx context.Context) error {
	s.touch()
	return s.vis.TogglePlay(ctx)
}

// Play starts the clip if it is not already playing.
func (s *Session) Play(ctx context.Context) error {
	s.touch()
	return s.vis.Play(ctx)
}

// Pause pauses the clip.
func (s *Session) Pause() {
	s.touch()
	s.vis.Pause()
}

// ToggleMute flips the mute flag.
func (s *Session) ToggleMute() {
	s.touch()
	s.vis.ToggleMute()
}

// Events serves the SSE stream of rendered frames.
func (s *Session) Events() http.Handler { return s.events }

// Audio serves the clip as MP3.
func (s *Session) Audio() http.Handler { return s.mp3 }

// Offer answers WebRTC offers for the clip audio.
func (s *Session) Offer() http.Handler { return s.rtc }

// LastSeen returns the time of the last command.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

// Close tears the session down: the visualizer unsubscribes from the clip,
// the clip stops, and every stream is disconnected.
func (s *Session) Close() {
	s.once.Do(func() {
		s.vis.Close()
		s.rtc.Close()
		s.clip.Close()
		s.cancel()
		s.wg.Wait()
		s.views.Close()
		s.pcm.Close()
		s.log.Debug("demo session closed")
	})
}
