package demo

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/satindergrewal/salient/internal/audio"
	"github.com/satindergrewal/salient/internal/waveform"
)

var (
	ErrTooManySessions = errors.New("too many demo sessions")
	ErrClosed          = errors.New("demo manager closed")
)

// Config holds demo session parameters.
type Config struct {
	AudioPath     string
	Profile       waveform.Profile
	Seed          uint64
	FrameInterval time.Duration
	SessionTTL    time.Duration
	MaxSessions   int
	ReapInterval  time.Duration
}

// Manager owns the live demo sessions.
type Manager struct {
	cfg Config
	log *zap.Logger

	// decode is swapped in tests.
	decode     func(path string) ([]int16, error)
	decodeOnce sync.Once
	decoded    chan struct{}
	pcm        []int16
	pcmErr     error
	wg         sync.WaitGroup

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// NewManager creates a session manager.
func NewManager(cfg Config, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 10 * time.Minute
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 64
	}
	if cfg.ReapInterval <= 0 {
		cfg.ReapInterval = time.Minute
	}
	m := &Manager{
		cfg:      cfg,
		log:      log,
		sessions: make(map[string]*Session),
		decode:   audio.Decode,
		decoded:  make(chan struct{}),
	}
	return m
}

// startDecode decodes the clip once in the background. Every session shares
// the resulting samples.
func (m *Manager) startDecode() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.decodeOnce.Do(func() {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			start := time.Now()
			m.pcm, m.pcmErr = m.decode(m.cfg.AudioPath)
			if m.pcmErr != nil {
				m.log.Warn("demo clip decode failed", zap.String("path", m.cfg.AudioPath), zap.Error(m.pcmErr))
			} else {
				m.log.Info("demo clip decoded",
					zap.String("path", m.cfg.AudioPath),
					zap.Int("samples", len(m.pcm)),
					zap.Duration("elapsed", time.Since(start)))
			}
			close(m.decoded)
		}()
	})
}

// samples waits for the shared decode.
func (m *Manager) samples(ctx context.Context) ([]int16, error) {
	m.startDecode()
	select {
	case <-m.decoded:
		return m.pcm, m.pcmErr
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Create starts a new session.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	if len(m.sessions) >= m.cfg.MaxSessions {
		return nil, ErrTooManySessions
	}

	clip := audio.NewClipWithLoader(m.cfg.AudioPath, m.samples, m.log)
	s, err := newSession(clip, m.cfg, m.log)
	if err != nil {
		clip.Close()
		return nil, err
	}
	m.sessions[s.ID] = s
	m.log.Info("demo session created", zap.String("session", s.ID), zap.Int("sessions", len(m.sessions)))
	return s, nil
}

// Get looks up a live session.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete closes and removes a session.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
	return ok
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Reap closes sessions idle for longer than the TTL. Playing sessions are
// kept. Returns how many were closed.
func (m *Manager) Reap(now time.Time) int {
	var stale []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.State().Playing {
			continue
		}
		if now.Sub(s.LastSeen()) > m.cfg.SessionTTL {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	if len(stale) > 0 {
		m.log.Info("reaped idle demo sessions", zap.Int("reaped", len(stale)), zap.Int("sessions", m.Count()))
	}
	return len(stale)
}

// Run reaps idle sessions until ctx is cancelled, then closes every session.
func (m *Manager) Run(ctx context.Context) error {
	m.startDecode()
	ticker := time.NewTicker(m.cfg.ReapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Close()
			return nil
		case now := <-ticker.C:
			m.Reap(now)
		}
	}
}

// Close closes every session, refuses new ones and waits for a running
// decode to finish.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	m.wg.Wait()
}
