package web

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/satindergrewal/salient/internal/audio"
	"github.com/satindergrewal/salient/internal/demo"
	"github.com/satindergrewal/salient/internal/waveform"
)

type demoResponse struct {
	ID      string        `json:"id"`
	Profile string        `json:"profile"`
	View    waveform.View `json:"view"`
	Error   string        `json:"error,omitempty"`
}

func newDemoResponse(s *demo.Session) demoResponse {
	return demoResponse{ID: s.ID, Profile: s.Profile().Name, View: s.View()}
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*demo.Session, bool) {
	if s.demos == nil {
		writeError(w, http.StatusServiceUnavailable, "demo unavailable")
		return nil, false
	}
	sess, ok := s.demos.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown demo session")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleCreateDemo(w http.ResponseWriter, r *http.Request) {
	if s.demos == nil {
		writeError(w, http.StatusServiceUnavailable, "demo unavailable")
		return
	}
	if ip := clientIP(r); !s.demoLim.allow(ip, now()) {
		s.log.Info("demo creation rate limited", zap.String("ip", ip))
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusTooManyRequests, "too many demo sessions, try again shortly")
		return
	}
	sess, err := s.demos.Create()
	switch {
	case errors.Is(err, demo.ErrTooManySessions), errors.Is(err, demo.ErrClosed):
		w.Header().Set("Retry-After", "30")
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		s.log.Error("create demo session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "create demo failed")
		return
	}
	writeJSON(w, http.StatusCreated, newDemoResponse(sess))
}

func (s *Server) handleDemoState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newDemoResponse(sess))
}

func (s *Server) handleDeleteDemo(w http.ResponseWriter, r *http.Request) {
	if s.demos == nil {
		writeError(w, http.StatusServiceUnavailable, "demo unavailable")
		return
	}
	if !s.demos.Delete(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "unknown demo session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDemoPlay starts playback. A rejected play leaves the session paused
// and answers 409 with the unchanged state.
func (s *Server) handleDemoPlay(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.Play(r.Context()); err != nil {
		resp := newDemoResponse(sess)
		resp.Error = err.Error()
		status := http.StatusInternalServerError
		if errors.Is(err, audio.ErrPlaybackRejected) {
			status = http.StatusConflict
		}
		writeJSON(w, status, resp)
		return
	}
	writeJSON(w, http.StatusOK, newDemoResponse(sess))
}

func (s *Server) handleDemoPause(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Pause()
	writeJSON(w, http.StatusOK, newDemoResponse(sess))
}

func (s *Server) handleDemoMute(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.ToggleMute()
	writeJSON(w, http.StatusOK, newDemoResponse(sess))
}

func (s *Server) handleDemoEvents(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.session(w, r); ok {
		sess.Events().ServeHTTP(w, r)
	}
}

func (s *Server) handleDemoOffer(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.session(w, r); ok {
		sess.Offer().ServeHTTP(w, r)
	}
}

func (s *Server) handleDemoStream(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.session(w, r); ok {
		sess.Audio().ServeHTTP(w, r)
	}
}
