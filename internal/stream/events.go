package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const keepAliveInterval = 15 * time.Second

// EventsHandler streams broadcaster values to a browser as Server-Sent
// Events, one JSON document per event.
type EventsHandler[T any] struct {
	broadcaster *Broadcaster[T]
	current     func() T
	log         *zap.Logger
}

// NewEventsHandler creates an SSE handler. current, if set, supplies the
// value sent first so a new client does not wait for the next change.
func NewEventsHandler[T any](b *Broadcaster[T], current func() T, log *zap.Logger) *EventsHandler[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventsHandler[T]{broadcaster: b, current: current, log: log}
}

func (h *EventsHandler[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-store")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	listener := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(listener)

	h.log.Debug("event listener connected", zap.Int("listeners", h.broadcaster.ListenerCount()))
	defer h.log.Debug("event listener disconnected")

	if h.current != nil {
		if err := writeEvent(w, h.current()); err != nil {
			return
		}
		flusher.Flush()
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-listener.Done():
			return
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case v := <-listener.C:
			if err := writeEvent(w, v); err != nil {
				h.log.Debug("event write failed", zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
