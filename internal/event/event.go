// Package event provides the notification plumbing between a media source
// and the components observing it.
package event

import "sync"

// Emitter holds a set of handlers for one notification kind.
type Emitter struct {
	mu       sync.Mutex
	next     uint64
	handlers map[uint64]func()
}

// Subscription is the handle returned by Subscribe. Unsubscribe is
// idempotent; once it returns the handler is never invoked by a later Emit.
type Subscription struct {
	once sync.Once
	e    *Emitter
	id   uint64
}

// Subscribe registers fn and returns its subscription.
func (e *Emitter) Subscribe(fn func()) *Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handlers == nil {
		e.handlers = make(map[uint64]func())
	}
	e.next++
	e.handlers[e.next] = fn
	return &Subscription{e: e, id: e.next}
}

// Unsubscribe removes the handler.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.e.mu.Lock()
		delete(s.e.handlers, s.id)
		s.e.mu.Unlock()
	})
}

// Emit invokes every registered handler on the calling goroutine.
// Handlers run outside the emitter lock, so they may subscribe or
// unsubscribe freely.
func (e *Emitter) Emit() {
	e.mu.Lock()
	fns := make([]func(), 0, len(e.handlers))
	for _, fn := range e.handlers {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of registered handlers.
func (e *Emitter) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}
