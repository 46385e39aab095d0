package waveform

import (
	"sync"
	"time"
)

// State is the animation state of a Driver.
type State int

const (
	Idle State = iota
	Animating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	default:
		return "unknown"
	}
}

// FrameID identifies a scheduled frame callback.
type FrameID uint64

// FrameScheduler delivers one-shot frame callbacks, in the manner of a
// display's animation-frame clock.
type FrameScheduler interface {
	// RequestFrame schedules fn to run once on the next frame.
	RequestFrame(fn func(now time.Time)) FrameID
	// CancelFrame drops a pending callback. Unknown ids are ignored.
	CancelFrame(id FrameID)
}

// TimerScheduler is a FrameScheduler backed by time.AfterFunc.
type TimerScheduler struct {
	interval time.Duration

	mu     sync.Mutex
	next   FrameID
	timers map[FrameID]*time.Timer
}

// NewTimerScheduler creates a scheduler firing frames every interval
// (16ms if interval is not positive).
func NewTimerScheduler(interval time.Duration) *TimerScheduler {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &TimerScheduler{
		interval: interval,
		timers:   make(map[FrameID]*time.Timer),
	}
}

func (s *TimerScheduler) RequestFrame(fn func(now time.Time)) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.timers[id] = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		_, pending := s.timers[id]
		delete(s.timers, id)
		s.mu.Unlock()
		if pending {
			fn(time.Now())
		}
	})
	return id
}

func (s *TimerScheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// pending returns the number of scheduled callbacks that have not fired.
func (s *TimerScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Driver runs the self-rescheduling animation loop over a base sequence.
//
// Each frame callback checks the state flag and its loop generation before
// doing anything, so a callback that outlives Stop is a no-op and at most
// one loop is ever live. Frames are delivered to onFrame one at a time;
// onFrame must not call back into the Driver.
type Driver struct {
	base    Heights
	profile Profile
	sched   FrameScheduler
	onFrame func(Heights)
	epoch   time.Time

	// emitMu serialises frame delivery so Stop can wait out an in-flight
	// frame before emitting the rest sequence.
	emitMu sync.Mutex

	mu      sync.Mutex
	state   State
	gen     uint64
	pending FrameID
	last    time.Time
	frames  uint64
	closed  bool
}

// NewDriver creates an idle driver. onFrame may be nil.
func NewDriver(base Heights, p Profile, sched FrameScheduler, onFrame func(Heights)) *Driver {
	if onFrame == nil {
		onFrame = func(Heights) {}
	}
	return &Driver{
		base:    base.Clone(),
		profile: p,
		sched:   sched,
		onFrame: onFrame,
		epoch:   time.Now(),
	}
}

// State returns the current animation state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Frames returns the number of animated frames emitted so far.
func (d *Driver) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Base returns a copy of the at-rest sequence.
func (d *Driver) Base() Heights {
	return d.base.Clone()
}

// Start moves Idle to Animating and schedules the first frame. It reports
// false when the driver was already animating or has been closed.
func (d *Driver) Start() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.state == Animating {
		return false
	}
	d.state = Animating
	d.gen++
	d.last = time.Time{}
	d.pending = d.sched.RequestFrame(d.frame(d.gen))
	return true
}

// Stop moves Animating to Idle, cancels the pending frame and emits the
// at-rest sequence. It reports false when the driver was not animating.
func (d *Driver) Stop() bool {
	d.mu.Lock()
	if d.state != Animating {
		d.mu.Unlock()
		return false
	}
	d.state = Idle
	d.gen++
	d.sched.CancelFrame(d.pending)
	d.pending = 0
	d.mu.Unlock()

	d.emitMu.Lock()
	d.onFrame(d.base.Clone())
	d.emitMu.Unlock()
	return true
}

// Close stops the loop for good. No frame is delivered after Close returns.
func (d *Driver) Close() {
	d.Stop()
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
}

func (d *Driver) frame(gen uint64) func(time.Time) {
	return func(now time.Time) {
		d.emitMu.Lock()
		defer d.emitMu.Unlock()

		d.mu.Lock()
		if d.state != Animating || d.gen != gen {
			d.mu.Unlock()
			return
		}
		var out Heights
		if d.last.IsZero() || now.Sub(d.last) >= d.profile.Throttle {
			d.last = now
			d.frames++
			out = Animate(d.base, d.profile, now.Sub(d.epoch))
		}
		d.pending = d.sched.RequestFrame(d.frame(gen))
		d.mu.Unlock()

		if out != nil {
			d.onFrame(out)
		}
	}
}
