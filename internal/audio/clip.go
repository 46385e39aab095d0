package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/satindergrewal/salient/internal/event"
)

// Clip plays a decoded clip at real-time rate and reports its position the
// way a media element does: metadata-loaded once decoding completes,
// time-update every TimeUpdateInterval while playing, ended at the end.
//
// PCM frames (20ms each) are written to Frames() while playing. Muted
// clips write silence so listeners keep their timing.
type Clip struct {
	load LoadFunc
	log  *zap.Logger

	frameCh chan []int16

	timeUpdate event.Emitter
	ended      event.Emitter
	metadata   event.Emitter

	mu       sync.Mutex
	samples  []int16
	loadErr  error
	frameIdx int
	muted    bool
	playing  bool
	closed   bool
	cancel   context.CancelFunc
	loopDone chan struct{}

	wg sync.WaitGroup
}

// LoadFunc produces the decoded samples of a clip. The returned slice is
// only read, so one decode may back any number of clips.
type LoadFunc func(ctx context.Context) ([]int16, error)

// NewClip creates an unloaded clip that decodes path on Load.
func NewClip(path string, log *zap.Logger) *Clip {
	return NewClipWithLoader(path, func(context.Context) ([]int16, error) {
		return Decode(path)
	}, log)
}

// NewClipWithLoader creates an unloaded clip whose samples come from load.
func NewClipWithLoader(name string, load LoadFunc, log *zap.Logger) *Clip {
	if log == nil {
		log = zap.NewNop()
	}
	return &Clip{
		load:    load,
		log:     log.With(zap.String("clip", name)),
		frameCh: make(chan []int16, 100),
	}
}

// NewClipFromSamples creates a clip that is already loaded. Metadata-loaded
// still fires, asynchronously, so observers see the usual sequence.
func NewClipFromSamples(samples []int16, log *zap.Logger) *Clip {
	c := NewClipWithLoader("", nil, log)
	c.samples = samples
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.metadata.Emit()
	}()
	return c
}

// Load decodes the clip and fires metadata-loaded.
func (c *Clip) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.load == nil {
		return ErrNotLoaded
	}
	samples, err := c.load(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		c.loadErr = err
		c.mu.Unlock()
		c.log.Warn("clip load failed", zap.Error(err))
		return err
	}
	c.samples = samples
	c.mu.Unlock()

	c.log.Info("clip loaded", zap.Duration("duration", c.Duration()))
	c.metadata.Emit()
	return nil
}

// Frames returns the channel of outgoing PCM frames. It is closed by Close.
func (c *Clip) Frames() <-chan []int16 {
	return c.frameCh
}

// Play starts or resumes playback from the current position.
func (c *Clip) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPlaybackRejected, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.closed:
		return fmt.Errorf("%w: %w", ErrPlaybackRejected, ErrClosed)
	case c.loadErr != nil:
		return fmt.Errorf("%w: %w", ErrPlaybackRejected, c.loadErr)
	case len(c.samples) < FrameSamples:
		return fmt.Errorf("%w: %w", ErrPlaybackRejected, ErrNotLoaded)
	case c.playing:
		return nil
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	prev := c.loopDone
	done := make(chan struct{})
	c.playing = true
	c.cancel = cancel
	c.loopDone = done

	c.wg.Add(1)
	go c.run(loopCtx, prev, done)
	return nil
}

// Pause stops the clock and keeps the position.
func (c *Clip) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// SetMuted switches the outgoing frames to silence and back.
func (c *Clip) SetMuted(muted bool) {
	c.mu.Lock()
	c.muted = muted
	c.mu.Unlock()
}

// Muted reports the mute flag.
func (c *Clip) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// Playing reports whether the clock is running.
func (c *Clip) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Position returns the current playback position.
func (c *Clip) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Duration(c.frameIdx) * FrameDuration
}

// Duration returns the clip length, or 0 before it is loaded.
func (c *Clip) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Duration(len(c.samples)/FrameSamples) * FrameDuration
}

func (c *Clip) OnTimeUpdate(fn func()) *event.Subscription     { return c.timeUpdate.Subscribe(fn) }
func (c *Clip) OnEnded(fn func()) *event.Subscription          { return c.ended.Subscribe(fn) }
func (c *Clip) OnLoadedMetadata(fn func()) *event.Subscription { return c.metadata.Subscribe(fn) }

// Close stops playback, waits for the clock goroutine and closes Frames.
func (c *Clip) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopLocked()
	c.mu.Unlock()

	c.wg.Wait()
	close(c.frameCh)
}

func (c *Clip) stopLocked() {
	if !c.playing {
		return
	}
	c.playing = false
	c.cancel()
	c.cancel = nil
}

// run is the playback clock. It waits for the previous loop to exit so two
// loops never write frames at once.
func (c *Clip) run(ctx context.Context, prev <-chan struct{}, done chan struct{}) {
	defer c.wg.Done()
	defer close(done)

	if prev != nil {
		select {
		case <-prev:
		case <-ctx.Done():
			return
		}
	}

	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()

	c.mu.Lock()
	samples := c.samples
	idx := c.frameIdx
	c.mu.Unlock()
	total := len(samples) / FrameSamples

	gain := 0.0 // fade in from silence
	lastUpdate := time.Now()

	for idx < total {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		target := 1.0
		if c.Muted() {
			target = 0
		}
		frame := RampGain(samples[idx*FrameSamples:(idx+1)*FrameSamples], gain, target)
		gain = target

		select {
		case c.frameCh <- frame:
		case <-ctx.Done():
			return
		}

		idx++
		c.mu.Lock()
		if ctx.Err() != nil {
			c.mu.Unlock()
			return
		}
		c.frameIdx = idx
		c.mu.Unlock()

		if now := time.Now(); now.Sub(lastUpdate) >= TimeUpdateInterval {
			lastUpdate = now
			c.timeUpdate.Emit()
		}
	}

	c.mu.Lock()
	if ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	c.frameIdx = 0
	c.playing = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	c.log.Debug("clip ended")
	c.ended.Emit()
}
