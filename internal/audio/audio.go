// Package audio decodes the demo clip and plays it on a real-time clock.
package audio

import (
	"errors"
	"time"
)

const (
	SampleRate    = 48000
	Channels      = 2
	BitDepth      = 16
	FrameDuration = 20 * time.Millisecond
	FrameSize     = 960                  // samples per channel per 20ms frame
	FrameSamples  = FrameSize * Channels // total interleaved samples per frame

	// TimeUpdateInterval matches the cadence browsers use for timeupdate.
	TimeUpdateInterval = 250 * time.Millisecond
)

var (
	// ErrPlaybackRejected is returned by Play when the clip cannot start.
	ErrPlaybackRejected = errors.New("playback rejected")
	ErrNotLoaded        = errors.New("clip not loaded")
	ErrClosed           = errors.New("clip closed")
)
