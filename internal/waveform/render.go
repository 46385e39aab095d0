package waveform

import "math"

const (
	playedColor   = "#93c5fd"
	unplayedColor = "#e5e7eb"

	// Bars within this fraction of the playhead are emphasised while playing.
	playheadWindow = 0.05
	// Heights below this are drawn as dots.
	dotThreshold = 0.2
)

// Bar is the presentation of one waveform bar.
type Bar struct {
	Height  float64 `json:"h"`
	Color   string  `json:"c"`
	Opacity float64 `json:"o"`
	ScaleY  float64 `json:"s"`
	Dot     bool    `json:"d,omitempty"`
}

// View is a frame rendered for a client.
type View struct {
	Seq uint64 `json:"seq"`
	PlaybackState
	Bars []Bar `json:"bars"`
}

// Render maps heights and progress onto bar colours, opacity and scale.
func Render(f Frame) View {
	n := len(f.Heights)
	bars := make([]Bar, n)
	for i, h := range f.Heights {
		pos := float64(i) / float64(n)
		played := pos <= f.Progress
		b := Bar{
			Height:  h,
			Color:   unplayedColor,
			Opacity: 0.7,
			ScaleY:  1,
			Dot:     h < dotThreshold,
		}
		if played {
			b.Color = playedColor
			b.Opacity = 1
		}
		if f.Playing && math.Abs(pos-f.Progress) < playheadWindow {
			b.ScaleY = 1.1
		}
		bars[i] = b
	}
	return View{Seq: f.Seq, PlaybackState: f.PlaybackState, Bars: bars}
}
