package audio

// Smoothstep returns the smoothstep interpolation for t in [0,1]: 3t^2 - 2t^3.
func Smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// RampGain scales an interleaved frame by a gain that moves from `from` to
// `to` across the frame along a smoothstep curve. Used to avoid clicks when
// playback starts or the clip is muted. Returns a new frame.
func RampGain(frame []int16, from, to float64) []int16 {
	out := make([]int16, len(frame))
	if from == to {
		for i, s := range frame {
			out[i] = clip16(float64(s) * to)
		}
		return out
	}

	frames := len(frame) / Channels
	for i := range frame {
		pos := 0.0
		if frames > 1 {
			pos = float64(i/Channels) / float64(frames-1)
		}
		gain := from + (to-from)*Smoothstep(pos)
		out[i] = clip16(float64(frame[i]) * gain)
	}
	return out
}

func clip16(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
