package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
)

var errNeedsResample = errors.New("wav needs resampling")

// Decode reads a clip into interleaved stereo 48kHz int16 samples. WAV files
// at 48kHz are decoded in-process; everything else goes through FFmpeg.
func Decode(path string) ([]int16, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		samples, err := DecodeWAV(path)
		if !errors.Is(err, errNeedsResample) {
			return samples, err
		}
	}
	return DecodeFile(path)
}

// DecodeWAV decodes a PCM WAV file. Mono input is duplicated to both
// channels and bit depths other than 16 are rescaled.
func DecodeWAV(path string) ([]int16, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("decode %s: not a valid wav file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels == 0 {
		return nil, fmt.Errorf("decode %s: missing format", path)
	}
	if buf.Format.SampleRate != SampleRate {
		return nil, fmt.Errorf("decode %s: %d Hz: %w", path, buf.Format.SampleRate, errNeedsResample)
	}

	ch := buf.Format.NumChannels
	shift := int(dec.BitDepth) - BitDepth
	frames := len(buf.Data) / ch
	samples := make([]int16, frames*Channels)
	for i := 0; i < frames; i++ {
		for c := 0; c < Channels; c++ {
			src := c
			if src >= ch {
				src = ch - 1
			}
			v := buf.Data[i*ch+src]
			switch {
			case shift > 0:
				v >>= shift
			case shift < 0:
				v <<= -shift
			}
			samples[i*Channels+c] = int16(v)
		}
	}
	return samples, nil
}

// DecodeFile runs FFmpeg to decode an audio file to raw PCM int16 samples.
// Returns interleaved stereo samples at 48kHz.
func DecodeFile(path string) ([]int16, error) {
	cmd := exec.Command("ffmpeg",
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", "48000",
		"-ac", "2",
		"-loglevel", "error",
		"pipe:1",
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode %s: %w", path, err)
	}

	// Ensure even byte count for int16 alignment
	if len(out)%2 != 0 {
		out = out[:len(out)-1]
	}

	samples := make([]int16, len(out)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(out[i*2 : i*2+2]))
	}

	return samples, nil
}

// SamplesToBytes converts int16 samples to little-endian bytes.
func SamplesToBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}
