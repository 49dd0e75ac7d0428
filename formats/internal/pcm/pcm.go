// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the integer PCM decoders of github.com/go-audio to
// audio.Source.
package pcm

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

var ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

// Reader is implemented by the go-audio wav and aiff decoders.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source normalizes integer PCM to float32 in [-1, 1].
type Source struct {
	r          Reader
	sampleRate int
	channels   int
	scale      float32
	bias       int
	buf        goaudio.IntBuffer
}

// NewSource wraps r. Unsigned samples (8-bit WAV) are centered before
// scaling.
func NewSource(r Reader, sampleRate, channels, bitDepth int, unsigned bool) (*Source, error) {
	peak := goaudio.IntMaxSignedValue(bitDepth)
	if peak == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if channels < 1 {
		channels = 1
	}

	s := &Source{
		r:          r,
		sampleRate: sampleRate,
		channels:   channels,
		scale:      1 / float32(peak+1),
		buf: goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}
	if unsigned {
		s.bias = peak + 1
	}
	return s, nil
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

// ReadSamples reads whole frames only.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) / s.channels * s.channels
	if want == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < want {
		s.buf.Data = make([]int, want)
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.r.PCMBuffer(&s.buf)
	n = min(n, want)
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v-s.bias) * s.scale
	}

	if n == 0 && err == nil {
		err = io.EOF
	}
	return n, err
}
