// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/soundscape/audio"
)

// channels is fixed: go-mp3 always decodes to interleaved stereo.
const channels = 2

// pcmReader is the part of gomp3.Decoder the source uses.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  pcmReader
	buf  []byte
	tail []byte // bytes of a sample split across reads
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) / channels * channels
	if want == 0 {
		return 0, nil
	}

	need := 2 * want
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	k := copy(s.buf, s.tail)
	s.tail = s.tail[:0]
	n, err := s.dec.Read(s.buf[k:])
	n += k

	whole := n / (2 * channels) * (2 * channels)
	s.tail = append(s.tail, s.buf[whole:n]...)

	samples := whole / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}

	if samples == 0 && err == nil {
		return 0, nil
	}
	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	return &source{dec: dec}, nil
}
