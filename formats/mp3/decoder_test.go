// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// chunkedReader hands out PCM bytes in fixed, possibly odd, sized pieces.
type chunkedReader struct {
	data  []byte
	chunk int
}

func (c *chunkedReader) SampleRate() int { return 44100 }

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), c.chunk)], c.data)
	c.data = c.data[n:]
	return n, nil
}

func pcmBytes(samples ...int16) []byte {
	b := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(b[2*i:], uint16(s))
	}
	return b
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	want := []float32{0, 0.5, -0.5, -1, 0.25, 0.25}
	data := pcmBytes(0, 16384, -16384, -32768, 8192, 8192)

	for _, chunk := range []int{1, 3, 5, 64} {
		src := &source{dec: &chunkedReader{data: bytes.Clone(data), chunk: chunk}}
		if src.Channels() != 2 || src.SampleRate() != 44100 {
			t.Fatalf("format = %d x %d", src.SampleRate(), src.Channels())
		}

		var got []float32
		buf := make([]float32, 4)
		for range 100 {
			n, err := src.ReadSamples(buf)
			if n%2 != 0 {
				t.Fatalf("chunk %d: ReadSamples() returned a partial frame (%d)", chunk, n)
			}
			got = append(got, buf[:n]...)
			if err == io.EOF {
				break
			}
		}

		if len(got) != len(want) {
			t.Fatalf("chunk %d: got %v, want %v", chunk, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("chunk %d: sample %d = %v, want %v", chunk, i, got[i], want[i])
			}
		}
	}
}

func TestSource_OddDestination(t *testing.T) {
	t.Parallel()

	src := &source{dec: &chunkedReader{data: pcmBytes(1, 2, 3, 4), chunk: 64}}
	if n, err := src.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(1) = %d, %v, want 0, nil", n, err)
	}
	if n, _ := src.ReadSamples(make([]float32, 3)); n != 2 {
		t.Errorf("ReadSamples(3) = %d, want one frame", n)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, in := range [][]byte{nil, []byte("This is not MP3 data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(in)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", in)
		}
	}
}
