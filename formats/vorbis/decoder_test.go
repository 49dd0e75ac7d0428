// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"io"
	"testing"
)

type fakeOgg struct {
	channels int
	data     []float32
	calls    []int
}

func (f *fakeOgg) SampleRate() int { return 48000 }
func (f *fakeOgg) Channels() int   { return f.channels }

func (f *fakeOgg) Read(p []float32) (int, error) {
	f.calls = append(f.calls, len(p))
	if len(f.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	f := &fakeOgg{channels: 2, data: []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}}
	src := &source{dec: f}
	if src.SampleRate() != 48000 || src.Channels() != 2 {
		t.Fatalf("format = %d x %d", src.SampleRate(), src.Channels())
	}

	dst := make([]float32, 5)
	n, err := src.ReadSamples(dst)
	if err != nil || n != 4 {
		t.Fatalf("ReadSamples() = %d, %v, want 4 samples", n, err)
	}
	if f.calls[0] != 4 {
		t.Errorf("decoder asked for %d samples, want whole frames (4)", f.calls[0])
	}
	if dst[3] != 0.4 {
		t.Errorf("dst[3] = %v, want 0.4", dst[3])
	}

	n, _ = src.ReadSamples(dst)
	if n != 2 || dst[0] != 0.5 || dst[1] != 0.6 {
		t.Errorf("second read = %d %v", n, dst[:n])
	}
	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("final read = %d, %v, want 0, EOF", n, err)
	}
}

func TestSource_TooSmallDestination(t *testing.T) {
	t.Parallel()

	f := &fakeOgg{channels: 2, data: []float32{1, 1}}
	src := &source{dec: f}
	if n, err := src.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(1) = %d, %v", n, err)
	}
	if len(f.calls) != 0 {
		t.Error("decoder read without room for a frame")
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, in := range [][]byte{nil, []byte("not an ogg file")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(in)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", in)
		}
	}
}
