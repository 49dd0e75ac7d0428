// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/soundscape/audio"
)

func readAll(t *testing.T, src audio.Source) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 1000)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func ramp(n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = float32(math.Sin(float64(i) * 0.01))
	}
	return s
}

func assertClose(t *testing.T, got, want []float32) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-4 {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  int
	}{
		{"stereo", 2, 2 * 10000},
		{"mono", 1, 300},
		{"empty", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "out.wav")
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			in := ramp(tt.samples)
			if err := Encode(f, 22050, tt.channels, in); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			f.Close()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if want := 44 + 2*tt.samples; len(data) != want {
				t.Errorf("file size = %d, want %d", len(data), want)
			}
			if tt.samples == 0 {
				return
			}

			src, err := Decoder{}.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src.SampleRate() != 22050 || src.Channels() != tt.channels {
				t.Errorf("format = %d Hz x %d, want 22050 x %d", src.SampleRate(), src.Channels(), tt.channels)
			}
			assertClose(t, readAll(t, src), in)
		})
	}
}

func TestWritePCM16_Streamed(t *testing.T) {
	t.Parallel()

	in := ramp(2 * 9000)
	var buf bytes.Buffer
	if err := WritePCM16(&buf, 16000, 2, FloatToPCM16(in)); err != nil {
		t.Fatalf("WritePCM16() error = %v", err)
	}
	if buf.Len() != 44+2*len(in) {
		t.Errorf("size = %d, want %d", buf.Len(), 44+2*len(in))
	}

	// A plain reader is buffered by the decoder.
	src, err := Decoder{}.Decode(io.MultiReader(&buf))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	assertClose(t, readAll(t, src), in)
}

func TestWritePCM16_MatchesEncode(t *testing.T) {
	t.Parallel()

	in := ramp(64)
	var streamed bytes.Buffer
	if err := WritePCM16(&streamed, 8000, 1, FloatToPCM16(in)); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "enc.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := Encode(f, 8000, 1, in); err != nil {
		t.Fatal(err)
	}
	f.Close()

	encoded, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(streamed.Bytes()[44:], encoded[44:]) {
		t.Error("streamed and encoded PCM data differ")
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("RIFX not a wave file at all, really"))); !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode(garbage) error = %v, want ErrNotWavFile", err)
	}
	if _, err := (Decoder{}).Decode(bytes.NewReader(nil)); !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode(empty) error = %v, want ErrNotWavFile", err)
	}

	var buf bytes.Buffer
	if err := WritePCM16(&buf, 8000, 1, make([]int16, 16)); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	data[20] = 3 // IEEE float
	if _, err := (Decoder{}).Decode(bytes.NewReader(data)); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("Decode(float wav) error = %v, want ErrUnsupportedEncoding", err)
	}
}

func TestEncode_PartialFrame(t *testing.T) {
	t.Parallel()

	if err := WritePCM16(io.Discard, 8000, 2, make([]int16, 3)); !errors.Is(err, ErrPartialFrame) {
		t.Errorf("WritePCM16() error = %v, want ErrPartialFrame", err)
	}
	if err := Encode(nil, 8000, 2, make([]float32, 5)); !errors.Is(err, ErrPartialFrame) {
		t.Errorf("Encode() error = %v, want ErrPartialFrame", err)
	}
}

func BenchmarkWritePCM16(b *testing.B) {
	samples := FloatToPCM16(ramp(2 * 44100))
	b.ReportAllocs()
	for b.Loop() {
		if err := WritePCM16(io.Discard, 44100, 2, samples); err != nil {
			b.Fatal(err)
		}
	}
}
