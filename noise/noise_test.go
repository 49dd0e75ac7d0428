// SPDX-License-Identifier: EPL-2.0

package noise

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

func seeded() *Generator {
	return NewGenerator(rand.New(rand.NewPCG(1, 2)))
}

func TestGenerate_LengthAndRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		color      Color
		seconds    float64
		sampleRate int
	}{
		{White, 3, 44100},
		{Pink, 3, 44100},
		{Brown, 3, 44100},
		{Pink, 0.5, 8000},
		{Brown, 1, 48000},
		{Pink, 0.29, 100},
		{White, 0.57, 100},
		{Brown, 1.0 / 3, 44100},
	}

	for _, tt := range tests {
		t.Run(tt.color.String(), func(t *testing.T) {
			t.Parallel()

			buf, err := seeded().Generate(tt.color, tt.seconds, tt.sampleRate)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			want := int(math.Round(tt.seconds * float64(tt.sampleRate)))
			if len(buf.Samples) != want {
				t.Errorf("len(Samples) = %d, want %d", len(buf.Samples), want)
			}
			if buf.Color != tt.color {
				t.Errorf("Color = %v, want %v", buf.Color, tt.color)
			}

			for i, s := range buf.Samples {
				if s < -1 || s > 1 || math.IsNaN(float64(s)) {
					t.Fatalf("Samples[%d] = %v, outside [-1, 1]", i, s)
				}
			}
		})
	}
}

func TestGenerate_RoundsToNearestSample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds    float64
		sampleRate int
		want       int
	}{
		{0.29, 100, 29},
		{0.57, 100, 57},
		{0.004, 1000, 4},
		{1e-6, 44100, 1},
		{0.0049, 100, 1},
	}

	for _, tt := range tests {
		buf, err := seeded().Generate(Pink, tt.seconds, tt.sampleRate)
		if err != nil {
			t.Fatalf("Generate(%v, %d) error = %v", tt.seconds, tt.sampleRate, err)
		}
		if len(buf.Samples) != tt.want {
			t.Errorf("Generate(%v, %d) = %d samples, want %d", tt.seconds, tt.sampleRate, len(buf.Samples), tt.want)
		}
		if got := Frames(tt.seconds, tt.sampleRate); got != tt.want {
			t.Errorf("Frames(%v, %d) = %d, want %d", tt.seconds, tt.sampleRate, got, tt.want)
		}
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := Generate(White, 0, 44100); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("zero duration error = %v, want ErrInvalidDuration", err)
	}
	if _, err := Generate(White, 1, -1); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("negative rate error = %v, want ErrInvalidSampleRate", err)
	}
	if _, err := Generate(Color(42), 1, 8000); !errors.Is(err, ErrUnknownColor) {
		t.Errorf("unknown color error = %v, want ErrUnknownColor", err)
	}
}

// Adjacent samples of colored noise are correlated; white noise is not.
func TestGenerate_SpectralTilt(t *testing.T) {
	t.Parallel()

	lag1 := func(s []float32) float64 {
		var num, den float64
		for i := 1; i < len(s); i++ {
			num += float64(s[i]) * float64(s[i-1])
			den += float64(s[i]) * float64(s[i])
		}
		return num / den
	}

	g := seeded()
	white, _ := g.Generate(White, 1, 44100)
	pink, _ := g.Generate(Pink, 1, 44100)
	brown, _ := g.Generate(Brown, 1, 44100)

	w, p, b := lag1(white.Samples), lag1(pink.Samples), lag1(brown.Samples)
	if math.Abs(w) > 0.05 {
		t.Errorf("white lag-1 correlation = %v, want near 0", w)
	}
	if p <= w {
		t.Errorf("pink lag-1 correlation %v should exceed white %v", p, w)
	}
	if b <= p {
		t.Errorf("brown lag-1 correlation %v should exceed pink %v", b, p)
	}
}

func TestGenerate_Audible(t *testing.T) {
	t.Parallel()

	for _, c := range []Color{White, Pink, Brown} {
		buf, err := seeded().Generate(c, 1, 22050)
		if err != nil {
			t.Fatalf("Generate(%v) error = %v", c, err)
		}

		var sum float64
		for _, s := range buf.Samples {
			sum += float64(s) * float64(s)
		}
		if rms := math.Sqrt(sum / float64(len(buf.Samples))); rms < 0.02 {
			t.Errorf("%v RMS = %v, too quiet", c, rms)
		}
	}
}

func TestBuffer_Duration(t *testing.T) {
	t.Parallel()

	buf, err := seeded().Generate(White, 3, 8000)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.Duration(); got != 3*time.Second {
		t.Errorf("Duration() = %v, want 3s", got)
	}
}

func BenchmarkGeneratePink(b *testing.B) {
	g := seeded()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := g.Generate(Pink, DefaultDuration.Seconds(), 44100); err != nil {
			b.Fatal(err)
		}
	}
}
