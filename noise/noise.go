// SPDX-License-Identifier: EPL-2.0

package noise

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/ik5/soundscape/utils"
)

// Color of a noise buffer.
type Color int

const (
	White Color = iota
	Pink
	Brown
)

// DefaultDuration is the length of the buffers looped by the soundscapes.
const DefaultDuration = 3 * time.Second

const (
	// pinkGain brings the summed Kellet states back near full scale.
	pinkGain = 0.11
	// brownLeak is k in state = (state + k*white) / (1 + k).
	brownLeak = 0.02
	// brownGain restores the energy lost by integration.
	brownGain = 3.5
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Pink:
		return "pink"
	case Brown:
		return "brown"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// Buffer is an immutable mono noise loop.
type Buffer struct {
	Color      Color
	SampleRate int
	Samples    []float32
}

// Duration of one pass through the loop.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate == 0 {
		return 0
	}
	return time.Duration(len(b.Samples)) * time.Second / time.Duration(b.SampleRate)
}

// Generator produces noise buffers from its random source.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator drawing from rng. A nil rng uses a
// randomly seeded source.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rng: rng}
}

// Generate is a convenience wrapper around a freshly seeded Generator.
func Generate(color Color, seconds float64, sampleRate int) (*Buffer, error) {
	return NewGenerator(nil).Generate(color, seconds, sampleRate)
}

// Generate returns a buffer holding seconds*sampleRate samples of color,
// rounded to the nearest sample. Any positive duration yields at least one
// sample.
func (g *Generator) Generate(color Color, seconds float64, sampleRate int) (*Buffer, error) {
	if seconds <= 0 {
		return nil, ErrInvalidDuration
	}
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	samples := make([]float32, Frames(seconds, sampleRate))

	switch color {
	case White:
		g.white(samples)
	case Pink:
		g.pink(samples)
	case Brown:
		g.brown(samples)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownColor, int(color))
	}

	return &Buffer{Color: color, SampleRate: sampleRate, Samples: samples}, nil
}

// Frames is the sample count of seconds at sampleRate, rounded to the nearest
// sample and never below one.
func Frames(seconds float64, sampleRate int) int {
	return max(int(math.Round(seconds*float64(sampleRate))), 1)
}

func (g *Generator) next() float64 {
	return g.rng.Float64()*2 - 1
}

func (g *Generator) white(dst []float32) {
	for i := range dst {
		dst[i] = float32(g.next())
	}
}

func (g *Generator) pink(dst []float32) {
	var b0, b1, b2, b3, b4, b5, b6 float64

	for i := range dst {
		w := g.next()
		b0 = 0.99886*b0 + w*0.0555179
		b1 = 0.99332*b1 + w*0.0750759
		b2 = 0.96900*b2 + w*0.1538520
		b3 = 0.86650*b3 + w*0.3104856
		b4 = 0.55000*b4 + w*0.5329522
		b5 = -0.7616*b5 - w*0.0168980

		out := (b0 + b1 + b2 + b3 + b4 + b5 + b6 + w*0.5362) * pinkGain
		dst[i] = float32(utils.Clamp(out, -1, 1))

		b6 = w * 0.115926
	}
}

func (g *Generator) brown(dst []float32) {
	var state float64

	for i := range dst {
		state = (state + brownLeak*g.next()) / (1 + brownLeak)
		dst[i] = float32(utils.Clamp(state*brownGain, -1, 1))
	}
}
