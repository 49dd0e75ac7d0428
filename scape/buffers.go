// SPDX-License-Identifier: EPL-2.0

package scape

import (
	"fmt"
	"time"

	"github.com/ik5/soundscape/noise"
)

// BufferSource supplies the looped mono samples of a layer, at the context
// sample rate. Every call must return a buffer the caller may keep.
type BufferSource interface {
	Buffer(layer Layer) ([]float32, error)
}

// NoiseSource generates a fresh procedural noise loop per request.
type NoiseSource struct {
	gen        *noise.Generator
	seconds    float64
	sampleRate int
}

// NewNoiseSource draws loops of length d from gen. A nil gen is randomly
// seeded.
func NewNoiseSource(gen *noise.Generator, d time.Duration, sampleRate int) *NoiseSource {
	if gen == nil {
		gen = noise.NewGenerator(nil)
	}
	return &NoiseSource{gen: gen, seconds: d.Seconds(), sampleRate: sampleRate}
}

func (s *NoiseSource) Buffer(layer Layer) ([]float32, error) {
	buf, err := s.gen.Generate(layer.Color(), s.seconds, s.sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%s layer: %w", layer, err)
	}
	return buf.Samples, nil
}
