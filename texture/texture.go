// SPDX-License-Identifier: EPL-2.0

package texture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/ik5/soundscape/audio"
	"github.com/ik5/soundscape/formats/aiff"
	"github.com/ik5/soundscape/formats/mp3"
	"github.com/ik5/soundscape/formats/vorbis"
	"github.com/ik5/soundscape/formats/wav"
	"github.com/ik5/soundscape/noise"
	"github.com/ik5/soundscape/scape"
	"golang.org/x/sync/errgroup"
)

// DefaultRegistry knows every format the module can decode.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	return r
}

// Loader decodes recordings into mono loops at one sample rate.
type Loader struct {
	registry   *audio.Registry
	sampleRate int
	frames     int
}

// NewLoader cuts loops to length. A nil registry means DefaultRegistry.
func NewLoader(registry *audio.Registry, sampleRate int, length time.Duration) (*Loader, error) {
	if sampleRate <= 0 {
		return nil, audio.ErrInvalidSampleRate
	}
	if length <= 0 {
		return nil, ErrInvalidLoopLength
	}
	frames := noise.Frames(length.Seconds(), sampleRate)
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Loader{registry: registry, sampleRate: sampleRate, frames: frames}, nil
}

// Load decodes the recording at path, picking the decoder by extension.
func (l *Loader) Load(path string) ([]float32, error) {
	dec, err := l.registry.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	loop, err := l.Decode(dec, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return loop, nil
}

// Decode reads one recording from r with dec.
func (l *Loader) Decode(dec audio.Decoder, r io.Reader) ([]float32, error) {
	src, err := dec.Decode(r)
	if err != nil {
		return nil, err
	}

	var stream audio.Source = src
	if src.SampleRate() != l.sampleRate {
		stream = audio.NewResampler(stream, l.sampleRate)
	}
	stream = audio.NewMonoMixer(stream)
	defer stream.Close()

	loop := make([]float32, l.frames)
	n := 0
	for n < len(loop) {
		k, err := stream.ReadSamples(loop[n:min(n+4096, len(loop))])
		n += k
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode texture: %w", err)
		}
	}

	if n == 0 {
		return nil, ErrEmptyRecording
	}
	return loop[:n], nil
}

// LoadAll loads every layer concurrently. Layers that fail are left out of
// the result and reported together in the error.
func (l *Loader) LoadAll(ctx context.Context, paths map[scape.Layer]string) (map[scape.Layer][]float32, error) {
	type result struct {
		layer scape.Layer
		loop  []float32
		err   error
	}

	results := make([]result, 0, len(paths))
	for layer := range paths {
		results = append(results, result{layer: layer})
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := &results[i]
			r.loop, r.err = l.Load(paths[r.layer])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	loops := make(map[scape.Layer][]float32, len(results))
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s layer: %w", r.layer, r.err))
			continue
		}
		loops[r.layer] = r.loop
	}
	return loops, errors.Join(errs...)
}

// Overlay serves recorded loops and falls back for the other layers.
type Overlay struct {
	fallback scape.BufferSource
	loops    map[scape.Layer][]float32
}

func NewOverlay(fallback scape.BufferSource, loops map[scape.Layer][]float32) *Overlay {
	return &Overlay{fallback: fallback, loops: loops}
}

// Buffer returns the recorded loop of layer when there is one. Recorded
// loops are shared between graphs and must not be written.
func (o *Overlay) Buffer(layer scape.Layer) ([]float32, error) {
	if loop, ok := o.loops[layer]; ok {
		return loop, nil
	}
	return o.fallback.Buffer(layer)
}
