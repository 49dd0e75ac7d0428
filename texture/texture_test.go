// SPDX-License-Identifier: EPL-2.0

package texture

import (
	"context"
	"errors"
	"io/fs"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/soundscape/audio"
	"github.com/ik5/soundscape/formats/wav"
	"github.com/ik5/soundscape/internal/audiotest"
	"github.com/ik5/soundscape/noise"
	"github.com/ik5/soundscape/scape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = 12800

// writeTone writes a stereo 220 Hz recording of the given length.
func writeTone(t *testing.T, dir string, rate int, seconds float64) string {
	t.Helper()

	frames := int(seconds * float64(rate))
	samples := make([]float32, 2*frames)
	for i := range frames {
		v := float32(0.5 * math.Sin(2*math.Pi*220*float64(i)/float64(rate)))
		samples[2*i], samples[2*i+1] = v, v
	}

	path := filepath.Join(dir, "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, wav.WriteStereo16(f, rate, samples))

	return path
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"},
		DefaultRegistry().Formats())
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    int
		seconds float64
		want    int
	}{
		{"truncated and resampled", 22050, 1, testRate / 2},
		{"short recording kept whole", testRate, 0.25, testRate / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeTone(t, t.TempDir(), tt.rate, tt.seconds)
			l, err := NewLoader(nil, testRate, 500*time.Millisecond)
			require.NoError(t, err)

			loop, err := l.Load(path)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, len(loop), 4)
			assert.InDelta(t, 0.5/math.Sqrt2, audiotest.RMS(loop[100:]), 0.02)
		})
	}
}

func TestNewLoader_RoundsLoopLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		length time.Duration
		want   int
	}{
		{290 * time.Millisecond, 29},
		{570 * time.Millisecond, 57},
		{time.Second, 100},
		{time.Microsecond, 1},
	}

	for _, tt := range tests {
		l, err := NewLoader(nil, 100, tt.length)
		require.NoError(t, err)
		assert.Equal(t, tt.want, l.frames, "loop of %s at 100 Hz", tt.length)
	}
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(nil, 0, time.Second)
	assert.ErrorIs(t, err, audio.ErrInvalidSampleRate)
	_, err = NewLoader(nil, testRate, 0)
	assert.ErrorIs(t, err, ErrInvalidLoopLength)

	l, err := NewLoader(nil, testRate, time.Second)
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = l.Load(filepath.Join(dir, "rain.flac"))
	assert.ErrorIs(t, err, audio.ErrUnknownFormat)

	_, err = l.Load(filepath.Join(dir, "missing.wav"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	bogus := filepath.Join(dir, "bogus.wav")
	require.NoError(t, os.WriteFile(bogus, []byte("definitely not audio"), 0o600))
	_, err = l.Load(bogus)
	assert.ErrorIs(t, err, wav.ErrNotWavFile)
}

func TestLoader_LoadAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeTone(t, dir, testRate, 0.5)

	l, err := NewLoader(nil, testRate, time.Second)
	require.NoError(t, err)

	loops, err := l.LoadAll(context.Background(), map[scape.Layer]string{
		scape.RainLayer: good,
		scape.WindLayer: filepath.Join(dir, "wind.mp3"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "wind layer")
	assert.Len(t, loops, 1)
	assert.Contains(t, loops, scape.RainLayer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.LoadAll(ctx, map[scape.Layer]string{scape.RainLayer: good})
	assert.ErrorIs(t, err, context.Canceled)
}

type failing struct{}

var errFallback = errors.New("fallback used")

func (failing) Buffer(scape.Layer) ([]float32, error) { return nil, errFallback }

func TestOverlay(t *testing.T) {
	t.Parallel()

	loop := []float32{0.1, 0.2}
	o := NewOverlay(failing{}, map[scape.Layer][]float32{scape.WaveBody: loop})

	got, err := o.Buffer(scape.WaveBody)
	require.NoError(t, err)
	assert.Equal(t, loop, got)

	_, err = o.Buffer(scape.WaveSpray)
	assert.ErrorIs(t, err, errFallback)
}

func TestOverlay_DrivesBuilder(t *testing.T) {
	t.Parallel()

	ctx, err := audio.NewContext(testRate)
	require.NoError(t, err)

	gen := noise.NewGenerator(rand.New(rand.NewPCG(5, 6)))
	constant := make([]float32, testRate/4)
	for i := range constant {
		constant[i] = 0.25
	}
	o := NewOverlay(scape.NewNoiseSource(gen, time.Second, testRate),
		map[scape.Layer][]float32{scape.RainLayer: constant})

	b := scape.NewBuilder(ctx, o, scape.DefaultTone())
	g, err := b.Build(scape.Rain, ctx.Destination())
	require.NoError(t, err)
	g.Output().Gain.SetValue(1)

	// DC passes the lowpass untouched once it settles.
	ctx.Advance(0.1)
	out := make([]float32, 2*testRate/10)
	ctx.Render(out)
	assert.InDelta(t, 0.25, out[len(out)-1], 0.01)

	// The other layers still come from noise.
	w, err := b.Build(scape.Wind, ctx.Destination())
	require.NoError(t, err)
	assert.Equal(t, 2, len(w.Sources()))
}
