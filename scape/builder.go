// SPDX-License-Identifier: EPL-2.0

package scape

import (
	"fmt"

	"github.com/ik5/soundscape/audio"
)

// Builder assembles mode graphs on one context.
type Builder struct {
	ctx     *audio.Context
	buffers BufferSource
	tone    Tone
}

func NewBuilder(ctx *audio.Context, buffers BufferSource, tone Tone) *Builder {
	return &Builder{ctx: ctx, buffers: buffers, tone: tone}
}

// Build creates the graph for mode, connects its output to dest and starts
// its sources. The output gain starts at zero. Call it inside Context.Update
// when a device may be rendering.
func (b *Builder) Build(mode Mode, dest audio.Input) (Graph, error) {
	var (
		g   Graph
		err error
	)

	switch mode {
	case Rain:
		g, err = b.rain()
	case Wind:
		g, err = b.wind()
	case Waves:
		g, err = b.waves()
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", mode, err)
	}

	g.Output().Connect(dest)
	for _, s := range g.Sources() {
		s.Start(0)
	}

	return g, nil
}

func (b *Builder) player(layer Layer) (*audio.BufferPlayer, error) {
	samples, err := b.buffers.Buffer(layer)
	if err != nil {
		return nil, err
	}
	return audio.NewBufferPlayer(b.ctx, samples), nil
}

// lfo returns an oscillator feeding a depth gain.
func (b *Builder) lfo(rate, depth float64) (*audio.Oscillator, *audio.Gain) {
	osc := audio.NewOscillator(b.ctx, rate)
	amount := audio.NewGain(b.ctx, depth)
	osc.Connect(amount)
	return osc, amount
}

func (b *Builder) rain() (*RainGraph, error) {
	src, err := b.player(RainLayer)
	if err != nil {
		return nil, err
	}

	g := &RainGraph{
		Noise:   src,
		Lowpass: audio.NewBiquadFilter(b.ctx, audio.Lowpass, b.tone.RainCutoff, b.tone.RainQ),
		Out:     audio.NewGain(b.ctx, 0),
	}
	g.Noise.Connect(g.Lowpass)
	g.Lowpass.Connect(g.Out)

	return g, nil
}

func (b *Builder) wind() (*WindGraph, error) {
	src, err := b.player(WindLayer)
	if err != nil {
		return nil, err
	}

	g := &WindGraph{
		Noise:    src,
		Bandpass: audio.NewBiquadFilter(b.ctx, audio.Bandpass, b.tone.WindCenter, b.tone.WindQ),
		Out:      audio.NewGain(b.ctx, 0),
	}
	g.Gust, g.GustDepth = b.lfo(b.tone.GustRate, b.tone.GustDepth)

	g.Noise.Connect(g.Bandpass)
	g.Bandpass.Connect(g.Out)
	g.GustDepth.Connect(g.Bandpass.Frequency)

	return g, nil
}

func (b *Builder) waves() (*WavesGraph, error) {
	body, err := b.player(WaveBody)
	if err != nil {
		return nil, err
	}
	spray, err := b.player(WaveSpray)
	if err != nil {
		return nil, err
	}

	t := b.tone
	g := &WavesGraph{
		Body:        body,
		BodyFilter:  audio.NewBiquadFilter(b.ctx, audio.Lowpass, t.BodyCutoff, filterQ),
		BodyGain:    audio.NewGain(b.ctx, t.BodyLevel),
		Spray:       spray,
		SprayFilter: audio.NewBiquadFilter(b.ctx, audio.Highpass, t.SprayCutoff, filterQ),
		SprayGain:   audio.NewGain(b.ctx, t.SprayLevel),
		Panner:      audio.NewStereoPanner(b.ctx, 0),
		Tone:        audio.NewBiquadFilter(b.ctx, audio.Lowpass, t.ToneCutoff, filterQ),
		Out:         audio.NewGain(b.ctx, 0),
	}

	// The swell trough would otherwise invert the spray layer; keep it silent
	// until the crest instead.
	g.SprayGain.Gain.SetRange(0, 1)
	g.BodyGain.Gain.SetRange(0, 1)

	g.Body.Connect(g.BodyFilter)
	g.BodyFilter.Connect(g.BodyGain)
	g.BodyGain.Connect(g.Panner)

	g.Spray.Connect(g.SprayFilter)
	g.SprayFilter.Connect(g.SprayGain)
	g.SprayGain.Connect(g.Panner)

	g.Panner.Connect(g.Tone)
	g.Tone.Connect(g.Out)

	g.Swell = audio.NewOscillator(b.ctx, t.SwellRate)
	g.BodyDepth = audio.NewGain(b.ctx, t.BodyDepth)
	g.SprayDepth = audio.NewGain(b.ctx, t.SprayDepth)
	g.ToneDepth = audio.NewGain(b.ctx, t.ToneDepth)
	g.Swell.Connect(g.BodyDepth)
	g.Swell.Connect(g.SprayDepth)
	g.Swell.Connect(g.ToneDepth)
	g.BodyDepth.Connect(g.BodyGain.Gain)
	g.SprayDepth.Connect(g.SprayGain.Gain)
	g.ToneDepth.Connect(g.Tone.Frequency)

	g.Drift, g.DriftDepth = b.lfo(t.DriftRate, t.DriftDepth)
	g.DriftDepth.Connect(g.Panner.Pan)

	return g, nil
}
