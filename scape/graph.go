// SPDX-License-Identifier: EPL-2.0

package scape

import "github.com/ik5/soundscape/audio"

// Graph is a live soundscape instance.
type Graph interface {
	Mode() Mode
	// Output is the mode gain feeding the destination.
	Output() *audio.Gain
	// Nodes lists every node the graph owns, sources included.
	Nodes() []audio.Node
	// Sources lists the time-driven nodes: noise players and oscillators.
	Sources() []audio.Scheduled
}

// RainGraph is static filtered noise.
type RainGraph struct {
	Noise   *audio.BufferPlayer
	Lowpass *audio.BiquadFilter
	Out     *audio.Gain
}

func (g *RainGraph) Mode() Mode          { return Rain }
func (g *RainGraph) Output() *audio.Gain { return g.Out }

func (g *RainGraph) Nodes() []audio.Node {
	return []audio.Node{g.Noise, g.Lowpass, g.Out}
}

func (g *RainGraph) Sources() []audio.Scheduled {
	return []audio.Scheduled{g.Noise}
}

// WindGraph sweeps a bandpass with a slow gust oscillator.
type WindGraph struct {
	Noise     *audio.BufferPlayer
	Bandpass  *audio.BiquadFilter
	Gust      *audio.Oscillator
	GustDepth *audio.Gain
	Out       *audio.Gain
}

func (g *WindGraph) Mode() Mode          { return Wind }
func (g *WindGraph) Output() *audio.Gain { return g.Out }

func (g *WindGraph) Nodes() []audio.Node {
	return []audio.Node{g.Noise, g.Bandpass, g.Gust, g.GustDepth, g.Out}
}

func (g *WindGraph) Sources() []audio.Scheduled {
	return []audio.Scheduled{g.Noise, g.Gust}
}

// WavesGraph mixes a brown body and a pink spray layer through a drifting
// stereo panner, with a swell oscillator lifting both layers and the tone
// filter together.
type WavesGraph struct {
	Body        *audio.BufferPlayer
	BodyFilter  *audio.BiquadFilter
	BodyGain    *audio.Gain
	Spray       *audio.BufferPlayer
	SprayFilter *audio.BiquadFilter
	SprayGain   *audio.Gain
	Panner      *audio.StereoPanner
	Tone        *audio.BiquadFilter
	Out         *audio.Gain

	Swell      *audio.Oscillator
	BodyDepth  *audio.Gain
	SprayDepth *audio.Gain
	ToneDepth  *audio.Gain
	Drift      *audio.Oscillator
	DriftDepth *audio.Gain
}

func (g *WavesGraph) Mode() Mode          { return Waves }
func (g *WavesGraph) Output() *audio.Gain { return g.Out }

func (g *WavesGraph) Nodes() []audio.Node {
	return []audio.Node{
		g.Body, g.BodyFilter, g.BodyGain,
		g.Spray, g.SprayFilter, g.SprayGain,
		g.Panner, g.Tone, g.Out,
		g.Swell, g.BodyDepth, g.SprayDepth, g.ToneDepth,
		g.Drift, g.DriftDepth,
	}
}

func (g *WavesGraph) Sources() []audio.Scheduled {
	return []audio.Scheduled{g.Body, g.Spray, g.Swell, g.Drift}
}

// Release stops every source of g and then disconnects all of its nodes.
// Releasing twice is harmless.
func Release(g Graph) {
	for _, s := range g.Sources() {
		s.Stop(0)
	}
	for _, n := range g.Nodes() {
		n.Disconnect()
	}
}
