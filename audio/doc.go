// SPDX-License-Identifier: EPL-2.0

// Package audio provides the signal graph runtime used by the soundscapes and
// a small pull-based pipeline for decoded recordings.
//
// # Processing Graph
//
// A Context owns an audio clock and a stereo Destination. Nodes are connected
// into a graph that is rendered in blocks of QuantumSize frames:
//
//	ctx, _ := audio.NewContext(44100)
//	ctx.Update(func() {
//	    player := audio.NewBufferPlayer(ctx, samples)
//	    lowpass := audio.NewBiquadFilter(ctx, audio.Lowpass, 3000, 0.7)
//	    out := audio.NewGain(ctx, 0)
//
//	    player.Connect(lowpass)
//	    lowpass.Connect(out)
//	    out.Connect(ctx.Destination())
//
//	    player.Start(0)
//	    out.Gain.LinearRampTo(1, 0.5)
//	})
//
// Render (or Read, for devices) pulls the graph. Advance renders without
// output and is how offline code and tests move the clock.
//
// # Parameters
//
// Every Param holds at most one pending Ramp. A new ramp replaces it and is
// anchored at the value the parameter has at that instant, so fades can be
// interrupted at any point without a discontinuity. Nodes connected to a
// Param add to its value per sample, which is how low frequency oscillators
// modulate gains, cutoffs and panning.
//
// # Scheduling
//
// Sources (Oscillator, BufferPlayer) are started and stopped at context
// times. Stop is idempotent. AfterFunc runs a callback on the rendering
// goroutine once the clock reaches a time, with the context locked.
//
// # Decoded Streams
//
// The Source interface streams interleaved float32 samples in [-1, 1]:
//
//	resampler := audio.NewResampler(source, 44100)
//	mono := audio.NewMonoMixer(resampler)
//	n, err := mono.ReadSamples(buf)
//
// Decoders are looked up by format through a Registry. Sources return io.EOF
// when no more data is available.
package audio
