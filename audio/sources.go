// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// Oscillator is a sine source, used as a low frequency modulator.
type Oscillator struct {
	outputs
	schedule
	Frequency *Param

	phase float64
	rate  float64
}

func NewOscillator(ctx *Context, freq float64) *Oscillator {
	o := &Oscillator{
		schedule:  schedule{ctx: ctx},
		Frequency: newParam(ctx, freq, 0, float64(ctx.sampleRate)/2),
		rate:      float64(ctx.sampleRate),
	}
	o.outputs = newOutputs(o)
	return o
}

func (o *Oscillator) render(q uint64) [][]float32 {
	out := o.buf[:1]
	if o.rendered(q) {
		return out
	}
	freq := o.Frequency.render(q)
	base := o.ctx.frame

	for i := range QuantumSize {
		if !o.playing(base + uint64(i)) {
			out[0][i] = 0
			continue
		}
		out[0][i] = float32(math.Sin(2 * math.Pi * o.phase))
		o.phase += float64(freq[i]) / o.rate
		if o.phase >= 1 {
			o.phase -= math.Floor(o.phase)
		}
	}
	return out
}

// BufferPlayer loops a mono sample buffer.
type BufferPlayer struct {
	outputs
	schedule

	data []float32
	pos  int
}

// NewBufferPlayer loops data, which must already be at the context rate.
// The slice is read, never written.
func NewBufferPlayer(ctx *Context, data []float32) *BufferPlayer {
	p := &BufferPlayer{schedule: schedule{ctx: ctx}, data: data}
	p.outputs = newOutputs(p)
	return p
}

func (p *BufferPlayer) render(q uint64) [][]float32 {
	out := p.buf[:1]
	if p.rendered(q) {
		return out
	}
	base := p.ctx.frame

	for i := range QuantumSize {
		if len(p.data) == 0 || !p.playing(base+uint64(i)) {
			out[0][i] = 0
			continue
		}
		out[0][i] = p.data[p.pos]
		p.pos++
		if p.pos == len(p.data) {
			p.pos = 0
		}
	}
	return out
}
