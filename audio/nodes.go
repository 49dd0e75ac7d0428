// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// Gain scales its input by the Gain parameter.
type Gain struct {
	outputs
	inputs
	Gain *Param
}

func NewGain(ctx *Context, gain float64) *Gain {
	g := &Gain{inputs: newInputs(), Gain: newParam(ctx, gain, math.Inf(-1), math.Inf(1))}
	g.outputs = newOutputs(g)
	return g
}

func (g *Gain) render(q uint64) [][]float32 {
	if g.rendered(q) {
		return g.out
	}
	in := g.pull(q)
	gain := g.Gain.render(q)

	g.out = g.buf[:len(in)]
	for c := range in {
		for i, s := range in[c] {
			g.out[c][i] = s * gain[i]
		}
	}
	return g.out
}

// Destination is the terminal stereo bus of a Context.
type Destination struct {
	outputs
	inputs
}

func newDestination(ctx *Context) *Destination {
	d := &Destination{inputs: newInputs()}
	d.outputs = newOutputs(d)
	return d
}

func (d *Destination) render(q uint64) [][]float32 {
	if d.rendered(q) {
		return d.buf[:]
	}
	in := d.pull(q)

	copy(d.buf[0], in[0])
	copy(d.buf[1], in[len(in)-1])
	return d.buf[:]
}

// StereoPanner places the mono downmix of its input in the stereo field with
// an equal-power law. Pan runs from -1 (left) to 1 (right).
type StereoPanner struct {
	outputs
	inputs
	Pan *Param
}

func NewStereoPanner(ctx *Context, pan float64) *StereoPanner {
	p := &StereoPanner{inputs: newInputs(), Pan: newParam(ctx, pan, -1, 1)}
	p.outputs = newOutputs(p)
	return p
}

func (p *StereoPanner) render(q uint64) [][]float32 {
	if p.rendered(q) {
		return p.buf[:]
	}
	in := p.pull(q)
	pan := p.Pan.render(q)

	for i := range QuantumSize {
		m := downmix(in, i)
		x := (float64(pan[i]) + 1) * math.Pi / 4
		p.buf[0][i] = m * float32(math.Cos(x))
		p.buf[1][i] = m * float32(math.Sin(x))
	}
	return p.buf[:]
}
