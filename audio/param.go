// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"slices"

	"github.com/ik5/soundscape/utils"
)

// Ramp is a scheduled linear transition of a Param.
type Ramp struct {
	StartValue float64
	StartTime  float64
	EndValue   float64
	EndTime    float64
}

// At evaluates the ramp at time t, holding the end points outside it.
func (r Ramp) At(t float64) float64 {
	switch {
	case t <= r.StartTime:
		return r.StartValue
	case t >= r.EndTime:
		return r.EndValue
	}
	return utils.Lerp(r.StartValue, r.EndValue, (t-r.StartTime)/(r.EndTime-r.StartTime))
}

// Param is an automatable node parameter.
//
// Its intrinsic value follows at most one pending Ramp; scheduling a new ramp
// replaces the pending one and starts from the value the parameter has right
// now, so a superseded fade never jumps. Nodes connected to a Param are summed
// onto the intrinsic value sample by sample, and the result is clamped to the
// parameter range.
type Param struct {
	ctx   *Context
	value float64
	ramp  Ramp
	ramps bool
	min   float64
	max   float64

	mods   []Node
	values []float32
	last   uint64
}

func newParam(ctx *Context, value, lo, hi float64) *Param {
	p := &Param{
		ctx:    ctx,
		min:    lo,
		max:    hi,
		values: make([]float32, QuantumSize),
	}
	p.value = p.clamp(value)
	return p
}

func (p *Param) clamp(v float64) float64 {
	return math.Min(math.Max(v, p.min), p.max)
}

// SetRange changes the clamp range applied to the parameter.
func (p *Param) SetRange(lo, hi float64) {
	p.min, p.max = lo, hi
	p.value = p.clamp(p.value)
}

func (p *Param) valueAt(t float64) float64 {
	if !p.ramps {
		return p.value
	}
	return p.ramp.At(t)
}

// settle folds an elapsed ramp into the static value.
func (p *Param) settle() {
	if p.ramps && p.ctx.CurrentTime() >= p.ramp.EndTime {
		p.value = p.ramp.EndValue
		p.ramps = false
	}
}

// Value is the intrinsic value at the current context time, without
// modulation.
func (p *Param) Value() float64 {
	return p.valueAt(p.ctx.CurrentTime())
}

// Target is the value the parameter settles at once any pending ramp ends.
func (p *Param) Target() float64 {
	if p.ramps {
		return p.ramp.EndValue
	}
	return p.value
}

// Pending returns the ramp still in flight, if any.
func (p *Param) Pending() (Ramp, bool) {
	p.settle()
	return p.ramp, p.ramps
}

// SetValue cancels any pending ramp and jumps to v.
func (p *Param) SetValue(v float64) {
	p.ramps = false
	p.value = p.clamp(v)
}

// Cancel drops the pending ramp, holding the current value.
func (p *Param) Cancel() {
	p.SetValue(p.Value())
}

// LinearRampTo replaces any pending ramp with a linear one from the present
// value to target, ending duration seconds from now.
func (p *Param) LinearRampTo(target, duration float64) {
	now := p.ctx.CurrentTime()
	start := p.valueAt(now)
	target = p.clamp(target)

	if duration <= 0 {
		p.SetValue(target)
		return
	}

	p.value = start
	p.ramp = Ramp{StartValue: start, StartTime: now, EndValue: target, EndTime: now + duration}
	p.ramps = true
}

func (p *Param) attach(src Node) {
	if !slices.Contains(p.mods, src) {
		p.mods = append(p.mods, src)
	}
}

func (p *Param) detach(src Node) {
	p.mods = slices.DeleteFunc(p.mods, func(n Node) bool { return n == src })
}

// render computes per-sample values for quantum q.
func (p *Param) render(q uint64) []float32 {
	if p.last == q+1 {
		return p.values
	}
	p.last = q + 1

	rate := float64(p.ctx.sampleRate)
	base := p.ctx.frame
	for i := range QuantumSize {
		p.values[i] = float32(p.valueAt(float64(base+uint64(i)) / rate))
	}

	for _, m := range p.mods {
		out := m.render(q)
		for i := range QuantumSize {
			p.values[i] += downmix(out, i)
		}
	}

	for i, v := range p.values {
		p.values[i] = float32(p.clamp(float64(v)))
	}

	p.settle()
	return p.values
}

func downmix(ch [][]float32, i int) float32 {
	if len(ch) == 2 {
		return 0.5 * (ch[0][i] + ch[1][i])
	}
	return ch[0][i]
}
