// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// FilterType selects the biquad response.
type FilterType int

const (
	Lowpass FilterType = iota
	Highpass
	Bandpass
)

func (t FilterType) String() string {
	switch t {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	}
	return "unknown"
}

// BiquadFilter is a second order filter based on
// https://www.w3.org/2011/audio/audio-eq-cookbook.html
//
// Coefficients are recomputed once per quantum from the first value of the
// Frequency and Q parameters.
type BiquadFilter struct {
	outputs
	inputs
	Type      FilterType
	Frequency *Param
	Q         *Param

	rate float64
	c    [5]float64
	z    [2][2]float64 // per channel z1, z2
}

func NewBiquadFilter(ctx *Context, typ FilterType, freq, q float64) *BiquadFilter {
	f := &BiquadFilter{
		inputs:    newInputs(),
		Type:      typ,
		Frequency: newParam(ctx, freq, 0, float64(ctx.sampleRate)/2),
		Q:         newParam(ctx, q, 0.0001, 1000),
		rate:      float64(ctx.sampleRate),
	}
	f.outputs = newOutputs(f)
	return f
}

func (f *BiquadFilter) coefficients(freq, q float64) {
	freq = math.Min(math.Max(freq, 10), 0.49*f.rate)

	omega := 2 * math.Pi * freq / f.rate
	cos := math.Cos(omega)
	alpha := math.Sin(omega) / (2 * q)

	var b0, b1, b2 float64
	switch f.Type {
	case Highpass:
		b0 = (1 + cos) / 2
		b1 = -(1 + cos)
		b2 = b0
	case Bandpass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
	default:
		b0 = (1 - cos) / 2
		b1 = 1 - cos
		b2 = b0
	}
	a0 := 1 + alpha

	f.c = [5]float64{b0 / a0, b1 / a0, b2 / a0, -2 * cos / a0, (1 - alpha) / a0}
}

func (f *BiquadFilter) render(q uint64) [][]float32 {
	if f.rendered(q) {
		return f.out
	}
	in := f.pull(q)
	f.coefficients(float64(f.Frequency.render(q)[0]), float64(f.Q.render(q)[0]))

	c0, c1, c2, c3, c4 := f.c[0], f.c[1], f.c[2], f.c[3], f.c[4]
	f.out = f.buf[:len(in)]
	for ch := range in {
		z1, z2 := f.z[ch][0], f.z[ch][1]
		for i, s := range in[ch] {
			x := float64(s)
			y := c0*x + z1
			z1 = c1*x - c3*y + z2
			z2 = c2*x - c4*y
			f.out[ch][i] = float32(y)
		}
		f.z[ch][0], f.z[ch][1] = z1, z2
	}
	return f.out
}
