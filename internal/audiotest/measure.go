// SPDX-License-Identifier: EPL-2.0

package audiotest

import "math"

// Channel extracts one channel from interleaved samples.
func Channel(interleaved []float32, channels, ch int) []float32 {
	out := make([]float32, 0, len(interleaved)/channels)
	for i := ch; i < len(interleaved); i += channels {
		out = append(out, interleaved[i])
	}
	return out
}

// RMS is the root mean square level of s.
func RMS(s []float32) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(s)))
}

// Peak is the largest absolute sample of s.
func Peak(s []float32) float64 {
	var p float64
	for _, v := range s {
		p = math.Max(p, math.Abs(float64(v)))
	}
	return p
}

// ZeroCrossings counts sign changes in s.
func ZeroCrossings(s []float32) int {
	n := 0
	for i := 1; i < len(s); i++ {
		if (s[i-1] < 0) != (s[i] < 0) {
			n++
		}
	}
	return n
}
