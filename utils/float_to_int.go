// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a normalized sample to 16-bit PCM, clipping
// anything outside [-1, 1].
func Float32ToInt16(x float32) int16 {
	return int16(Clamp(x, -1, 1) * 32767.0)
}

// Clamp limits v to [lo, hi].
func Clamp[T ~float32 | ~float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b; t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
