// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
	"testing"
)

func TestMeasurements(t *testing.T) {
	t.Parallel()

	s := []float32{1, -1, 1, -1}
	if got := RMS(s); got != 1 {
		t.Errorf("RMS() = %v, want 1", got)
	}
	if got := Peak([]float32{0.2, -0.7, 0.5}); math.Abs(got-0.7) > 1e-6 {
		t.Errorf("Peak() = %v, want 0.7", got)
	}
	if got := ZeroCrossings(s); got != 3 {
		t.Errorf("ZeroCrossings() = %d, want 3", got)
	}
	if got := Channel([]float32{1, 2, 3, 4}, 2, 1); len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Errorf("Channel() = %v, want [2 4]", got)
	}
}

func TestMockSource_EOF(t *testing.T) {
	t.Parallel()

	src := NewConstantSource(8000, 2, 3, 0.5)
	buf := make([]float32, 10)

	n, err := src.ReadSamples(buf)
	if n != 6 || err != io.EOF {
		t.Fatalf("ReadSamples() = %d, %v; want 6, EOF", n, err)
	}
	if n, err := src.ReadSamples(buf); n != 0 || err != io.EOF {
		t.Fatalf("second ReadSamples() = %d, %v; want 0, EOF", n, err)
	}
}
