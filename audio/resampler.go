// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/soundscape/utils"
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// Includes basic anti-aliasing filtering when downsampling.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames per output frame
	channels int

	// hist[0..3] = frames t-1, t, t+1, t+2
	hist  [4][]float32
	valid [4]bool
	pos   float64

	primed bool
	eof    bool

	in    []float32
	inPos int
	inLen int

	lowpass bool
	lpState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		rate:     dstRate,
		step:     step,
		channels: channels,
		in:       make([]float32, 1024*channels),
		lowpass:  step > 1,
		lpState:  make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// maxEmptyReads bounds consecutive reads returning no data and no error.
const maxEmptyReads = 100

// readFrame copies the next source frame into dst.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	for empty := 0; r.inPos >= r.inLen; empty++ {
		if r.eof {
			return false, nil
		}
		if empty == maxEmptyReads {
			return false, io.ErrNoProgress
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lowpass {
		// One-pole smoothing: y[n] = 0.5*x[n] + 0.5*y[n-1]
		for c := range dst {
			dst[c] = 0.5*dst[c] + 0.5*r.lpState[c]
			r.lpState[c] = dst[c]
		}
	}

	return true, nil
}

func (r *Resampler) shift() error {
	r.hist[0], r.hist[1], r.hist[2], r.hist[3] = r.hist[1], r.hist[2], r.hist[3], r.hist[0]
	r.valid[0], r.valid[1], r.valid[2] = r.valid[1], r.valid[2], r.valid[3]

	ok, err := r.readFrame(r.hist[3])
	r.valid[3] = ok
	return err
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame(r.hist[1])
	if err != nil || !ok {
		return err
	}
	copy(r.lpState, r.hist[1])
	copy(r.hist[0], r.hist[1])
	r.valid[0], r.valid[1] = true, true

	for i := 2; i < 4; i++ {
		ok, err := r.readFrame(r.hist[i])
		if err != nil {
			return err
		}
		r.valid[i] = ok
	}
	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst) {
		for r.pos >= 1 {
			r.pos--
			if err := r.shift(); err != nil {
				return written, err
			}
		}

		if !r.valid[1] {
			return written, io.EOF
		}

		x := float32(r.pos)
		for c := range r.channels {
			y1 := r.hist[1][c]
			y0, y2 := y1, y1
			if r.valid[0] {
				y0 = r.hist[0][c]
			}
			if r.valid[2] {
				y2 = r.hist[2][c]
			}
			y3 := y2
			if r.valid[3] {
				y3 = r.hist[3][c]
			}
			dst[written+c] = utils.CubicInterpolate(y0, y1, y2, y3, x)
		}

		written += r.channels
		r.pos += r.step
	}

	return written, nil
}
