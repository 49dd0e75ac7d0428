// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"math"
	"slices"
	"sort"
	"sync"
)

// QuantumSize is the number of frames rendered per processing block.
// Scheduled callbacks fire on block boundaries.
const QuantumSize = 128

type timer struct {
	frame uint64
	fn    func()
}

// Context owns the audio clock and the processing graph rooted at its
// Destination.
//
// Graph construction, parameter scheduling and source start/stop must happen
// inside Update (or inside a callback registered with AfterFunc) whenever a
// device may be rendering concurrently. Rendering holds the same lock, so a
// control change never lands in the middle of a block.
type Context struct {
	mu sync.Mutex

	sampleRate int
	frame      uint64
	quantum    uint64

	dest    *Destination
	timers  []timer
	sources map[*schedule]struct{}

	block   []float32
	pending []float32
	scratch []float32
}

// NewContext creates a stereo rendering context running at sampleRate.
func NewContext(sampleRate int) (*Context, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}

	c := &Context{
		sampleRate: sampleRate,
		sources:    make(map[*schedule]struct{}),
		block:      make([]float32, 2*QuantumSize),
	}
	c.dest = newDestination(c)

	return c, nil
}

func (c *Context) SampleRate() int { return c.sampleRate }

// Destination is the final stereo mix read by Render.
func (c *Context) Destination() *Destination { return c.dest }

// CurrentTime is the audio clock in seconds. Like every other accessor it
// reads unguarded state: call it from Update, a scheduled callback, or while
// nothing is rendering.
func (c *Context) CurrentTime() float64 {
	return float64(c.frame) / float64(c.sampleRate)
}

// ActiveSources counts sources that were started and have not stopped yet.
func (c *Context) ActiveSources() int { return len(c.sources) }

// PendingCallbacks counts callbacks registered with AfterFunc that have not
// fired yet.
func (c *Context) PendingCallbacks() int { return len(c.timers) }

// Update runs fn with the context locked.
// fn must not call Update, Render, Read or Advance.
func (c *Context) Update(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn()
}

// AfterFunc schedules fn to run once the audio clock has advanced by delay
// seconds. fn runs on the rendering goroutine with the context locked.
// Callbacks due at the same frame run in registration order.
func (c *Context) AfterFunc(delay float64, fn func()) {
	at := c.frame + c.frames(delay)
	i := sort.Search(len(c.timers), func(i int) bool { return c.timers[i].frame > at })
	c.timers = slices.Insert(c.timers, i, timer{frame: at, fn: fn})
}

func (c *Context) frames(seconds float64) uint64 {
	if seconds <= 0 {
		return 0
	}
	return uint64(math.Ceil(seconds * float64(c.sampleRate)))
}

// frameAt converts an absolute context time to a frame, never earlier than now.
func (c *Context) frameAt(when float64) uint64 {
	f := uint64(0)
	if when > 0 {
		f = uint64(math.Round(when * float64(c.sampleRate)))
	}
	return max(f, c.frame)
}

// Render fills dst with interleaved stereo frames and returns the number of
// samples written. An odd trailing sample is left untouched.
func (c *Context) Render(dst []float32) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.render(dst)
}

func (c *Context) render(dst []float32) int {
	n := len(dst) &^ 1
	written := 0

	for written < n {
		if len(c.pending) == 0 {
			c.renderQuantum()
			c.pending = c.block
		}
		k := copy(dst[written:n], c.pending)
		c.pending = c.pending[k:]
		written += k
	}

	return written
}

func (c *Context) renderQuantum() {
	c.fireTimers()

	out := c.dest.render(c.quantum)
	for i := range QuantumSize {
		c.block[2*i] = out[0][i]
		c.block[2*i+1] = out[1][i]
	}

	c.frame += QuantumSize
	c.quantum++

	for s := range c.sources {
		if s.stopping && s.stopFrame <= c.frame {
			s.finish()
		}
	}
}

func (c *Context) fireTimers() {
	for len(c.timers) > 0 && c.timers[0].frame <= c.frame {
		t := c.timers[0]
		c.timers = c.timers[1:]
		t.fn()
	}
}

// Read implements io.Reader producing stereo float32 little-endian frames,
// the format expected by output devices.
func (c *Context) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	samples := (len(p) / 8) * 2
	if cap(c.scratch) < samples {
		c.scratch = make([]float32, samples)
	}
	buf := c.scratch[:samples]
	c.render(buf)

	for i, s := range buf {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(s))
	}

	return samples * 4, nil
}

// Advance renders and discards the given amount of audio time. It drives the
// clock when no device is attached.
func (c *Context) Advance(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	frames := c.frames(seconds)
	if cap(c.scratch) < 2*QuantumSize {
		c.scratch = make([]float32, 2*QuantumSize)
	}
	buf := c.scratch[:2*QuantumSize]

	for frames > 0 {
		n := min(frames, QuantumSize)
		c.render(buf[:2*n])
		frames -= n
	}
}
