// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"io"
	"math"
	"sync"

	"github.com/ik5/soundscape/audio"
	"github.com/ik5/soundscape/coupling"
	"github.com/ik5/soundscape/scape"
	"github.com/ik5/soundscape/texture"
	"github.com/ik5/soundscape/transition"
	"github.com/ik5/soundscape/utils"
	"github.com/sirupsen/logrus"
)

// Device is the output handle of the sound card.
type Device interface {
	// Resume restarts a suspended output; it fails while the platform still
	// blocks playback.
	Resume() error
	Suspend() error
	Close() error
}

// DeviceFactory opens a device reading stereo float32 little-endian frames
// from src.
type DeviceFactory func(src io.Reader, sampleRate int) (Device, error)

type Option func(*Engine)

// WithLogger sets the logger; the default is the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithDevice plays the engine through devices made by f. Without it the
// engine has no output and its clock only moves when the caller renders.
// f runs with the engine locked and may block until the output is ready.
func WithDevice(f DeviceFactory) Option {
	return func(e *Engine) { e.newDevice = f }
}

// WithBuffers replaces procedural noise and configured textures.
func WithBuffers(b scape.BufferSource) Option {
	return func(e *Engine) { e.buffers = b }
}

// Engine reconciles the audio graph with the user preferences and the timer.
// It is safe for concurrent use.
type Engine struct {
	mu  sync.Mutex
	cfg Config
	log logrus.FieldLogger

	newDevice DeviceFactory
	buffers   scape.BufferSource

	state coupling.State

	// Created on first use.
	ctx     *audio.Context
	master  *audio.Gain
	ctrl    *transition.Controller
	coupler *coupling.Coupler
	device  Device

	unlocked bool
	closed   bool
}

// New returns a disabled engine using the mode and volume of cfg.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg: cfg,
		log: logrus.StandardLogger(),
		state: coupling.State{
			Mode:   cfg.Mode,
			Volume: cfg.Volume,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithField("component", "engine")

	return e, nil
}

func (e *Engine) Mode() scape.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Mode
}

func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Enabled
}

func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Volume
}

// Context is the audio context, nil until the engine is first enabled or
// unlocked.
func (e *Engine) Context() *audio.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx
}

// SetMode stores m and, while enabled, crossfades to it.
func (e *Engine) SetMode(m scape.Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := m.MarshalText(); err != nil {
		e.log.WithError(err).Warn("ignoring mode")
		return
	}

	next := e.state
	next.Mode = m
	e.apply(next)
}

// SetEnabled starts the current mode or fades everything out. Enabling
// creates the audio context and device on first use and tries to resume a
// suspended device.
//
// Only that first call blocks: it decodes configured textures and waits for
// the device factory, which for a sound card lasts until the output is
// ready. Later calls only schedule ramps and return at once.
func (e *Engine) SetEnabled(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if on && !e.closed {
		e.ensureAudio()
		e.resume()
	}

	next := e.state
	next.Enabled = on
	e.apply(next)
}

// SetVolume clamps v to [0, 1]. While a graph plays, its output follows the
// new volume over the volume ramp and the master gain is retargeted.
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if math.IsNaN(v) {
		v = 0
	}

	next := e.state
	next.Volume = utils.Clamp(v, 0, 1)
	e.apply(next)
}

// ObserveTimer feeds a timer change into the master gain.
func (e *Engine) ObserveTimer(sig coupling.Signal) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.state
	next.Signal = sig
	e.apply(next)
}

// Gesture reports a user interaction. The first call that manages to resume
// the output unlocks it; later calls do nothing. Failures are retried on the
// next gesture. Like the first SetEnabled, a gesture that creates the output
// waits for the device to open.
func (e *Engine) Gesture() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.unlocked || e.closed {
		return
	}
	e.ensureAudio()
	if e.resume() {
		e.unlocked = true
		e.log.Debug("audio output unlocked")
	}
}

// Unlocked reports whether a gesture has unlocked the output.
func (e *Engine) Unlocked() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unlocked
}

// Close releases every graph at once and closes the device. Later calls
// return nil and setters become no-ops.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	if e.ctx != nil {
		e.ctx.Update(e.ctrl.Close)
	}
	if e.device == nil {
		return nil
	}

	err := e.device.Close()
	e.device = nil
	e.log.Info("audio output closed")
	return err
}

// ensureAudio creates the context, the master gain and the device once.
func (e *Engine) ensureAudio() {
	if e.ctx == nil {
		ctx, err := audio.NewContext(e.cfg.SampleRate)
		if err != nil {
			e.log.WithError(err).Error("create audio context")
			return
		}

		master := audio.NewGain(ctx, 0)
		master.Connect(ctx.Destination())

		b := scape.NewBuilder(ctx, e.bufferSource(), e.cfg.Tone)
		e.ctx = ctx
		e.master = master
		e.ctrl = transition.New(ctx, b, master, e.cfg.Fade, e.log)
		e.coupler = coupling.NewCoupler(master.Gain, e.cfg.Levels, e.cfg.MasterRamp, e.log)

		e.log.WithField("sample_rate", e.cfg.SampleRate).Debug("audio context created")
	}

	if e.device == nil && e.newDevice != nil {
		dev, err := e.newDevice(e.ctx, e.cfg.SampleRate)
		if err != nil {
			e.log.WithError(err).Warn("audio output unavailable")
			return
		}
		e.device = dev
	}
}

// resume reports whether the output is running. An engine without a device
// factory has nothing to unlock.
func (e *Engine) resume() bool {
	if e.newDevice == nil {
		return e.ctx != nil
	}
	if e.device == nil {
		return false
	}
	if err := e.device.Resume(); err != nil {
		e.log.WithError(err).Warn("audio output suspended")
		return false
	}
	return true
}

func (e *Engine) bufferSource() scape.BufferSource {
	if e.buffers != nil {
		return e.buffers
	}

	var src scape.BufferSource = scape.NewNoiseSource(nil, e.cfg.BufferLength, e.cfg.SampleRate)
	if len(e.cfg.Textures) == 0 {
		return src
	}

	l, err := texture.NewLoader(nil, e.cfg.SampleRate, e.cfg.BufferLength)
	if err != nil {
		e.log.WithError(err).Warn("textures disabled")
		return src
	}
	loops, err := l.LoadAll(context.Background(), e.cfg.Textures)
	if err != nil {
		e.log.WithError(err).Warn("some textures fall back to noise")
	}
	return texture.NewOverlay(src, loops)
}

// apply stores next and schedules whatever the change requires. Without a
// context only the preferences change.
func (e *Engine) apply(next coupling.State) {
	prev := e.state
	e.state = next
	if e.closed || e.ctx == nil {
		return
	}

	eff := coupling.Reduce(prev, next, e.cfg.Levels)
	if eff == (coupling.Effect{Target: eff.Target}) {
		return
	}

	log := e.log.WithFields(logrus.Fields{
		"mode":       next.Mode,
		"transition": eff.Transition,
		"target":     eff.Target,
	})

	e.ctx.Update(func() {
		var err error
		switch eff.Transition {
		case coupling.Start:
			err = e.ctrl.Start(next.Mode, next.Volume)
		case coupling.Switch:
			err = e.ctrl.Switch(next.Mode, next.Volume)
		case coupling.Stop:
			// The controller fades the master together with the graph.
			e.ctrl.Stop()
		}
		if err != nil {
			log.WithError(err).Warn("soundscape unavailable")
		}

		if eff.Level {
			e.ctrl.SetLevel(next.Volume, e.cfg.VolumeRamp.Seconds())
		}
		if eff.Retarget && eff.Transition != coupling.Stop {
			e.coupler.Apply(next)
		}
	})

	log.Debug("state applied")
}
