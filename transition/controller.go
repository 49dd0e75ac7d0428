// SPDX-License-Identifier: EPL-2.0

package transition

import (
	"time"

	"github.com/ik5/soundscape/audio"
	"github.com/ik5/soundscape/scape"
	"github.com/sirupsen/logrus"
)

// State of a Controller.
type State int

const (
	Idle State = iota
	Active
	Transitioning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Transitioning:
		return "transitioning"
	}
	return "unknown"
}

// Controller fades mode graphs in and out on one context.
//
// Its methods must run with the context locked: inside Context.Update, a
// Context.AfterFunc callback, or while nothing renders.
type Controller struct {
	ctx     *audio.Context
	builder *scape.Builder
	master  *audio.Gain
	fade    float64
	log     logrus.FieldLogger

	state    State
	current  scape.Graph
	retiring map[scape.Graph]struct{}
}

// New returns an idle controller whose graphs feed master.
func New(ctx *audio.Context, b *scape.Builder, master *audio.Gain, fade time.Duration, log logrus.FieldLogger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		ctx:      ctx,
		builder:  b,
		master:   master,
		fade:     fade.Seconds(),
		log:      log.WithField("component", "transition"),
		retiring: make(map[scape.Graph]struct{}),
	}
}

func (c *Controller) State() State { return c.state }

// Current is the graph fading in or playing, nil when idle.
func (c *Controller) Current() scape.Graph { return c.current }

// Retiring counts graphs that are fading out and not released yet.
func (c *Controller) Retiring() int { return len(c.retiring) }

// Start builds the graph for mode and fades it in to level. A controller that
// already plays mode only follows the new level; one playing another mode
// crossfades.
func (c *Controller) Start(mode scape.Mode, level float64) error {
	if c.current != nil {
		if c.current.Mode() == mode {
			c.SetLevel(level, c.fade)
			return nil
		}
		return c.Switch(mode, level)
	}

	g, err := c.builder.Build(mode, c.master)
	if err != nil {
		return err
	}
	g.Output().Gain.LinearRampTo(level, c.fade)
	c.current = g
	c.settle()

	c.log.WithFields(logrus.Fields{"mode": mode, "level": level}).Info("soundscape started")
	return nil
}

// Switch crossfades from the current graph to a new one for mode. The old
// graph fades out while the new one fades in over the same window and is
// released once its fade ends. Without a current graph Switch is Start.
func (c *Controller) Switch(mode scape.Mode, level float64) error {
	old := c.current
	if old == nil {
		return c.Start(mode, level)
	}
	if old.Mode() == mode {
		return nil
	}

	// Build first: on failure the old graph keeps playing.
	g, err := c.builder.Build(mode, c.master)
	if err != nil {
		return err
	}
	g.Output().Gain.LinearRampTo(level, c.fade)
	c.current = g
	c.retire(old)

	c.log.WithFields(logrus.Fields{
		"from":  old.Mode(),
		"to":    mode,
		"level": level,
	}).Info("soundscape crossfade")
	return nil
}

// Stop fades the master gain and the current graph to silence together and
// releases the graph when the fade is over.
func (c *Controller) Stop() {
	c.master.Gain.LinearRampTo(0, c.fade)

	if c.current == nil {
		return
	}
	g := c.current
	c.current = nil
	c.retire(g)

	c.log.WithField("mode", g.Mode()).Info("soundscape stopped")
}

// SetLevel ramps the output of the current graph to level over d seconds.
func (c *Controller) SetLevel(level, d float64) {
	if c.current == nil {
		return
	}
	c.current.Output().Gain.LinearRampTo(level, d)
	c.log.WithFields(logrus.Fields{"mode": c.current.Mode(), "level": level}).Debug("level ramp")
}

// Close releases every graph at once, without fading.
func (c *Controller) Close() {
	if c.current != nil {
		scape.Release(c.current)
		c.current = nil
	}
	for g := range c.retiring {
		scape.Release(g)
	}
	clear(c.retiring)
	c.settle()
}

func (c *Controller) retire(g scape.Graph) {
	g.Output().Gain.LinearRampTo(0, c.fade)
	c.retiring[g] = struct{}{}
	c.settle()

	c.ctx.AfterFunc(c.fade, func() {
		if _, ok := c.retiring[g]; !ok {
			return
		}
		scape.Release(g)
		delete(c.retiring, g)
		c.settle()

		c.log.WithField("mode", g.Mode()).Debug("graph released")
	})
}

func (c *Controller) settle() {
	switch {
	case c.current == nil:
		c.state = Idle
	case len(c.retiring) > 0:
		c.state = Transitioning
	default:
		c.state = Active
	}
}
