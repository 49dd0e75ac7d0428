// SPDX-License-Identifier: EPL-2.0

package coupling

import (
	"fmt"
	"time"

	"github.com/ik5/soundscape/audio"
	"github.com/ik5/soundscape/scape"
	"github.com/ik5/soundscape/utils"
	"github.com/sirupsen/logrus"
)

// Signal is the state published by the focus timer.
type Signal struct {
	Running bool
	Break   bool
}

func (s Signal) String() string {
	switch {
	case s.Break:
		return "break"
	case s.Running:
		return "focus"
	}
	return "paused"
}

// Levels are the master multipliers of the timer phases. A paused focus
// session uses the Break level.
type Levels struct {
	Focus float64 `yaml:"focus_level"`
	Break float64 `yaml:"break_level"`
}

func DefaultLevels() Levels { return Levels{Focus: 1, Break: 0.3} }

// State is everything the audio output depends on.
type State struct {
	Signal
	Enabled bool
	Mode    scape.Mode
	Volume  float64
}

// Target returns the master gain for s.
func Target(s State, lv Levels) float64 {
	if !s.Enabled {
		return 0
	}

	level := lv.Break
	if s.Running && !s.Break {
		level = lv.Focus
	}
	return level * utils.Clamp(s.Volume, 0, 1)
}

// Transition is the graph change a state change calls for.
type Transition int

const (
	None Transition = iota
	Start
	Stop
	Switch
)

func (t Transition) String() string {
	switch t {
	case None:
		return "none"
	case Start:
		return "start"
	case Stop:
		return "stop"
	case Switch:
		return "switch"
	}
	return fmt.Sprintf("Transition(%d)", int(t))
}

// Effect is the work needed to move from one State to the next.
type Effect struct {
	Transition Transition
	// Target is the master gain of the next state.
	Target float64
	// Retarget is set when an input of the master gain changed.
	Retarget bool
	// Level is set when the active graph has to follow a new volume.
	Level bool
}

// Reduce compares prev and next. Equal states need no work.
func Reduce(prev, next State, lv Levels) Effect {
	eff := Effect{
		Target: Target(next, lv),
		Retarget: prev.Signal != next.Signal ||
			prev.Enabled != next.Enabled ||
			prev.Volume != next.Volume,
	}

	switch {
	case !prev.Enabled && next.Enabled:
		eff.Transition = Start
	case prev.Enabled && !next.Enabled:
		eff.Transition = Stop
	case next.Enabled && prev.Mode != next.Mode:
		eff.Transition = Switch
	}

	eff.Level = prev.Enabled && next.Enabled && prev.Volume != next.Volume

	return eff
}

// Coupler schedules master gain ramps.
type Coupler struct {
	master *audio.Param
	levels Levels
	ramp   float64
	log    logrus.FieldLogger
}

// NewCoupler drives master with ramps lasting ramp.
func NewCoupler(master *audio.Param, lv Levels, ramp time.Duration, log logrus.FieldLogger) *Coupler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Coupler{
		master: master,
		levels: lv,
		ramp:   ramp.Seconds(),
		log:    log.WithField("component", "coupling"),
	}
}

// Apply replaces any pending master ramp with one toward the target of s,
// starting from the present gain, and returns the target. Call it with the
// context locked.
func (c *Coupler) Apply(s State) float64 {
	target := Target(s, c.levels)
	from := c.master.Value()
	c.master.LinearRampTo(target, c.ramp)

	c.log.WithFields(logrus.Fields{
		"phase":  s.Signal.String(),
		"from":   from,
		"target": target,
	}).Debug("master ramp")

	return target
}
