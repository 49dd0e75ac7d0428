// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"github.com/ik5/soundscape/coupling"
	"github.com/ik5/soundscape/scape"
	"github.com/ik5/soundscape/transition"
)

// Status is a snapshot of the engine.
type Status struct {
	Mode     scape.Mode
	Enabled  bool
	Volume   float64
	Signal   coupling.Signal
	Unlocked bool

	// The fields below stay zero until the audio context exists.
	Phase         transition.State
	Time          float64
	Master        float64
	MasterTarget  float64
	Level         float64
	ActiveSources int
	Retiring      int
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Status{
		Mode:     e.state.Mode,
		Enabled:  e.state.Enabled,
		Volume:   e.state.Volume,
		Signal:   e.state.Signal,
		Unlocked: e.unlocked,
	}
	if e.ctx == nil {
		return s
	}

	e.ctx.Update(func() {
		s.Phase = e.ctrl.State()
		s.Time = e.ctx.CurrentTime()
		s.Master = e.master.Gain.Value()
		s.MasterTarget = e.master.Gain.Target()
		if g := e.ctrl.Current(); g != nil {
			s.Level = g.Output().Gain.Value()
		}
		s.ActiveSources = e.ctx.ActiveSources()
		s.Retiring = e.ctrl.Retiring()
	})
	return s
}
