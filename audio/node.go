// SPDX-License-Identifier: EPL-2.0

package audio

import "slices"

// Node is a unit of the processing graph.
type Node interface {
	// Connect routes the node output into dst. Connecting twice to the same
	// destination is a no-op.
	Connect(dst Input)
	// Disconnect removes every outgoing connection.
	Disconnect()
	// Connected reports whether the node feeds anything.
	Connected() bool

	render(q uint64) [][]float32
}

// Input is a connection target: a processing node or a Param.
type Input interface {
	attach(src Node)
	detach(src Node)
}

// outputs is the outgoing half shared by every node.
type outputs struct {
	self  Node
	dests []Input
	last  uint64
	buf   [2][]float32
	out   [][]float32
}

func newOutputs(self Node) outputs {
	return outputs{
		self: self,
		buf:  [2][]float32{make([]float32, QuantumSize), make([]float32, QuantumSize)},
	}
}

func (o *outputs) Connect(dst Input) {
	if slices.Contains(o.dests, dst) {
		return
	}
	o.dests = append(o.dests, dst)
	dst.attach(o.self)
}

func (o *outputs) Disconnect() {
	for _, d := range o.dests {
		d.detach(o.self)
	}
	o.dests = nil
}

func (o *outputs) Connected() bool { return len(o.dests) > 0 }

// rendered reports whether quantum q is already in buf, marking it as
// rendered otherwise. Marking first also stops a cycle from recursing.
func (o *outputs) rendered(q uint64) bool {
	if o.last == q+1 {
		return true
	}
	o.last = q + 1
	return false
}

// inputs sums upstream nodes. The channel count is the widest input.
type inputs struct {
	srcs   []Node
	pulled [][][]float32
	mix    [2][]float32
}

func newInputs() inputs {
	return inputs{mix: [2][]float32{make([]float32, QuantumSize), make([]float32, QuantumSize)}}
}

func (in *inputs) attach(src Node) {
	if !slices.Contains(in.srcs, src) {
		in.srcs = append(in.srcs, src)
	}
}

func (in *inputs) detach(src Node) {
	in.srcs = slices.DeleteFunc(in.srcs, func(n Node) bool { return n == src })
}

func (in *inputs) pull(q uint64) [][]float32 {
	in.pulled = in.pulled[:0]
	channels := 1
	for _, s := range in.srcs {
		out := s.render(q)
		in.pulled = append(in.pulled, out)
		channels = max(channels, len(out))
	}

	mix := in.mix[:channels]
	for _, ch := range mix {
		clear(ch)
	}

	for _, out := range in.pulled {
		switch {
		case len(out) == channels:
			for c := range out {
				for i, s := range out[c] {
					mix[c][i] += s
				}
			}
		case len(out) == 1:
			for c := range mix {
				for i, s := range out[0] {
					mix[c][i] += s
				}
			}
		}
	}

	return mix
}

// SourceState is the lifecycle of a scheduled source.
type SourceState int

const (
	Unstarted SourceState = iota
	Playing
	Stopped
)

func (s SourceState) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Playing:
		return "playing"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Scheduled is a time-driven source that has to be started and stopped.
type Scheduled interface {
	Node
	// Start begins playback at context time when; times in the past mean
	// now. Starting twice is ignored.
	Start(when float64)
	// Stop ends playback at context time when. Stopping a source that was
	// never started or has already stopped is a no-op.
	Stop(when float64)
	State() SourceState
}

type schedule struct {
	ctx        *Context
	startFrame uint64
	stopFrame  uint64
	started    bool
	stopping   bool
	stopped    bool
}

func (s *schedule) Start(when float64) {
	if s.started || s.stopped {
		return
	}
	s.started = true
	s.startFrame = s.ctx.frameAt(when)
	s.ctx.sources[s] = struct{}{}
}

func (s *schedule) Stop(when float64) {
	if s.stopped {
		return
	}
	if !s.started {
		s.stopped = true
		return
	}

	f := max(s.ctx.frameAt(when), s.startFrame)
	if s.stopping && s.stopFrame <= f {
		return
	}
	s.stopping = true
	s.stopFrame = f
	if f <= s.ctx.frame {
		s.finish()
	}
}

func (s *schedule) finish() {
	s.stopped = true
	delete(s.ctx.sources, s)
}

func (s *schedule) State() SourceState {
	switch {
	case s.stopped:
		return Stopped
	case s.started:
		return Playing
	}
	return Unstarted
}

func (s *schedule) playing(frame uint64) bool {
	if !s.started || s.stopped || frame < s.startFrame {
		return false
	}
	return !s.stopping || frame < s.stopFrame
}
