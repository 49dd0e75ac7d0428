// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/ik5/soundscape/engine"
	"github.com/ik5/soundscape/scape"
)

var errQuit = errors.New("quit")

type lineReader interface {
	Readline() (string, error)
}

type session struct {
	engine *engine.Engine
	timer  *timer
	out    io.Writer
}

// eval runs one input line. Every line counts as a user gesture, so the
// first one unlocks the audio output.
func (s *session) eval(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	s.engine.Gesture()

	name, args := fields[0], fields[1:]
	for _, cmd := range commands {
		if name != cmd.name {
			continue
		}
		if len(args) != cmd.arity {
			return fmt.Errorf("%s: wrong number of arguments: want %d, got %d", name, cmd.arity, len(args))
		}
		if err := cmd.run(s, args); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}
	return fmt.Errorf("unknown command: %s", name)
}

// repl reads commands until quit, end of input or ctx is done.
func repl(ctx context.Context, rl lineReader, s *session) error {
	for ctx.Err() == nil {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, readline.ErrInterrupt):
			return nil
		case err != nil:
			return err
		}

		err = s.eval(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, err)
		}
	}
	return nil
}

type command struct {
	name  string
	run   func(*session, []string) error
	arity int
}

var commands = []command{
	{"mode", modeCommand, 1},
	{"on", func(s *session, _ []string) error { s.engine.SetEnabled(true); return nil }, 0},
	{"off", func(s *session, _ []string) error { s.engine.SetEnabled(false); return nil }, 0},
	{"volume", volumeCommand, 1},
	{"focus", func(s *session, _ []string) error { s.timer.Focus(); return nil }, 0},
	{"break", func(s *session, _ []string) error { s.timer.Break(); return nil }, 0},
	{"pause", func(s *session, _ []string) error { s.timer.Pause(); return nil }, 0},
	{"status", statusCommand, 0},
	{"quit", func(*session, []string) error { return errQuit }, 0},
}

func modeCommand(s *session, args []string) error {
	m, err := scape.ParseMode(args[0])
	if err != nil {
		return err
	}
	s.engine.SetMode(m)
	return nil
}

func volumeCommand(s *session, args []string) error {
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return err
	}
	s.engine.SetVolume(v)
	return nil
}

func statusCommand(s *session, _ []string) error {
	st := s.engine.Status()
	_, err := fmt.Fprintf(s.out,
		"mode=%s enabled=%t volume=%.2f timer=%s left=%s unlocked=%t phase=%s master=%.3f sources=%d\n",
		st.Mode, st.Enabled, st.Volume, st.Signal, s.timer.Remaining().Round(time.Second),
		st.Unlocked, st.Phase, st.Master, st.ActiveSources)
	return err
}
