// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chzyer/readline"
	"github.com/ik5/soundscape/coupling"
	"github.com/ik5/soundscape/engine"
	"github.com/ik5/soundscape/scape"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type script struct {
	lines []string
	read  int
	err   error
}

func (s *script) Readline() (string, error) {
	if s.read == len(s.lines) {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	s.read++
	return s.lines[s.read-1], nil
}

func newSession(t *testing.T) (*session, *bytes.Buffer) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := engine.DefaultConfig()
	cfg.SampleRate = 12800
	cfg.BufferLength = 250 * time.Millisecond

	e, err := engine.New(cfg, engine.WithLogger(log))
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })

	out := new(bytes.Buffer)
	return &session{
		engine: e,
		timer:  newTimer(time.Minute, time.Minute, e.ObserveTimer),
		out:    out,
	}, out
}

func TestREPL_Commands(t *testing.T) {
	t.Parallel()

	s, out := newSession(t)
	in := &script{lines: []string{
		"mode waves",
		"",
		"on",
		"volume 0.3",
		"break",
		"status",
		"bogus",
		"volume loud",
		"mode",
		"mode sea",
		"quit",
		"off",
	}}

	require.NoError(t, repl(context.Background(), in, s))

	assert.Equal(t, 11, in.read, "quit must end the session")
	assert.Equal(t, scape.Waves, s.engine.Mode())
	assert.True(t, s.engine.Enabled())
	assert.True(t, s.engine.Unlocked())
	assert.InDelta(t, 0.3, s.engine.Volume(), 1e-12)
	assert.Equal(t, coupling.Signal{Running: true, Break: true}, s.engine.Status().Signal)

	text := out.String()
	assert.Contains(t, text, "mode=waves enabled=true volume=0.30 timer=break")
	assert.Contains(t, text, "unknown command: bogus")
	assert.Contains(t, text, "volume: strconv.ParseFloat")
	assert.Contains(t, text, "mode: wrong number of arguments: want 1, got 0")
	assert.Contains(t, text, "mode: unknown soundscape mode")
}

func TestREPL_EndsOnInput(t *testing.T) {
	t.Parallel()

	broken := errors.New("terminal gone")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"eof", nil, nil},
		{"interrupt", readline.ErrInterrupt, nil},
		{"read error", broken, broken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _ := newSession(t)
			err := repl(context.Background(), &script{lines: []string{"pause"}, err: tt.err}, s)
			assert.ErrorIs(t, err, tt.want)
			if tt.want == nil {
				assert.NoError(t, err)
			}
		})
	}
}

func TestREPL_StopsWithContext(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := &script{lines: []string{"on"}}
	require.NoError(t, repl(ctx, in, s))
	assert.Equal(t, 0, in.read)
}

func TestParseSignal(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]coupling.Signal{
		"focus":  {Running: true},
		"break":  {Running: true, Break: true},
		"paused": {},
	} {
		got, err := parseSignal(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := parseSignal("lunch")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "soundscape.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: wind\nvolume: 0.2\n"), 0o600))

	cfg, err = loadConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, scape.Wind, cfg.Mode)
	assert.InDelta(t, 0.2, cfg.Volume, 1e-12)

	cfg, err = loadConfig(path, "WAVES")
	require.NoError(t, err)
	assert.Equal(t, scape.Waves, cfg.Mode)

	_, err = loadConfig(path, "forest")
	assert.ErrorIs(t, err, scape.ErrUnknownMode)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}
