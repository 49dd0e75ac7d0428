// SPDX-License-Identifier: EPL-2.0

// Command soundscape plays the ambient soundscapes from a terminal.
//
// Without -render it opens the sound card and reads commands:
//
//	mode rain|wind|waves   switch the soundscape
//	on, off                enable or disable playback
//	volume 0..1            set the volume
//	focus, break, pause    drive the simulated timer
//	status                 print the engine state
//	quit
//
// The timer alternates between -focus and -break phases on its own once
// started. With -render the soundscape is written to a WAV file instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chzyer/readline"
	"github.com/ik5/soundscape"
	"github.com/ik5/soundscape/coupling"
	"github.com/ik5/soundscape/engine"
	"github.com/ik5/soundscape/formats/wav"
	"github.com/ik5/soundscape/internal/device"
	"github.com/ik5/soundscape/scape"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		render     = flag.String("render", "", "write a WAV file (- for stdout) and exit")
		mode       = flag.String("mode", "", "soundscape mode: rain, wind or waves")
		duration   = flag.Duration("duration", time.Minute, "length of -render")
		timerState = flag.String("timer", "focus", "timer state for -render: focus, break or paused")
		focusLen   = flag.Duration("focus", 25*time.Minute, "focus phase length")
		breakLen   = flag.Duration("break", 5*time.Minute, "break phase length")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := loadConfig(*configPath, *mode)
	if err != nil {
		log.Fatal(err)
	}

	if *render != "" {
		err = renderFile(cfg, *render, *timerState, *duration, log)
	} else {
		err = interactive(cfg, *focusLen, *breakLen, log)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func loadConfig(path, mode string) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = engine.LoadConfigFile(path); err != nil {
			return cfg, err
		}
	}

	if mode != "" {
		m, err := scape.ParseMode(mode)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = m
	}
	return cfg, nil
}

func parseSignal(s string) (coupling.Signal, error) {
	switch s {
	case "focus":
		return coupling.Signal{Running: true}, nil
	case "break":
		return coupling.Signal{Running: true, Break: true}, nil
	case "paused":
		return coupling.Signal{}, nil
	}
	return coupling.Signal{}, fmt.Errorf("unknown timer state %q", s)
}

func renderFile(cfg engine.Config, path, state string, d time.Duration, log *logrus.Logger) error {
	sig, err := parseSignal(state)
	if err != nil {
		return err
	}

	samples, err := soundscape.Render(cfg, cfg.Mode, sig, d, engine.WithLogger(log))
	if err != nil {
		return err
	}

	if path == "-" {
		return wav.WritePCM16(os.Stdout, cfg.SampleRate, 2, wav.FloatToPCM16(samples))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := wav.WriteStereo16(f, cfg.SampleRate, samples); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"mode":     cfg.Mode,
		"timer":    sig,
		"duration": d,
		"path":     path,
	}).Info("soundscape rendered")
	return nil
}

func openDevice(src io.Reader, sampleRate int) (engine.Device, error) {
	p, err := device.Open(src, sampleRate)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func interactive(cfg engine.Config, focus, brk time.Duration, log *logrus.Logger) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	log.SetOutput(rl.Stderr())

	e, err := engine.New(cfg, engine.WithLogger(log), engine.WithDevice(openDevice))
	if err != nil {
		return err
	}
	defer e.Close()

	t := newTimer(focus, brk, e.ObserveTimer)
	s := &session{engine: e, timer: t, out: rl.Stdout()}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return repl(ctx, rl, s)
	})
	g.Go(func() error {
		return t.run(ctx, time.Second)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
