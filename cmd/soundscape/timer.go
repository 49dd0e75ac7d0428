// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"sync"
	"time"

	"github.com/ik5/soundscape/coupling"
)

// timer stands in for the focus timer of the app. While it runs, focus and
// break phases alternate; every change is reported to notify.
type timer struct {
	mu     sync.Mutex
	focus  time.Duration
	brk    time.Duration
	sig    coupling.Signal
	left   time.Duration
	notify func(coupling.Signal)
}

func newTimer(focus, brk time.Duration, notify func(coupling.Signal)) *timer {
	return &timer{focus: focus, brk: brk, left: focus, notify: notify}
}

// Focus starts a new focus phase.
func (t *timer) Focus() { t.set(coupling.Signal{Running: true}, t.focus) }

// Break starts a new break phase.
func (t *timer) Break() { t.set(coupling.Signal{Running: true, Break: true}, t.brk) }

// Pause stops the countdown and keeps the current phase.
func (t *timer) Pause() {
	t.mu.Lock()
	sig := t.sig
	sig.Running = false
	t.sig = sig
	t.mu.Unlock()

	t.notify(sig)
}

func (t *timer) set(sig coupling.Signal, d time.Duration) {
	t.mu.Lock()
	t.sig = sig
	t.left = d
	t.mu.Unlock()

	t.notify(sig)
}

func (t *timer) Signal() coupling.Signal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sig
}

func (t *timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.left
}

// tick counts d down and flips the phase when it runs out.
func (t *timer) tick(d time.Duration) {
	t.mu.Lock()
	if !t.sig.Running {
		t.mu.Unlock()
		return
	}
	t.left -= d
	if t.left > 0 {
		t.mu.Unlock()
		return
	}

	t.sig.Break = !t.sig.Break
	t.left = t.focus
	if t.sig.Break {
		t.left = t.brk
	}
	sig := t.sig
	t.mu.Unlock()

	t.notify(sig)
}

// run ticks every step until ctx is done.
func (t *timer) run(ctx context.Context, step time.Duration) error {
	tk := time.NewTicker(step)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tk.C:
			t.tick(step)
		}
	}
}
