// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package device

import (
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Player streams stereo float32 little-endian frames to the sound card.
type Player struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
	closed bool
}

// sharedContext is the process oto context. oto refuses a second NewContext,
// so a failed Open after the context exists only rebuilds the player.
var sharedContext output[*oto.Context]

func newContext(sampleRate int) (*oto.Context, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio output: %w", err)
	}
	<-ready
	return ctx, nil
}

// Open starts playing src. The first call creates the process-wide oto
// context and waits until the sound card is ready; later calls reuse it and
// must ask for the same sample rate.
func Open(src io.Reader, sampleRate int) (*Player, error) {
	ctx, err := sharedContext.get(sampleRate, newContext)
	if err != nil {
		return nil, err
	}

	p := &Player{ctx: ctx, player: ctx.NewPlayer(src)}
	p.player.Play()

	return p, nil
}

// Resume restarts a suspended output. Platforms that block playback until a
// user gesture report that here.
func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if err := p.ctx.Resume(); err != nil {
		return fmt.Errorf("resume audio output: %w", err)
	}
	if !p.player.IsPlaying() {
		p.player.Play()
	}
	return p.player.Err()
}

func (p *Player) Suspend() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if err := p.ctx.Suspend(); err != nil {
		return fmt.Errorf("suspend audio output: %w", err)
	}
	return nil
}

// Close stops playback. The oto context itself lives until the process
// exits, so it is only suspended.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	err := p.player.Close()
	if serr := p.ctx.Suspend(); err == nil {
		err = serr
	}
	return err
}
