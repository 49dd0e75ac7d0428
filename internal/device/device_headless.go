// SPDX-License-Identifier: EPL-2.0

//go:build headless

package device

import (
	"io"
	"sync"
	"time"
)

// tick is how much audio the pacer consumes at a time.
const tick = 10 * time.Millisecond

// Player drains src at the real-time rate without producing sound.
type Player struct {
	mu      sync.Mutex
	src     io.Reader
	buf     []byte
	running bool
	closed  bool
	stop    chan struct{}
	done    chan struct{}
}

func Open(src io.Reader, sampleRate int) (*Player, error) {
	frames := max(int(tick.Seconds()*float64(sampleRate)), 1)
	p := &Player{src: src, buf: make([]byte, 8*frames)}
	p.start()
	return p, nil
}

func (p *Player) start() {
	p.running = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	go func(stop, done chan struct{}) {
		defer close(done)

		t := time.NewTicker(tick)
		defer t.Stop()

		for {
			select {
			case <-stop:
				return
			case <-t.C:
				if _, err := p.src.Read(p.buf); err != nil {
					return
				}
			}
		}
	}(p.stop, p.done)
}

func (p *Player) halt() {
	if !p.running {
		return
	}
	p.running = false
	close(p.stop)
	<-p.done
}

func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if !p.running {
		p.start()
	}
	return nil
}

func (p *Player) Suspend() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	p.halt()
	return nil
}

func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.halt()
	return nil
}
