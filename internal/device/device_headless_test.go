// SPDX-License-Identifier: EPL-2.0

//go:build headless

package device

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingReader struct{ n atomic.Int64 }

func (c *countingReader) Read(p []byte) (int, error) {
	c.n.Add(int64(len(p)))
	return len(p), nil
}

func TestPlayer_Paces(t *testing.T) {
	src := &countingReader{}
	p, err := Open(src, 8000)
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(100 * time.Millisecond)
	if err := p.Suspend(); err != nil {
		t.Fatal(err)
	}
	read := src.n.Load()
	if read == 0 {
		t.Fatal("nothing was read while running")
	}

	time.Sleep(30 * time.Millisecond)
	if src.n.Load() != read {
		t.Error("reading continued while suspended")
	}

	if err := p.Resume(); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := p.Resume(); !errors.Is(err, ErrClosed) {
		t.Errorf("Resume() after Close error = %v, want ErrClosed", err)
	}
}
