// SPDX-License-Identifier: EPL-2.0

package soundscape

import (
	"fmt"
	"math"
	"time"

	"github.com/ik5/soundscape/coupling"
	"github.com/ik5/soundscape/engine"
	"github.com/ik5/soundscape/scape"
)

// Render plays mode through an engine without an output device and returns
// d of interleaved stereo samples at cfg.SampleRate. The timer is held at sig
// for the whole render, so the master gain settles at the level sig selects
// after the configured ramp.
//
// The engine starts from silence and fades in, exactly as it does when a user
// switches it on.
func Render(cfg engine.Config, mode scape.Mode, sig coupling.Signal, d time.Duration, opts ...engine.Option) ([]float32, error) {
	if d < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDuration, d)
	}

	cfg.Mode = mode
	e, err := engine.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	e.ObserveTimer(sig)
	e.SetEnabled(true)

	ctx := e.Context()
	if ctx == nil {
		return nil, ErrNoOutput
	}

	frames := int(math.Round(d.Seconds() * float64(cfg.SampleRate)))
	out := make([]float32, 2*frames)
	ctx.Render(out)

	return out, nil
}
