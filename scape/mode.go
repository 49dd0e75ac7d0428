// SPDX-License-Identifier: EPL-2.0

package scape

import (
	"fmt"
	"strings"

	"github.com/ik5/soundscape/noise"
)

// Mode is a soundscape.
type Mode int

const (
	Rain Mode = iota
	Wind
	Waves
)

// Modes lists every soundscape.
func Modes() []Mode { return []Mode{Rain, Wind, Waves} }

func (m Mode) String() string {
	switch m {
	case Rain:
		return "rain"
	case Wind:
		return "wind"
	case Waves:
		return "waves"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names returned by String, in any case.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if m < Rain || m > Waves {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Layer names a noise source inside a mode.
type Layer string

const (
	RainLayer Layer = "rain"
	WindLayer Layer = "wind"
	WaveBody  Layer = "waves.body"
	WaveSpray Layer = "waves.spray"
)

// Layers lists every layer.
func Layers() []Layer { return []Layer{RainLayer, WindLayer, WaveBody, WaveSpray} }

// ParseLayer validates a layer name.
func ParseLayer(s string) (Layer, error) {
	for _, l := range Layers() {
		if string(l) == strings.ToLower(s) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLayer, s)
}

// Color is the procedural noise used for the layer.
func (l Layer) Color() noise.Color {
	if l == WaveBody {
		return noise.Brown
	}
	return noise.Pink
}
