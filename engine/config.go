// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/ik5/soundscape/coupling"
	"github.com/ik5/soundscape/scape"
	"gopkg.in/yaml.v3"
)

// Config holds the engine settings. Durations accept "500ms" style strings
// in YAML.
type Config struct {
	SampleRate int `yaml:"sample_rate"`
	// BufferLength is the length of each looped noise or texture buffer.
	BufferLength time.Duration `yaml:"buffer_length"`
	// Fade is the crossfade and fade-out time of mode graphs.
	Fade       time.Duration `yaml:"fade"`
	MasterRamp time.Duration `yaml:"master_ramp"`
	VolumeRamp time.Duration `yaml:"volume_ramp"`

	// Initial preferences.
	Mode   scape.Mode `yaml:"mode"`
	Volume float64    `yaml:"volume"`

	coupling.Levels `yaml:",inline"`

	Tone scape.Tone `yaml:"tone"`
	// Textures maps layers to recordings that replace procedural noise.
	Textures map[scape.Layer]string `yaml:"textures,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		SampleRate:   44100,
		BufferLength: 3 * time.Second,
		Fade:         500 * time.Millisecond,
		MasterRamp:   500 * time.Millisecond,
		VolumeRamp:   200 * time.Millisecond,
		Mode:         scape.Rain,
		Volume:       0.5,
		Levels:       coupling.DefaultLevels(),
		Tone:         scape.DefaultTone(),
	}
}

// LoadConfig decodes YAML from r over DefaultConfig. Unknown keys are
// rejected. An empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return LoadConfig(f)
}

func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate %d", ErrInvalidConfig, c.SampleRate)
	}

	durations := []struct {
		name string
		d    time.Duration
	}{
		{"buffer_length", c.BufferLength},
		{"fade", c.Fade},
		{"master_ramp", c.MasterRamp},
		{"volume_ramp", c.VolumeRamp},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%w: %s %v", ErrInvalidConfig, d.name, d.d)
		}
	}

	if _, err := c.Mode.MarshalText(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	levels := []struct {
		name string
		v    float64
	}{
		{"volume", c.Volume},
		{"focus_level", c.Focus},
		{"break_level", c.Break},
	}
	for _, l := range levels {
		if math.IsNaN(l.v) || l.v < 0 || l.v > 1 {
			return fmt.Errorf("%w: %s %v out of [0, 1]", ErrInvalidConfig, l.name, l.v)
		}
	}

	for layer := range c.Textures {
		if _, err := scape.ParseLayer(string(layer)); err != nil {
			return fmt.Errorf("%w: textures: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}
