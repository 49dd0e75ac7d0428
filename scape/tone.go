// SPDX-License-Identifier: EPL-2.0

package scape

// Tone holds the timbre constants of the three soundscapes. Frequencies are
// in Hz, rates are LFO frequencies and depths are the LFO swing added to the
// modulated parameter.
type Tone struct {
	RainCutoff float64 `yaml:"rain_cutoff"`
	RainQ      float64 `yaml:"rain_q"`

	WindCenter float64 `yaml:"wind_center"`
	WindQ      float64 `yaml:"wind_q"`
	GustRate   float64 `yaml:"gust_rate"`
	GustDepth  float64 `yaml:"gust_depth"`

	BodyCutoff  float64 `yaml:"body_cutoff"`
	BodyLevel   float64 `yaml:"body_level"`
	SprayCutoff float64 `yaml:"spray_cutoff"`
	SprayLevel  float64 `yaml:"spray_level"`
	ToneCutoff  float64 `yaml:"tone_cutoff"`
	SwellRate   float64 `yaml:"swell_rate"`
	BodyDepth   float64 `yaml:"body_depth"`
	SprayDepth  float64 `yaml:"spray_depth"`
	ToneDepth   float64 `yaml:"tone_depth"`
	DriftRate   float64 `yaml:"drift_rate"`
	DriftDepth  float64 `yaml:"drift_depth"`
}

// filterQ is used where a mode leaves the resonance unspecified.
const filterQ = 0.7071

func DefaultTone() Tone {
	return Tone{
		RainCutoff: 3000,
		RainQ:      0.7,

		WindCenter: 600,
		WindQ:      1.2,
		GustRate:   0.1,
		GustDepth:  300,

		BodyCutoff:  400,
		BodyLevel:   0.25,
		SprayCutoff: 700,
		SprayLevel:  0,
		ToneCutoff:  2500,
		SwellRate:   0.12,
		BodyDepth:   0.2,
		SprayDepth:  0.25,
		ToneDepth:   1500,
		DriftRate:   0.05,
		DriftDepth:  0.3,
	}
}
