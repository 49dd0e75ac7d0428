// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 recordings with github.com/hajimehoshi/go-mp3.
//
// The output is always interleaved stereo float32 at the rate of the file;
// the texture loader mixes it to mono and resamples it.
package mp3
