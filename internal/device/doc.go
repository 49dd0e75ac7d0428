// SPDX-License-Identifier: EPL-2.0

// Package device plays a rendered stream on the sound card through
// github.com/ebitengine/oto/v3.
//
// Builds tagged headless replace the sound card with a pacer that consumes
// the stream in real time, so the audio clock keeps moving on machines
// without audio hardware.
package device
