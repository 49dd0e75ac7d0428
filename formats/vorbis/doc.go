// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis recordings with
// github.com/jfreymuth/oggvorbis. Samples keep the channel layout and rate of
// the stream.
package vorbis
