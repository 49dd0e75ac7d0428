// SPDX-License-Identifier: EPL-2.0

// Package texture turns recordings into loopable layer buffers.
//
// A recording is decoded by file extension, resampled to the context rate,
// mixed down to mono and cut to the loop length. An Overlay serves the loaded
// layers and defers every other layer to procedural noise.
package texture
