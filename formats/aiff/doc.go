// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF recordings with
// github.com/go-audio/aiff.
package aiff
