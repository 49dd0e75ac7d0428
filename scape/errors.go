// SPDX-License-Identifier: EPL-2.0

package scape

import "errors"

var (
	ErrUnknownMode  = errors.New("unknown soundscape mode")
	ErrUnknownLayer = errors.New("unknown soundscape layer")
)
