// SPDX-License-Identifier: EPL-2.0

package noise

import "errors"

var (
	ErrInvalidDuration   = errors.New("noise duration must be positive")
	ErrInvalidSampleRate = errors.New("noise sample rate must be positive")
	ErrUnknownColor      = errors.New("unknown noise color")
)
