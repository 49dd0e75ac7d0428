// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	ErrClosed       = errors.New("audio output closed")
	ErrRateMismatch = errors.New("audio output already runs at another sample rate")
)
