// SPDX-License-Identifier: EPL-2.0

package soundscape

import "errors"

var (
	ErrInvalidDuration = errors.New("render duration must not be negative")
	ErrNoOutput        = errors.New("engine has no audio context")
)
