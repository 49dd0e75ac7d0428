// SPDX-License-Identifier: EPL-2.0

package texture

import "errors"

var (
	ErrEmptyRecording    = errors.New("recording has no samples")
	ErrInvalidLoopLength = errors.New("loop length must be positive")
)
