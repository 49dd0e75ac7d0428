// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var ErrInvalidConfig = errors.New("invalid config")
