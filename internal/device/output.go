// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"sync"
)

// output holds a process-wide handle that can be created only once. A failed
// open leaves it empty so the next call tries again.
type output[T any] struct {
	mu   sync.Mutex
	h    T
	rate int
	ok   bool
}

func (o *output[T]) get(sampleRate int, open func(sampleRate int) (T, error)) (T, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ok {
		if o.rate != sampleRate {
			var zero T
			return zero, fmt.Errorf("%w: %d Hz, want %d Hz", ErrRateMismatch, o.rate, sampleRate)
		}
		return o.h, nil
	}

	h, err := open(sampleRate)
	if err != nil {
		return h, err
	}
	o.h, o.rate, o.ok = h, sampleRate, true
	return h, nil
}
