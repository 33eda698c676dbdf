//go:build !linux

package sysclock

import (
	"errors"
	"time"
)

// ErrUnsupported is returned on platforms where htdate cannot set the
// system clock.
var ErrUnsupported = errors.New("setting the system clock is not supported on this platform")

func (sysAdjuster) Set(t time.Time) error {
	return ErrUnsupported
}
