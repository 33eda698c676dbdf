//go:build linux

package sysclock

import (
	"time"

	"golang.org/x/sys/unix"
)

// Set steps the wall clock with settimeofday. Requires CAP_SYS_TIME;
// unprivileged callers get EPERM.
func (sysAdjuster) Set(t time.Time) error {
	tv := unix.NsecToTimeval(t.UnixNano())
	return unix.Settimeofday(&tv)
}
