// Package phase computes the sub-second sleeps that align successive
// request rounds with the reference server's second boundary. Sending at
// a predictable offset within the second is what lets whole-second
// server timestamps tighten the skew interval below one second.
package phase

import (
	"math"
	"time"
)

// Frac normalizes n to its fractional part in [0, 1).
func Frac(n float64) float64 {
	r := n - math.Trunc(n)
	if r < 0 {
		r++
	}
	return r
}

// SleepDuration returns how long to suspend before the next round so
// that its transmit time lands at offset dt within the local second. dt
// is the caller's best send-time offset estimate, the interval midpoint
// minus half the last round-trip time. The result is always in [0, 1s).
func SleepDuration(dt float64, now time.Time) time.Duration {
	s := Frac(dt - Frac(seconds(now)))
	return time.Duration(s * float64(time.Second))
}

// seconds converts a wall-clock reading to real-valued Unix seconds.
func seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
