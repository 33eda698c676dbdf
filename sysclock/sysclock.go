// Package sysclock commits a skew correction to the operating system
// wall clock.
package sysclock

import "time"

// Adjuster sets the system wall clock to an absolute time. Callers
// without the privilege to change the clock receive the operating
// system's permission error; the skew estimate that produced the target
// time remains valid and can still be displayed.
type Adjuster interface {
	Set(t time.Time) error
}

// sysAdjuster is the platform implementation; its Set method is supplied
// by the build-tagged files in this package.
type sysAdjuster struct{}

// System returns the Adjuster for the real system clock.
func System() Adjuster {
	return sysAdjuster{}
}

// Step corrects the clock by the estimated skew: a clock that is
// skewSeconds ahead of the reference is set back by that much.
func Step(a Adjuster, skewSeconds float64) error {
	d := time.Duration(skewSeconds * float64(time.Second))
	return a.Set(time.Now().Add(-d))
}
