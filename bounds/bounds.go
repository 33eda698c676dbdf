// Package bounds maintains the shrinking interval guaranteed to contain
// the skew between the local clock and the reference clock.
package bounds

import (
	"math"
	"time"

	"github.com/nettime/htdate/sample"
)

// State is a [Lower, Upper] interval, in seconds, bracketing the skew of
// the local clock relative to the reference clock (local minus
// reference). Folding samples only ever tightens the interval.
type State struct {
	Lower float64
	Upper float64
}

// NewState returns the unbounded starting interval.
func NewState() State {
	return State{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// Fold tightens the interval with one sample. The reference server
// reports a truncated whole second, so the true server time at Transmit
// may exceed ServerSecond by up to one second and the skew can be as low
// as Transmit-1-ServerSecond. The true server time is never earlier than
// the reported second, so Receive-ServerSecond bounds the skew from
// above. The one-second term belongs on the lower bound only; the
// truncation is one-sided, not a symmetric RTT uncertainty.
func (st State) Fold(s sample.Sample) State {
	server := float64(s.ServerSecond)
	lower := seconds(s.Transmit) - 1 - server
	upper := seconds(s.Receive) - server
	return State{
		Lower: math.Max(st.Lower, lower),
		Upper: math.Min(st.Upper, upper),
	}
}

// Midpoint is the center of the interval, the current point estimate of
// the skew.
func (st State) Midpoint() float64 {
	return 0.5 * (st.Lower + st.Upper)
}

// Width is the size of the interval in seconds.
func (st State) Width() float64 {
	return st.Upper - st.Lower
}

// Inverted reports whether the interval has crossed itself. Under the
// model assumptions this cannot happen; a crossed interval means the
// reference clock stepped mid-run or a sample was mistimed.
func (st State) Inverted() bool {
	return st.Lower > st.Upper
}

// seconds converts a wall-clock reading to real-valued Unix seconds.
func seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
