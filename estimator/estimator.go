// Package estimator drives repeated timed exchanges against a reference
// host and narrows them into a single clock skew estimate.
package estimator

import (
	"log"
	"net"
	"time"

	"github.com/nettime/htdate/bounds"
	"github.com/nettime/htdate/metrics"
	"github.com/nettime/htdate/phase"
	"github.com/nettime/htdate/sample"
)

// DefaultRounds is how many exchanges one run performs. Past roughly
// eight rounds the interval stops tightening meaningfully for typical
// RTT and jitter magnitudes; this is a tunable default, not a derived
// constant.
const DefaultRounds = 8

// DefaultTimeout is the default per-request socket deadline.
const DefaultTimeout = 10 * time.Second

// Config carries the settings of one estimation run. The reference
// address is per-run configuration, never process-wide state.
type Config struct {
	// Host is the reference host name or address.
	Host string
	// Port is the reference TCP port.
	Port string
	// Rounds is the number of exchanges to perform. Zero means
	// DefaultRounds.
	Rounds int
	// Timeout is the per-request socket deadline. Zero disables the
	// deadline and a hung request then blocks the run indefinitely.
	Timeout time.Duration
}

// Addr returns the dialable reference address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Sampler yields one timed exchange per call.
type Sampler interface {
	Sample() (sample.Sample, error)
}

// Estimate is the outcome of a completed run. Skew is positive when the
// local clock is ahead of the reference clock.
type Estimate struct {
	Skew    float64
	Lower   float64
	Upper   float64
	Rounds  int
	LastRTT time.Duration
	Start   time.Time
	End     time.Time
}

// Estimator runs the bound-narrowing procedure. The zero values of Now
// and Sleep select the real clock; tests inject fakes.
//
// A run is single-threaded: the only blocking operations are the
// sampler's network I/O and the inter-round sleeps.
type Estimator struct {
	Sampler Sampler
	Rounds  int
	Now     func() time.Time
	Sleep   func(time.Duration)
}

// Run performs the configured number of rounds and returns the final
// estimate. The first sampler failure aborts the whole run: there is no
// retry and a partial run produces no estimate.
func (e *Estimator) Run() (Estimate, error) {
	rounds := e.Rounds
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	now := e.Now
	if now == nil {
		now = time.Now
	}
	sleep := e.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	st := bounds.NewState()
	est := Estimate{Rounds: rounds, Start: now()}
	for i := 0; i < rounds; i++ {
		s, err := e.Sampler.Sample()
		if err != nil {
			return Estimate{}, err
		}
		st = st.Fold(s)
		metrics.RoundRTT.Observe(s.RTT().Seconds())
		if st.Inverted() {
			metrics.InvertedBounds.Inc()
			log.Printf("Round %d crossed the skew interval [%f, %f]; the reference clock may have stepped\n",
				i, st.Lower, st.Upper)
		}
		est.LastRTT = s.RTT()
		if i == rounds-1 {
			break
		}
		// The ideal send offset within the second is the interval
		// midpoint minus half the round trip, so the request is in
		// flight when the server's second rolls over.
		dt := st.Midpoint() - 0.5*s.RTT().Seconds()
		sleep(phase.SleepDuration(dt, now()))
	}
	// The final estimate is the bare midpoint. Half the RTT is part of
	// the send-offset target above, never of the skew itself.
	est.Skew = st.Midpoint()
	est.Lower = st.Lower
	est.Upper = st.Upper
	est.End = now()
	metrics.BoundWidth.Observe(st.Width())
	return est, nil
}
