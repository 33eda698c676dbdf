package bounds_test

import (
	"math"
	"testing"
	"time"

	"github.com/nettime/htdate/bounds"
	"github.com/nettime/htdate/sample"
)

const epsilon = 1e-6

// at builds a wall-clock reading from real-valued Unix seconds.
func at(seconds float64) time.Time {
	return time.Unix(0, int64(seconds*1e9))
}

func TestFoldSingleSample(t *testing.T) {
	s := sample.Sample{
		Transmit:     at(100.2),
		Receive:      at(100.3),
		ServerSecond: 100,
	}
	st := bounds.NewState().Fold(s)
	if math.Abs(st.Lower-(-0.8)) > epsilon {
		t.Errorf("Lower = %f, want -0.8", st.Lower)
	}
	if math.Abs(st.Upper-0.3) > epsilon {
		t.Errorf("Upper = %f, want 0.3", st.Upper)
	}
	if st.Inverted() {
		t.Error("interval should not be inverted")
	}
	if math.Abs(st.Midpoint()-(-0.25)) > epsilon {
		t.Errorf("Midpoint() = %f, want -0.25", st.Midpoint())
	}
	if math.Abs(st.Width()-1.1) > epsilon {
		t.Errorf("Width() = %f, want 1.1", st.Width())
	}
}

func TestFoldOnlyTightens(t *testing.T) {
	samples := []sample.Sample{
		{Transmit: at(100.2), Receive: at(100.3), ServerSecond: 100},
		{Transmit: at(101.7), Receive: at(101.9), ServerSecond: 101},
		{Transmit: at(102.1), Receive: at(103.0), ServerSecond: 102},
		{Transmit: at(104.0), Receive: at(104.05), ServerSecond: 103},
		{Transmit: at(105.5), Receive: at(105.6), ServerSecond: 105},
	}
	st := bounds.NewState()
	for i, s := range samples {
		next := st.Fold(s)
		if next.Lower < st.Lower {
			t.Errorf("sample %d: Lower regressed from %f to %f", i, st.Lower, next.Lower)
		}
		if next.Upper > st.Upper {
			t.Errorf("sample %d: Upper regressed from %f to %f", i, st.Upper, next.Upper)
		}
		st = next
	}
	if math.IsInf(st.Lower, -1) || math.IsInf(st.Upper, 1) {
		t.Error("interval should be finite after folding samples")
	}
}

func TestFoldRepeatedIdenticalSamples(t *testing.T) {
	// A server stuck on the same reported second with negligible RTT:
	// the interval must stop shrinking but never widen.
	s := sample.Sample{
		Transmit:     at(200.5),
		Receive:      at(200.501),
		ServerSecond: 200,
	}
	st := bounds.NewState().Fold(s)
	width := st.Width()
	for i := 0; i < 7; i++ {
		st = st.Fold(s)
		if st.Width() > width+epsilon {
			t.Fatalf("Width() grew to %f after fold %d", st.Width(), i+2)
		}
		width = st.Width()
	}
	// True skew is 0.5 give or take the one-second truncation.
	if math.Abs(st.Midpoint()-0.5) > 1.0 {
		t.Errorf("Midpoint() = %f, want within 1 s of 0.5", st.Midpoint())
	}
}

func TestInverted(t *testing.T) {
	st := bounds.State{Lower: 0.4, Upper: 0.1}
	if !st.Inverted() {
		t.Error("crossed interval should report Inverted()")
	}
}
