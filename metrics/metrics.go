package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for htdate estimation runs.
var (
	Runs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "htdate_runs_total",
			Help: "Number of estimation runs performed, by mode and result.",
		},
		[]string{"mode", "result"})
	SkewEstimate = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "htdate_skew_seconds",
			Help: "A histogram of final skew estimates.",
			Buckets: []float64{
				-3600, -600, -60, -10, -1, -.5, -.1, -.01,
				0,
				.01, .1, .5, 1, 10, 60, 600, 3600},
		})
	RoundRTT = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "htdate_round_rtt_seconds",
			Help: "A histogram of per-round request round-trip times.",
			Buckets: []float64{
				.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		})
	BoundWidth = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "htdate_bound_width_seconds",
			Help: "A histogram of the skew interval width after the final round.",
			Buckets: []float64{
				.01, .025, .05, .1, .25, .5, 1, 1.5, 2, 5},
		})
	InvertedBounds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "htdate_inverted_bounds_total",
			Help: "Number of rounds after which the skew interval crossed itself, which indicates a reference clock step mid-run.",
		})
)
