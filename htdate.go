// htdate estimates the skew between the local wall clock and a remote
// HTTP server's clock using only the Date header of a minimal HEAD
// exchange, and can optionally step the local clock by the estimate. It
// is a single-shot alternative to running a full time-synchronization
// daemon.
package main

import (
	"flag"
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/apex/log"
	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/rtx"
	"github.com/m-lab/go/warnonerror"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nettime/htdate/estimator"
	"github.com/nettime/htdate/logging"
	"github.com/nettime/htdate/metadata"
	"github.com/nettime/htdate/metrics"
	"github.com/nettime/htdate/results"
	"github.com/nettime/htdate/sample"
	"github.com/nettime/htdate/sysclock"
	"github.com/nettime/htdate/version"
)

// Flags that can be passed in on the command line (or via environment
// variables, see flagx.ArgsFromEnv).
var (
	host      = flag.String("host", "www.pool.ntp.org", "Reference host to measure against")
	port      = flag.String("port", "80", "Reference port to connect to")
	rounds    = flag.Int("rounds", estimator.DefaultRounds, "Number of request rounds per run")
	timeout   = flag.Duration("timeout", estimator.DefaultTimeout, "Per-request socket deadline (0 disables)")
	setClock  = flag.Bool("set", false, "Step the system clock by the estimated skew instead of only displaying it")
	datadir   = flag.String("datadir", "", "Directory for archival JSON run records (empty disables archival)")
	debugAddr = flag.String("debug-address", ":9990", "Address of the /metrics and /debug/pprof listener")
	labels    = flagx.KeyValue{}
)

func init() {
	flag.Var(&labels, "label", "Labels to attach to archived run records: -label=key=value")
}

func mode() string {
	if *setClock {
		return "set"
	}
	return "display"
}

func main() {
	flag.Parse()
	rtx.Must(flagx.ArgsFromEnv(flag.CommandLine), "Could not get args from environment")

	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		mux.Handle("/metrics", promhttp.Handler())
		err := http.ListenAndServe(*debugAddr, logging.MakeAccessLogHandler(mux))
		logging.Logger.WithError(err).Fatal("Debug server exited")
	}()

	cfg := estimator.Config{
		Host:    *host,
		Port:    *port,
		Rounds:  *rounds,
		Timeout: *timeout,
	}
	log.Infof("htdate %s measuring against %s (%d rounds)", version.Version, cfg.Addr(), cfg.Rounds)

	conn, err := net.DialTimeout("tcp", cfg.Addr(), cfg.Timeout)
	rtx.Must(err, "Could not connect to "+cfg.Addr())
	defer warnonerror.Close(conn, "Could not close the reference connection")

	record := results.New(cfg.Addr())
	e := &estimator.Estimator{
		Sampler: sample.New(conn, cfg.Host, cfg.Timeout),
		Rounds:  cfg.Rounds,
	}
	est, err := e.Run()
	if err != nil {
		metrics.Runs.WithLabelValues(mode(), "error").Inc()
		log.WithError(err).Fatal("Estimation failed")
	}
	metrics.SkewEstimate.Observe(est.Skew)
	log.Infof("Local clock is %+.3f s ahead of %s (interval [%+.3f, %+.3f], last RTT %v)",
		est.Skew, cfg.Addr(), est.Lower, est.Upper, est.LastRTT)

	result := "okay"
	if *setClock {
		if err := sysclock.Step(sysclock.System(), est.Skew); err != nil {
			// The estimate above is still valid and has been displayed;
			// only the correction failed.
			result = "step-error"
			log.WithError(err).Error("Could not set the system clock (are you root?)")
		} else {
			record.Applied = true
			log.Info("System clock stepped")
		}
	}
	metrics.Runs.WithLabelValues(mode(), result).Inc()

	if *datadir != "" {
		record.Fill(est)
		record.ServerMetadata = metadata.FromMap(labels.Get())
		if err := results.Save(*datadir, record); err != nil {
			log.WithError(err).Warn("Could not archive the run record")
		}
	}
}
