package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DemoRequests counts requests served per async idiom (callback, promise,
// async/await, file system, chain).
var DemoRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lab2_demo_requests_total",
		Help: "Total number of demo requests received, labelled by idiom",
	},
	[]string{"method"},
)

// SimulatedFailures counts the deliberately injected fetch failures.
var SimulatedFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lab2_simulated_failures_total",
		Help: "Total number of simulated API failures injected, labelled by idiom",
	},
	[]string{"method"},
)

// FileRoundTrips counts write-then-read cycles against the demo file.
var FileRoundTrips = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lab2_file_roundtrips_total",
		Help: "Total number of demo file write-then-read cycles, by outcome",
	},
	[]string{"outcome"},
)

// ChainDuration records the wall-clock time of complete chain runs.
var ChainDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "lab2_chain_duration_seconds",
		Help:    "Wall-clock duration of full chained-step pipeline runs",
		Buckets: prometheus.DefBuckets,
	},
)

func init() {
	prometheus.MustRegister(DemoRequests, SimulatedFailures)
	prometheus.MustRegister(FileRoundTrips, ChainDuration)
}
