package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	timelinePlanner = "timeline_planner"

	// Estimate metrics
	estimateRunsTotal       = "estimate_runs_total"
	estimateDurationSeconds = "estimate_duration_seconds"
	dayEstimatesTotal       = "day_estimates_total"

	// Segmentation metrics
	segmentDiagnosticsTotal = "segment_diagnostics_total"

	// Cache metrics
	estimateCacheHitsTotal   = "estimate_cache_hits_total"
	estimateCacheMissesTotal = "estimate_cache_misses_total"

	// Labels
	sourceLabel         = "source"
	diagnosticCodeLabel = "code"
)

var dayEstimatesTotalLabels = []string{
	sourceLabel,
}

var segmentDiagnosticsTotalLabels = []string{
	diagnosticCodeLabel,
}

/**
* Metrics definition
**/
var estimateRunsTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: timelinePlanner,
		Name:      estimateRunsTotal,
		Help:      "number of total day estimate computations",
	},
)

var estimateDurationSecondsMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: timelinePlanner,
		Name:      estimateDurationSeconds,
		Help:      "duration of a day estimate computation in seconds",
		Buckets:   prometheus.DefBuckets,
	},
)

var dayEstimatesTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: timelinePlanner,
		Name:      dayEstimatesTotal,
		Help:      "number of day estimates produced, by estimate source",
	},
	dayEstimatesTotalLabels,
)

var segmentDiagnosticsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: timelinePlanner,
		Name:      segmentDiagnosticsTotal,
		Help:      "number of non-fatal input problems found during segmentation, by code",
	},
	segmentDiagnosticsTotalLabels,
)

var estimateCacheHitsTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: timelinePlanner,
		Name:      estimateCacheHitsTotal,
		Help:      "number of day estimate computations answered from cache",
	},
)

var estimateCacheMissesTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: timelinePlanner,
		Name:      estimateCacheMissesTotal,
		Help:      "number of day estimate cache lookups that missed",
	},
)

func IncreaseEstimateRunsTotalMetric() {
	estimateRunsTotalMetric.Inc()
}

func ObserveEstimateDurationMetric(seconds float64) {
	estimateDurationSecondsMetric.Observe(seconds)
}

func AddDayEstimatesTotalMetric(source string, count int) {
	labels := prometheus.Labels{
		sourceLabel: source,
	}
	dayEstimatesTotalMetric.With(labels).Add(float64(count))
}

func IncreaseSegmentDiagnosticsTotalMetric(code string) {
	labels := prometheus.Labels{
		diagnosticCodeLabel: code,
	}
	segmentDiagnosticsTotalMetric.With(labels).Inc()
}

func IncreaseEstimateCacheHitsTotalMetric() {
	estimateCacheHitsTotalMetric.Inc()
}

func IncreaseEstimateCacheMissesTotalMetric() {
	estimateCacheMissesTotalMetric.Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(estimateRunsTotalMetric)
	prometheus.MustRegister(estimateDurationSecondsMetric)
	prometheus.MustRegister(dayEstimatesTotalMetric)
	prometheus.MustRegister(segmentDiagnosticsTotalMetric)
	prometheus.MustRegister(estimateCacheHitsTotalMetric)
	prometheus.MustRegister(estimateCacheMissesTotalMetric)
}
