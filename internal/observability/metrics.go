// Package observability holds the Prometheus collectors exported on /metrics.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	borkRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pcdmanager_bork_requests_total",
		Help: "Control plane requests by environment, verb and status code (0 = transport error)",
	}, []string{"env", "method", "code"})

	borkLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pcdmanager_bork_request_duration_seconds",
		Help:    "Control plane request latency by verb",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method"})

	workflows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pcdmanager_workflows_total",
		Help: "Completed workflows by kind and status",
	}, []string{"kind", "status"})

	sweepRegions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pcdmanager_sweep_regions_total",
		Help: "Regions handled by the expiry sweep by environment and outcome",
	}, []string{"env", "outcome"})

	sweepLastRun = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pcdmanager_sweep_last_run_timestamp_seconds",
		Help: "Unix time of the last completed sweep per environment",
	}, []string{"env"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pcdmanager_http_requests_total",
		Help: "API requests by route and status code",
	}, []string{"route", "code"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pcdmanager_http_request_duration_seconds",
		Help:    "API request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pcdmanager_cache_lookups_total",
		Help: "TTL cache lookups by cache and result",
	}, []string{"cache", "result"})
)

// Sweep outcomes.
const (
	OutcomeDeleted  = "deleted"
	OutcomeFailed   = "failed"
	OutcomeNotified = "notified"
	OutcomeSkipped  = "skipped"
)

// ObserveBorkCall records one control plane request.
func ObserveBorkCall(env, method string, status int, elapsed time.Duration) {
	borkRequests.WithLabelValues(env, method, strconv.Itoa(status)).Inc()
	borkLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveWorkflow records a finished workflow.
func ObserveWorkflow(kind, status string) {
	workflows.WithLabelValues(kind, status).Inc()
}

// AddSweepRegions adds n regions to the outcome counter of env.
func AddSweepRegions(env, outcome string, n int) {
	if n <= 0 {
		return
	}
	sweepRegions.WithLabelValues(env, outcome).Add(float64(n))
}

// MarkSweepRun stamps the completion time of a sweep.
func MarkSweepRun(env string, at time.Time) {
	sweepLastRun.WithLabelValues(env).Set(float64(at.Unix()))
}

// ObserveHTTP records one API request.
func ObserveHTTP(route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveCache records a cache hit or miss.
func ObserveCache(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(cache, result).Inc()
}
