package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the consent engine.
type Metrics struct {
	// Cache outcomes on the read path
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Permission check decisions by check and outcome
	PermissionDecisions *prometheus.CounterVec

	// Policy rejections by rule
	PolicyRejections *prometheus.CounterVec

	// Reads that fell back to the restrictive default because the store
	// could not be consulted
	FailClosedReads prometheus.Counter

	// Cache invalidations that failed after a committed write (staleness
	// window alert signal)
	InvalidationFailures prometheus.Counter

	// Store lookup latency
	LookupDuration prometheus.Histogram
}

// New creates a new Metrics instance with all consent engine metrics registered.
func New() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "consentd_cache_hits_total",
			Help: "Consent cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "consentd_cache_misses_total",
			Help: "Consent cache misses, including corrupt entries",
		}),
		PermissionDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "consentd_permission_decisions_total",
			Help: "Permission check decisions by check and outcome",
		}, []string{"check", "allowed"}),
		PolicyRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "consentd_policy_rejections_total",
			Help: "Consent updates rejected by policy, by rule",
		}, []string{"reason"}),
		FailClosedReads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "consentd_fail_closed_reads_total",
			Help: "Reads resolved to the restrictive default because consent state was undeterminable",
		}),
		InvalidationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "consentd_cache_invalidation_failures_total",
			Help: "Cache invalidations that failed after a committed write",
		}),
		LookupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "consentd_store_lookup_duration_seconds",
			Help:    "Durable store lookup latency on cache miss",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// RecordCacheHit records a consent cache hit.
func (m *Metrics) RecordCacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// RecordCacheMiss records a consent cache miss.
func (m *Metrics) RecordCacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

// RecordDecision records a permission check outcome.
func (m *Metrics) RecordDecision(check string, allowed bool) {
	if m != nil {
		outcome := "false"
		if allowed {
			outcome = "true"
		}
		m.PermissionDecisions.WithLabelValues(check, outcome).Inc()
	}
}

// RecordPolicyRejection records an update rejected by policy.
func (m *Metrics) RecordPolicyRejection(reason string) {
	if m != nil {
		m.PolicyRejections.WithLabelValues(reason).Inc()
	}
}

// RecordFailClosed records a read resolved to the restrictive default.
func (m *Metrics) RecordFailClosed() {
	if m != nil {
		m.FailClosedReads.Inc()
	}
}

// RecordInvalidationFailure records a failed post-commit cache invalidation.
func (m *Metrics) RecordInvalidationFailure() {
	if m != nil {
		m.InvalidationFailures.Inc()
	}
}

// ObserveLookupDuration records durable store lookup latency.
func (m *Metrics) ObserveLookupDuration(d time.Duration) {
	if m != nil {
		m.LookupDuration.Observe(d.Seconds())
	}
}
