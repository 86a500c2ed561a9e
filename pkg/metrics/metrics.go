package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "espd", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "espd", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// CriterionAccessFailures counts swallowed criterion lookup/instantiation failures.
	CriterionAccessFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "espd", Name: "criterion_access_failures_total", Help: "Criterion field accesses that failed and were suppressed, by kind."},
		[]string{"kind"},
	)
	CriterionSweeps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "espd", Name: "criterion_sweeps_total", Help: "Bulk criterion activations by operation."},
		[]string{"operation"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "espd", Name: "document_cache_lookups_total", Help: "Document cache lookups by result."},
		[]string{"result"},
	)
	Exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "espd", Name: "exports_total", Help: "Document exports by outcome."},
		[]string{"outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(CriterionAccessFailures)
	reg.MustRegister(CriterionSweeps)
	reg.MustRegister(CacheLookups)
	reg.MustRegister(Exports)
}
