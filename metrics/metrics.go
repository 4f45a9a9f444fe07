// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var (
	// AccessDenied counts authorization denials per capability
	AccessDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grantdesk_access_denied_total",
			Help: "Number of requests denied by the access evaluator",
		},
		[]string{"capability"},
	)

	// AICompletions counts calls to the completion service per agent and result
	AICompletions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grantdesk_ai_completions_total",
			Help: "Number of AI completion calls",
		},
		[]string{"agent", "result"},
	)

	// AICompletionSeconds observes completion latency per agent
	AICompletionSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grantdesk_ai_completion_seconds",
			Help:    "Latency of AI completion calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
		[]string{"agent"},
	)

	// LifecycleTransitions counts idea and application status changes
	LifecycleTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grantdesk_lifecycle_transitions_total",
			Help: "Number of status transitions applied to ideas and applications",
		},
		[]string{"entity", "to"},
	)

	// ResetTokensPurged counts expired password reset tokens cleared by the cron job
	ResetTokensPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "grantdesk_reset_tokens_purged_total",
			Help: "Number of expired password reset tokens cleared",
		},
	)
)

//nolint:gochecknoinits // collectors are registered once per process
func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		AccessDenied,
		AICompletions,
		AICompletionSeconds,
		LifecycleTransitions,
		ResetTokensPurged,
	)
}

// Handler serves the registry in the prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
