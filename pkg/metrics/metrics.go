// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// LLMRequestDuration tracks completion request duration per provider.
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Completion request duration",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 45, 60, 90, 120},
		},
		[]string{"provider", "status"},
	)

	// LLMRequestsTotal tracks completion requests per provider and outcome.
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Total completion requests",
		},
		[]string{"provider", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"provider", "direction"},
	)

	// WebFetchTotal tracks web-context fetches per provider and outcome.
	WebFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "web_fetch_total",
			Help: "Total web context fetches",
		},
		[]string{"provider", "status"},
	)

	// LocalAnswersTotal tracks queries answered by the local resolver.
	LocalAnswersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "local_answers_total",
			Help: "Queries answered without a completion call",
		},
	)

	// FreshQueriesTotal tracks queries the freshness classifier flagged.
	FreshQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fresh_queries_total",
			Help: "Queries classified as requiring live web data",
		},
	)

	// ConversationsTotal tracks total conversations created per backend.
	ConversationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversations_total",
			Help: "Total conversations created",
		},
		[]string{"model"},
	)

	// MessagesTotal tracks total messages appended per role.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_total",
			Help: "Total messages appended",
		},
		[]string{"role"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLLMRequest records metrics for a completion request.
func RecordLLMRequest(provider, status string, duration float64, tokensIn, tokensOut int) {
	LLMRequestDuration.WithLabelValues(provider, status).Observe(duration)
	LLMRequestsTotal.WithLabelValues(provider, status).Inc()
	LLMTokensTotal.WithLabelValues(provider, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(provider, "out").Add(float64(tokensOut))
}

// RecordWebFetch records the outcome of a web context fetch.
func RecordWebFetch(provider, status string) {
	WebFetchTotal.WithLabelValues(provider, status).Inc()
}
