package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	httpRequestsTotal       *prometheus.CounterVec
	httpLatencySeconds      *prometheus.HistogramVec
	attemptsEvaluatedTotal  *prometheus.CounterVec
	answerSubstitutionTotal prometheus.Counter
	notificationsTotal      *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "comprende",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "comprende",
			Name:      "http_latency_seconds",
			Help:      "Latency distribution for HTTP requests.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route"})

		attemptsEvaluatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "comprende",
			Name:      "attempts_evaluated_total",
			Help:      "Total number of attempts run through the evaluator.",
		}, []string{"outcome"})

		answerSubstitutionTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "comprende",
			Name:      "answer_substitutions_total",
			Help:      "Answers that received the zero-score substitution after an evaluation failure.",
		})

		notificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "comprende",
			Name:      "notifications_total",
			Help:      "Outbound attempt notifications by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			attemptsEvaluatedTotal,
			answerSubstitutionTotal,
			notificationsTotal,
		)
	})
}

// HTTPRequests exposes the counter for served requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// AttemptsEvaluated exposes the counter for evaluator runs.
func AttemptsEvaluated() *prometheus.CounterVec {
	RegisterMetrics()
	return attemptsEvaluatedTotal
}

// AnswerSubstitutions exposes the counter for substituted answer scores.
func AnswerSubstitutions() prometheus.Counter {
	RegisterMetrics()
	return answerSubstitutionTotal
}

// Notifications exposes the counter for outbound notifications.
func Notifications() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsTotal
}
