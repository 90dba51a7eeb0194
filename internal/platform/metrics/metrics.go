package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the intake service.
type Metrics struct {
	ConversationsStarted   prometheus.Counter
	ConversationsCompleted prometheus.Counter
	ConversationsRefused   prometheus.Counter
	ValidationFailures     *prometheus.CounterVec
	SourceLatency          *prometheus.HistogramVec
	ReviewerFailures       prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		ConversationsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_conversations_started_total",
			Help: "Total number of intake conversations started.",
		}),
		ConversationsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_conversations_completed_total",
			Help: "Total number of dossiers dispatched to reviewers.",
		}),
		ConversationsRefused: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_conversations_refused_total",
			Help: "Total number of start attempts refused by the allowlist.",
		}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_validation_failures_total",
			Help: "Validation rejections by field.",
		}, []string{"field"}),
		SourceLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intake_lookup_source_duration_seconds",
			Help:    "Latency of individual phone lookup sources.",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		ReviewerFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "intake_reviewer_notify_failures_total",
			Help: "Reviewer notifications that could not be delivered.",
		}),
	}
}

// ObserveSourceLatency records one lookup source round trip.
func (m *Metrics) ObserveSourceLatency(source string, d time.Duration) {
	m.SourceLatency.WithLabelValues(source).Observe(d.Seconds())
}

// IncValidationFailure counts one rejected input for the given field.
func (m *Metrics) IncValidationFailure(field string) {
	m.ValidationFailures.WithLabelValues(field).Inc()
}
