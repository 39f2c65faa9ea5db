package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels
const (
	OutcomeSuccess       = "success"
	OutcomeUpstreamError = "upstream_error"
	OutcomeStoreError    = "store_error"
	OutcomeInvalid       = "invalid"
)

// Metrics groups the application's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	generations     *prometheus.CounterVec
	completionTime  prometheus.Histogram
	completionToken *prometheus.CounterVec
	saves           *prometheus.CounterVec
	emails          *prometheus.CounterVec
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		generations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "summarizer",
			Name:      "generations_total",
			Help:      "Summary generation requests by outcome.",
		}, []string{"outcome"}),
		completionTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "summarizer",
			Name:      "completion_duration_seconds",
			Help:      "Latency of chat completion calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}),
		completionToken: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "summarizer",
			Name:      "completion_tokens_total",
			Help:      "Tokens consumed by chat completions.",
		}, []string{"kind"}),
		saves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "summarizer",
			Name:      "saves_total",
			Help:      "Summary save requests by outcome.",
		}, []string{"outcome"}),
		emails: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "summarizer",
			Name:      "emails_total",
			Help:      "Email dispatch requests by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveGeneration records one generate call
func (m *Metrics) ObserveGeneration(outcome string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(outcome).Inc()
}

// ObserveCompletion records provider latency and token usage
func (m *Metrics) ObserveCompletion(d time.Duration, promptTokens, completionTokens int) {
	if m == nil {
		return
	}
	m.completionTime.Observe(d.Seconds())
	m.completionToken.WithLabelValues("prompt").Add(float64(promptTokens))
	m.completionToken.WithLabelValues("completion").Add(float64(completionTokens))
}

// ObserveSave records one save call
func (m *Metrics) ObserveSave(outcome string) {
	if m == nil {
		return
	}
	m.saves.WithLabelValues(outcome).Inc()
}

// ObserveEmail records one email dispatch
func (m *Metrics) ObserveEmail(outcome string) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(outcome).Inc()
}
