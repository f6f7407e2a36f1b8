// Package metrics exposes job lifecycle and notification counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result constants for metric labels.
const (
	ResultSuccess  = "success"
	ResultConflict = "conflict"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Recorder is what the lifecycle service reports to. Implementations must be
// safe for concurrent use.
type Recorder interface {
	ObserveTransition(operation, result string, d time.Duration)
	CountDelivery(channel, result string)
	CountHistoryFailure()
}

// Noop discards everything.
type Noop struct{}

func (Noop) ObserveTransition(string, string, time.Duration) {}
func (Noop) CountDelivery(string, string)                    {}
func (Noop) CountHistoryFailure()                            {}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	transitions     *prometheus.CounterVec
	durations       *prometheus.HistogramVec
	deliveries      *prometheus.CounterVec
	historyFailures prometheus.Counter
	gatherer        prometheus.Gatherer
}

var _ Recorder = (*Collector)(nil)

// NewCollector registers the skipdispatch metrics on a fresh registry that
// also carries the Go runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return NewCollectorWithRegistry(reg, reg)
}

// NewCollectorWithRegistry registers on reg and serves from g.
func NewCollectorWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer) *Collector {
	c := &Collector{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skipdispatch",
			Name:      "job_transitions_total",
			Help:      "Lifecycle operations by operation and result.",
		}, []string{"operation", "result"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "skipdispatch",
			Name:      "job_transition_duration_seconds",
			Help:      "Wall time of lifecycle operations including side effects.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skipdispatch",
			Name:      "notification_deliveries_total",
			Help:      "Outbound SMS, WhatsApp and email deliveries by channel and result.",
		}, []string{"channel", "result"}),
		historyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skipdispatch",
			Name:      "status_history_failures_total",
			Help:      "Status history entries that could not be written.",
		}),
		gatherer: g,
	}
	reg.MustRegister(c.transitions, c.durations, c.deliveries, c.historyFailures)
	return c
}

// ObserveTransition counts one operation and records its duration.
func (c *Collector) ObserveTransition(operation, result string, d time.Duration) {
	c.transitions.WithLabelValues(operation, result).Inc()
	if d > 0 {
		c.durations.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// CountDelivery counts one notification attempt.
func (c *Collector) CountDelivery(channel, result string) {
	c.deliveries.WithLabelValues(channel, result).Inc()
}

// CountHistoryFailure counts a dropped status history entry.
func (c *Collector) CountHistoryFailure() {
	c.historyFailures.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
