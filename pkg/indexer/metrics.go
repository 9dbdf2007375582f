package indexer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeConnected = "connected"
	outcomeExhausted = "exhausted"
	outcomeAborted   = "aborted"
)

// Metrics holds Prometheus collectors for the connect loop.
// A nil *Metrics records nothing.
type Metrics struct {
	probes   *prometheus.CounterVec
	connects *prometheus.CounterVec
	backoff  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indexer_probe_attempts_total",
			Help: "Liveness probes sent to the indexer, by result.",
		}, []string{"result"}),
		connects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indexer_connect_total",
			Help: "Connect calls, by outcome.",
		}, []string{"outcome"}),
		backoff: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "indexer_backoff_seconds",
			Help:    "Waits between failed liveness probes.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.probes, m.connects, m.backoff)
	}
	return m
}

func (m *Metrics) probed(ok bool) {
	if m == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	m.probes.WithLabelValues(result).Inc()
}

func (m *Metrics) waited(d time.Duration) {
	if m == nil {
		return
	}
	m.backoff.Observe(d.Seconds())
}

func (m *Metrics) connected(outcome string) {
	if m == nil {
		return
	}
	m.connects.WithLabelValues(outcome).Inc()
}
