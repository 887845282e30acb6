// Package metrics exposes prometheus counters for trip mutations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records store activity on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	Mutations       *prometheus.CounterVec
	Rejections      *prometheus.CounterVec
	PersistFailures prometheus.Counter
	Trips           prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "packlist_mutations_total",
			Help: "Trip mutations applied, by operation.",
		}, []string{"op"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "packlist_rejections_total",
			Help: "Mutations rejected by a policy, by reason.",
		}, []string{"reason"}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "packlist_persist_failures_total",
			Help: "Snapshot writes that failed.",
		}),
		Trips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "packlist_trips",
			Help: "Number of trips held by the store.",
		}),
	}
	m.registry.MustRegister(m.Mutations, m.Rejections, m.PersistFailures, m.Trips)
	return m
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Mutation counts one applied mutation.
func (m *Metrics) Mutation(op string) {
	m.Mutations.WithLabelValues(op).Inc()
}

// Rejected counts one rejected mutation.
func (m *Metrics) Rejected(reason string) {
	m.Rejections.WithLabelValues(reason).Inc()
}

// PersistFailed counts one failed snapshot write.
func (m *Metrics) PersistFailed() {
	m.PersistFailures.Inc()
}

// TripCount sets the current number of trips.
func (m *Metrics) TripCount(n int) {
	m.Trips.Set(float64(n))
}

// WriteTextfile writes every metric to path in the text exposition format,
// for collection by a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
