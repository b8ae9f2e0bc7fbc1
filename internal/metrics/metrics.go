// Package metrics counts store operations for a single mkv invocation and
// can dump them in the Prometheus text format, for example into a
// node_exporter textfile collector directory.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation outcomes
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeNoop     = "noop"
	OutcomeError    = "error"
)

// Metrics holds the collectors of one invocation. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	operations    *prometheus.CounterVec
	degradedLoads *prometheus.CounterVec
	secrets       prometheus.Gauge
}

// New creates a Metrics with its own registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mkv_operations_total",
				Help: "Store operations by verb and outcome",
			},
			[]string{"verb", "outcome"},
		),
		degradedLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mkv_degraded_loads_total",
				Help: "Backing file loads that fell back to an empty store",
			},
			[]string{"reason"},
		),
		secrets: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mkv_secrets",
			Help: "Number of secrets in the store after the last operation",
		}),
	}
}

// RecordOperation counts one verb execution
func (m *Metrics) RecordOperation(verb, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(verb, outcome).Inc()
}

// RecordDegradedLoad counts a load that fell back to an empty store
func (m *Metrics) RecordDegradedLoad(reason string) {
	if m == nil {
		return
	}
	m.degradedLoads.WithLabelValues(reason).Inc()
}

// SetSecretCount records the store size
func (m *Metrics) SetSecretCount(n int) {
	if m == nil {
		return
	}
	m.secrets.Set(float64(n))
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is replaced atomically by the Prometheus client.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// Operations returns the operation counter for assertions
func (m *Metrics) Operations() *prometheus.CounterVec {
	return m.operations
}

// DegradedLoads returns the degraded load counter for assertions
func (m *Metrics) DegradedLoads() *prometheus.CounterVec {
	return m.degradedLoads
}
