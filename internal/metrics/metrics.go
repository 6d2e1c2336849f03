// Package metrics exposes run counters for the merge pipeline as Prometheus
// metrics on a private registry.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tsfuse"

// Skip reasons used as the reason label of RowsSkipped.
const (
	ReasonNoSeparator = "no_separator"
	ReasonNotNumeric  = "not_numeric"
	ReasonNaN         = "nan"
)

// Metrics holds the counters of one process.
type Metrics struct {
	registry *prometheus.Registry

	RowsRead      *prometheus.CounterVec
	RowsSkipped   *prometheus.CounterVec
	RowsDiscarded prometheus.Counter
	RowsPadded    prometheus.Counter
	Groups        prometheus.Counter
	RowsWritten   *prometheus.CounterVec
	Runs          *prometheus.CounterVec
}

// New creates and registers the counters.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Lines read from source files, by source.",
		}, []string{"source"}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Data rows left out of a key-indexed merge, by reason.",
		}, []string{"reason"}),
		RowsDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_discarded_total",
			Help:      "Data rows dropped by the per-source capture limit.",
		}),
		RowsPadded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_padded_total",
			Help:      "Empty placeholder rows inserted by merges.",
		}),
		Groups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "groups_merged_total",
			Help:      "Distinct keys produced by merges.",
		}),
		RowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Lines written to output files, by output.",
		}, []string{"output"}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed operations, by operation and result.",
		}, []string{"operation", "result"}),
	}

	m.registry.MustRegister(
		m.RowsRead,
		m.RowsSkipped,
		m.RowsDiscarded,
		m.RowsPadded,
		m.Groups,
		m.RowsWritten,
		m.Runs,
	)

	return m
}

// Registry returns the registry holding the counters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveSkipped adds skipped-row counts for the three skip reasons.
func (m *Metrics) ObserveSkipped(noSeparator, notNumeric, nan int) {
	m.RowsSkipped.WithLabelValues(ReasonNoSeparator).Add(float64(noSeparator))
	m.RowsSkipped.WithLabelValues(ReasonNotNumeric).Add(float64(notNumeric))
	m.RowsSkipped.WithLabelValues(ReasonNaN).Add(float64(nan))
}

// ObserveRun counts a finished operation as "ok" or "error".
func (m *Metrics) ObserveRun(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Runs.WithLabelValues(operation, result).Inc()
}

// WriteTextfile writes all counters to path in the Prometheus text format,
// for collection by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}

	return nil
}
