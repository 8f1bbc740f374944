// Package metrics provides Prometheus metrics for the employee dashboard.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Default latency buckets in milliseconds. Derivation and aggregation run
// over small in-memory sets, so the interesting range is sub-millisecond.
var defaultBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100}

// Manager manages all Prometheus metrics for the dashboard.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer
	gatherer         prometheus.Gatherer

	// Dataset metrics
	recordsLoaded   prometheus.Counter
	recordsEnriched prometheus.Counter
	recordsRejected *prometheus.CounterVec
	datasetRecords  prometheus.Gauge
	datasetReloads  prometheus.Counter

	// Computation metrics
	aggregationDuration *prometheus.HistogramVec
	renderDuration      *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager. Without WithPrometheusRegistry
// it registers on a private registry.
func NewManager(opts ...Option) *Manager {
	reg := prometheus.NewRegistry()
	m := &Manager{
		namespace:        "empdash",
		subsystem:        "dashboard",
		histogramBuckets: defaultBuckets,
		registry:         reg,
		gatherer:         reg,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recordsLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_loaded_total",
		Help:        "Total number of employee rows read from dataset sources",
		ConstLabels: m.constLabels,
	})

	m.recordsEnriched = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_enriched_total",
		Help:        "Total number of employee records enriched with derived metrics",
		ConstLabels: m.constLabels,
	})

	m.recordsRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "records_rejected_total",
			Help:        "Total number of employee rows skipped, by reason",
			ConstLabels: m.constLabels,
		},
		[]string{"reason"},
	)

	m.datasetRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_records",
		Help:        "Number of enriched records in the current snapshot",
		ConstLabels: m.constLabels,
	})

	m.datasetReloads = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_reloads_total",
		Help:        "Total number of dataset snapshots installed",
		ConstLabels: m.constLabels,
	})

	m.aggregationDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "aggregation_duration_milliseconds",
			Help:        "Duration of derivation and aggregation passes in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"op"},
	)

	m.renderDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "render_duration_milliseconds",
			Help:        "Duration of dashboard rendering in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"format"},
	)
}

// RecordRecordsLoaded adds n rows read from a dataset source.
func (m *Manager) RecordRecordsLoaded(n int) { m.recordsLoaded.Add(float64(n)) }

// RecordRecordsEnriched adds n enriched records.
func (m *Manager) RecordRecordsEnriched(n int) { m.recordsEnriched.Add(float64(n)) }

// RecordRecordRejected counts one skipped row.
func (m *Manager) RecordRecordRejected(reason string) {
	m.recordsRejected.WithLabelValues(reason).Inc()
}

// UpdateDatasetRecords sets the size of the current snapshot.
func (m *Manager) UpdateDatasetRecords(n int) { m.datasetRecords.Set(float64(n)) }

// RecordDatasetReload counts an installed snapshot.
func (m *Manager) RecordDatasetReload() { m.datasetReloads.Inc() }

// RecordAggregationLatency observes an aggregation pass.
func (m *Manager) RecordAggregationLatency(op string, latencyMs float64) {
	m.aggregationDuration.WithLabelValues(op).Observe(latencyMs)
}

// RecordRenderLatency observes one render.
func (m *Manager) RecordRenderLatency(format string, latencyMs float64) {
	m.renderDuration.WithLabelValues(format).Observe(latencyMs)
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (m *Manager) WriteText(w io.Writer) error {
	if m.gatherer == nil {
		return fmt.Errorf("%w: registry cannot be gathered", ErrGather)
	}
	families, err := m.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGather, err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("%w: %w", ErrEncode, err)
		}
	}
	return nil
}

// Package-level helpers backed by the global manager.

// RecordRecordsLoaded adds n rows read from a dataset source.
func RecordRecordsLoaded(n int) { globalManager.RecordRecordsLoaded(n) }

// RecordRecordsEnriched adds n enriched records.
func RecordRecordsEnriched(n int) { globalManager.RecordRecordsEnriched(n) }

// RecordRecordRejected counts one skipped row.
func RecordRecordRejected(reason string) { globalManager.RecordRecordRejected(reason) }

// UpdateDatasetRecords sets the size of the current snapshot.
func UpdateDatasetRecords(n int) { globalManager.UpdateDatasetRecords(n) }

// RecordDatasetReload counts an installed snapshot.
func RecordDatasetReload() { globalManager.RecordDatasetReload() }

// RecordAggregationLatency observes an aggregation pass.
func RecordAggregationLatency(op string, latencyMs float64) {
	globalManager.RecordAggregationLatency(op, latencyMs)
}

// RecordRenderLatency observes one render.
func RecordRenderLatency(format string, latencyMs float64) {
	globalManager.RecordRenderLatency(format, latencyMs)
}

// WriteText dumps the global registry in text exposition format.
func WriteText(w io.Writer) error { return globalManager.WriteText(w) }

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
