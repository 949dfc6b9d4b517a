package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the batch runner's Prometheus collectors.
// Each Metrics owns its registry so runs and tests never share counters.
type Metrics struct {
	registry *prometheus.Registry

	comparisons  *prometheus.CounterVec
	cells        prometheus.Counter
	skippedFiles *prometheus.CounterVec
	unreachable  prometheus.Counter
	duration     prometheus.Histogram
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		comparisons: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sernalign_comparisons_total",
			Help: "Total number of pairs compared, by result source",
		}, []string{"source"}),
		cells: factory.NewCounter(prometheus.CounterOpts{
			Name: "sernalign_dp_cells_total",
			Help: "Total number of cost matrix cells filled",
		}),
		skippedFiles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sernalign_skipped_files_total",
			Help: "Total number of input entries skipped, by reason",
		}, []string{"reason"}),
		unreachable: factory.NewCounter(prometheus.CounterOpts{
			Name: "sernalign_unreachable_pairs_total",
			Help: "Total number of pairs with no admissible alignment",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sernalign_comparison_duration_seconds",
			Help:    "Duration of single pair alignments",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current metrics in the text exposition format,
// suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Result sources and skip reasons used as label values.
const (
	sourceComputed = "computed"
	sourceCached   = "cached"

	reasonHidden    = "hidden"
	reasonDirectory = "directory"
	reasonIrregular = "irregular"
	reasonParse     = "parse"
)

func (m *Metrics) observeComparison(source string, cells int, seconds float64) {
	if m == nil {
		return
	}
	m.comparisons.WithLabelValues(source).Inc()
	if source == sourceComputed {
		m.cells.Add(float64(cells))
		m.duration.Observe(seconds)
	}
}

func (m *Metrics) observeSkip(reason string) {
	if m == nil {
		return
	}
	m.skippedFiles.WithLabelValues(reason).Inc()
}

func (m *Metrics) observeUnreachable() {
	if m == nil {
		return
	}
	m.unreachable.Inc()
}
