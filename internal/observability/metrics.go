package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ghg_globe"

// Metrics holds the Prometheus counters, histograms, and gauges for the globe service.
type Metrics struct {
	// Scene metrics.
	SceneBuilds        *prometheus.CounterVec // labels: gas
	SceneBuildErrors   prometheus.Counter
	SceneBuildDuration prometheus.Histogram
	MarkersRendered    prometheus.Gauge

	// Community report metrics.
	ReportsSubmitted    *prometheus.CounterVec // labels: location_source={table,random}
	ReportsRejected     *prometheus.CounterVec // labels: field
	ReportsStored       prometheus.Gauge
	ReportPublishErrors prometheus.Counter
	PublisherEnabled    prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)

	prometheus.MustRegister(
		m.SceneBuilds,
		m.SceneBuildErrors,
		m.SceneBuildDuration,
		m.MarkersRendered,
		m.ReportsSubmitted,
		m.ReportsRejected,
		m.ReportsStored,
		m.ReportPublishErrors,
		m.PublisherEnabled,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}

	return &Metrics{
		SceneBuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scene_builds_total",
			Help:      help("Marker scenes built, by gas."),
		}, []string{"gas"}),
		SceneBuildErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scene_build_errors_total",
			Help:      help("Scene builds rejected because of an invalid selection."),
		}),
		SceneBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scene_build_duration_seconds",
			Help:      help("Duration of a full marker scene rebuild."),
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		MarkersRendered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "markers_rendered",
			Help:      help("Markers in the most recently built scene."),
		}),
		ReportsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_submitted_total",
			Help:      help("Accepted community reports, by how the location was resolved."),
		}, []string{"location_source"}),
		ReportsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_rejected_total",
			Help:      help("Community reports rejected by validation, by missing field."),
		}, []string{"field"}),
		ReportsStored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reports_stored",
			Help:      help("Community reports held in memory."),
		}),
		ReportPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_publish_errors_total",
			Help:      help("Community reports that could not be published downstream."),
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_publisher_enabled",
			Help:      help("1 when report publishing to Kafka is enabled, 0 otherwise."),
		}),
	}
}
