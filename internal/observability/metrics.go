package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metric instruments
type Metrics struct {
	PlansTotal           *prometheus.CounterVec
	ResolutionsTotal     *prometheus.CounterVec
	ResolutionDuration   prometheus.Histogram
	ResolvedElements     prometheus.Histogram
	AnalysesTotal        *prometheus.CounterVec
	ArchivedReportsTotal *prometheus.CounterVec
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
}

// NewMetrics registers and returns all metrics
func NewMetrics() *Metrics {
	return &Metrics{
		PlansTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fibercare_topology_plans_total",
			Help: "Total number of topology plans produced",
		}, []string{"type", "valid"}),

		ResolutionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fibercare_topology_resolutions_total",
			Help: "Total number of topology tree resolutions",
		}, []string{"status"}),

		ResolutionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fibercare_topology_resolution_duration_seconds",
			Help:    "Duration of topology tree resolutions in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),

		ResolvedElements: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fibercare_topology_resolved_elements",
			Help:    "Element count of resolved topology trees",
			Buckets: []float64{1, 10, 50, 100, 500, 1000},
		}),

		AnalysesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fibercare_topology_analyses_total",
			Help: "Total number of deployed-topology analyses",
		}, []string{"valid"}),

		ArchivedReportsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fibercare_analysis_reports_archived_total",
			Help: "Total number of analysis reports archived to object storage",
		}, []string{"status"}),

		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fibercare_http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "path", "status_code"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fibercare_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 5.0},
		}, []string{"method", "path"}),
	}
}

// RecordPlan records a planning outcome
func (m *Metrics) RecordPlan(topologyType string, valid bool) {
	m.PlansTotal.WithLabelValues(topologyType, boolLabel(valid)).Inc()
}

// RecordResolution records a topology resolution with its duration and size
func (m *Metrics) RecordResolution(status string, seconds float64, elements int) {
	m.ResolutionsTotal.WithLabelValues(status).Inc()
	if status == "ok" {
		m.ResolutionDuration.Observe(seconds)
		m.ResolvedElements.Observe(float64(elements))
	}
}

// RecordAnalysis records a deployed-topology analysis outcome
func (m *Metrics) RecordAnalysis(valid bool) {
	m.AnalysesTotal.WithLabelValues(boolLabel(valid)).Inc()
}

// RecordArchive records an analysis report archive attempt
func (m *Metrics) RecordArchive(status string) {
	m.ArchivedReportsTotal.WithLabelValues(status).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
