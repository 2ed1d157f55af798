package detector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"frameworks/api_detector/pkg/monitoring"
)

// Metrics holds the detector's custom Prometheus metrics. A nil Metrics
// is valid and records nothing, which keeps tests free of global
// registry collisions.
type Metrics struct {
	analysesTotal    *prometheus.CounterVec
	cacheHitsTotal   prometheus.Counter
	insertFailures   prometheus.Counter
	llmDuration      *prometheus.HistogramVec
	analysisDuration prometheus.Observer
}

func NewMetrics(mc *monitoring.MetricsCollector) *Metrics {
	analysisBuckets := []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30}

	return &Metrics{
		analysesTotal: mc.NewCounter(
			"analyses_total",
			"Total completed analyses by mode and resulting label",
			[]string{"mode", "label"},
		),
		cacheHitsTotal: mc.NewCounter(
			"cache_hits_total",
			"Analyses served from the fingerprint cache",
			nil,
		).WithLabelValues(),
		insertFailures: mc.NewCounter(
			"store_insert_failures_total",
			"Analysis results that could not be persisted",
			nil,
		).WithLabelValues(),
		llmDuration: mc.NewHistogram(
			"llm_request_duration_seconds",
			"LLM judge round-trip duration by provider",
			[]string{"provider"},
			analysisBuckets,
		),
		analysisDuration: mc.NewHistogram(
			"analysis_duration_seconds",
			"End-to-end analysis duration including cache lookups",
			nil,
			analysisBuckets,
		).WithLabelValues(),
	}
}

func (m *Metrics) ObserveAnalysis(mode, label string, d time.Duration) {
	if m == nil {
		return
	}
	m.analysesTotal.WithLabelValues(mode, label).Inc()
	m.analysisDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveCacheHit() {
	if m == nil {
		return
	}
	m.cacheHitsTotal.Inc()
}

func (m *Metrics) ObserveInsertFailure() {
	if m == nil {
		return
	}
	m.insertFailures.Inc()
}

func (m *Metrics) ObserveLLMDuration(provider string, d time.Duration) {
	if m == nil {
		return
	}
	m.llmDuration.WithLabelValues(provider).Observe(d.Seconds())
}
