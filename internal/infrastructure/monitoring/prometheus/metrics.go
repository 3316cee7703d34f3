package prometheus

import (
	"strconv"
	"time"
)

// Generation outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	DefaultHTTPDurationBuckets   = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultRenderDurationBuckets = []float64{.05, .1, .25, .5, 1, 2, 4, 8, 16}
	DefaultSampleSizeBuckets     = []float64{25, 50, 100, 250, 500, 1000, 5000, 10000}
)

// RoseMetrics holds every metric exported by the diagram service and the
// HTTP layer.
type RoseMetrics struct {
	GenerationsTotal    CounterVec
	GenerationDuration  HistogramVec
	SampleSize          HistogramVec
	CacheRequestsTotal  CounterVec
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec
}

// NewRoseMetrics registers all metrics on collector.
func NewRoseMetrics(collector MetricsCollector) *RoseMetrics {
	return &RoseMetrics{
		GenerationsTotal: collector.RegisterCounter("diagram_generations_total",
			"Rose diagram generations by outcome", "outcome"),
		GenerationDuration: collector.RegisterHistogram("diagram_generation_duration_seconds",
			"Time spent generating a rose diagram", DefaultRenderDurationBuckets, "outcome"),
		SampleSize: collector.RegisterHistogram("diagram_sample_size",
			"Number of strike/dip measurements per generation", DefaultSampleSizeBuckets),
		CacheRequestsTotal: collector.RegisterCounter("diagram_cache_requests_total",
			"Render cache lookups by result", "result"),
		HTTPRequestsTotal: collector.RegisterCounter("http_requests_total",
			"Total HTTP requests", "method", "path", "status_code"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds",
			"HTTP request duration", DefaultHTTPDurationBuckets, "method", "path"),
		HTTPActiveRequests: collector.RegisterGauge("http_active_requests",
			"In-flight HTTP requests"),
	}
}

// ObserveGeneration records one generation attempt.  samples is ignored
// unless the generation succeeded.
func (m *RoseMetrics) ObserveGeneration(outcome string, d time.Duration, samples int) {
	m.GenerationsTotal.WithLabelValues(outcome).Inc()
	m.GenerationDuration.WithLabelValues(outcome).Observe(d.Seconds())
	if outcome == OutcomeSuccess {
		m.SampleSize.WithLabelValues().Observe(float64(samples))
	}
}

// ObserveCache records a render cache lookup.
func (m *RoseMetrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequestsTotal.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records a finished HTTP request.
func (m *RoseMetrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

//Personal.AI order the ending
