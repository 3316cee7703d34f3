package prometheus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoseMetrics(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "georose"}, nil)
	require.NoError(t, err)
	m := NewRoseMetrics(c)

	m.ObserveGeneration(OutcomeSuccess, 120*time.Millisecond, 30)
	m.ObserveGeneration(OutcomeInvalid, time.Millisecond, 3)
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)
	m.RecordHTTPRequest("POST", "/api/v1/diagrams", 422, 5*time.Millisecond)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `georose_diagram_generations_total{outcome="success"} 1`)
	assert.Contains(t, out, `georose_diagram_generations_total{outcome="invalid"} 1`)
	assert.Contains(t, out, "georose_diagram_sample_size_count 1")
	assert.Contains(t, out, `georose_diagram_cache_requests_total{result="hit"} 1`)
	assert.Contains(t, out, `georose_diagram_cache_requests_total{result="miss"} 2`)
	assert.Contains(t, out, `georose_http_requests_total{method="POST",path="/api/v1/diagrams",status_code="422"} 1`)
}

//Personal.AI order the ending
