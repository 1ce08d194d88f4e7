package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/tickets/:id", "PATCH", 200, 15*time.Millisecond)
	m.RecordRequest("/tickets/:id", "PATCH", 200, 20*time.Millisecond)
	m.RecordUpstream("tickets", "update", OutcomeOK)
	m.RecordUpstream("tickets", "get", OutcomeHTTPError)
	m.RecordLogin("success")
	m.RecordError("/customers", "GET", "UPSTREAM_ERROR")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("/tickets/:id", "PATCH", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamCount.WithLabelValues("tickets", "get", OutcomeHTTPError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginCount.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorCount.WithLabelValues("/customers", "GET", "UPSTREAM_ERROR")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordUpstream("health", "probe", OutcomeUnreachable)
		m.RecordLogin("failure")
		m.RecordError("/", "GET", "X")
	})
}
