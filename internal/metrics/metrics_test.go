package metrics_test

import (
	"github.com/nikolayk812/storefront-demo/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.CartMutation("add")
	m.CartMutation("add")
	m.CartMutation("clear")
	m.PersistFailure()
	m.CheckoutOutcome("succeeded", 12)

	assert.InDelta(t, 2, testutil.ToFloat64(m.CartMutations.WithLabelValues("add")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CartMutations.WithLabelValues("clear")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.PersistFailures), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CheckoutOutcomes.WithLabelValues("succeeded")), 0)

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "storefront_checkout_submission_duration_ms"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.CartMutation("add")
		m.PersistFailure()
		m.CheckoutOutcome("failed", 0)
	})
}
