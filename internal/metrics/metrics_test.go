package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportLabel(t *testing.T) {
	assert.Equal(t, "user_analytics", ReportLabel("user_analytics_30"))
	assert.Equal(t, "business_report_comprehensive", ReportLabel("business_report_comprehensive_7"))
	assert.Equal(t, "predictive", ReportLabel("predictive"))
	assert.Equal(t, "sales_analytics_x", ReportLabel("sales_analytics_x"))
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.CacheHit("user_analytics_30")
	m.CacheHit("user_analytics_7")
	m.CacheMiss("sales_analytics_30")
	m.ExtractorFailed("revenue")
	m.ObserveReport("sales_analytics", time.Now(), errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("user_analytics")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("sales_analytics")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExtractorFailures.WithLabelValues("revenue")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportErrorsTotal.WithLabelValues("sales_analytics")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheHit("k_1")
		m.CacheMiss("k_1")
		m.ExtractorFailed("x")
		m.ObserveReport("x", time.Now(), nil)
	})
}

func TestFiberMiddleware(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	app := fiber.New()
	app.Use(FiberMiddleware(m))
	app.Get("/api/v1/analytics/users", func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/analytics/users?days=7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(fiber.MethodGet, "/api/v1/analytics/users", "200")))
}
