// Package metrics đăng ký các Prometheus metrics của service analytics.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "marketplace_analytics"

// Metrics chứa toàn bộ Prometheus metrics.
// Mọi method đều an toàn khi receiver nil để service chạy được không cần metrics.
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Báo cáo
	ReportDuration    *prometheus.HistogramVec
	ReportErrorsTotal *prometheus.CounterVec
	ExtractorFailures *prometheus.CounterVec

	// Cache
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
}

// NewMetrics tạo và đăng ký metrics vào registry
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ReportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_compute_duration_seconds",
				Help:      "Time spent computing a report (cache misses only)",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"report"},
		),
		ReportErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_errors_total",
				Help:      "Total number of reports that failed to compose",
			},
			[]string{"report"},
		),
		ExtractorFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extractor_failures_total",
				Help:      "Total number of metric extractor failures rendered as empty groups",
			},
			[]string{"metric"},
		),
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_cache_hits_total",
				Help:      "Total number of report cache hits",
			},
			[]string{"report"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_cache_misses_total",
				Help:      "Total number of report cache misses",
			},
			[]string{"report"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReportDuration,
		m.ReportErrorsTotal,
		m.ExtractorFailures,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)

	return m
}

// NewRegistry tạo registry kèm Go runtime và process collectors
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// Handler trả về http.Handler cho endpoint /metrics
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ObserveReport ghi thời gian tính báo cáo và đếm lỗi
func (m *Metrics) ObserveReport(report string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.ReportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
	if err != nil {
		m.ReportErrorsTotal.WithLabelValues(report).Inc()
	}
}

// ExtractorFailed đếm extractor lỗi
func (m *Metrics) ExtractorFailed(metric string) {
	if m == nil {
		return
	}
	m.ExtractorFailures.WithLabelValues(metric).Inc()
}

// CacheHit nhận cache key dạng "<report>_<days>"
func (m *Metrics) CacheHit(key string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(ReportLabel(key)).Inc()
}

// CacheMiss nhận cache key dạng "<report>_<days>"
func (m *Metrics) CacheMiss(key string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(ReportLabel(key)).Inc()
}

// ReportLabel bỏ hậu tố "_<days>" để label không phụ thuộc cửa sổ
func ReportLabel(key string) string {
	idx := strings.LastIndex(key, "_")
	if idx <= 0 {
		return key
	}
	if _, err := strconv.Atoi(key[idx+1:]); err != nil {
		return key
	}
	return key[:idx]
}

// FiberMiddleware đo số request và thời gian xử lý theo route pattern
func FiberMiddleware(m *Metrics) fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		m.HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
