// Package analyticshdl chứa HTTP handler cho domain Analytics (users, sales, marketplace, business-report, predictive).
package analyticshdl

import (
	"context"
	"time"

	analyticsdto "marketplace_analytics/internal/api/analytics/dto"
	basehdl "marketplace_analytics/internal/api/base/handler"
	"marketplace_analytics/internal/global"

	"github.com/gofiber/fiber/v3"
)

// DefaultRequestTimeout thời gian tối đa cho một request báo cáo khi không cấu hình
const DefaultRequestTimeout = 30 * time.Second

// ReportService là các thao tác báo cáo mà handler cần (AnalyticsService cài đặt)
type ReportService interface {
	GetUserAnalytics(ctx context.Context, days int) (*analyticsdto.UserReport, error)
	GetSalesAnalytics(ctx context.Context, days int) (*analyticsdto.SalesReport, error)
	GetMarketplaceAnalytics(ctx context.Context, days int) (*analyticsdto.MarketplaceReport, error)
	GenerateBusinessReport(ctx context.Context, reportType string, days int) (*analyticsdto.BusinessReport, error)
	GetPredictiveAnalytics(ctx context.Context, horizonDays int) (*analyticsdto.PredictiveReport, error)
}

// AnalyticsHandler xử lý API analytics
type AnalyticsHandler struct {
	Service ReportService
	timeout time.Duration
}

// NewAnalyticsHandler tạo handler; timeout <= 0 dùng DefaultRequestTimeout
func NewAnalyticsHandler(svc ReportService, timeout time.Duration) *AnalyticsHandler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &AnalyticsHandler{Service: svc, timeout: timeout}
}

// serve chạy fn với context có timeout và trả về envelope chuẩn
func serve[T any](c fiber.Ctx, h *AnalyticsHandler, fn func(ctx context.Context) (T, error)) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	data, err := fn(ctx)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, data, nil)
}

// bindDaysQuery đọc và kiểm tra ?days=, thiếu thì dùng DefaultDays
func bindDaysQuery(c fiber.Ctx) (analyticsdto.AnalyticsQuery, error) {
	q := analyticsdto.AnalyticsQuery{Days: analyticsdto.DefaultDays}
	if err := c.Bind().Query(&q); err != nil {
		return q, err
	}
	if c.Query("days") == "" {
		q.Days = analyticsdto.DefaultDays
	}
	return q, global.Validate.Struct(q)
}

// HandleUsers xử lý GET /analytics/users?days=30
func (h *AnalyticsHandler) HandleUsers(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		q, err := bindDaysQuery(c)
		if err != nil {
			return basehdl.ValidationError(c, err)
		}
		return serve(c, h, func(ctx context.Context) (*analyticsdto.UserReport, error) {
			return h.Service.GetUserAnalytics(ctx, q.Days)
		})
	})
}

// HandleSales xử lý GET /analytics/sales?days=30
func (h *AnalyticsHandler) HandleSales(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		q, err := bindDaysQuery(c)
		if err != nil {
			return basehdl.ValidationError(c, err)
		}
		return serve(c, h, func(ctx context.Context) (*analyticsdto.SalesReport, error) {
			return h.Service.GetSalesAnalytics(ctx, q.Days)
		})
	})
}

// HandleMarketplace xử lý GET /analytics/marketplace?days=30
func (h *AnalyticsHandler) HandleMarketplace(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		q, err := bindDaysQuery(c)
		if err != nil {
			return basehdl.ValidationError(c, err)
		}
		return serve(c, h, func(ctx context.Context) (*analyticsdto.MarketplaceReport, error) {
			return h.Service.GetMarketplaceAnalytics(ctx, q.Days)
		})
	})
}

// HandleBusinessReport xử lý GET /analytics/business-report?type=comprehensive&days=30
func (h *AnalyticsHandler) HandleBusinessReport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		q := analyticsdto.BusinessReportQuery{Type: analyticsdto.DefaultReportType, Days: analyticsdto.DefaultDays}
		if err := c.Bind().Query(&q); err != nil {
			return basehdl.ValidationError(c, err)
		}
		if c.Query("type") == "" {
			q.Type = analyticsdto.DefaultReportType
		}
		if c.Query("days") == "" {
			q.Days = analyticsdto.DefaultDays
		}
		if err := global.Validate.Struct(q); err != nil {
			return basehdl.ValidationError(c, err)
		}
		return serve(c, h, func(ctx context.Context) (*analyticsdto.BusinessReport, error) {
			return h.Service.GenerateBusinessReport(ctx, q.Type, q.Days)
		})
	})
}

// HandlePredictive xử lý GET /analytics/predictive?horizon_days=30
func (h *AnalyticsHandler) HandlePredictive(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		q := analyticsdto.PredictiveQuery{HorizonDays: analyticsdto.DefaultDays}
		if err := c.Bind().Query(&q); err != nil {
			return basehdl.ValidationError(c, err)
		}
		if c.Query("horizon_days") == "" {
			q.HorizonDays = analyticsdto.DefaultDays
		}
		if err := global.Validate.Struct(q); err != nil {
			return basehdl.ValidationError(c, err)
		}
		return serve(c, h, func(ctx context.Context) (*analyticsdto.PredictiveReport, error) {
			return h.Service.GetPredictiveAnalytics(ctx, q.HorizonDays)
		})
	})
}
