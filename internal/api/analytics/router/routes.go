// Package router đăng ký các route thuộc domain Analytics.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	analyticshdl "marketplace_analytics/internal/api/analytics/handler"
	apirouter "marketplace_analytics/internal/api/router"
)

// Register trả về hàm đăng ký các route /analytics lên v1
func Register(h *analyticshdl.AnalyticsHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		if h == nil {
			return fmt.Errorf("analytics handler chưa được khởi tạo")
		}
		apirouter.RegisterRouteWithMiddleware(v1, "/analytics", fiber.MethodGet, "/users", nil, h.HandleUsers)
		apirouter.RegisterRouteWithMiddleware(v1, "/analytics", fiber.MethodGet, "/sales", nil, h.HandleSales)
		apirouter.RegisterRouteWithMiddleware(v1, "/analytics", fiber.MethodGet, "/marketplace", nil, h.HandleMarketplace)
		apirouter.RegisterRouteWithMiddleware(v1, "/analytics", fiber.MethodGet, "/business-report", nil, h.HandleBusinessReport)
		apirouter.RegisterRouteWithMiddleware(v1, "/analytics", fiber.MethodGet, "/predictive", nil, h.HandlePredictive)
		return nil
	}
}
