// Package router đăng ký các route thuộc domain CMS.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cmshdl "marketplace_analytics/internal/api/cms/handler"
	apirouter "marketplace_analytics/internal/api/router"
)

// Register trả về hàm đăng ký route /cms lên v1
func Register(h *cmshdl.MenuHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		if h == nil {
			return fmt.Errorf("cms handler chưa được khởi tạo")
		}
		apirouter.RegisterRouteWithMiddleware(v1, "/cms", fiber.MethodGet, "/menu", nil, h.HandleGetMenu)
		return nil
	}
}
