package router

import (
	"github.com/gofiber/fiber/v3"

	basehdl "marketplace_analytics/internal/api/base/handler"
)

// Fiber v3: middleware truyền trực tiếp vào router.Get(path, mw, handler) không được gọi.
// Mọi route có middleware phải đăng ký qua RegisterRouteWithMiddleware (group + Use).

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // /api
	V1   string // /api/v1
}

// NewRoutePrefix tạo RoutePrefix với giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// NewRouter tạo Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRootGet đăng ký route GET ngoài prefix /api (ví dụ /metrics)
func (r *Router) RegisterRootGet(path string, handler fiber.Handler) {
	r.app.Get(path, handler)
}

// RegisterRouteWithMiddleware đăng ký route với middleware qua group.Use(). Dùng từ domain router.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case fiber.MethodGet:
		routeGroup.Get(path, handler)
	case fiber.MethodPost:
		routeGroup.Post(path, handler)
	case fiber.MethodPut:
		routeGroup.Put(path, handler)
	case fiber.MethodDelete:
		routeGroup.Delete(path, handler)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SystemRoutes đăng ký /system/health
func SystemRoutes(h *basehdl.SystemHandler) RegisterFunc {
	return func(v1 fiber.Router, r *Router) error {
		RegisterRouteWithMiddleware(v1, "/system", fiber.MethodGet, "/health", nil, h.HandleHealth)
		return nil
	}
}

// SetupRoutes thiết lập tất cả các route. Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
