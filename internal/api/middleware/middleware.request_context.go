// Package middleware chứa các middleware Fiber dùng chung.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"marketplace_analytics/internal/logger"
)

// RequestContext gắn request ID vào context.Context của request để các service
// log qua logger.WithContext(ctx) vẫn có request_id. Phải đặt sau requestid.New().
func RequestContext() fiber.Handler {
	return func(c fiber.Ctx) error {
		if rid := logger.RequestID(c); rid != "" {
			c.SetContext(context.WithValue(c.Context(), logger.RequestIDKey, rid))
		}
		return c.Next()
	}
}

// SecurityHeaders thêm các header bảo mật cơ bản cho mọi response
func SecurityHeaders() fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}
