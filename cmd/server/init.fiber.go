package main

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"

	analyticsrouter "marketplace_analytics/internal/api/analytics/router"
	cmsrouter "marketplace_analytics/internal/api/cms/router"
	"marketplace_analytics/internal/api/middleware"
	apirouter "marketplace_analytics/internal/api/router"
	"marketplace_analytics/internal/global"
	"marketplace_analytics/internal/logger"
	"marketplace_analytics/internal/metrics"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp(s *Services) (*fiber.App, error) {
	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	app := fiber.New(fiber.Config{
		AppName:       "Marketplace Analytics API",
		ServerHeader:  "Marketplace Analytics API",
		StrictRouting: true,
		CaseSensitive: true,

		// Báo cáo có thể tính lâu hơn CRUD thường
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout() + 5*time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: middleware.ErrorHandler,
	})

	// =========================================
	// MIDDLEWARE STACK
	// =========================================

	// 1. Request ID
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestContext())

	// 2. CORS - đặt sớm để preflight không bị rate limit
	allowOrigins := []string{"*"}
	if cfg.CORS_Origins != "*" {
		allowOrigins = strings.Split(cfg.CORS_Origins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", fiber.HeaderXRequestID},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", fiber.HeaderXRequestID},
		MaxAge:           24 * 60 * 60,
	}))

	// 3. Security headers
	app.Use(middleware.SecurityHeaders())

	// 4. Metrics theo route
	app.Use(metrics.FiberMiddleware(s.Metrics))

	// 5. Rate limit theo IP
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:          cfg.RateLimit_Max,
			Expiration:   time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string { return c.IP() },
			LimitReached: middleware.LimitReached,
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/metrics" ||
					c.Path() == "/api/v1/system/health" ||
					c.Method() == fiber.MethodOptions
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 6. Recover
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			logger.WithRequest(c).WithField("panic", e).Error("Panic recovered")
		},
	}))

	// Routes
	r := apirouter.NewRouter(app)
	r.RegisterRootGet("/metrics", adaptor.HTTPHandler(metrics.Handler(s.Registry)))

	err := apirouter.SetupRoutes(app,
		apirouter.SystemRoutes(s.SystemHandler),
		analyticsrouter.Register(s.AnalyticsHandler),
		cmsrouter.Register(s.MenuHandler),
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}
