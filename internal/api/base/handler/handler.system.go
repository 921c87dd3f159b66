package basehdl

import (
	"context"
	"time"

	"marketplace_analytics/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Pinger là phần của *mongo.Client mà health check cần
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// SystemHandler xử lý các route hệ thống (health)
type SystemHandler struct {
	db      Pinger
	timeout time.Duration
	now     func() time.Time
}

// NewSystemHandler tạo SystemHandler. db nil nghĩa là database chưa được khởi tạo.
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db, timeout: 2 * time.Second, now: time.Now}
}

// HandleHealth kiểm tra API và kết nối MongoDB
// URL: GET /api/v1/system/health
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"services":  services,
	}

	if h.db == nil {
		healthData["status"] = "degraded"
		services["database"] = "not_initialized"
		return HandleResponse(c, healthData, nil)
	}

	if err := h.db.Ping(ctx, nil); err != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		healthData["database_error"] = err.Error()
		return JSONResponse(c, common.StatusServiceUnavailable, fiber.Map{
			"code":    common.StatusServiceUnavailable,
			"message": common.MsgServiceUnavailable,
			"data":    healthData,
			"status":  "error",
		})
	}

	services["database"] = "ok"
	return HandleResponse(c, healthData, nil)
}
