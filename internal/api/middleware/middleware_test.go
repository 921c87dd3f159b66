package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace_analytics/internal/common"
	"marketplace_analytics/internal/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init(&logger.LogConfig{Level: "error", Output: "stdout", Format: "text", BufferSize: 100})
	code := m.Run()
	logger.Close()
	os.Exit(code)
}

func decode(t *testing.T, app *fiber.App, method, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/common", func(c fiber.Ctx) error { return common.ErrReportTimeout })
	app.Get("/plain", func(c fiber.Ctx) error { return errors.New("boom") })

	tests := []struct {
		path       string
		wantStatus int
		wantCode   string
	}{
		{path: "/khong-co", wantStatus: 404, wantCode: common.ErrCodeRouteNotFound.Code},
		{path: "/common", wantStatus: 504, wantCode: common.ErrCodeAnalyticsTimeout.Code},
		{path: "/plain", wantStatus: 500, wantCode: common.ErrCodeInternalServer.Code},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := decode(t, app, "GET", tt.path)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, "error", body["status"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestLimitReached(t *testing.T) {
	app := fiber.New()
	app.Get("/x", LimitReached)

	status, body := decode(t, app, "GET", "/x")
	assert.Equal(t, 429, status)
	assert.Equal(t, common.ErrCodeRateLimited.Code, body["code"])
}

func TestRequestContext(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Generator: func() string { return "rid-1" }}))
	app.Use(RequestContext(), SecurityHeaders())
	app.Get("/ctx", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"rid": c.Context().Value(logger.RequestIDKey)})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ctx", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "rid-1", body["rid"])
}
