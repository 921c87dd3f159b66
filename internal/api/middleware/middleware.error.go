package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"marketplace_analytics/internal/common"
	"marketplace_analytics/internal/logger"
)

// ErrorHandler là fiber.Config.ErrorHandler: lỗi lọt ra khỏi handler (404, 405, panic của middleware...)
// cũng trả về envelope chuẩn {code, message, error, status}.
func ErrorHandler(c fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := common.ErrCodeInternalServer.Code
	message := common.MsgInternalError

	var fe *fiber.Error
	var ce *common.Error
	switch {
	case errors.As(err, &ce):
		status, code, message = ce.StatusCode, ce.Code.Code, ce.Message
	case errors.As(err, &fe):
		status, message = fe.Code, fe.Message
		code = errorCodeForStatus(fe.Code)
	}

	if status >= fiber.StatusInternalServerError {
		logger.WithRequest(c).WithError(err).WithField("errorCode", code).Error("Request error")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(status).JSON(fiber.Map{
		"code":    code,
		"message": message,
		"error":   err.Error(),
		"status":  "error",
	})
}

func errorCodeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return common.ErrCodeValidationInput.Code
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return common.ErrCodeRouteNotFound.Code
	case fiber.StatusTooManyRequests:
		return common.ErrCodeRateLimited.Code
	case fiber.StatusServiceUnavailable:
		return common.ErrCodeDatabaseConnection.Code
	}
	return common.ErrCodeInternalServer.Code
}

// LimitReached trả lời khi limiter chặn request
func LimitReached(c fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"code":    common.ErrCodeRateLimited.Code,
		"message": common.MsgTooManyRequests,
		"error":   common.MsgTooManyRequests,
		"status":  "error",
	})
}
