// Package basehdl chứa helper response dùng chung cho các domain handler và handler hệ thống.
package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"marketplace_analytics/internal/common"
	"marketplace_analytics/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandlerWrapper chạy fn và bắt panic, đảm bảo client luôn nhận được response
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithFields(logrus.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Panic trong handler")

			err = HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}

// HandleResponse chuẩn hóa response: thành công bọc data trong envelope,
// lỗi trả về code / message / error theo *common.Error
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return HandleErrorResponse(c, err)
	}
	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// HandleErrorResponse trả lỗi cho client. Lỗi bọc (fmt.Errorf %w) vẫn lấy được mã và status của *common.Error,
// message hiển thị là chuỗi lỗi đầy đủ.
func HandleErrorResponse(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		if customErr.StatusCode >= common.StatusInternalServerError {
			logger.WithRequest(c).WithError(err).Error("Request lỗi")
		}
		body := fiber.Map{
			"code":    customErr.Code.Code,
			"message": err.Error(),
			"error":   err.Error(),
			"status":  "error",
		}
		if customErr.Details != nil {
			if inner, ok := customErr.Details.(error); ok {
				body["details"] = inner.Error()
			} else {
				body["details"] = customErr.Details
			}
		}
		return JSONResponse(c, customErr.StatusCode, body)
	}

	logger.WithRequest(c).WithError(err).Error("Request lỗi")
	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": err.Error(),
		"error":   err.Error(),
		"status":  "error",
	})
}

// ValidationError trả 400 cho lỗi bind / validate query
func ValidationError(c fiber.Ctx, err error) error {
	return JSONResponse(c, common.StatusBadRequest, fiber.Map{
		"code":    common.ErrCodeValidationInput.Code,
		"message": common.MsgValidationError,
		"error":   err.Error(),
		"status":  "error",
	})
}
