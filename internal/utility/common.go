package utility

import (
	"runtime/debug"

	"marketplace_analytics/internal/logger"
)

// GoProtect chạy f và bắt panic nếu có, log kèm stack thay vì làm sập cả process.
// Trả về true nếu f chạy hết không panic.
func GoProtect(name string, f func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.GetErrorLogger().WithFields(map[string]interface{}{
				"goroutine": name,
				"panic":     r,
				"stack":     string(debug.Stack()),
			}).Error("Đã bắt lỗi panic")
			ok = false
		}
	}()

	f()
	return true
}
