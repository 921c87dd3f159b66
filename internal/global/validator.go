package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ReportTypes là các loại business report hợp lệ
var ReportTypes = []string{"comprehensive", "executive", "financial", "operational"}

// UserRoles là các role người dùng trên marketplace
var UserRoles = []string{"admin", "seller", "buyer", "user", "guest"}

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("report_type", validateReportType)
	_ = Validate.RegisterValidation("user_role", validateUserRole)
}

// validateReportType kiểm tra type của business report (không phân biệt hoa thường)
func validateReportType(fl validator.FieldLevel) bool {
	return contains(ReportTypes, fl.Field().String())
}

// validateUserRole kiểm tra role; rỗng được chấp nhận (coi như guest)
func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return contains(UserRoles, value)
}

func contains(list []string, value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
