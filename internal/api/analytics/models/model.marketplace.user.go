// Package analyticsmodels chứa typed view của các collection marketplace mà module analytics đọc.
// Document chỉ được decode một lần tại data access, extractor làm việc trên struct đã biết kiểu.
package analyticsmodels

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role mặc định khi document không có role
const RoleDefault = "user"

// LocationUnknown dùng khi user không khai báo địa điểm
const LocationUnknown = "unknown"

// User người dùng marketplace (collection users)
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Role      string             `json:"role" bson:"role"`                             // admin | seller | buyer | user
	Location  string             `json:"location,omitempty" bson:"location,omitempty"` // Thành phố / khu vực
	IsBlocked bool               `json:"isBlocked" bson:"is_blocked"`                  // Admin chặn
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`                  // Thời điểm đăng ký
}

// RoleOrDefault trả về role, rỗng thì RoleDefault
func (u User) RoleOrDefault() string {
	if u.Role == "" {
		return RoleDefault
	}
	return u.Role
}

// LocationOrUnknown trả về location, rỗng thì LocationUnknown
func (u User) LocationOrUnknown() string {
	if u.Location == "" {
		return LocationUnknown
	}
	return u.Location
}
