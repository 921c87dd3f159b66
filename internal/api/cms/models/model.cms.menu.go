package cmsmodels

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleAdmin thấy mọi mục menu đang bật
const RoleAdmin = "admin"

// RoleGuest role mặc định khi request không có role
const RoleGuest = "guest"

// MenuItem một mục menu CMS (collection menu_settings)
type MenuItem struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Key            string             `json:"key" bson:"key"`     // Định danh duy nhất, ví dụ "analytics"
	Label          string             `json:"label" bson:"label"` // Nhãn hiển thị
	Path           string             `json:"path" bson:"path"`
	Order          int                `json:"order" bson:"order"`
	Enabled        bool               `json:"enabled" bson:"enabled"`
	VisibleToRoles []string           `json:"visibleToRoles" bson:"visible_to_roles"` // Rỗng = mọi role đều thấy
	CreatedAt      time.Time          `json:"createdAt" bson:"created_at"`
}
