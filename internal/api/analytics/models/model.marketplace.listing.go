package analyticsmodels

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái tin đăng
const (
	ListingStatusActive = "active"
	ListingStatusSold   = "sold"
)

// CategoryUncategorized dùng khi không tra được danh mục
const CategoryUncategorized = "uncategorized"

// Listing tin đăng bán (collection listings)
type Listing struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	UserID    primitive.ObjectID `json:"userId" bson:"user_id"` // Người bán
	Title     string             `json:"title" bson:"title"`
	Category  string             `json:"category" bson:"category"`
	Status    string             `json:"status" bson:"status"` // active | sold | ...
	Views     int64              `json:"views" bson:"views"`   // Số lượt xem
	Price     float64            `json:"price" bson:"price"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// CategoryOrDefault trả về category, rỗng thì CategoryUncategorized
func (l Listing) CategoryOrDefault() string {
	if l.Category == "" {
		return CategoryUncategorized
	}
	return l.Category
}
