package analyticsmodels

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatusApproved đơn đã duyệt, tính là một giao dịch
const OrderStatusApproved = "approved"

// Order đơn hàng (collection orders)
type Order struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	ListingID primitive.ObjectID `json:"listingId" bson:"listing_id"`
	UserID    primitive.ObjectID `json:"userId" bson:"user_id"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}
