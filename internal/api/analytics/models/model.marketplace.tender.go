package analyticsmodels

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái tender. accepted được coi là một giao dịch bán thành công.
const (
	TenderStatusAccepted = "accepted"
	TenderStatusPending  = "pending"
	TenderStatusRejected = "rejected"
)

// Tender lượt trả giá cho một tin đăng (collection tenders)
type Tender struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	ListingID   primitive.ObjectID `json:"listingId" bson:"listing_id"`
	UserID      primitive.ObjectID `json:"userId" bson:"user_id"` // Người trả giá
	Status      string             `json:"status" bson:"status"`
	OfferAmount float64            `json:"offerAmount" bson:"offer_amount"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}

// IsAccepted tender đã được chấp nhận
func (t Tender) IsAccepted() bool {
	return t.Status == TenderStatusAccepted
}
