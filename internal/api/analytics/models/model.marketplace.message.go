package analyticsmodels

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserMessage tin nhắn giữa người mua và người bán (collection user_messages)
type UserMessage struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	SenderID   primitive.ObjectID `json:"senderId" bson:"sender_id"`
	ReceiverID primitive.ObjectID `json:"receiverId" bson:"receiver_id"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
}
