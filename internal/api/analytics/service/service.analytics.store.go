// Package analyticssvc chứa service analytics: đọc dữ liệu marketplace, tính các nhóm số liệu,
// chấm điểm, dự báo và ghép thành báo cáo (có cache).
package analyticssvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	analyticsmodels "marketplace_analytics/internal/api/analytics/models"
	"marketplace_analytics/internal/common"
	"marketplace_analytics/internal/global"
)

// Window khoảng thời gian nửa mở [Start, End). Zero value = không giới hạn.
type Window struct {
	Start time.Time
	End   time.Time
}

// IsZero window không giới hạn
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Contains t nằm trong [Start, End)
func (w Window) Contains(t time.Time) bool {
	if w.IsZero() {
		return true
	}
	return !t.Before(w.Start) && t.Before(w.End)
}

// Store là lớp truy cập dữ liệu chỉ đọc. Mọi document được decode thành model có kiểu.
type Store interface {
	Users(ctx context.Context, w Window) ([]analyticsmodels.User, error)
	Listings(ctx context.Context, w Window) ([]analyticsmodels.Listing, error)
	// status rỗng = mọi trạng thái
	Tenders(ctx context.Context, w Window, status string) ([]analyticsmodels.Tender, error)
	Orders(ctx context.Context, w Window) ([]analyticsmodels.Order, error)
	Messages(ctx context.Context, w Window) ([]analyticsmodels.UserMessage, error)

	ListingsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]analyticsmodels.Listing, error)
	TopListingsByViews(ctx context.Context, limit int64) ([]analyticsmodels.Listing, error)
	UserLocationCounts(ctx context.Context) (map[string]int64, error)

	CountUsers(ctx context.Context) (int64, error)
	CountBlockedUsers(ctx context.Context) (int64, error)
	// status rỗng = mọi trạng thái
	CountListings(ctx context.Context, status string) (int64, error)
	CountTenders(ctx context.Context, status string) (int64, error)
}

// MongoStore cài đặt Store trên MongoDB
type MongoStore struct {
	users    *mongo.Collection
	listings *mongo.Collection
	tenders  *mongo.Collection
	orders   *mongo.Collection
	messages *mongo.Collection
}

// NewMongoStore tạo store từ database
func NewMongoStore(db *mongo.Database) *MongoStore {
	names := global.MongoDB_ColNames
	return &MongoStore{
		users:    db.Collection(names.Users),
		listings: db.Collection(names.Listings),
		tenders:  db.Collection(names.Tenders),
		orders:   db.Collection(names.Orders),
		messages: db.Collection(names.UserMessages),
	}
}

// NewMongoStoreFromRegistry tạo store từ các collection đã đăng ký trong global.RegistryCollections
func NewMongoStoreFromRegistry() (*MongoStore, error) {
	names := global.MongoDB_ColNames
	get := global.RegistryCollections.MustGet

	s := &MongoStore{}
	var err error
	if s.users, err = get(names.Users); err != nil {
		return nil, err
	}
	if s.listings, err = get(names.Listings); err != nil {
		return nil, err
	}
	if s.tenders, err = get(names.Tenders); err != nil {
		return nil, err
	}
	if s.orders, err = get(names.Orders); err != nil {
		return nil, err
	}
	if s.messages, err = get(names.UserMessages); err != nil {
		return nil, err
	}
	return s, nil
}

// windowFilter lọc created_at trong [Start, End)
func windowFilter(w Window) bson.M {
	if w.IsZero() {
		return bson.M{}
	}
	created := bson.M{}
	if !w.Start.IsZero() {
		created["$gte"] = w.Start
	}
	if !w.End.IsZero() {
		created["$lt"] = w.End
	}
	return bson.M{"created_at": created}
}

// findAll chạy Find và decode toàn bộ cursor thành []T
func findAll[T any](ctx context.Context, col *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return out, nil
}

func byCreatedAt() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
}

// Users user tạo trong window
func (s *MongoStore) Users(ctx context.Context, w Window) ([]analyticsmodels.User, error) {
	return findAll[analyticsmodels.User](ctx, s.users, windowFilter(w), byCreatedAt())
}

// Listings tin đăng tạo trong window
func (s *MongoStore) Listings(ctx context.Context, w Window) ([]analyticsmodels.Listing, error) {
	return findAll[analyticsmodels.Listing](ctx, s.listings, windowFilter(w), byCreatedAt())
}

// Tenders tender tạo trong window, lọc theo status nếu có
func (s *MongoStore) Tenders(ctx context.Context, w Window, status string) ([]analyticsmodels.Tender, error) {
	filter := windowFilter(w)
	if status != "" {
		filter["status"] = status
	}
	return findAll[analyticsmodels.Tender](ctx, s.tenders, filter, byCreatedAt())
}

// Orders đơn hàng tạo trong window
func (s *MongoStore) Orders(ctx context.Context, w Window) ([]analyticsmodels.Order, error) {
	return findAll[analyticsmodels.Order](ctx, s.orders, windowFilter(w), byCreatedAt())
}

// Messages tin nhắn tạo trong window
func (s *MongoStore) Messages(ctx context.Context, w Window) ([]analyticsmodels.UserMessage, error) {
	return findAll[analyticsmodels.UserMessage](ctx, s.messages, windowFilter(w), byCreatedAt())
}

// ListingsByIDs tra tin đăng theo danh sách _id (join cho doanh thu theo danh mục)
func (s *MongoStore) ListingsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]analyticsmodels.Listing, error) {
	if len(ids) == 0 {
		return []analyticsmodels.Listing{}, nil
	}
	return findAll[analyticsmodels.Listing](ctx, s.listings, bson.M{"_id": bson.M{"$in": ids}})
}

// TopListingsByViews limit tin có lượt xem cao nhất
func (s *MongoStore) TopListingsByViews(ctx context.Context, limit int64) ([]analyticsmodels.Listing, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "views", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)
	return findAll[analyticsmodels.Listing](ctx, s.listings, bson.M{}, opts)
}

// UserLocationCounts đếm user theo location; thiếu location gom vào key rỗng
func (s *MongoStore) UserLocationCounts(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$location", ""}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := s.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Location string `bson:"_id"`
		Count    int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Location] += r.Count
	}
	return out, nil
}

func count(ctx context.Context, col *mongo.Collection, filter bson.M) (int64, error) {
	n, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return n, nil
}

// CountUsers tổng số user
func (s *MongoStore) CountUsers(ctx context.Context) (int64, error) {
	return count(ctx, s.users, bson.M{})
}

// CountBlockedUsers số user bị chặn
func (s *MongoStore) CountBlockedUsers(ctx context.Context) (int64, error) {
	return count(ctx, s.users, bson.M{"is_blocked": true})
}

// CountListings số tin đăng theo status
func (s *MongoStore) CountListings(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return count(ctx, s.listings, filter)
}

// CountTenders số tender theo status
func (s *MongoStore) CountTenders(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return count(ctx, s.tenders, filter)
}
