package analyticssvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	analyticsmodels "marketplace_analytics/internal/api/analytics/models"
	"marketplace_analytics/internal/common"
	"marketplace_analytics/internal/global"
)

func TestWindow(t *testing.T) {
	w := Window{Start: daysAgo(2), End: testNow}

	assert.True(t, w.Contains(daysAgo(2)))
	assert.True(t, w.Contains(daysAgo(1)))
	assert.False(t, w.Contains(testNow), "End không thuộc cửa sổ")
	assert.False(t, w.Contains(daysAgo(3)))
	assert.True(t, Window{}.Contains(daysAgo(1000)))
}

func TestWindowFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, windowFilter(Window{}))

	w := Window{Start: daysAgo(30), End: testNow}
	assert.Equal(t, bson.M{"created_at": bson.M{"$gte": w.Start, "$lt": w.End}}, windowFilter(w))
	assert.Equal(t, bson.M{"created_at": bson.M{"$gte": w.Start}}, windowFilter(Window{Start: w.Start}))
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("users decode thành model", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB)
		id := primitive.NewObjectID()
		created := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
		ns := mt.DB.Name() + "." + global.MongoDB_ColNames.Users

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "role", Value: "seller"},
			{Key: "location", Value: "Hanoi"},
			{Key: "is_blocked", Value: true},
			{Key: "created_at", Value: created},
		}))

		users, err := store.Users(context.Background(), Window{Start: daysAgo(30), End: testNow})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, id, users[0].ID)
		assert.Equal(t, "seller", users[0].Role)
		assert.True(t, users[0].IsBlocked)
		assert.True(t, created.Equal(users[0].CreatedAt))
	})

	mt.Run("tenders theo status", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB)
		ns := mt.DB.Name() + "." + global.MongoDB_ColNames.Tenders

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "status", Value: "accepted"}, {Key: "offer_amount", Value: 120.5}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "status", Value: "accepted"}, {Key: "offer_amount", Value: 79.5}},
		))

		tenders, err := store.Tenders(context.Background(), Window{}, analyticsmodels.TenderStatusAccepted)
		require.NoError(t, err)
		require.Len(t, tenders, 2)
		assert.Equal(t, 200.0, tenders[0].OfferAmount+tenders[1].OfferAmount)
		assert.True(t, tenders[0].IsAccepted())
	})

	mt.Run("cursor rỗng trả slice rỗng", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB)
		ns := mt.DB.Name() + "." + global.MongoDB_ColNames.UserMessages
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		messages, err := store.Messages(context.Background(), Window{})
		require.NoError(t, err)
		assert.NotNil(t, messages)
		assert.Empty(t, messages)
	})

	mt.Run("ListingsByIDs không truy vấn khi ids rỗng", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB)

		listings, err := store.ListingsByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, listings)
	})

	mt.Run("count", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB)
		ns := mt.DB.Name() + "." + global.MongoDB_ColNames.Listings
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(42)}}))

		n, err := store.CountListings(context.Background(), analyticsmodels.ListingStatusActive)
		require.NoError(t, err)
		assert.Equal(t, int64(42), n)
	})

	mt.Run("location aggregation", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB)
		ns := mt.DB.Name() + "." + global.MongoDB_ColNames.Users
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "Hanoi"}, {Key: "count", Value: int64(7)}},
			bson.D{{Key: "_id", Value: ""}, {Key: "count", Value: int64(2)}},
		))

		counts, err := store.UserLocationCounts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"Hanoi": 7, "": 2}, counts)
	})

	mt.Run("lỗi driver được chuyển thành lỗi hệ thống", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad filter",
		}))

		_, err := store.Orders(context.Background(), Window{})
		require.Error(t, err)
		assert.Equal(t, common.ErrCodeDatabaseQuery.Code, common.CodeOf(err))
	})
}

func TestNewMongoStoreFromRegistry(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("thiếu collection", func(mt *mtest.T) {
		global.RegistryCollections.ClearAll(nil)
		_, err := NewMongoStoreFromRegistry()
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	mt.Run("đủ collection", func(mt *mtest.T) {
		global.RegistryCollections.ClearAll(nil)
		defer global.RegistryCollections.ClearAll(nil)
		for _, name := range global.AnalyticsCollections() {
			global.RegistryCollections.Register(name, mt.DB.Collection(name))
		}

		store, err := NewMongoStoreFromRegistry()
		require.NoError(t, err)
		assert.NotNil(t, store)
	})
}

var _ Store = (*MongoStore)(nil)
