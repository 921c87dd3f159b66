// Package database - kết nối MongoDB và các index phục vụ truy vấn theo cửa sổ thời gian.
package database

import (
	"context"
	"fmt"
	"strings"

	"marketplace_analytics/internal/global"
	"marketplace_analytics/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSpec mô tả một index cần có trên collection
type IndexSpec struct {
	Collection string
	Name       string
	Keys       bson.D
}

// AnalyticsIndexes trả về danh sách index cho các truy vấn analytics.
// Mọi extractor lọc theo created_at nên mỗi collection đều cần index này.
func AnalyticsIndexes() []IndexSpec {
	names := global.MongoDB_ColNames
	specs := make([]IndexSpec, 0, 8)
	for _, col := range global.AnalyticsCollections() {
		specs = append(specs, IndexSpec{
			Collection: col,
			Name:       col + "_created_at",
			Keys:       bson.D{{Key: "created_at", Value: 1}},
		})
	}

	// tenders: (status, created_at) cho doanh thu từ tender accepted
	specs = append(specs, IndexSpec{
		Collection: names.Tenders,
		Name:       "tenders_status_created_at",
		Keys:       bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
	})
	// listings: status cho đếm tin active/sold
	specs = append(specs, IndexSpec{
		Collection: names.Listings,
		Name:       "listings_status",
		Keys:       bson.D{{Key: "status", Value: 1}},
	})
	// menu_settings: thứ tự hiển thị
	specs = append(specs, IndexSpec{
		Collection: names.MenuSettings,
		Name:       "menu_settings_order",
		Keys:       bson.D{{Key: "order", Value: 1}, {Key: "key", Value: 1}},
	})
	return specs
}

// CreateAnalyticsIndexes tạo các index trong AnalyticsIndexes; index đã tồn tại thì bỏ qua.
func CreateAnalyticsIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range AnalyticsIndexes() {
		_, err := db.Collection(spec.Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    spec.Keys,
			Options: options.Index().SetName(spec.Name),
		})
		if err != nil && !isIndexExistsError(err) {
			return fmt.Errorf("không thể tạo index %s trên %s: %w", spec.Name, spec.Collection, err)
		}
		logger.WithCollection(spec.Collection).WithField("index", spec.Name).Debug("Index sẵn sàng")
	}
	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
