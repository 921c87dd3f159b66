// Package cmssvc chứa logic cấu hình menu CMS: đọc menu_settings và lọc theo role người xem.
package cmssvc

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	cmsmodels "marketplace_analytics/internal/api/cms/models"
	"marketplace_analytics/internal/common"
	"marketplace_analytics/internal/global"
	"marketplace_analytics/internal/logger"
)

// MenuStore nguồn dữ liệu menu
type MenuStore interface {
	MenuItems(ctx context.Context) ([]cmsmodels.MenuItem, error)
}

// MongoMenuStore đọc menu từ collection menu_settings
type MongoMenuStore struct {
	col *mongo.Collection
}

// NewMongoMenuStore tạo store trên collection cho trước
func NewMongoMenuStore(col *mongo.Collection) *MongoMenuStore {
	return &MongoMenuStore{col: col}
}

// NewMongoMenuStoreFromRegistry lấy collection menu_settings từ registry
func NewMongoMenuStoreFromRegistry() (*MongoMenuStore, error) {
	col, err := global.RegistryCollections.MustGet(global.MongoDB_ColNames.MenuSettings)
	if err != nil {
		return nil, err
	}
	return NewMongoMenuStore(col), nil
}

// MenuItems toàn bộ mục menu, sắp theo order rồi key
func (s *MongoMenuStore) MenuItems(ctx context.Context) ([]cmsmodels.MenuItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "key", Value: 1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	items := []cmsmodels.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return items, nil
}

// SeedDefaults thêm các mục mặc định còn thiếu (theo key); mục đã có giữ nguyên.
// Trả về số mục được thêm mới.
func (s *MongoMenuStore) SeedDefaults(ctx context.Context, items []cmsmodels.MenuItem, now time.Time) (int64, error) {
	var inserted int64
	for _, item := range items {
		item.CreatedAt = now
		res, err := s.col.UpdateOne(ctx,
			bson.M{"key": item.Key},
			bson.M{"$setOnInsert": item},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return inserted, common.ConvertMongoError(err)
		}
		inserted += res.UpsertedCount
	}
	return inserted, nil
}

// DefaultMenuItems menu mặc định của trang quản trị marketplace
func DefaultMenuItems() []cmsmodels.MenuItem {
	return []cmsmodels.MenuItem{
		{Key: "dashboard", Label: "Tổng quan", Path: "/dashboard", Order: 1, Enabled: true},
		{Key: "listings", Label: "Tin đăng", Path: "/listings", Order: 2, Enabled: true, VisibleToRoles: []string{"seller"}},
		{Key: "orders", Label: "Đơn hàng", Path: "/orders", Order: 3, Enabled: true, VisibleToRoles: []string{"seller", "buyer"}},
		{Key: "analytics", Label: "Phân tích", Path: "/analytics", Order: 4, Enabled: true, VisibleToRoles: []string{cmsmodels.RoleAdmin}},
		{Key: "settings", Label: "Cài đặt", Path: "/settings", Order: 5, Enabled: true, VisibleToRoles: []string{cmsmodels.RoleAdmin}},
	}
}

// NormalizeRole chuẩn hoá role: trim + lowercase, rỗng thành guest
func NormalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return cmsmodels.RoleGuest
	}
	return role
}

// FilterMenuForRole trả về các mục đang bật mà role được thấy, sắp theo order rồi key.
// Mục không giới hạn role thì ai cũng thấy; admin thấy mọi mục đang bật. Không sửa slice đầu vào.
func FilterMenuForRole(items []cmsmodels.MenuItem, role string) []cmsmodels.MenuItem {
	role = NormalizeRole(role)
	out := make([]cmsmodels.MenuItem, 0, len(items))
	for _, item := range items {
		if !item.Enabled {
			continue
		}
		if role == cmsmodels.RoleAdmin || len(item.VisibleToRoles) == 0 || hasRole(item.VisibleToRoles, role) {
			out = append(out, item)
		}
	}
	slices.SortStableFunc(out, func(a, b cmsmodels.MenuItem) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return strings.Compare(a.Key, b.Key)
	})
	return out
}

func hasRole(roles []string, role string) bool {
	return slices.ContainsFunc(roles, func(r string) bool {
		return strings.EqualFold(strings.TrimSpace(r), role)
	})
}

// MenuService phục vụ menu theo role
type MenuService struct {
	store MenuStore
}

// NewMenuService tạo service
func NewMenuService(store MenuStore) *MenuService {
	return &MenuService{store: store}
}

// GetMenuForRole đọc menu và lọc theo role
func (s *MenuService) GetMenuForRole(ctx context.Context, role string) ([]cmsmodels.MenuItem, error) {
	items, err := s.store.MenuItems(ctx)
	if err != nil {
		logger.WithModule("cms").WithError(err).Warn("Không đọc được menu_settings")
		return nil, fmt.Errorf("đọc menu: %w", err)
	}
	return FilterMenuForRole(items, role), nil
}
