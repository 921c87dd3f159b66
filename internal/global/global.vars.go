package global

import (
	"marketplace_analytics/config"
	"marketplace_analytics/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users        string // Người dùng
	Listings     string // Tin đăng
	Tenders      string // Lượt trả giá (tender/bid)
	Orders       string // Đơn hàng
	UserMessages string // Tin nhắn giữa người dùng
	MenuSettings string // Cấu hình menu CMS
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{
	Users:        "users",
	Listings:     "listings",
	Tenders:      "tenders",
	Orders:       "orders",
	UserMessages: "user_messages",
	MenuSettings: "menu_settings",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections

// AnalyticsCollections là các collection mà module analytics đọc
func AnalyticsCollections() []string {
	return []string{
		MongoDB_ColNames.Users,
		MongoDB_ColNames.Listings,
		MongoDB_ColNames.Tenders,
		MongoDB_ColNames.Orders,
		MongoDB_ColNames.UserMessages,
	}
}
