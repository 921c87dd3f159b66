package analyticsdto

// ListingMetrics tình trạng tin đăng
type ListingMetrics struct {
	TotalActiveListings int64   `json:"total_active_listings"`
	NewListings         int64   `json:"new_listings"`
	SuccessRate         float64 `json:"success_rate"`
	SoldListings        int64   `json:"sold_listings"`
}

// CategoryMetrics phân bố tin mới theo danh mục
type CategoryMetrics struct {
	CategoryDistribution map[string]int64 `json:"category_distribution"`
	TopCategory          string           `json:"top_category"`
	TotalCategories      int              `json:"total_categories"`
}

// SearchMetrics lượt xem tin đăng (thay cho log tìm kiếm)
type SearchMetrics struct {
	TotalViews         int64   `json:"total_views"`
	AvgViewsPerListing float64 `json:"avg_views_per_listing"`
	ZeroViewListings   int64   `json:"zero_view_listings"`
}

// UserBehavior hành vi người bán / người mua
type UserBehavior struct {
	UniqueSellers        int64   `json:"unique_sellers"`
	UniqueBidders        int64   `json:"unique_bidders"`
	AvgListingsPerSeller float64 `json:"avg_listings_per_seller"`
	AvgTendersPerListing float64 `json:"avg_tenders_per_listing"`
	MessagesSent         int64   `json:"messages_sent"`
}

// Trạng thái nền tảng
const (
	PlatformStatusHealthy = "healthy"
	PlatformStatusIdle    = "idle"
)

// PlatformHealth số liệu toàn nền tảng (không giới hạn cửa sổ, trừ pending tenders)
type PlatformHealth struct {
	TotalUsers         int64   `json:"total_users"`
	BlockedUsers       int64   `json:"blocked_users"`
	TotalListings      int64   `json:"total_listings"`
	ActiveListingRatio float64 `json:"active_listing_ratio"`
	PendingTenders     int64   `json:"pending_tenders"`
	Status             string  `json:"status"`
}

// MarketplaceSummary các số headline của báo cáo marketplace
type MarketplaceSummary struct {
	ActiveListings int64   `json:"active_listings"`
	NewListings    int64   `json:"new_listings"`
	SuccessRate    float64 `json:"success_rate"`
	TopCategory    string  `json:"top_category"`
	TotalViews     int64   `json:"total_views"`
}

// MarketplaceReport báo cáo marketplace analytics
type MarketplaceReport struct {
	Period         Period                  `json:"period"`
	Listings       Metric[ListingMetrics]  `json:"listings"`
	Categories     Metric[CategoryMetrics] `json:"categories"`
	Search         Metric[SearchMetrics]   `json:"search"`
	UserBehavior   Metric[UserBehavior]    `json:"user_behavior"`
	PlatformHealth Metric[PlatformHealth]  `json:"platform_health"`
	Summary        MarketplaceSummary      `json:"summary"`
}
