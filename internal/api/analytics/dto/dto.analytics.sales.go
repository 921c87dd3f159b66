package analyticsdto

// Revenue doanh thu từ tender accepted
type Revenue struct {
	TotalRevenue        float64            `json:"total_revenue"`
	TransactionCount    int64              `json:"transaction_count"`
	AvgTransactionValue float64            `json:"avg_transaction_value"`
	DailyRevenue        []DailyAmount      `json:"daily_revenue"`
	RevenueByCategory   map[string]float64 `json:"revenue_by_category"`
}

// Transactions tổng hợp giao dịch: tender accepted + order approved
type Transactions struct {
	TotalTransactions int64   `json:"total_transactions"`
	AcceptedTenders   int64   `json:"accepted_tenders"`
	ApprovedOrders    int64   `json:"approved_orders"`
	PendingTenders    int64   `json:"pending_tenders"`
	RejectedTenders   int64   `json:"rejected_tenders"`
	AcceptanceRate    float64 `json:"acceptance_rate"`
}

// CategoryRevenue doanh thu theo danh mục
type CategoryRevenue struct {
	Category     string  `json:"category"`
	Revenue      float64 `json:"revenue"`
	Transactions int64   `json:"transactions"`
}

// ListingViews tin đăng theo lượt xem
type ListingViews struct {
	ListingID string `json:"listing_id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Views     int64  `json:"views"`
}

// ProductPerformance top danh mục theo doanh thu và top tin theo lượt xem
type ProductPerformance struct {
	TopCategories []CategoryRevenue `json:"top_categories"`
	TopListings   []ListingViews    `json:"top_listings"`
}

// SalesTrends xu hướng doanh thu: so sánh nửa đầu và nửa sau cửa sổ
type SalesTrends struct {
	DailyRevenue     []DailyAmount `json:"daily_revenue"`
	TrendDirection   string        `json:"trend_direction"`
	RevenueChangePct float64       `json:"revenue_change_pct"`
}

// ConversionMetrics tỉ lệ tin đăng bán được (%)
type ConversionMetrics struct {
	OverallConversionRate float64 `json:"overall_conversion_rate"`
	TotalListings         int64   `json:"total_listings"`
	ConvertedListings     int64   `json:"converted_listings"`
}

// SalesSummary các số headline của báo cáo sales
type SalesSummary struct {
	TotalRevenue        float64 `json:"total_revenue"`
	TotalTransactions   int64   `json:"total_transactions"`
	AvgTransactionValue float64 `json:"avg_transaction_value"`
	ConversionRate      float64 `json:"conversion_rate"`
}

// SalesReport báo cáo sales analytics
type SalesReport struct {
	Period             Period                     `json:"period"`
	Revenue            Metric[Revenue]            `json:"revenue"`
	Transactions       Metric[Transactions]       `json:"transactions"`
	ProductPerformance Metric[ProductPerformance] `json:"product_performance"`
	SalesTrends        Metric[SalesTrends]        `json:"sales_trends"`
	ConversionMetrics  Metric[ConversionMetrics]  `json:"conversion_metrics"`
	Summary            SalesSummary               `json:"summary"`
}
