package analyticsdto

import (
	"time"

	"marketplace_analytics/internal/api/analytics/scoring"
)

// Mức ưu tiên của khuyến nghị
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ExecutiveSummary các số headline lấy từ ba báo cáo con
type ExecutiveSummary struct {
	TotalUsers          int64   `json:"total_users"`
	NewUsers            int64   `json:"new_users"`
	UserGrowthRate      float64 `json:"user_growth_rate"`
	EngagementScore     float64 `json:"engagement_score"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalTransactions   int64   `json:"total_transactions"`
	AvgTransactionValue float64 `json:"avg_transaction_value"`
	ConversionRate      float64 `json:"conversion_rate"`
	ActiveListings      int64   `json:"active_listings"`
}

// DetailedAnalytics ba báo cáo con đầy đủ
type DetailedAnalytics struct {
	UserAnalytics        *UserReport        `json:"user_analytics"`
	SalesAnalytics       *SalesReport       `json:"sales_analytics"`
	MarketplaceAnalytics *MarketplaceReport `json:"marketplace_analytics"`
}

// Recommendation một khuyến nghị sinh từ rule
type Recommendation struct {
	Category       string `json:"category"`
	Priority       string `json:"priority"`
	Recommendation string `json:"recommendation"`
	ExpectedImpact string `json:"expected_impact"`
}

// BusinessReport báo cáo tổng hợp
type BusinessReport struct {
	ReportID          string               `json:"report_id"`
	ReportType        string               `json:"report_type"`
	GeneratedAt       time.Time            `json:"generated_at"`
	PeriodDays        int                  `json:"period_days"`
	ExecutiveSummary  ExecutiveSummary     `json:"executive_summary"`
	DetailedAnalytics DetailedAnalytics    `json:"detailed_analytics"`
	KeyInsights       []string             `json:"key_insights"`
	Recommendations   []Recommendation     `json:"recommendations"`
	HealthScores      scoring.HealthScores `json:"health_scores"`
}
