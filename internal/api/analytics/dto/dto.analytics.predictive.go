package analyticsdto

import (
	"time"

	"marketplace_analytics/internal/api/analytics/scoring"
)

// MarketTrends phần nhận định tĩnh đi kèm dự báo
type MarketTrends struct {
	SeasonalPatterns string   `json:"seasonal_patterns"`
	GrowthDrivers    []string `json:"growth_drivers"`
	RiskFactors      []string `json:"risk_factors"`
}

// ConfidenceIntervals độ tin cậy cố định của từng forecaster
type ConfidenceIntervals struct {
	Revenue       float64 `json:"revenue"`
	UserGrowth    float64 `json:"user_growth"`
	ListingVolume float64 `json:"listing_volume"`
}

// PredictiveReport dự báo cho horizon ngày tới
type PredictiveReport struct {
	ReportID              string              `json:"report_id"`
	ForecastPeriodDays    int                 `json:"forecast_period_days"`
	GeneratedAt           time.Time           `json:"generated_at"`
	HistorySource         string              `json:"history_source"`
	RevenueForecast       scoring.Forecast    `json:"revenue_forecast"`
	UserGrowthForecast    scoring.Forecast    `json:"user_growth_forecast"`
	ListingVolumeForecast scoring.Forecast    `json:"listing_volume_forecast"`
	MarketTrends          MarketTrends        `json:"market_trends"`
	ConfidenceIntervals   ConfidenceIntervals `json:"confidence_intervals"`
}
