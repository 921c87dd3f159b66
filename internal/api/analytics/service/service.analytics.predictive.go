package analyticssvc

import (
	"context"
	"fmt"

	analyticsdto "marketplace_analytics/internal/api/analytics/dto"
	"marketplace_analytics/internal/api/analytics/scoring"
	"marketplace_analytics/internal/common"
)

// marketTrends phần nhận định tĩnh của báo cáo dự báo
var marketTrends = analyticsdto.MarketTrends{
	SeasonalPatterns: "Listing and tender activity typically peaks at the start of each month and before holidays",
	GrowthDrivers: []string{
		"New seller onboarding",
		"Repeat buyers returning through messaging",
		"Expansion of popular categories",
	},
	RiskFactors: []string{
		"Seasonal slowdowns in tender activity",
		"Concentration of revenue in few categories",
		"Low conversion of new listings",
	},
}

// GetPredictiveAnalytics dự báo doanh thu, tăng trưởng user và lượng tin đăng cho horizonDays ngày tới
// dựa trên HistoryDays ngày lịch sử. Chuỗi lịch sử lỗi được coi như rỗng (insufficient_data).
func (s *AnalyticsService) GetPredictiveAnalytics(ctx context.Context, horizonDays int) (*analyticsdto.PredictiveReport, error) {
	if horizonDays < 1 || horizonDays > analyticsdto.MaxDays {
		return nil, fmt.Errorf("horizon_days = %d ngoài khoảng 1..%d: %w", horizonDays, analyticsdto.MaxDays, common.ErrInvalidInput)
	}

	return cached(ctx, s, ReportPredictive, CacheKey(ReportPredictive, horizonDays), false, func(ctx context.Context) (*analyticsdto.PredictiveReport, error) {
		series := func(metric string) []float64 {
			return extract(ctx, s, "history_"+metric, func(ctx context.Context) ([]float64, error) {
				return s.history.GetHistoricalSeries(ctx, metric, HistoryDays)
			}).OrZero()
		}

		return &analyticsdto.PredictiveReport{
			ReportID:              s.newID(),
			ForecastPeriodDays:    horizonDays,
			GeneratedAt:           s.now().UTC(),
			HistorySource:         s.history.Name(),
			RevenueForecast:       scoring.LinearTrend(series(SeriesRevenue), horizonDays),
			UserGrowthForecast:    scoring.AverageGrowth(series(SeriesUsers), horizonDays),
			ListingVolumeForecast: scoring.AverageVolume(series(SeriesListings), horizonDays),
			MarketTrends:          marketTrends,
			ConfidenceIntervals: analyticsdto.ConfidenceIntervals{
				Revenue:       scoring.ConfidenceLinear,
				UserGrowth:    scoring.ConfidenceAverageGrowth,
				ListingVolume: scoring.ConfidenceAverageVolume,
			},
		}, nil
	})
}
