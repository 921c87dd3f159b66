package analyticssvc

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsdto "marketplace_analytics/internal/api/analytics/dto"
	"marketplace_analytics/internal/api/analytics/scoring"
	"marketplace_analytics/internal/common"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "user_analytics_30", CacheKey(ReportUser, 30))
	assert.Equal(t, "predictive_analytics_7", CacheKey(ReportPredictive, 7))
}

func TestGetUserAnalytics_CachedWithinTTL(t *testing.T) {
	store := &fakeStore{users: usersCreated(3, 1, 3, "buyer", "Hue")}
	svc, clock := newTestService(store)
	ctx := context.Background()

	first, err := svc.GetUserAnalytics(ctx, 30)
	require.NoError(t, err)
	calls := store.calls.Load()

	clock.Advance(DefaultCacheTTL - time.Second)
	second, err := svc.GetUserAnalytics(ctx, 30)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, calls, store.calls.Load(), "trong TTL không đọc lại store")

	clock.Advance(2 * time.Second)
	third, err := svc.GetUserAnalytics(ctx, 30)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Greater(t, store.calls.Load(), calls)
}

func TestGetUserAnalytics_DaysAreSeparateCacheEntries(t *testing.T) {
	svc, _ := newTestService(&fakeStore{})

	week, err := svc.GetUserAnalytics(context.Background(), 7)
	require.NoError(t, err)
	month, err := svc.GetUserAnalytics(context.Background(), 30)
	require.NoError(t, err)

	assert.NotSame(t, week, month)
	assert.Equal(t, 2, svc.Cache().Len())
}

func TestReports_RejectInvalidDays(t *testing.T) {
	svc, _ := newTestService(&fakeStore{})
	ctx := context.Background()

	for _, days := range []int{0, -1, analyticsdto.MaxDays + 1} {
		_, err := svc.GetUserAnalytics(ctx, days)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
		_, err = svc.GetSalesAnalytics(ctx, days)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
		_, err = svc.GetMarketplaceAnalytics(ctx, days)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
		_, err = svc.GenerateBusinessReport(ctx, "comprehensive", days)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
		_, err = svc.GetPredictiveAnalytics(ctx, days)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	}
	assert.Equal(t, 0, svc.Cache().Len())
}

func TestGetUserAnalytics_PanicBecomesError(t *testing.T) {
	store := (&fakeStore{}).panicOn("CountUsers")
	svc, _ := newTestService(store)

	report, err := svc.GetUserAnalytics(context.Background(), 30)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Equal(t, common.ErrCodeAnalyticsCompose.Code, common.CodeOf(err))
	assert.Equal(t, common.StatusInternalServerError, common.StatusCodeOf(err))
	assert.Equal(t, 0, svc.Cache().Len(), "báo cáo lỗi không được cache")
}

func TestGetSalesAnalytics_ExpiredContextIsNotCached(t *testing.T) {
	svc, _ := newTestService(newTradingFixture().store)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := svc.GetSalesAnalytics(ctx, 30)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrReportTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, common.StatusGatewayTimeout, common.StatusCodeOf(err))
	assert.Equal(t, 0, svc.Cache().Len())

	report, err := svc.GetSalesAnalytics(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 300.0, report.Summary.TotalRevenue)
}

func TestGetMarketplaceAnalytics_ConcurrentCallers(t *testing.T) {
	svc, _ := newTestService(newTradingFixture().store)

	var wg sync.WaitGroup
	reports := make([]*analyticsdto.MarketplaceReport, 8)
	for i := range reports {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := svc.GetMarketplaceAnalytics(context.Background(), 30)
			assert.NoError(t, err)
			reports[i] = r
		}(i)
	}
	wg.Wait()

	for _, r := range reports {
		require.NotNil(t, r)
		assert.Equal(t, int64(2), r.Summary.ActiveListings)
	}
}

func TestWarmUp_FillsCache(t *testing.T) {
	store := newTradingFixture().store
	svc, _ := newTestService(store)

	require.NoError(t, svc.WarmUp(context.Background(), 30))
	assert.Equal(t, 3, svc.Cache().Len())

	calls := store.calls.Load()
	_, err := svc.GetSalesAnalytics(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, calls, store.calls.Load())
}

func TestWarmUp_RefreshesFreshEntries(t *testing.T) {
	store := newTradingFixture().store
	svc, clock := newTestService(store)
	ctx := context.Background()

	require.NoError(t, svc.WarmUp(ctx, 30))
	first, err := svc.GetUserAnalytics(ctx, 30)
	require.NoError(t, err)

	clock.Advance(4 * time.Minute)
	calls := store.calls.Load()
	require.NoError(t, svc.WarmUp(ctx, 30))
	assert.Greater(t, store.calls.Load(), calls, "entry còn hạn vẫn được tính lại")

	clock.Advance(90 * time.Second)
	calls = store.calls.Load()
	second, err := svc.GetUserAnalytics(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, calls, store.calls.Load(), "hạn tính từ lượt làm nóng thứ hai")
	assert.NotSame(t, first, second)
}

func TestWarmUp_PropagatesError(t *testing.T) {
	svc, _ := newTestService((&fakeStore{}).panicOn("Orders"))

	err := svc.WarmUp(context.Background(), 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ReportSales)
}

func growthStore(previous, current int) *fakeStore {
	store := &fakeStore{}
	store.users = append(store.users, usersCreated(current, 1, 29, "buyer", "Hanoi")...)
	store.users = append(store.users, usersCreated(previous, 31, 59, "seller", "Hanoi")...)
	return store
}

func TestGenerateBusinessReport_StrongGrowthInsight(t *testing.T) {
	svc, _ := newTestService(growthStore(25, 28))

	report, err := svc.GenerateBusinessReport(context.Background(), "comprehensive", 30)
	require.NoError(t, err)

	assert.Equal(t, "report-1", report.ReportID)
	assert.Equal(t, "comprehensive", report.ReportType)
	assert.Equal(t, 30, report.PeriodDays)
	assert.Equal(t, testNow, report.GeneratedAt)
	assert.Equal(t, 12.0, report.ExecutiveSummary.UserGrowthRate)
	assert.Equal(t, int64(53), report.ExecutiveSummary.TotalUsers)

	require.NotEmpty(t, report.KeyInsights)
	assert.True(t, strings.Contains(report.KeyInsights[0], "Strong user growth"), report.KeyInsights[0])

	for _, r := range report.Recommendations {
		assert.NotEqual(t, "User Acquisition", r.Category)
	}

	assert.Equal(t, scoring.HealthScores{UserHealth: 24, RevenueHealth: 0, MarketplaceHealth: 0, OverallHealth: 8}, report.HealthScores)

	require.NotNil(t, report.DetailedAnalytics.UserAnalytics)
	require.NotNil(t, report.DetailedAnalytics.SalesAnalytics)
	require.NotNil(t, report.DetailedAnalytics.MarketplaceAnalytics)
}

func TestGenerateBusinessReport_LowGrowthRecommendation(t *testing.T) {
	svc, _ := newTestService(growthStore(50, 51))

	report, err := svc.GenerateBusinessReport(context.Background(), "comprehensive", 30)
	require.NoError(t, err)

	assert.Equal(t, 2.0, report.ExecutiveSummary.UserGrowthRate)
	require.NotEmpty(t, report.Recommendations)
	first := report.Recommendations[0]
	assert.Equal(t, "User Acquisition", first.Category)
	assert.Equal(t, analyticsdto.PriorityHigh, first.Priority)

	last := report.Recommendations[len(report.Recommendations)-1]
	assert.Equal(t, "Marketplace Growth", last.Category)
}

func TestGenerateBusinessReport_SharesSubReportCache(t *testing.T) {
	store := newTradingFixture().store
	svc, _ := newTestService(store)
	ctx := context.Background()

	sales, err := svc.GetSalesAnalytics(ctx, 30)
	require.NoError(t, err)

	report, err := svc.GenerateBusinessReport(ctx, "financial", 30)
	require.NoError(t, err)
	assert.Same(t, sales, report.DetailedAnalytics.SalesAnalytics)
	assert.Equal(t, 300.0, report.ExecutiveSummary.TotalRevenue)
	assert.Equal(t, int64(2), report.ExecutiveSummary.ActiveListings)

	again, err := svc.GenerateBusinessReport(ctx, "financial", 30)
	require.NoError(t, err)
	assert.Same(t, report, again)
}

func TestGenerateBusinessReport_ReportType(t *testing.T) {
	svc, _ := newTestService(&fakeStore{})
	ctx := context.Background()

	report, err := svc.GenerateBusinessReport(ctx, " Executive ", 30)
	require.NoError(t, err)
	assert.Equal(t, "executive", report.ReportType)

	report, err = svc.GenerateBusinessReport(ctx, "", 30)
	require.NoError(t, err)
	assert.Equal(t, analyticsdto.DefaultReportType, report.ReportType)

	_, err = svc.GenerateBusinessReport(ctx, "quarterly", 30)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestGenerateBusinessReport_SubReportFailure(t *testing.T) {
	svc, _ := newTestService((&fakeStore{}).panicOn("Orders"))

	report, err := svc.GenerateBusinessReport(context.Background(), "comprehensive", 30)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Equal(t, common.ErrCodeAnalyticsCompose.Code, common.CodeOf(err))
}

func TestGetPredictiveAnalytics_SampleHistory(t *testing.T) {
	svc, _ := newTestService(&fakeStore{}, WithHistorySource(SampleHistory{}))

	report, err := svc.GetPredictiveAnalytics(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, 30, report.ForecastPeriodDays)
	assert.Equal(t, HistorySourceSample, report.HistorySource)
	assert.Equal(t, "report-1", report.ReportID)

	assert.Equal(t, scoring.TrendIncreasing, report.RevenueForecast.Trend)
	// slope = (1750-1200)/6
	assert.InDelta(t, 1750+550.0/6*30, report.RevenueForecast.Forecast, 1e-6)
	assert.InDelta(t, 550.0/6, report.RevenueForecast.Slope, 1e-9)
	assert.Len(t, report.RevenueForecast.DailyForecast, 30)

	assert.Equal(t, scoring.TrendGrowing, report.UserGrowthForecast.Trend)
	assert.Equal(t, 122.0, report.UserGrowthForecast.Forecast)

	assert.Equal(t, scoring.TrendSteady, report.ListingVolumeForecast.Trend)
	assert.Equal(t, 450.0, report.ListingVolumeForecast.Forecast)

	assert.Equal(t, analyticsdto.ConfidenceIntervals{Revenue: 0.8, UserGrowth: 0.75, ListingVolume: 0.85}, report.ConfidenceIntervals)
	assert.NotEmpty(t, report.MarketTrends.GrowthDrivers)
}

func TestGetPredictiveAnalytics_HistoryFailureIsInsufficientData(t *testing.T) {
	store := (&fakeStore{}).failOn("Tenders", "Users", "Listings")
	svc, _ := newTestService(store)

	report, err := svc.GetPredictiveAnalytics(context.Background(), 14)
	require.NoError(t, err)

	assert.Equal(t, HistorySourceStore, report.HistorySource)
	for _, f := range []scoring.Forecast{report.RevenueForecast, report.UserGrowthForecast, report.ListingVolumeForecast} {
		assert.Equal(t, scoring.TrendInsufficientData, f.Trend)
		assert.Equal(t, 0.0, f.Forecast)
		assert.Equal(t, 0.0, f.Confidence)
	}
}

func TestTimeoutError(t *testing.T) {
	err := timeoutError(context.DeadlineExceeded)
	assert.ErrorIs(t, err, common.ErrReportTimeout)

	err = timeoutError(context.Canceled)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, common.ErrCodeAnalyticsCompose.Code, common.CodeOf(err))
}
