package analyticssvc

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	analyticsdto "marketplace_analytics/internal/api/analytics/dto"
	"marketplace_analytics/internal/api/analytics/scoring"
	"marketplace_analytics/internal/common"
	"marketplace_analytics/internal/global"
)

// normalizeReportType chuẩn hóa type (rỗng = comprehensive) và kiểm tra thuộc global.ReportTypes
func normalizeReportType(reportType string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(reportType))
	if t == "" {
		return analyticsdto.DefaultReportType, nil
	}
	if !slices.Contains(global.ReportTypes, t) {
		return "", fmt.Errorf("report type %q không hợp lệ: %w", reportType, common.ErrInvalidInput)
	}
	return t, nil
}

// GenerateBusinessReport báo cáo tổng hợp. Ba báo cáo con chạy song song và dùng chung cache
// với các endpoint riêng; type chỉ là nhãn, mọi type có cùng nội dung.
func (s *AnalyticsService) GenerateBusinessReport(ctx context.Context, reportType string, days int) (*analyticsdto.BusinessReport, error) {
	if err := validateDays(days); err != nil {
		return nil, err
	}
	t, err := normalizeReportType(reportType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s_%s_%d", ReportBusiness, t, days)
	return cached(ctx, s, ReportBusiness, key, false, func(ctx context.Context) (*analyticsdto.BusinessReport, error) {
		return s.composeBusinessReport(ctx, t, days)
	})
}

func (s *AnalyticsService) composeBusinessReport(ctx context.Context, reportType string, days int) (*analyticsdto.BusinessReport, error) {
	var (
		users       *analyticsdto.UserReport
		sales       *analyticsdto.SalesReport
		marketplace *analyticsdto.MarketplaceReport
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.GetUserAnalytics(gctx, days)
		return err
	})
	g.Go(func() (err error) {
		sales, err = s.GetSalesAnalytics(gctx, days)
		return err
	})
	g.Go(func() (err error) {
		marketplace, err = s.GetMarketplaceAnalytics(gctx, days)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := analyticsdto.ExecutiveSummary{
		TotalUsers:          users.Summary.TotalUsers,
		NewUsers:            users.Summary.NewUsers,
		UserGrowthRate:      users.Summary.GrowthRate,
		EngagementScore:     users.Summary.EngagementScore,
		TotalRevenue:        sales.Summary.TotalRevenue,
		TotalTransactions:   sales.Summary.TotalTransactions,
		AvgTransactionValue: sales.Summary.AvgTransactionValue,
		ConversionRate:      sales.Summary.ConversionRate,
		ActiveListings:      marketplace.Summary.ActiveListings,
	}
	in := ruleInput{
		GrowthRate:          summary.UserGrowthRate,
		AvgTransactionValue: summary.AvgTransactionValue,
		ActiveListings:      summary.ActiveListings,
		EngagementScore:     summary.EngagementScore,
		RetentionRate:       users.Summary.RetentionRate,
		ConversionRate:      summary.ConversionRate,
	}

	return &analyticsdto.BusinessReport{
		ReportID:         s.newID(),
		ReportType:       reportType,
		GeneratedAt:      s.now().UTC(),
		PeriodDays:       days,
		ExecutiveSummary: summary,
		DetailedAnalytics: analyticsdto.DetailedAnalytics{
			UserAnalytics:        users,
			SalesAnalytics:       sales,
			MarketplaceAnalytics: marketplace,
		},
		KeyInsights:     evaluateInsights(insightRules, in),
		Recommendations: evaluateRecommendations(recommendationRules, in),
		HealthScores: scoring.ComputeHealthScores(scoring.HealthInputs{
			GrowthRate:          summary.UserGrowthRate,
			AvgTransactionValue: summary.AvgTransactionValue,
			ActiveListings:      summary.ActiveListings,
		}),
	}, nil
}
