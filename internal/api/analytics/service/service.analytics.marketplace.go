package analyticssvc

import (
	"context"

	analyticsdto "marketplace_analytics/internal/api/analytics/dto"
	analyticsmodels "marketplace_analytics/internal/api/analytics/models"
	"marketplace_analytics/internal/api/analytics/scoring"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// composeMarketplaceReport chạy lần lượt các extractor của báo cáo marketplace
func (s *AnalyticsService) composeMarketplaceReport(ctx context.Context, days int) *analyticsdto.MarketplaceReport {
	p := s.period(days)

	report := &analyticsdto.MarketplaceReport{
		Period: p,
		Listings: extract(ctx, s, "listings", func(ctx context.Context) (analyticsdto.ListingMetrics, error) {
			return s.listingMetrics(ctx, p)
		}),
		Categories: extract(ctx, s, "categories", func(ctx context.Context) (analyticsdto.CategoryMetrics, error) {
			return s.categories(ctx, p)
		}),
		Search: extract(ctx, s, "search", func(ctx context.Context) (analyticsdto.SearchMetrics, error) {
			return s.search(ctx, p)
		}),
		UserBehavior: extract(ctx, s, "user_behavior", func(ctx context.Context) (analyticsdto.UserBehavior, error) {
			return s.userBehavior(ctx, p)
		}),
		PlatformHealth: extract(ctx, s, "platform_health", s.platformHealth),
	}

	listings := report.Listings.OrZero()
	report.Summary = analyticsdto.MarketplaceSummary{
		ActiveListings: listings.TotalActiveListings,
		NewListings:    listings.NewListings,
		SuccessRate:    listings.SuccessRate,
		TopCategory:    report.Categories.OrZero().TopCategory,
		TotalViews:     report.Search.OrZero().TotalViews,
	}
	return report
}

// listingMetrics: active và sold là trạng thái hiện tại của toàn bộ tin, new là tin tạo trong cửa sổ.
// success_rate = sold / max(active + sold, 1) * 100
func (s *AnalyticsService) listingMetrics(ctx context.Context, p analyticsdto.Period) (analyticsdto.ListingMetrics, error) {
	active, err := s.store.CountListings(ctx, analyticsmodels.ListingStatusActive)
	if err != nil {
		return analyticsdto.ListingMetrics{}, err
	}
	sold, err := s.store.CountListings(ctx, analyticsmodels.ListingStatusSold)
	if err != nil {
		return analyticsdto.ListingMetrics{}, err
	}
	created, err := s.store.Listings(ctx, windowOf(p))
	if err != nil {
		return analyticsdto.ListingMetrics{}, err
	}

	return analyticsdto.ListingMetrics{
		TotalActiveListings: active,
		NewListings:         int64(len(created)),
		SuccessRate:         scoring.Round(scoring.Percent(sold, active+sold), 2),
		SoldListings:        sold,
	}, nil
}

// categories phân bố tin mới theo danh mục; hòa thì lấy tên nhỏ hơn theo alphabet
func (s *AnalyticsService) categories(ctx context.Context, p analyticsdto.Period) (analyticsdto.CategoryMetrics, error) {
	listings, err := s.store.Listings(ctx, windowOf(p))
	if err != nil {
		return analyticsdto.CategoryMetrics{}, err
	}

	dist := map[string]int64{}
	for _, l := range listings {
		dist[l.CategoryOrDefault()]++
	}

	top := ""
	var topCount int64
	for c, n := range dist {
		if n > topCount || (n == topCount && c < top) {
			top, topCount = c, n
		}
	}

	return analyticsdto.CategoryMetrics{
		CategoryDistribution: dist,
		TopCategory:          top,
		TotalCategories:      len(dist),
	}, nil
}

// search dùng lượt xem của tin mới làm chỉ số tìm kiếm
func (s *AnalyticsService) search(ctx context.Context, p analyticsdto.Period) (analyticsdto.SearchMetrics, error) {
	listings, err := s.store.Listings(ctx, windowOf(p))
	if err != nil {
		return analyticsdto.SearchMetrics{}, err
	}

	var views, zero int64
	for _, l := range listings {
		views += l.Views
		if l.Views == 0 {
			zero++
		}
	}

	return analyticsdto.SearchMetrics{
		TotalViews:         views,
		AvgViewsPerListing: scoring.Round(float64(views)/float64(max(len(listings), 1)), 2),
		ZeroViewListings:   zero,
	}, nil
}

// userBehavior người bán / người trả giá riêng biệt trong cửa sổ
func (s *AnalyticsService) userBehavior(ctx context.Context, p analyticsdto.Period) (analyticsdto.UserBehavior, error) {
	w := windowOf(p)
	listings, err := s.store.Listings(ctx, w)
	if err != nil {
		return analyticsdto.UserBehavior{}, err
	}
	tenders, err := s.store.Tenders(ctx, w, "")
	if err != nil {
		return analyticsdto.UserBehavior{}, err
	}
	messages, err := s.store.Messages(ctx, w)
	if err != nil {
		return analyticsdto.UserBehavior{}, err
	}

	sellers := map[primitive.ObjectID]struct{}{}
	for _, l := range listings {
		sellers[l.UserID] = struct{}{}
	}
	bidders := map[primitive.ObjectID]struct{}{}
	for _, t := range tenders {
		bidders[t.UserID] = struct{}{}
	}

	return analyticsdto.UserBehavior{
		UniqueSellers:        int64(len(sellers)),
		UniqueBidders:        int64(len(bidders)),
		AvgListingsPerSeller: scoring.Round(float64(len(listings))/float64(max(len(sellers), 1)), 2),
		AvgTendersPerListing: scoring.Round(float64(len(tenders))/float64(max(len(listings), 1)), 2),
		MessagesSent:         int64(len(messages)),
	}, nil
}

// platformHealth số liệu toàn nền tảng; healthy khi còn ít nhất một tin active
func (s *AnalyticsService) platformHealth(ctx context.Context) (analyticsdto.PlatformHealth, error) {
	var out analyticsdto.PlatformHealth
	var err error

	if out.TotalUsers, err = s.store.CountUsers(ctx); err != nil {
		return out, err
	}
	if out.BlockedUsers, err = s.store.CountBlockedUsers(ctx); err != nil {
		return out, err
	}
	if out.TotalListings, err = s.store.CountListings(ctx, ""); err != nil {
		return out, err
	}
	active, err := s.store.CountListings(ctx, analyticsmodels.ListingStatusActive)
	if err != nil {
		return out, err
	}
	if out.PendingTenders, err = s.store.CountTenders(ctx, analyticsmodels.TenderStatusPending); err != nil {
		return out, err
	}

	out.ActiveListingRatio = scoring.Round(scoring.Percent(active, out.TotalListings), 2)
	out.Status = analyticsdto.PlatformStatusIdle
	if active > 0 {
		out.Status = analyticsdto.PlatformStatusHealthy
	}
	return out, nil
}
