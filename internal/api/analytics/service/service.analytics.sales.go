package analyticssvc

import (
	"context"
	"sort"

	analyticsdto "marketplace_analytics/internal/api/analytics/dto"
	analyticsmodels "marketplace_analytics/internal/api/analytics/models"
	"marketplace_analytics/internal/api/analytics/scoring"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Giới hạn top trong product performance
const (
	topCategoriesLimit = 5
	topListingsLimit   = 5
)

// composeSalesReport chạy lần lượt các extractor của báo cáo sales
func (s *AnalyticsService) composeSalesReport(ctx context.Context, days int) *analyticsdto.SalesReport {
	p := s.period(days)

	report := &analyticsdto.SalesReport{
		Period: p,
		Revenue: extract(ctx, s, "revenue", func(ctx context.Context) (analyticsdto.Revenue, error) {
			return s.revenue(ctx, p)
		}),
		Transactions: extract(ctx, s, "transactions", func(ctx context.Context) (analyticsdto.Transactions, error) {
			return s.transactions(ctx, p)
		}),
		ProductPerformance: extract(ctx, s, "product_performance", func(ctx context.Context) (analyticsdto.ProductPerformance, error) {
			return s.productPerformance(ctx, p)
		}),
		SalesTrends: extract(ctx, s, "sales_trends", func(ctx context.Context) (analyticsdto.SalesTrends, error) {
			return s.salesTrends(ctx, p)
		}),
		ConversionMetrics: extract(ctx, s, "conversion", func(ctx context.Context) (analyticsdto.ConversionMetrics, error) {
			return s.conversion(ctx, p)
		}),
	}

	revenue := report.Revenue.OrZero()
	report.Summary = analyticsdto.SalesSummary{
		TotalRevenue:        revenue.TotalRevenue,
		TotalTransactions:   report.Transactions.OrZero().TotalTransactions,
		AvgTransactionValue: revenue.AvgTransactionValue,
		ConversionRate:      report.ConversionMetrics.OrZero().OverallConversionRate,
	}
	return report
}

// categoryIndex tra danh mục của các listing được tender tham chiếu
func (s *AnalyticsService) categoryIndex(ctx context.Context, tenders []analyticsmodels.Tender) (map[primitive.ObjectID]string, error) {
	seen := map[primitive.ObjectID]struct{}{}
	ids := make([]primitive.ObjectID, 0, len(tenders))
	for _, t := range tenders {
		if _, ok := seen[t.ListingID]; ok {
			continue
		}
		seen[t.ListingID] = struct{}{}
		ids = append(ids, t.ListingID)
	}

	listings, err := s.store.ListingsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	index := make(map[primitive.ObjectID]string, len(listings))
	for _, l := range listings {
		index[l.ID] = l.CategoryOrDefault()
	}
	return index, nil
}

func categoryOf(index map[primitive.ObjectID]string, listingID primitive.ObjectID) string {
	if c, ok := index[listingID]; ok {
		return c
	}
	return analyticsmodels.CategoryUncategorized
}

// revenue = tổng offer_amount của tender accepted trong cửa sổ; avg chia cho max(count, 1)
func (s *AnalyticsService) revenue(ctx context.Context, p analyticsdto.Period) (analyticsdto.Revenue, error) {
	accepted, err := s.store.Tenders(ctx, windowOf(p), analyticsmodels.TenderStatusAccepted)
	if err != nil {
		return analyticsdto.Revenue{}, err
	}
	index, err := s.categoryIndex(ctx, accepted)
	if err != nil {
		return analyticsdto.Revenue{}, err
	}

	var total float64
	daily := map[string]float64{}
	byCategory := map[string]float64{}
	for _, t := range accepted {
		total += t.OfferAmount
		daily[t.CreatedAt.UTC().Format(analyticsdto.DayFormat)] += t.OfferAmount
		byCategory[categoryOf(index, t.ListingID)] += t.OfferAmount
	}
	for c, v := range byCategory {
		byCategory[c] = scoring.Round(v, 2)
	}

	count := int64(len(accepted))
	return analyticsdto.Revenue{
		TotalRevenue:        scoring.Round(total, 2),
		TransactionCount:    count,
		AvgTransactionValue: scoring.Round(total/float64(max(count, 1)), 2),
		DailyRevenue:        dailyAmounts(daily),
		RevenueByCategory:   byCategory,
	}, nil
}

// transactions: total = tender accepted + order approved
func (s *AnalyticsService) transactions(ctx context.Context, p analyticsdto.Period) (analyticsdto.Transactions, error) {
	w := windowOf(p)
	tenders, err := s.store.Tenders(ctx, w, "")
	if err != nil {
		return analyticsdto.Transactions{}, err
	}
	orders, err := s.store.Orders(ctx, w)
	if err != nil {
		return analyticsdto.Transactions{}, err
	}

	var out analyticsdto.Transactions
	for _, t := range tenders {
		switch t.Status {
		case analyticsmodels.TenderStatusAccepted:
			out.AcceptedTenders++
		case analyticsmodels.TenderStatusPending:
			out.PendingTenders++
		case analyticsmodels.TenderStatusRejected:
			out.RejectedTenders++
		}
	}
	for _, o := range orders {
		if o.Status == analyticsmodels.OrderStatusApproved {
			out.ApprovedOrders++
		}
	}

	out.TotalTransactions = out.AcceptedTenders + out.ApprovedOrders
	out.AcceptanceRate = scoring.Round(scoring.Percent(out.AcceptedTenders, int64(len(tenders))), 2)
	return out, nil
}

// productPerformance top danh mục theo doanh thu trong cửa sổ và top tin theo lượt xem
func (s *AnalyticsService) productPerformance(ctx context.Context, p analyticsdto.Period) (analyticsdto.ProductPerformance, error) {
	accepted, err := s.store.Tenders(ctx, windowOf(p), analyticsmodels.TenderStatusAccepted)
	if err != nil {
		return analyticsdto.ProductPerformance{}, err
	}
	index, err := s.categoryIndex(ctx, accepted)
	if err != nil {
		return analyticsdto.ProductPerformance{}, err
	}

	byCategory := map[string]*analyticsdto.CategoryRevenue{}
	for _, t := range accepted {
		c := categoryOf(index, t.ListingID)
		entry, ok := byCategory[c]
		if !ok {
			entry = &analyticsdto.CategoryRevenue{Category: c}
			byCategory[c] = entry
		}
		entry.Revenue += t.OfferAmount
		entry.Transactions++
	}

	categories := make([]analyticsdto.CategoryRevenue, 0, len(byCategory))
	for _, c := range byCategory {
		c.Revenue = scoring.Round(c.Revenue, 2)
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Revenue != categories[j].Revenue {
			return categories[i].Revenue > categories[j].Revenue
		}
		return categories[i].Category < categories[j].Category
	})
	if len(categories) > topCategoriesLimit {
		categories = categories[:topCategoriesLimit]
	}

	listings, err := s.store.TopListingsByViews(ctx, topListingsLimit)
	if err != nil {
		return analyticsdto.ProductPerformance{}, err
	}
	top := make([]analyticsdto.ListingViews, 0, len(listings))
	for _, l := range listings {
		top = append(top, analyticsdto.ListingViews{
			ListingID: l.ID.Hex(),
			Title:     l.Title,
			Category:  l.CategoryOrDefault(),
			Views:     l.Views,
		})
	}

	return analyticsdto.ProductPerformance{TopCategories: categories, TopListings: top}, nil
}

// salesTrends so sánh doanh thu nửa đầu và nửa sau cửa sổ; nửa đầu = 0 thì change = 0
func (s *AnalyticsService) salesTrends(ctx context.Context, p analyticsdto.Period) (analyticsdto.SalesTrends, error) {
	accepted, err := s.store.Tenders(ctx, windowOf(p), analyticsmodels.TenderStatusAccepted)
	if err != nil {
		return analyticsdto.SalesTrends{}, err
	}

	mid := p.StartDate.Add(p.EndDate.Sub(p.StartDate) / 2)
	var firstHalf, secondHalf float64
	daily := map[string]float64{}
	for _, t := range accepted {
		daily[t.CreatedAt.UTC().Format(analyticsdto.DayFormat)] += t.OfferAmount
		if t.CreatedAt.Before(mid) {
			firstHalf += t.OfferAmount
		} else {
			secondHalf += t.OfferAmount
		}
	}

	change := scoring.Ratio(secondHalf-firstHalf, firstHalf) * 100
	direction := scoring.TrendStable
	switch {
	case secondHalf > firstHalf:
		direction = scoring.TrendIncreasing
	case secondHalf < firstHalf:
		direction = scoring.TrendDecreasing
	}

	return analyticsdto.SalesTrends{
		DailyRevenue:     dailyAmounts(daily),
		TrendDirection:   direction,
		RevenueChangePct: scoring.Round(change, 2),
	}, nil
}

// conversion = sold / max(total, 1) * 100 trên các tin tạo trong cửa sổ
func (s *AnalyticsService) conversion(ctx context.Context, p analyticsdto.Period) (analyticsdto.ConversionMetrics, error) {
	listings, err := s.store.Listings(ctx, windowOf(p))
	if err != nil {
		return analyticsdto.ConversionMetrics{}, err
	}

	var sold int64
	for _, l := range listings {
		if l.Status == analyticsmodels.ListingStatusSold {
			sold++
		}
	}

	total := int64(len(listings))
	return analyticsdto.ConversionMetrics{
		OverallConversionRate: scoring.Round(scoring.Percent(sold, total), 2),
		TotalListings:         total,
		ConvertedListings:     sold,
	}, nil
}
