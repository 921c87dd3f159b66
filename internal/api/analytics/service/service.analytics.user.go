package analyticssvc

import (
	"context"
	"fmt"
	"sort"

	analyticsdto "marketplace_analytics/internal/api/analytics/dto"
	analyticsmodels "marketplace_analytics/internal/api/analytics/models"
	"marketplace_analytics/internal/api/analytics/scoring"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// topLocationsLimit số địa điểm trong top_locations
const topLocationsLimit = 5

// composeUserReport chạy lần lượt các extractor của báo cáo user
func (s *AnalyticsService) composeUserReport(ctx context.Context, days int) *analyticsdto.UserReport {
	p := s.period(days)

	total := extract(ctx, s, "total_users", s.store.CountUsers)
	totalUsers := total.OrZero()

	report := &analyticsdto.UserReport{
		Period: p,
		UserRegistrations: extract(ctx, s, "registrations", func(ctx context.Context) (analyticsdto.UserRegistrations, error) {
			return s.registrations(ctx, p)
		}),
		UserActivity: extract(ctx, s, "activity", func(ctx context.Context) (analyticsdto.UserActivity, error) {
			if !total.Ok() {
				return analyticsdto.UserActivity{}, fmt.Errorf("activity cần total_users: %w", total.Err)
			}
			return s.activity(ctx, p, totalUsers)
		}),
		EngagementMetrics: extract(ctx, s, "engagement", func(ctx context.Context) (analyticsdto.EngagementMetrics, error) {
			if !total.Ok() {
				return analyticsdto.EngagementMetrics{}, fmt.Errorf("engagement cần total_users: %w", total.Err)
			}
			return s.engagement(ctx, p, totalUsers)
		}),
		RetentionAnalysis: extract(ctx, s, "retention", func(ctx context.Context) (analyticsdto.RetentionAnalysis, error) {
			return s.retention(ctx, p)
		}),
		GeographicDistribution: extract(ctx, s, "geographic_distribution", s.geographicDistribution),
	}

	newUsers := report.UserRegistrations.OrZero().TotalNewUsers
	report.Summary = analyticsdto.UserSummary{
		// total_users lỗi thì lấy cận dưới là số user mới
		TotalUsers:      max(totalUsers, newUsers),
		NewUsers:        newUsers,
		ActiveUsers:     report.UserActivity.OrZero().TotalActiveUsers,
		GrowthRate:      report.UserRegistrations.OrZero().GrowthRate,
		EngagementScore: report.EngagementMetrics.OrZero().EngagementScore,
		RetentionRate:   report.RetentionAnalysis.OrZero().RetentionRate,
	}
	return report
}

// registrations: growth = (cur - prev) / prev * 100, 0 khi prev == 0
func (s *AnalyticsService) registrations(ctx context.Context, p analyticsdto.Period) (analyticsdto.UserRegistrations, error) {
	users, err := s.store.Users(ctx, windowOf(p))
	if err != nil {
		return analyticsdto.UserRegistrations{}, err
	}
	previous, err := s.store.Users(ctx, windowOf(p.Previous()))
	if err != nil {
		return analyticsdto.UserRegistrations{}, err
	}

	daily := map[string]int64{}
	byRole := map[string]int64{}
	for _, u := range users {
		daily[u.CreatedAt.UTC().Format(analyticsdto.DayFormat)]++
		byRole[u.RoleOrDefault()]++
	}

	cur, prev := int64(len(users)), int64(len(previous))
	growth := scoring.Ratio(float64(cur-prev), float64(prev)) * 100

	return analyticsdto.UserRegistrations{
		DailyRegistrations:  dailyCounts(daily),
		TotalNewUsers:       cur,
		RegistrationsByRole: byRole,
		GrowthRate:          scoring.Round(growth, 2),
		PreviousPeriodUsers: prev,
	}, nil
}

// activity: "active" = tạo trong cửa sổ; activity_rate = active / max(total, 1) * 100
func (s *AnalyticsService) activity(ctx context.Context, p analyticsdto.Period, totalUsers int64) (analyticsdto.UserActivity, error) {
	users, err := s.store.Users(ctx, windowOf(p))
	if err != nil {
		return analyticsdto.UserActivity{}, err
	}

	ids := make([]string, 0, len(users))
	byRole := map[string]int64{}
	for _, u := range users {
		ids = append(ids, u.ID.Hex())
		byRole[u.RoleOrDefault()]++
	}

	active := int64(len(users))
	return analyticsdto.UserActivity{
		ActiveUserIDs:    ids,
		TotalActiveUsers: active,
		ActivityByRole:   byRole,
		ActivityRate:     scoring.Round(scoring.Percent(active, totalUsers), 2),
	}, nil
}

// engagement: các tỉ lệ per_user chia cho max(total_users, 1)
func (s *AnalyticsService) engagement(ctx context.Context, p analyticsdto.Period, totalUsers int64) (analyticsdto.EngagementMetrics, error) {
	w := windowOf(p)
	listings, err := s.store.Listings(ctx, w)
	if err != nil {
		return analyticsdto.EngagementMetrics{}, err
	}
	tenders, err := s.store.Tenders(ctx, w, "")
	if err != nil {
		return analyticsdto.EngagementMetrics{}, err
	}
	messages, err := s.store.Messages(ctx, w)
	if err != nil {
		return analyticsdto.EngagementMetrics{}, err
	}

	l, t, m := int64(len(listings)), int64(len(tenders)), int64(len(messages))
	den := float64(max(totalUsers, 1))

	return analyticsdto.EngagementMetrics{
		ListingsPerUser:  scoring.Round(float64(l)/den, 2),
		TendersPerUser:   scoring.Round(float64(t)/den, 2),
		MessagesPerUser:  scoring.Round(float64(m)/den, 2),
		TotalEngagements: l + t + m,
		EngagementScore:  scoring.Round(scoring.EngagementScore(l, t, m, totalUsers), 2),
	}, nil
}

// retention: cohort = user đăng ký ở cửa sổ liền trước; retained = cohort có đăng tin,
// trả giá hoặc nhắn tin trong cửa sổ hiện tại
func (s *AnalyticsService) retention(ctx context.Context, p analyticsdto.Period) (analyticsdto.RetentionAnalysis, error) {
	cohort, err := s.store.Users(ctx, windowOf(p.Previous()))
	if err != nil {
		return analyticsdto.RetentionAnalysis{}, err
	}
	if len(cohort) == 0 {
		return analyticsdto.RetentionAnalysis{}, nil
	}

	w := windowOf(p)
	listings, err := s.store.Listings(ctx, w)
	if err != nil {
		return analyticsdto.RetentionAnalysis{}, err
	}
	tenders, err := s.store.Tenders(ctx, w, "")
	if err != nil {
		return analyticsdto.RetentionAnalysis{}, err
	}
	messages, err := s.store.Messages(ctx, w)
	if err != nil {
		return analyticsdto.RetentionAnalysis{}, err
	}

	active := map[primitive.ObjectID]struct{}{}
	for _, l := range listings {
		active[l.UserID] = struct{}{}
	}
	for _, t := range tenders {
		active[t.UserID] = struct{}{}
	}
	for _, m := range messages {
		active[m.SenderID] = struct{}{}
	}

	var retained int64
	for _, u := range cohort {
		if _, ok := active[u.ID]; ok {
			retained++
		}
	}

	size := int64(len(cohort))
	return analyticsdto.RetentionAnalysis{
		CohortSize:    size,
		RetainedUsers: retained,
		RetentionRate: scoring.Round(scoring.Percent(retained, size), 2),
	}, nil
}

// geographicDistribution phân bố toàn bộ user theo location; thiếu location tính là unknown
func (s *AnalyticsService) geographicDistribution(ctx context.Context) (analyticsdto.GeographicDistribution, error) {
	counts, err := s.store.UserLocationCounts(ctx)
	if err != nil {
		return analyticsdto.GeographicDistribution{}, err
	}

	byLocation := make(map[string]int64, len(counts))
	for loc, n := range counts {
		if loc == "" {
			loc = analyticsmodels.LocationUnknown
		}
		byLocation[loc] += n
	}

	top := make([]analyticsdto.LocationCount, 0, len(byLocation))
	for loc, n := range byLocation {
		top = append(top, analyticsdto.LocationCount{Location: loc, Users: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Users != top[j].Users {
			return top[i].Users > top[j].Users
		}
		return top[i].Location < top[j].Location
	})
	if len(top) > topLocationsLimit {
		top = top[:topLocationsLimit]
	}

	return analyticsdto.GeographicDistribution{
		UsersByLocation: byLocation,
		TopLocations:    top,
		TotalLocations:  len(byLocation),
	}, nil
}

// dailyCounts chuyển map ngày → số lượng thành chuỗi sắp xếp theo ngày
func dailyCounts(m map[string]int64) []analyticsdto.DailyCount {
	out := make([]analyticsdto.DailyCount, 0, len(m))
	for day, n := range m {
		out = append(out, analyticsdto.DailyCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// dailyAmounts chuyển map ngày → số tiền thành chuỗi sắp xếp theo ngày
func dailyAmounts(m map[string]float64) []analyticsdto.DailyAmount {
	out := make([]analyticsdto.DailyAmount, 0, len(m))
	for day, v := range m {
		out = append(out, analyticsdto.DailyAmount{Date: day, Amount: scoring.Round(v, 2)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
