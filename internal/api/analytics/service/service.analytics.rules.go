package analyticssvc

import (
	"fmt"

	analyticsdto "marketplace_analytics/internal/api/analytics/dto"
)

// ruleInput các số liệu mà rule insight / khuyến nghị được phép đọc
type ruleInput struct {
	GrowthRate          float64
	AvgTransactionValue float64
	ActiveListings      int64
	EngagementScore     float64
	RetentionRate       float64
	// ConversionRate theo thang phần trăm (0-100)
	ConversionRate float64
}

// insightRule thêm text khi when đúng
type insightRule struct {
	when func(in ruleInput) bool
	text func(in ruleInput) string
}

// recommendationRule thêm khuyến nghị khi when đúng; when nil = luôn thêm
type recommendationRule struct {
	when  func(in ruleInput) bool
	build analyticsdto.Recommendation
}

// Ngưỡng của các rule
const (
	strongGrowthRate      = 10
	highValueTransaction  = 100
	activeMarketplaceSize = 50
	highEngagementScore   = 50
	healthyRetentionRate  = 40

	lowGrowthRate       = 5
	lowConversionRate   = 0.05
	lowTransactionValue = 50
	lowEngagementScore  = 20
)

// insightRules đánh giá theo thứ tự, thứ tự output giữ nguyên thứ tự khai báo
var insightRules = []insightRule{
	{
		when: func(in ruleInput) bool { return in.GrowthRate > strongGrowthRate },
		text: func(in ruleInput) string {
			return fmt.Sprintf("Strong user growth of %.1f%% compared to the previous period", in.GrowthRate)
		},
	},
	{
		when: func(in ruleInput) bool { return in.AvgTransactionValue > highValueTransaction },
		text: func(in ruleInput) string {
			return fmt.Sprintf("High-value transactions with an average of %.2f per transaction", in.AvgTransactionValue)
		},
	},
	{
		when: func(in ruleInput) bool { return in.ActiveListings > activeMarketplaceSize },
		text: func(in ruleInput) string {
			return fmt.Sprintf("Active marketplace with %d active listings", in.ActiveListings)
		},
	},
	{
		when: func(in ruleInput) bool { return in.EngagementScore > highEngagementScore },
		text: func(in ruleInput) string {
			return fmt.Sprintf("Highly engaged user base with an engagement score of %.1f", in.EngagementScore)
		},
	},
	{
		when: func(in ruleInput) bool { return in.RetentionRate > healthyRetentionRate },
		text: func(in ruleInput) string {
			return fmt.Sprintf("Healthy retention: %.1f%% of the previous cohort stayed active", in.RetentionRate)
		},
	},
}

var recommendationRules = []recommendationRule{
	{
		when: func(in ruleInput) bool { return in.GrowthRate < lowGrowthRate },
		build: analyticsdto.Recommendation{
			Category:       "User Acquisition",
			Priority:       analyticsdto.PriorityHigh,
			Recommendation: "Invest in referral programs and targeted marketing campaigns to attract new users",
			ExpectedImpact: "Increase user growth rate by 15-25%",
		},
	},
	{
		when: func(in ruleInput) bool { return in.ConversionRate < lowConversionRate },
		build: analyticsdto.Recommendation{
			Category:       "Conversion Optimization",
			Priority:       analyticsdto.PriorityMedium,
			Recommendation: "Improve listing quality guidelines and simplify the tender acceptance flow",
			ExpectedImpact: "Improve listing conversion rate by 10-20%",
		},
	},
	{
		when: func(in ruleInput) bool { return in.AvgTransactionValue < lowTransactionValue },
		build: analyticsdto.Recommendation{
			Category:       "Revenue Optimization",
			Priority:       analyticsdto.PriorityMedium,
			Recommendation: "Promote premium listings and bundle offers to raise the average transaction value",
			ExpectedImpact: "Increase average transaction value by 10-15%",
		},
	},
	{
		when: func(in ruleInput) bool { return in.EngagementScore < lowEngagementScore },
		build: analyticsdto.Recommendation{
			Category:       "User Engagement",
			Priority:       analyticsdto.PriorityLow,
			Recommendation: "Send personalized listing alerts and encourage buyers to message sellers",
			ExpectedImpact: "Raise engagement score by 5-10 points",
		},
	},
	{
		build: analyticsdto.Recommendation{
			Category:       "Marketplace Growth",
			Priority:       analyticsdto.PriorityMedium,
			Recommendation: "Expand into underrepresented categories and locations based on demand data",
			ExpectedImpact: "Grow active listings and total revenue over the next quarter",
		},
	},
}

// evaluateInsights chạy toàn bộ insightRules, luôn trả slice khác nil
func evaluateInsights(rules []insightRule, in ruleInput) []string {
	out := []string{}
	for _, r := range rules {
		if r.when(in) {
			out = append(out, r.text(in))
		}
	}
	return out
}

// evaluateRecommendations chạy toàn bộ recommendationRules, luôn trả slice khác nil
func evaluateRecommendations(rules []recommendationRule, in ruleInput) []analyticsdto.Recommendation {
	out := []analyticsdto.Recommendation{}
	for _, r := range rules {
		if r.when == nil || r.when(in) {
			out = append(out, r.build)
		}
	}
	return out
}
