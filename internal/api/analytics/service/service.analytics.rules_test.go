package analyticssvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsdto "marketplace_analytics/internal/api/analytics/dto"
)

func TestEvaluateInsights(t *testing.T) {
	tests := []struct {
		name string
		in   ruleInput
		want []string
	}{
		{name: "không vượt ngưỡng nào", in: ruleInput{GrowthRate: 10, AvgTransactionValue: 100, ActiveListings: 50}, want: nil},
		{name: "tăng trưởng mạnh", in: ruleInput{GrowthRate: 12}, want: []string{"Strong user growth"}},
		{name: "giao dịch giá trị cao", in: ruleInput{AvgTransactionValue: 150}, want: []string{"High-value transactions"}},
		{name: "chợ sôi động", in: ruleInput{ActiveListings: 51}, want: []string{"Active marketplace"}},
		{
			name: "đủ năm insight theo thứ tự",
			in:   ruleInput{GrowthRate: 20, AvgTransactionValue: 120, ActiveListings: 80, EngagementScore: 60, RetentionRate: 45},
			want: []string{"Strong user growth", "High-value transactions", "Active marketplace", "Highly engaged", "Healthy retention"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluateInsights(insightRules, tt.in)
			require.NotNil(t, got)
			require.Len(t, got, len(tt.want))
			for i, prefix := range tt.want {
				assert.Contains(t, got[i], prefix)
			}
		})
	}
}

func categories(recs []analyticsdto.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Category)
	}
	return out
}

func TestEvaluateRecommendations(t *testing.T) {
	healthy := ruleInput{GrowthRate: 15, ConversionRate: 30, AvgTransactionValue: 80, EngagementScore: 40}
	assert.Equal(t, []string{"Marketplace Growth"}, categories(evaluateRecommendations(recommendationRules, healthy)))

	weak := ruleInput{GrowthRate: 2, ConversionRate: 0.01, AvgTransactionValue: 10, EngagementScore: 5}
	recs := evaluateRecommendations(recommendationRules, weak)
	assert.Equal(t, []string{
		"User Acquisition",
		"Conversion Optimization",
		"Revenue Optimization",
		"User Engagement",
		"Marketplace Growth",
	}, categories(recs))
	assert.Equal(t, analyticsdto.PriorityHigh, recs[0].Priority)
	assert.Equal(t, analyticsdto.PriorityLow, recs[3].Priority)

	for _, r := range recs {
		assert.NotEmpty(t, r.Recommendation)
		assert.NotEmpty(t, r.ExpectedImpact)
	}
}

func TestEvaluateRecommendations_ConversionThresholdIsPercentScale(t *testing.T) {
	recs := evaluateRecommendations(recommendationRules, ruleInput{GrowthRate: 15, ConversionRate: 0.05, AvgTransactionValue: 80, EngagementScore: 40})
	assert.NotContains(t, categories(recs), "Conversion Optimization")

	recs = evaluateRecommendations(recommendationRules, ruleInput{GrowthRate: 15, ConversionRate: 0.04, AvgTransactionValue: 80, EngagementScore: 40})
	assert.Contains(t, categories(recs), "Conversion Optimization")
}
