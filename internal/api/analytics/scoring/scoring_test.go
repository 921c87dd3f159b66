package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngagementScore(t *testing.T) {
	tests := []struct {
		name                               string
		listings, tenders, messages, users int64
		want                               float64
	}{
		{"không có user", 10, 10, 10, 0, 0},
		{"user âm", 10, 10, 10, -3, 0},
		{"cơ bản", 1, 1, 1, 10, 6},
		{"chạm trần", 100, 100, 100, 1, 100},
		{"số âm coi như 0", -5, 0, 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EngagementScore(tt.listings, tt.tenders, tt.messages, tt.users)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEngagementScore_MonotonicAndBounded(t *testing.T) {
	const users = 7
	prev := -1.0
	for n := int64(0); n <= 50; n++ {
		for _, score := range []float64{
			EngagementScore(n, 3, 3, users),
			EngagementScore(3, n, 3, users),
			EngagementScore(3, 3, n, users),
		} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
		cur := EngagementScore(n, 0, 0, users)
		assert.GreaterOrEqual(t, cur, prev, "tăng listings không được làm giảm điểm")
		prev = cur
	}
}

func TestComputeHealthScores(t *testing.T) {
	got := ComputeHealthScores(HealthInputs{GrowthRate: 12, AvgTransactionValue: 100, ActiveListings: 10})

	assert.Equal(t, 24.0, got.UserHealth)
	assert.Equal(t, 100.0, got.RevenueHealth)
	assert.Equal(t, 20.0, got.MarketplaceHealth)
	assert.Equal(t, 48.0, got.OverallHealth)
}

func TestComputeHealthScores_ClampAndRound(t *testing.T) {
	inputs := []HealthInputs{
		{GrowthRate: -40, AvgTransactionValue: 500, ActiveListings: 80},
		{GrowthRate: 3.33, AvgTransactionValue: 12.345, ActiveListings: 1},
		{GrowthRate: math.NaN(), AvgTransactionValue: 0, ActiveListings: 0},
	}

	for _, in := range inputs {
		got := ComputeHealthScores(in)
		for _, v := range []float64{got.UserHealth, got.RevenueHealth, got.MarketplaceHealth, got.OverallHealth} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
		want := Round((Clamp(in.GrowthRate*2, 0, 100)+Clamp(in.AvgTransactionValue, 0, 100)+Clamp(float64(in.ActiveListings)*2, 0, 100))/3, 1)
		assert.Equal(t, want, got.OverallHealth)
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(5, 0))
	assert.Equal(t, 2.5, Ratio(5, 2))
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 500.0, Percent(5, 0), "mẫu số 0 được thay bằng 1")
	assert.Equal(t, 50.0, Percent(1, 2))
	assert.Equal(t, 1.3, Round(1.25, 1))
}
