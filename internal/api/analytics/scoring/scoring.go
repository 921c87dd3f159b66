// Package scoring chứa các hàm thuần (không I/O) biến số liệu thô thành điểm 0-100 và dự báo đơn giản.
package scoring

import "math"

// Trọng số engagement: mỗi tin đăng 3 điểm, mỗi tender 2, mỗi tin nhắn 1
const (
	weightListing = 3
	weightTender  = 2
	weightMessage = 1

	engagementScale = 10
	maxScore        = 100
)

// EngagementScore = min((3*listings + 2*tenders + messages) / totalUsers * 10, 100).
// totalUsers <= 0 trả về 0; số âm được coi như 0.
func EngagementScore(listings, tenders, messages, totalUsers int64) float64 {
	if totalUsers <= 0 {
		return 0
	}
	weighted := weightListing*nonNegative(listings) +
		weightTender*nonNegative(tenders) +
		weightMessage*nonNegative(messages)
	score := float64(weighted) / float64(totalUsers) * engagementScale
	return math.Min(score, maxScore)
}

// HealthInputs là các số liệu headline dùng để chấm điểm sức khỏe
type HealthInputs struct {
	GrowthRate          float64 // Tăng trưởng user (%)
	AvgTransactionValue float64 // Giá trị giao dịch trung bình
	ActiveListings      int64   // Số tin đang active
}

// HealthScores điểm sức khỏe từng mảng, làm tròn 1 chữ số thập phân
type HealthScores struct {
	UserHealth        float64 `json:"user_health"`
	RevenueHealth     float64 `json:"revenue_health"`
	MarketplaceHealth float64 `json:"marketplace_health"`
	OverallHealth     float64 `json:"overall_health"`
}

// ComputeHealthScores: user = clamp(growth*2), revenue = clamp(avg_tx), marketplace = clamp(active*2),
// overall = trung bình cộng ba điểm.
func ComputeHealthScores(in HealthInputs) HealthScores {
	user := Clamp(in.GrowthRate*2, 0, maxScore)
	revenue := Clamp(in.AvgTransactionValue, 0, maxScore)
	marketplace := Clamp(float64(in.ActiveListings)*2, 0, maxScore)
	overall := (user + revenue + marketplace) / 3

	return HealthScores{
		UserHealth:        Round(user, 1),
		RevenueHealth:     Round(revenue, 1),
		MarketplaceHealth: Round(marketplace, 1),
		OverallHealth:     Round(overall, 1),
	}
}

// Clamp giới hạn v trong [lo, hi]; NaN trả về lo
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round làm tròn half away from zero tới số chữ số thập phân cho trước
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Ratio chia an toàn: mẫu số <= 0 trả về 0
func Ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// Percent = num / max(den, 1) * 100
func Percent(num, den int64) float64 {
	return float64(num) / float64(max(den, 1)) * 100
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
