package scoring

import "math"

// Nhãn xu hướng của dự báo
const (
	TrendIncreasing       = "increasing"
	TrendDecreasing       = "decreasing"
	TrendGrowing          = "growing"
	TrendStable           = "stable"
	TrendSteady           = "steady"
	TrendInsufficientData = "insufficient_data"
)

// Độ tin cậy cố định theo phương pháp, không phải khoảng tin cậy thống kê
const (
	ConfidenceLinear        = 0.8
	ConfidenceAverageGrowth = 0.75
	ConfidenceAverageVolume = 0.85
)

// minSeriesLen số điểm tối thiểu để dự báo
const minSeriesLen = 2

// daysPerMonth chuẩn hóa horizon về tháng cho dự báo tăng trưởng user
const daysPerMonth = 30

// Forecast kết quả của một forecaster. Các field chi tiết chỉ có ở forecaster tương ứng.
type Forecast struct {
	Forecast      float64   `json:"forecast"`
	Trend         string    `json:"trend"`
	Confidence    float64   `json:"confidence"`
	Slope         float64   `json:"slope,omitempty"`
	DailyForecast []float64 `json:"daily_forecast,omitempty"`
	AverageGrowth float64   `json:"average_growth,omitempty"`
	AverageVolume float64   `json:"average_volume,omitempty"`
}

func insufficient() Forecast {
	return Forecast{Forecast: 0, Trend: TrendInsufficientData, Confidence: 0}
}

// LinearTrend (doanh thu): slope = (last - first) / (len - 1), tức mức tăng trung bình mỗi bước,
// forecast = max(last + slope*h, 0).
// DailyForecast[i-1] = last + slope*i với i = 1..h.
func LinearTrend(series []float64, horizonDays int) Forecast {
	if len(series) < minSeriesLen {
		return insufficient()
	}
	first, last := series[0], series[len(series)-1]
	slope := (last - first) / float64(len(series)-1)

	daily := make([]float64, 0, max(horizonDays, 0))
	for i := 1; i <= horizonDays; i++ {
		daily = append(daily, last+slope*float64(i))
	}

	trend := TrendDecreasing
	if slope > 0 {
		trend = TrendIncreasing
	}

	return Forecast{
		Forecast:      math.Max(last+slope*float64(horizonDays), 0),
		Trend:         trend,
		Confidence:    ConfidenceLinear,
		Slope:         slope,
		DailyForecast: daily,
	}
}

// AverageGrowth (user): avg = mean(series), forecast = trunc(max(last + avg*h/30, 0)).
func AverageGrowth(series []float64, horizonDays int) Forecast {
	if len(series) < minSeriesLen {
		return insufficient()
	}
	avg := mean(series)
	last := series[len(series)-1]
	forecast := math.Max(last+avg*float64(horizonDays)/daysPerMonth, 0)

	trend := TrendStable
	if avg > 0 {
		trend = TrendGrowing
	}

	return Forecast{
		Forecast:      math.Trunc(forecast),
		Trend:         trend,
		Confidence:    ConfidenceAverageGrowth,
		AverageGrowth: avg,
	}
}

// AverageVolume (tin đăng): forecast = trunc(max(mean*h, 0)), nhãn luôn là steady.
func AverageVolume(series []float64, horizonDays int) Forecast {
	if len(series) < minSeriesLen {
		return insufficient()
	}
	avg := mean(series)

	return Forecast{
		Forecast:      math.Trunc(math.Max(avg*float64(horizonDays), 0)),
		Trend:         TrendSteady,
		Confidence:    ConfidenceAverageVolume,
		AverageVolume: avg,
	}
}

func mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}
