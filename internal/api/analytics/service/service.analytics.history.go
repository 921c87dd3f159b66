package analyticssvc

import (
	"context"
	"fmt"
	"time"

	analyticsmodels "marketplace_analytics/internal/api/analytics/models"
	"marketplace_analytics/internal/common"
)

// Tên chuỗi lịch sử mà forecaster cần
const (
	SeriesRevenue  = "revenue"
	SeriesUsers    = "users"
	SeriesListings = "listings"
)

// Tên nguồn lịch sử (config ANALYTICS_HISTORY_SOURCE)
const (
	HistorySourceStore  = "store"
	HistorySourceSample = "sample"
)

// HistoryDays độ dài lịch sử dùng cho dự báo
const HistoryDays = 90

// HistorySource cung cấp chuỗi lịch sử (cũ → mới) cho các forecaster
type HistorySource interface {
	Name() string
	GetHistoricalSeries(ctx context.Context, metric string, days int) ([]float64, error)
}

// bucketDays độ rộng bucket theo chuỗi: doanh thu và tin đăng theo ngày,
// user theo tháng vì dự báo tăng trưởng user tính theo tháng
var bucketDays = map[string]int{
	SeriesRevenue:  1,
	SeriesUsers:    30,
	SeriesListings: 1,
}

// StoreHistory gom chuỗi lịch sử từ Store
type StoreHistory struct {
	store Store
	now   func() time.Time
}

// NewStoreHistory tạo nguồn lịch sử trên store. now nil thì dùng time.Now.
func NewStoreHistory(store Store, now func() time.Time) *StoreHistory {
	if now == nil {
		now = time.Now
	}
	return &StoreHistory{store: store, now: now}
}

// Name tên nguồn
func (h *StoreHistory) Name() string {
	return HistorySourceStore
}

// GetHistoricalSeries chia [now-days, now) thành các bucket và cộng dồn giá trị theo bucket.
// Bucket cuối cùng có thể ngắn hơn nếu days không chia hết cho độ rộng bucket.
func (h *StoreHistory) GetHistoricalSeries(ctx context.Context, metric string, days int) ([]float64, error) {
	width, ok := bucketDays[metric]
	if !ok {
		return nil, fmt.Errorf("chuỗi lịch sử %q không hỗ trợ: %w", metric, common.ErrInvalidInput)
	}
	if days < 1 {
		return nil, fmt.Errorf("days = %d: %w", days, common.ErrInvalidInput)
	}

	end := h.now().UTC()
	start := end.AddDate(0, 0, -days)
	w := Window{Start: start, End: end}
	series := make([]float64, (days+width-1)/width)

	bucket := func(t time.Time) int {
		i := int(t.Sub(start)/(24*time.Hour)) / width
		return min(max(i, 0), len(series)-1)
	}

	switch metric {
	case SeriesRevenue:
		tenders, err := h.store.Tenders(ctx, w, analyticsmodels.TenderStatusAccepted)
		if err != nil {
			return nil, err
		}
		for _, t := range tenders {
			series[bucket(t.CreatedAt)] += t.OfferAmount
		}
	case SeriesUsers:
		users, err := h.store.Users(ctx, w)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			series[bucket(u.CreatedAt)]++
		}
	case SeriesListings:
		listings, err := h.store.Listings(ctx, w)
		if err != nil {
			return nil, err
		}
		for _, l := range listings {
			series[bucket(l.CreatedAt)]++
		}
	}
	return series, nil
}

// sampleSeries chuỗi mẫu cố định, dùng khi chưa có dữ liệu thật (demo, môi trường dev)
var sampleSeries = map[string][]float64{
	SeriesRevenue:  {1200, 1350, 1280, 1500, 1620, 1580, 1750},
	SeriesUsers:    {45, 52, 48, 61, 58, 67},
	SeriesListings: {12, 15, 11, 18, 14, 16, 19},
}

// SampleHistory trả chuỗi mẫu cố định, bỏ qua days
type SampleHistory struct{}

// Name tên nguồn
func (SampleHistory) Name() string {
	return HistorySourceSample
}

// GetHistoricalSeries bản sao của chuỗi mẫu
func (SampleHistory) GetHistoricalSeries(_ context.Context, metric string, _ int) ([]float64, error) {
	series, ok := sampleSeries[metric]
	if !ok {
		return nil, fmt.Errorf("chuỗi lịch sử %q không hỗ trợ: %w", metric, common.ErrInvalidInput)
	}
	return append([]float64(nil), series...), nil
}

// NewHistorySource chọn nguồn lịch sử theo tên cấu hình; tên lạ dùng store
func NewHistorySource(name string, store Store, now func() time.Time) HistorySource {
	if name == HistorySourceSample {
		return SampleHistory{}
	}
	return NewStoreHistory(store, now)
}
