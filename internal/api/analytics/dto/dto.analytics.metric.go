// Package analyticsdto chứa DTO của các báo cáo analytics (JSON snake_case) và query đầu vào.
package analyticsdto

import (
	"encoding/json"
	"time"
)

// Metric là kết quả có kiểu của một extractor. Err != nil nghĩa là nhóm số liệu này lỗi:
// báo cáo vẫn trả về, nhóm lỗi được render thành {}.
type Metric[T any] struct {
	Value T
	Err   error
}

// OK bọc giá trị thành công
func OK[T any](v T) Metric[T] {
	return Metric[T]{Value: v}
}

// Failed bọc lỗi của extractor
func Failed[T any](err error) Metric[T] {
	return Metric[T]{Err: err}
}

// Ok cho biết extractor chạy thành công
func (m Metric[T]) Ok() bool {
	return m.Err == nil
}

// OrZero trả về giá trị, lỗi thì trả zero value (đóng góp rỗng cho summary)
func (m Metric[T]) OrZero() T {
	if m.Err != nil {
		var zero T
		return zero
	}
	return m.Value
}

// MarshalJSON render {} khi extractor lỗi
func (m Metric[T]) MarshalJSON() ([]byte, error) {
	if m.Err != nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON đọc lại giá trị (dùng cho client và test)
func (m *Metric[T]) UnmarshalJSON(data []byte) error {
	m.Err = nil
	return json.Unmarshal(data, &m.Value)
}

// Period cửa sổ [start_date, end_date) của báo cáo
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      int       `json:"days"`
}

// NewPeriod tạo cửa sổ days ngày kết thúc tại end
func NewPeriod(end time.Time, days int) Period {
	return Period{
		StartDate: end.AddDate(0, 0, -days),
		EndDate:   end,
		Days:      days,
	}
}

// Previous cửa sổ liền trước có cùng độ dài
func (p Period) Previous() Period {
	return NewPeriod(p.StartDate, p.Days)
}

// DailyCount số lượng theo ngày (YYYY-MM-DD)
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// DailyAmount số tiền theo ngày (YYYY-MM-DD)
type DailyAmount struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// DayFormat định dạng key ngày trong các chuỗi theo ngày
const DayFormat = "2006-01-02"
