package analyticssvc

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	analyticsdto "marketplace_analytics/internal/api/analytics/dto"
	"marketplace_analytics/internal/common"
	"marketplace_analytics/internal/logger"
	"marketplace_analytics/internal/metrics"
	"marketplace_analytics/internal/utility"
)

// DefaultCacheTTL thời gian sống mặc định của báo cáo trong cache
const DefaultCacheTTL = 300 * time.Second

// Tên báo cáo, dùng làm tiền tố cache key "<report>_<days>"
const (
	ReportUser        = "user_analytics"
	ReportSales       = "sales_analytics"
	ReportMarketplace = "marketplace_analytics"
	ReportBusiness    = "business_report"
	ReportPredictive  = "predictive_analytics"
)

// AnalyticsService tính và cache các báo cáo analytics.
// Cache được truyền vào từ ngoài để test và có thể tách cache theo tenant.
type AnalyticsService struct {
	store   Store
	cache   *utility.Cache
	history HistorySource
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// Option cấu hình AnalyticsService
type Option func(*AnalyticsService)

// WithHistorySource thay nguồn chuỗi lịch sử cho dự báo
func WithHistorySource(h HistorySource) Option {
	return func(s *AnalyticsService) {
		s.history = h
	}
}

// WithMetrics gắn Prometheus metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *AnalyticsService) {
		s.metrics = m
	}
}

// WithClock thay đồng hồ (test)
func WithClock(now func() time.Time) Option {
	return func(s *AnalyticsService) {
		s.now = now
	}
}

// WithIDGenerator thay bộ sinh report_id (test)
func WithIDGenerator(newID func() string) Option {
	return func(s *AnalyticsService) {
		s.newID = newID
	}
}

// NewAnalyticsService tạo service. cache nil thì dùng cache riêng với DefaultCacheTTL.
// Nguồn lịch sử mặc định là StoreHistory trên chính store.
func NewAnalyticsService(store Store, cache *utility.Cache, opts ...Option) *AnalyticsService {
	s := &AnalyticsService{
		store: store,
		cache: cache,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = utility.NewCache(DefaultCacheTTL)
	}
	if s.history == nil {
		s.history = NewStoreHistory(store, s.now)
	}
	return s
}

// Cache trả về cache đang dùng
func (s *AnalyticsService) Cache() *utility.Cache {
	return s.cache
}

// CacheKey = "<report>_<days>"
func CacheKey(report string, days int) string {
	return fmt.Sprintf("%s_%d", report, days)
}

// cached lấy báo cáo từ cache hoặc tính mới. Panic khi tính được chuyển thành lỗi,
// báo cáo lỗi hoặc tính xong sau khi ctx hết hạn không được lưu vào cache.
// refresh = true bỏ qua entry còn hạn, tính lại và ghi đè (dùng khi làm nóng cache).
func cached[T any](ctx context.Context, s *AnalyticsService, report, key string, refresh bool, compute func(ctx context.Context) (T, error)) (T, error) {
	guarded := func() (result T, err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				logger.WithContext(ctx).WithFields(logrus.Fields{
					"module": "analytics",
					"report": report,
					"panic":  r,
					"stack":  string(debug.Stack()),
				}).Error("Panic khi tính báo cáo")
				err = common.NewError(common.ErrCodeAnalyticsCompose, fmt.Sprintf("%s: %v", common.MsgReportFailed, r), common.StatusInternalServerError, nil)
			}
			s.metrics.ObserveReport(report, start, err)
			logger.GetPerformanceLogger().WithFields(logrus.Fields{
				"report":      report,
				"key":         key,
				"duration_ms": time.Since(start).Milliseconds(),
				"failed":      err != nil,
			}).Debug("Tính báo cáo")
		}()

		result, err = compute(ctx)
		if err != nil {
			return result, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, timeoutError(ctxErr)
		}
		return result, nil
	}

	if refresh {
		return utility.RefreshAs(s.cache, key, guarded)
	}
	return utility.GetOrComputeAs(s.cache, key, 0, guarded)
}

// timeoutError chuyển lỗi context thành lỗi hệ thống
func timeoutError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return common.NewError(common.ErrCodeAnalyticsTimeout, common.ErrReportTimeout.Error(), common.StatusGatewayTimeout, err)
	}
	return common.NewError(common.ErrCodeAnalyticsCompose, common.MsgReportFailed, common.StatusServiceUnavailable, err)
}

// extract chạy một extractor; lỗi được log và trả về Metric rỗng để báo cáo vẫn tiếp tục
func extract[T any](ctx context.Context, s *AnalyticsService, name string, fn func(ctx context.Context) (T, error)) analyticsdto.Metric[T] {
	v, err := fn(ctx)
	if err != nil {
		logger.WithContext(ctx).WithFields(logrus.Fields{
			"module": "analytics",
			"metric": name,
		}).WithError(err).Warn("Extractor lỗi, nhóm số liệu để trống")
		s.metrics.ExtractorFailed(name)
		return analyticsdto.Failed[T](err)
	}
	return analyticsdto.OK(v)
}

// period cửa sổ days ngày kết thúc tại thời điểm hiện tại (UTC)
func (s *AnalyticsService) period(days int) analyticsdto.Period {
	return analyticsdto.NewPeriod(s.now().UTC(), days)
}

func windowOf(p analyticsdto.Period) Window {
	return Window{Start: p.StartDate, End: p.EndDate}
}

// validateDays days phải trong [1, MaxDays]
func validateDays(days int) error {
	if days < 1 || days > analyticsdto.MaxDays {
		return fmt.Errorf("days = %d ngoài khoảng 1..%d: %w", days, analyticsdto.MaxDays, common.ErrInvalidInput)
	}
	return nil
}

// GetUserAnalytics báo cáo user trong days ngày gần nhất
func (s *AnalyticsService) GetUserAnalytics(ctx context.Context, days int) (*analyticsdto.UserReport, error) {
	return s.userReport(ctx, days, false)
}

func (s *AnalyticsService) userReport(ctx context.Context, days int, refresh bool) (*analyticsdto.UserReport, error) {
	if err := validateDays(days); err != nil {
		return nil, err
	}
	return cached(ctx, s, ReportUser, CacheKey(ReportUser, days), refresh, func(ctx context.Context) (*analyticsdto.UserReport, error) {
		return s.composeUserReport(ctx, days), nil
	})
}

// GetSalesAnalytics báo cáo doanh thu trong days ngày gần nhất
func (s *AnalyticsService) GetSalesAnalytics(ctx context.Context, days int) (*analyticsdto.SalesReport, error) {
	return s.salesReport(ctx, days, false)
}

func (s *AnalyticsService) salesReport(ctx context.Context, days int, refresh bool) (*analyticsdto.SalesReport, error) {
	if err := validateDays(days); err != nil {
		return nil, err
	}
	return cached(ctx, s, ReportSales, CacheKey(ReportSales, days), refresh, func(ctx context.Context) (*analyticsdto.SalesReport, error) {
		return s.composeSalesReport(ctx, days), nil
	})
}

// GetMarketplaceAnalytics báo cáo marketplace trong days ngày gần nhất
func (s *AnalyticsService) GetMarketplaceAnalytics(ctx context.Context, days int) (*analyticsdto.MarketplaceReport, error) {
	return s.marketplaceReport(ctx, days, false)
}

func (s *AnalyticsService) marketplaceReport(ctx context.Context, days int, refresh bool) (*analyticsdto.MarketplaceReport, error) {
	if err := validateDays(days); err != nil {
		return nil, err
	}
	return cached(ctx, s, ReportMarketplace, CacheKey(ReportMarketplace, days), refresh, func(ctx context.Context) (*analyticsdto.MarketplaceReport, error) {
		return s.composeMarketplaceReport(ctx, days), nil
	})
}

// WarmUp tính lại ba báo cáo cơ bản cho cửa sổ days và ghi đè cache kể cả khi entry cũ còn hạn,
// để mỗi lượt làm nóng đẩy hạn của entry ra thêm một TTL. Dừng ở lỗi đầu tiên, entry cũ giữ nguyên.
func (s *AnalyticsService) WarmUp(ctx context.Context, days int) error {
	if _, err := s.userReport(ctx, days, true); err != nil {
		return fmt.Errorf("warm up %s: %w", ReportUser, err)
	}
	if _, err := s.salesReport(ctx, days, true); err != nil {
		return fmt.Errorf("warm up %s: %w", ReportSales, err)
	}
	if _, err := s.marketplaceReport(ctx, days, true); err != nil {
		return fmt.Errorf("warm up %s: %w", ReportMarketplace, err)
	}
	return nil
}
