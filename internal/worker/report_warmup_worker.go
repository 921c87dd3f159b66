package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"marketplace_analytics/internal/logger"
)

// Warmer tính trước các báo cáo của một cửa sổ để đưa vào cache (AnalyticsService cài đặt)
type Warmer interface {
	WarmUp(ctx context.Context, days int) error
}

// ReportWarmupWorker chạy theo lịch cron, làm nóng cache báo cáo cho từng cửa sổ ngày cấu hình.
// Request đầu tiên sau khi cache hết hạn sẽ được trả từ cache thay vì tính lại.
type ReportWarmupWorker struct {
	warmer   Warmer
	schedule string
	windows  []int
	timeout  time.Duration // Timeout cho mỗi cửa sổ
}

// NewReportWarmupWorker tạo worker.
// Tham số:
//   - schedule: biểu thức cron 5 trường hoặc descriptor (@every 4m, @hourly)
//   - windows: các cửa sổ ngày, rỗng thì dùng [30]
//   - timeout: timeout mỗi cửa sổ (mặc định: 30s)
func NewReportWarmupWorker(warmer Warmer, schedule string, windows []int, timeout time.Duration) (*ReportWarmupWorker, error) {
	if warmer == nil {
		return nil, fmt.Errorf("warmer không được nil")
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("lịch warm-up không hợp lệ %q: %w", schedule, err)
	}
	if len(windows) == 0 {
		windows = []int{30}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ReportWarmupWorker{
		warmer:   warmer,
		schedule: schedule,
		windows:  windows,
		timeout:  timeout,
	}, nil
}

// RunOnce làm nóng lần lượt từng cửa sổ; lỗi hoặc panic ở một cửa sổ không chặn các cửa sổ còn lại.
// Trả về số cửa sổ làm nóng thành công.
func (w *ReportWarmupWorker) RunOnce(ctx context.Context) int {
	log := logger.GetAppLogger()
	start := time.Now()

	warmed := 0
	for _, days := range w.windows {
		if ctx.Err() != nil {
			break
		}
		if err := w.warmWindow(ctx, days); err != nil {
			log.WithError(err).WithField("days", days).Warn("📊 [REPORT_WARMUP] Làm nóng thất bại, sẽ thử lại ở lần chạy sau")
			continue
		}
		warmed++
	}

	log.WithFields(map[string]interface{}{
		"warmed":   warmed,
		"total":    len(w.windows),
		"duration": time.Since(start).String(),
	}).Debug("📊 [REPORT_WARMUP] Đã chạy xong một lượt")
	return warmed
}

func (w *ReportWarmupWorker) warmWindow(ctx context.Context, days int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic khi làm nóng cửa sổ %d ngày: %v", days, r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	return w.warmer.WarmUp(ctx, days)
}

// Start chạy một lượt ngay rồi đăng ký lịch cron; block tới khi ctx bị huỷ và lượt đang chạy kết thúc.
func (w *ReportWarmupWorker) Start(ctx context.Context) error {
	log := logger.GetAppLogger()
	cronLog := cron.PrintfLogger(log)

	c := cron.New(cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)))
	if _, err := c.AddFunc(w.schedule, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("đăng ký lịch warm-up: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"schedule": w.schedule,
		"windows":  w.windows,
	}).Info("📊 [REPORT_WARMUP] Starting Report Warmup Worker...")

	w.RunOnce(ctx)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	log.Info("📊 [REPORT_WARMUP] Report Warmup Worker stopped")
	return nil
}
