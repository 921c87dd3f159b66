package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
// Nó chứa thông tin cơ sở dữ liệu và cấu hình cho module analytics
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                 // Cổng server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName_Data   string `env:"MONGODB_DBNAME_DATA,required"`              // Tên cơ sở dữ liệu marketplace
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Analytics
	Analytics_CacheTTL       int    `env:"ANALYTICS_CACHE_TTL" envDefault:"300"`           // Thời gian sống của cache báo cáo (giây)
	Analytics_SingleFlight   bool   `env:"ANALYTICS_CACHE_SINGLEFLIGHT" envDefault:"true"` // Gộp các lần tính trùng key đang chạy đồng thời
	Analytics_HistorySource  string `env:"ANALYTICS_HISTORY_SOURCE" envDefault:"store"`    // Nguồn chuỗi lịch sử cho dự báo: store | sample
	Analytics_RequestTimeout int    `env:"ANALYTICS_REQUEST_TIMEOUT" envDefault:"30"`      // Timeout mỗi lần tính báo cáo (giây)
	ReportWarmup_Enabled     bool   `env:"REPORT_WARMUP_ENABLED" envDefault:"false"`       // Bật worker làm nóng cache báo cáo
	ReportWarmup_Schedule    string `env:"REPORT_WARMUP_SCHEDULE" envDefault:"@every 4m"`  // Lịch chạy (cú pháp cron)
	ReportWarmup_Windows     string `env:"REPORT_WARMUP_WINDOWS" envDefault:"7,30,90"`     // Các cửa sổ (ngày) cần làm nóng
}

// CacheTTL trả về thời gian sống của cache dưới dạng time.Duration
func (c *Configuration) CacheTTL() time.Duration {
	if c.Analytics_CacheTTL <= 0 {
		return 300 * time.Second
	}
	return time.Duration(c.Analytics_CacheTTL) * time.Second
}

// RequestTimeout trả về timeout cho một lần tính báo cáo
func (c *Configuration) RequestTimeout() time.Duration {
	if c.Analytics_RequestTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Analytics_RequestTimeout) * time.Second
}

// WarmupWindows parse danh sách cửa sổ ngày, bỏ qua giá trị không hợp lệ
func (c *Configuration) WarmupWindows() []int {
	var out []int
	for _, part := range strings.Split(c.ReportWarmup_Windows, ",") {
		days, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || days <= 0 {
			continue
		}
		out = append(out, days)
	}
	return out
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env bằng cách đi lên thư mục cha
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc dữ liệu cấu hình từ file env (nếu có) rồi từ biến môi trường.
// Khác với bản cũ, thiếu file env không còn là lỗi: container chỉ cần set biến môi trường.
func NewConfig() (*Configuration, error) {
	if envPath := getEnvPath(); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("không thể load file env tại %s: %w", envPath, err)
			}
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("lỗi khi parse config: %w", err)
	}

	if cfg.Analytics_HistorySource != "store" && cfg.Analytics_HistorySource != "sample" {
		return nil, fmt.Errorf("ANALYTICS_HISTORY_SOURCE không hợp lệ: %q (store | sample)", cfg.Analytics_HistorySource)
	}

	return &cfg, nil
}
