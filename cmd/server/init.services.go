package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	analyticshdl "marketplace_analytics/internal/api/analytics/handler"
	analyticssvc "marketplace_analytics/internal/api/analytics/service"
	basehdl "marketplace_analytics/internal/api/base/handler"
	cmshdl "marketplace_analytics/internal/api/cms/handler"
	cmssvc "marketplace_analytics/internal/api/cms/service"
	"marketplace_analytics/internal/global"
	"marketplace_analytics/internal/logger"
	"marketplace_analytics/internal/metrics"
	"marketplace_analytics/internal/utility"
	"marketplace_analytics/internal/worker"
)

// Services gom các thành phần đã khởi tạo để main và InitFiberApp dùng chung
type Services struct {
	Registry  *prometheus.Registry
	Metrics   *metrics.Metrics
	Analytics *analyticssvc.AnalyticsService
	Menu      *cmssvc.MenuService

	AnalyticsHandler *analyticshdl.AnalyticsHandler
	MenuHandler      *cmshdl.MenuHandler
	SystemHandler    *basehdl.SystemHandler
}

// InitServices tạo metrics, cache, service và handler từ cấu hình toàn cục
func InitServices() (*Services, error) {
	cfg := global.MongoDB_ServerConfig

	reg := metrics.NewRegistry()
	m := metrics.NewMetrics(reg)

	cacheOpts := []utility.CacheOption{utility.WithObserver(m.CacheHit, m.CacheMiss)}
	if cfg.Analytics_SingleFlight {
		cacheOpts = append(cacheOpts, utility.WithSingleFlight())
	}
	cache := utility.NewCache(cfg.CacheTTL(), cacheOpts...)

	store, err := analyticssvc.NewMongoStoreFromRegistry()
	if err != nil {
		return nil, fmt.Errorf("analytics store: %w", err)
	}
	analytics := analyticssvc.NewAnalyticsService(store, cache,
		analyticssvc.WithMetrics(m),
		analyticssvc.WithHistorySource(analyticssvc.NewHistorySource(cfg.Analytics_HistorySource, store, time.Now)),
	)

	menuStore, err := cmssvc.NewMongoMenuStoreFromRegistry()
	if err != nil {
		return nil, fmt.Errorf("menu store: %w", err)
	}
	menu := cmssvc.NewMenuService(menuStore)

	logger.GetAppLogger().Info("Initialized services")
	return &Services{
		Registry:         reg,
		Metrics:          m,
		Analytics:        analytics,
		Menu:             menu,
		AnalyticsHandler: analyticshdl.NewAnalyticsHandler(analytics, cfg.RequestTimeout()),
		MenuHandler:      cmshdl.NewMenuHandler(menu),
		SystemHandler:    basehdl.NewSystemHandler(global.MongoDB_Session),
	}, nil
}

// InitWarmupWorker tạo worker làm nóng cache; nil khi bị tắt trong cấu hình
func InitWarmupWorker(s *Services) (*worker.ReportWarmupWorker, error) {
	cfg := global.MongoDB_ServerConfig
	if !cfg.ReportWarmup_Enabled {
		logger.GetAppLogger().Info("📊 [REPORT_WARMUP] Worker disabled")
		return nil, nil
	}
	return worker.NewReportWarmupWorker(s.Analytics, cfg.ReportWarmup_Schedule, cfg.WarmupWindows(), cfg.RequestTimeout())
}
