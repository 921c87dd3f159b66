package main

import (
	"marketplace_analytics/config"
	"marketplace_analytics/internal/database"
	"marketplace_analytics/internal/global"
	"marketplace_analytics/internal/logger"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo validator (đăng ký report_type, user_role)
func initValidator() {
	global.InitValidator()
	logger.GetAppLogger().Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to initialize config: %v", err)
	}
	global.MongoDB_ServerConfig = cfg
	logger.GetAppLogger().WithFields(map[string]interface{}{
		"address":       cfg.Address,
		"database":      cfg.MongoDB_DBName_Data,
		"cacheTTL":      cfg.CacheTTL().String(),
		"historySource": cfg.Analytics_HistorySource,
		"warmupEnabled": cfg.ReportWarmup_Enabled,
	}).Info("Initialized configuration")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	client, err := database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to initialize MongoDB: %v", err)
	}
	global.MongoDB_Session = client
}
