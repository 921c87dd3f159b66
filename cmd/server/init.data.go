package main

import (
	"context"
	"time"

	cmssvc "marketplace_analytics/internal/api/cms/service"
	"marketplace_analytics/internal/database"
	"marketplace_analytics/internal/global"
	"marketplace_analytics/internal/logger"
)

// InitDefaultData tạo index và dữ liệu mặc định. Lỗi ở bước nào chỉ log warning, server vẫn chạy.
func InitDefaultData() {
	log := logger.GetAppLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. Index created_at cho các truy vấn theo cửa sổ
	log.Info("🔄 [INIT] Step 1: Creating analytics indexes...")
	db := global.MongoDB_Session.Database(global.MongoDB_ServerConfig.MongoDB_DBName_Data)
	if err := database.CreateAnalyticsIndexes(ctx, db); err != nil {
		log.WithError(err).Warn("❌ [INIT] Step 1: Failed to create indexes, queries may be slow")
	} else {
		log.Info("✅ [INIT] Step 1: Indexes ready")
	}

	// 2. Menu CMS mặc định (chỉ thêm key còn thiếu)
	log.Info("🔄 [INIT] Step 2: Seeding default CMS menu...")
	store, err := cmssvc.NewMongoMenuStoreFromRegistry()
	if err != nil {
		log.WithError(err).Warn("❌ [INIT] Step 2: Menu store unavailable")
		return
	}
	inserted, err := store.SeedDefaults(ctx, cmssvc.DefaultMenuItems(), time.Now().UTC())
	if err != nil {
		log.WithError(err).Warn("❌ [INIT] Step 2: Failed to seed CMS menu")
		return
	}
	log.WithField("inserted", inserted).Info("✅ [INIT] Step 2: CMS menu ready")
}
