package main

import (
	"marketplace_analytics/config"
	"marketplace_analytics/internal/global"
	"marketplace_analytics/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

func InitRegistry() {
	log := logger.GetAppLogger()

	// Khởi tạo registry và đăng ký các collections
	if err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig); err != nil {
		log.Fatalf("Failed to initialize collections: %v", err)
	}
	log.WithField("collections", global.RegistryCollections.Names()).Info("Initialized collection registry")
}

// InitCollections đăng ký các collection analytics và menu_settings vào registry
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName_Data)
	colNames := append(global.AnalyticsCollections(), global.MongoDB_ColNames.MenuSettings)

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logger.WithCollection(name).WithError(err).Error("Failed to register collection")
			return err
		}
		if !registered {
			logger.WithCollection(name).Warn("Collection already registered")
		}
	}
	return nil
}
