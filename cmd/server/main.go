package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"marketplace_analytics/internal/database"
	"marketplace_analytics/internal/global"
	"marketplace_analytics/internal/logger"
	"marketplace_analytics/internal/utility"
)

// initLogger khởi tạo logger; cấu hình đọc từ biến môi trường LOG_*
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// Hàm main
func main() {
	initLogger()
	defer logger.Close()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Khởi tạo index và dữ liệu mặc định
	InitDefaultData()

	log := logger.GetAppLogger()
	svcs, err := InitServices()
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	app, err := InitFiberApp(svcs)
	if err != nil {
		log.Fatalf("Failed to initialize routes: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Worker làm nóng cache báo cáo
	var wg sync.WaitGroup
	warmup, err := InitWarmupWorker(svcs)
	if err != nil {
		log.WithError(err).Error("📊 [REPORT_WARMUP] Failed to create worker, continuing without warm-up")
	} else if warmup != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			utility.GoProtect("report_warmup", func() {
				if err := warmup.Start(ctx); err != nil {
					log.WithError(err).Error("📊 [REPORT_WARMUP] Worker stopped with error")
				}
			})
		}()
	}

	// Chạy server, chờ tín hiệu dừng
	address := ":" + global.MongoDB_ServerConfig.Address
	serverErr := make(chan error, 1)
	go func() {
		log.WithFields(map[string]interface{}{
			"address":  address,
			"protocol": "HTTP",
		}).Info("Starting Fiber server")
		serverErr <- app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.WithError(err).Error("Error in Fiber Listen")
		}
		stop()
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.WithError(err).Error("Error shutting down Fiber server")
	}
	wg.Wait()

	if err := database.CloseInstance(shutdownCtx, global.MongoDB_Session); err != nil {
		log.WithError(err).Error("Error closing MongoDB")
	}
	log.Info("Server stopped")
}
