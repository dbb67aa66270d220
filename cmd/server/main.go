package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"foodlocker/internal/account"
	"foodlocker/internal/catalog"
	"foodlocker/internal/config"
	"foodlocker/internal/infrastructure/logger"
	"foodlocker/internal/infrastructure/mysql"
	"foodlocker/internal/infrastructure/redis"
	"foodlocker/internal/order"
	"foodlocker/internal/order/service"
	"foodlocker/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	cache, err := redis.NewClient(cfg.Redis)
	if err != nil {
		// Catalog reads fall back to the database when the cache is down.
		zapLogger.Warn("redis unavailable, catalog caching disabled", zap.Error(err))
		cache = nil
	} else {
		defer cache.Close()
		zapLogger.Info("redis connected")
	}

	orderCtrl := order.NewModule(db, service.Config{}, zapLogger)
	catalogCtrl := catalog.NewModule(db, cache, cfg.Redis.CacheTTL, zapLogger)
	accountCtrl := account.NewModule(db, zapLogger)

	router := server.NewRouter(orderCtrl, catalogCtrl, accountCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
