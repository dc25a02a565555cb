package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "zkbugs/docs"
	_ "zkbugs/internal/domain/bookmark"
	_ "zkbugs/internal/domain/comment"
	_ "zkbugs/internal/domain/post"
	_ "zkbugs/internal/domain/user"
	"zkbugs/internal/pkg/config"
	"zkbugs/internal/pkg/mailer"
	"zkbugs/internal/pkg/server"
	"zkbugs/pkg/cache"
	"zkbugs/pkg/database"
	"zkbugs/pkg/logger"
	"zkbugs/pkg/metrics"
	"zkbugs/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title ZK Bugs API
// @version 1.0
// @description 零知识证明安全漏洞报告库
// @BasePath /api
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		_ = logger.Init("prod", false)
		logger.Log.Fatal("load config", zap.Error(err))
	}
	if err := logger.Init(cfg.App.Env, cfg.App.Debug); err != nil {
		panic(err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.Server.Mode)

	// 1. 存储
	db, err := database.InitDatabase(database.Options{DSN: cfg.Database.DSN(), Debug: cfg.App.Debug})
	if err != nil {
		logger.Log.Fatal("connect database", zap.Error(err))
	}
	defer database.Close(db)

	cacheService := cache.NewMemoryCache()
	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(database.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Log.Warn("redis unavailable, falling back to memory cache", zap.Error(err))
		} else {
			defer rdb.Close()
			cacheService = cache.NewRedisCache(rdb, "zkbugs")
		}
	}

	collector := metrics.GetGlobalCollector()
	monitor := database.NewPoolMonitor(db, collector, 15*time.Second)
	monitor.Start()
	defer monitor.Close()

	// 2. 路由与模块
	router, err := server.NewRouter(server.Deps{
		Config:    cfg,
		DB:        db,
		Cache:     cacheService,
		Tokens:    utils.NewTokenIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.Expire)*time.Hour),
		Mailer:    mailer.New(cfg.Mail),
		Health:    monitor,
		Collector: collector,
	})
	if err != nil {
		logger.Log.Fatal("init modules", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 3. 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}
}
