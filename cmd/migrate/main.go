package main

import (
	"errors"
	"flag"

	"zkbugs/internal/pkg/config"
	"zkbugs/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

func main() {
	source := flag.String("path", "file://migrations", "migration source URL")
	down := flag.Bool("down", false, "roll back all migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		_ = logger.Init("prod", false)
		logger.Log.Fatal("load config", zap.Error(err))
	}
	if err := logger.Init(cfg.App.Env, cfg.App.Debug); err != nil {
		panic(err)
	}
	defer logger.Sync()

	m, err := migrate.New(*source, cfg.Database.URL())
	if err != nil {
		logger.Log.Fatal("open migrations", zap.Error(err))
	}
	defer m.Close()

	if *down {
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Log.Fatal("migrate down", zap.Error(err))
		}
		logger.Log.Info("rollback successful")
		return
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		// dirty 状态：强制回到失败前的版本后重试
		var dirty migrate.ErrDirty
		if !errors.As(err, &dirty) {
			logger.Log.Fatal("migrate up", zap.Error(err))
		}
		logger.Log.Warn("database is dirty, forcing previous version", zap.Int("version", dirty.Version))
		if err := m.Force(dirty.Version - 1); err != nil {
			logger.Log.Fatal("force version", zap.Error(err))
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Log.Fatal("migrate up", zap.Error(err))
		}
	}

	version, dirty, _ := m.Version()
	logger.Log.Info("migration successful", zap.Uint("version", version), zap.Bool("dirty", dirty))
}
