package database

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"zkbugs/pkg/logger"
	"zkbugs/pkg/metrics"
)

// PoolMonitor 连接池监控器，定期把 sql.DBStats 同步到 Prometheus
type PoolMonitor struct {
	db        *gorm.DB
	collector *metrics.MetricsCollector
	interval  time.Duration
	stopCh    chan struct{}
}

// NewPoolMonitor 创建连接池监控器
func NewPoolMonitor(db *gorm.DB, collector *metrics.MetricsCollector, interval time.Duration) *PoolMonitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &PoolMonitor{
		db:        db,
		collector: collector,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start 启动后台采集
func (pm *PoolMonitor) Start() {
	go func() {
		ticker := time.NewTicker(pm.interval)
		defer ticker.Stop()

		pm.collectStats()
		for {
			select {
			case <-ticker.C:
				pm.collectStats()
			case <-pm.stopCh:
				return
			}
		}
	}()
}

// Close 停止采集
func (pm *PoolMonitor) Close() {
	close(pm.stopCh)
}

func (pm *PoolMonitor) collectStats() {
	sqlDB, err := pm.db.DB()
	if err != nil {
		logger.Log.Warn("pool monitor: cannot get sql.DB", zap.Error(err))
		return
	}
	pm.record(sqlDB.Stats())
}

func (pm *PoolMonitor) record(stats sql.DBStats) {
	pm.collector.UpdateDBConnections(stats.InUse, stats.Idle)
}

// HealthCheck 健康检查
func (pm *PoolMonitor) HealthCheck(ctx context.Context) error {
	sqlDB, err := pm.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
