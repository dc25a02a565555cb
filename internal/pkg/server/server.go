package server

import (
	"context"
	"net/http"
	"time"

	"zkbugs/internal/pkg/config"
	"zkbugs/internal/pkg/mailer"
	"zkbugs/internal/pkg/middleware"
	"zkbugs/internal/pkg/registry"
	"zkbugs/pkg/cache"
	"zkbugs/pkg/metrics"
	"zkbugs/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// HealthChecker 存储层健康检查
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps 构建路由所需的依赖
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Cache     cache.CacheService
	Tokens    *utils.TokenIssuer
	Mailer    mailer.Mailer
	Health    HealthChecker
	Collector *metrics.MetricsCollector
}

// NewRouter 挂载全局中间件、运维端点，并初始化所有已注册模块到 /api
func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(
		middleware.RecoveryMiddleware(),
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.MetricsMiddleware(d.Collector),
		middleware.SecurityHeadersMiddleware(),
		middleware.CORSMiddleware(d.Config.Client),
	)

	r.GET("/health", healthHandler(d.Health, d.Cache))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	err := registry.InitModules(&registry.ModuleContext{
		DB:     d.DB,
		Cache:  d.Cache,
		Router: api,
		Config: d.Config,
		Tokens: d.Tokens,
		Mailer: d.Mailer,
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func healthHandler(checker HealthChecker, c cache.CacheService) gin.HandlerFunc {
	return func(gc *gin.Context) {
		ctx, cancel := context.WithTimeout(gc.Request.Context(), 3*time.Second)
		defer cancel()

		if checker != nil {
			if err := checker.HealthCheck(ctx); err != nil {
				gc.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "component": "database", "error": err.Error()})
				return
			}
		}
		if c != nil {
			if err := c.Ping(ctx); err != nil {
				gc.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "component": "cache", "error": err.Error()})
				return
			}
		}
		gc.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
