package middleware

import (
	"time"

	"zkbugs/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware 允许前端携带 Cookie 跨域访问
func CORSMiddleware(cfg config.ClientConfig) gin.HandlerFunc {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 && cfg.BaseURL != "" {
		origins = []string{cfg.BaseURL}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
