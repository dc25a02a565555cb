package middleware

import (
	"sync"

	"zkbugs/pkg/response"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// maxTrackedIPs 最多跟踪的 IP 数，超出后淘汰最久未访问的
const maxTrackedIPs = 10000

// IPRateLimiter 存储每个IP的限流器
type IPRateLimiter struct {
	ips *lru.Cache[string, *rate.Limiter]
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

// NewIPRateLimiter 创建一个新的IP限流器
// r: 每秒允许的请求数 (QPS)
// b: 桶的大小 (Burst)
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	cache, err := lru.New[string, *rate.Limiter](maxTrackedIPs)
	if err != nil {
		panic(err)
	}
	return &IPRateLimiter{ips: cache, r: r, b: b}
}

// GetLimiter 获取指定IP的限流器
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists := i.ips.Get(ip)
	if !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips.Add(ip, limiter)
	}
	return limiter
}

// RateLimitMiddleware 限流中间件
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
