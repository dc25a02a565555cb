package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"zkbugs/pkg/logger"
	"zkbugs/pkg/metrics"

	"go.uber.org/zap"
)

// Remember 先读缓存，未命中时调用 load 并回写；缓存故障只记录日志，不影响主流程
func Remember[T any](ctx context.Context, c CacheService, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if c == nil {
		return load()
	}

	prefix := keyPrefix(key)
	var cached T
	err := c.Get(ctx, key, &cached)
	if err == nil {
		metrics.GetGlobalCollector().RecordCacheLookup(prefix, true)
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logger.Log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	metrics.GetGlobalCollector().RecordCacheLookup(prefix, false)

	value, err := load()
	if err != nil {
		return value, err
	}
	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.Log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

// Forget 删除缓存键，失败只记录日志
func Forget(ctx context.Context, c CacheService, keys ...string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, keys...); err != nil {
		logger.Log.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
