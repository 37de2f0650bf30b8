package directory

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"citizenhub/metrics"
	"citizenhub/models"
	"citizenhub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ServiceCache is a read-through cache in front of the repository. Misses and
// cache errors are indistinguishable to callers.
type ServiceCache interface {
	Get(ctx context.Context, idOrSlug string) (*models.Service, bool)
	Set(ctx context.Context, svc *models.Service)
	Invalidate(ctx context.Context, svc *models.Service)
}

// RedisServiceCache stores services as JSON under service:<id> and
// service:<shortName>.
type RedisServiceCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisServiceCache returns nil when ttl disables caching.
func NewRedisServiceCache(client *redis.Client, ttl time.Duration) ServiceCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &RedisServiceCache{Client: client, TTL: ttl}
}

func cacheKey(idOrSlug string) string {
	return utils.ServiceCachePrefix + strings.ToLower(strings.TrimSpace(idOrSlug))
}

func (c *RedisServiceCache) Get(ctx context.Context, idOrSlug string) (*models.Service, bool) {
	raw, err := c.Client.Get(ctx, cacheKey(idOrSlug)).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("service cache read failed", zap.Error(err))
		}
		metrics.ServiceCache.WithLabelValues("miss").Inc()
		return nil, false
	}
	var svc models.Service
	if err := json.Unmarshal(raw, &svc); err != nil {
		utils.GetLogger().Warn("service cache entry corrupt", zap.String("key", idOrSlug), zap.Error(err))
		metrics.ServiceCache.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.ServiceCache.WithLabelValues("hit").Inc()
	return &svc, true
}

func (c *RedisServiceCache) Set(ctx context.Context, svc *models.Service) {
	raw, err := json.Marshal(svc)
	if err != nil {
		utils.GetLogger().Warn("service cache encode failed", zap.String("id", svc.ID), zap.Error(err))
		return
	}
	pipe := c.Client.TxPipeline()
	pipe.Set(ctx, cacheKey(svc.ID), raw, c.TTL)
	pipe.Set(ctx, cacheKey(svc.ShortName), raw, c.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		utils.GetLogger().Warn("service cache write failed", zap.String("id", svc.ID), zap.Error(err))
	}
}

func (c *RedisServiceCache) Invalidate(ctx context.Context, svc *models.Service) {
	if err := c.Client.Del(ctx, cacheKey(svc.ID), cacheKey(svc.ShortName)).Err(); err != nil {
		utils.GetLogger().Warn("service cache invalidate failed", zap.String("id", svc.ID), zap.Error(err))
	}
}
