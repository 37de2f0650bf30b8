package utils

import (
	"context"
	"sync"
	"time"

	"citizenhub/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// The server keeps service documents and auth sessions in separate Redis
// databases so flushing the service cache never logs anyone out. The asynq
// queue has a third database, see cron.QueueRedisOpt.
var (
	CacheClient     *redis.Client
	AuthCacheClient *redis.Client
	redisMu         sync.Mutex
)

const redisDialTimeout = 2 * time.Second

func dialRedis(purpose string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Fatal("redis unreachable",
			zap.String("purpose", purpose), zap.String("addr", config.AppConfig.RedisAddr), zap.Int("db", db), zap.Error(err))
	}
	GetLogger().Info("redis connected", zap.String("purpose", purpose), zap.Int("db", db))
	return client
}

// GetCacheClient returns the client for cached service documents, dialling on
// first use.
func GetCacheClient() *redis.Client {
	redisMu.Lock()
	defer redisMu.Unlock()
	if CacheClient == nil {
		CacheClient = dialRedis("service cache", config.AppConfig.RedisCacheDB)
	}
	return CacheClient
}

// GetAuthCacheClient returns the client for auth sessions.
func GetAuthCacheClient() *redis.Client {
	redisMu.Lock()
	defer redisMu.Unlock()
	if AuthCacheClient == nil {
		AuthCacheClient = dialRedis("auth sessions", config.AppConfig.RedisAuthDB)
	}
	return AuthCacheClient
}

// InitRedis dials both clients so a bad address fails at startup rather than
// on the first request.
func InitRedis() {
	GetCacheClient()
	GetAuthCacheClient()
}
