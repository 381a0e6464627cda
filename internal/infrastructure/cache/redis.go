package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"scamshield/internal/config"
	"scamshield/internal/domain/models"
	"scamshield/internal/domain/services"
	"scamshield/pkg/logger"
)

// RedisCache wraps the Redis client with the typed operations the
// service needs: rate limiting and anonymized usage counters.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *logger.Logger
}

// NewRedis creates a new Redis client
func NewRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*RedisCache, error) {
	log = log.WithComponent("redis")
	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("connecting to Redis")

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	log.Info().Msg("connected to Redis successfully")

	return &RedisCache{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		logger:    log,
	}, nil
}

// Client returns the underlying Redis client
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	c.logger.Info().Msg("closing Redis connection")
	return c.client.Close()
}

// key prepends the namespace prefix to a key
func (c *RedisCache) key(k string) string {
	return c.keyPrefix + k
}

// Ping checks connectivity, used by readiness probes.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Key namespaces.
const (
	KeyRateLimitPrefix = "rate_limit:"
	KeyStatsPrefix     = "stats:"
)

// Daily stat hashes expire after this long.
const statsTTL = 8 * 24 * time.Hour

// CheckRateLimit checks and increments the rate limit counter.
// Returns (allowed, remaining, resetTime, error).
func (c *RedisCache) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error) {
	now := time.Now()
	windowKey := fmt.Sprintf("%s%s:%d", KeyRateLimitPrefix, key, now.Unix()/int64(window.Seconds()))

	pipe := c.client.Pipeline()
	incr := pipe.Incr(ctx, c.key(windowKey))
	pipe.Expire(ctx, c.key(windowKey), window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	count := incr.Val()
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := now.Add(window)

	return count <= limit, remaining, resetTime, nil
}

// statsKey returns the per-day stats hash key, UTC.
func statsKey(day time.Time) string {
	return KeyStatsPrefix + day.UTC().Format("2006-01-02")
}

// RecordAnalysis bumps the anonymized per-day counters for one
// analysis. Only categorical facts are stored, never message text.
func (c *RedisCache) RecordAnalysis(ctx context.Context, result *models.AnalysisResult) error {
	key := c.key(statsKey(time.Now()))

	pipe := c.client.Pipeline()
	pipe.HIncrBy(ctx, key, "total", 1)
	pipe.HIncrBy(ctx, key, "level:"+string(result.RiskLevel), 1)
	for _, t := range result.ScamTypes {
		pipe.HIncrBy(ctx, key, "type:"+string(t), 1)
	}
	for _, su := range result.SuspiciousURLs {
		if su.Score > 0 {
			if d := services.DomainOf(su.URL); d != "" {
				pipe.HIncrBy(ctx, key, "domain:"+d, 1)
			}
		}
	}
	pipe.Expire(ctx, key, statsTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// GetDailyStats returns the raw counter hash for a day.
func (c *RedisCache) GetDailyStats(ctx context.Context, day time.Time) (map[string]string, error) {
	return c.client.HGetAll(ctx, c.key(statsKey(day))).Result()
}
