package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/models"
)

const redisKeyPrefix = "menu-pricing:promotions:"

// RedisPromotionCache shares snapshots between service instances. Redis is
// never required: on any redis error the loader is used directly. A ttl of
// zero disables storing, as for PromotionCache.
type RedisPromotionCache struct {
	client *redis.Client
	ttl    time.Duration
	loader Loader
	log    *zap.Logger
}

func NewRedisPromotionCache(client *redis.Client, loader Loader, ttl time.Duration, log *zap.Logger) *RedisPromotionCache {
	return &RedisPromotionCache{client: client, ttl: ttl, loader: loader, log: log}
}

func redisKey(businessID uuid.UUID) string {
	return redisKeyPrefix + businessID.String()
}

func (c *RedisPromotionCache) Load(ctx context.Context, businessID uuid.UUID) (*models.PromotionSnapshot, error) {
	key := redisKey(businessID)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var s models.PromotionSnapshot
		if err := json.Unmarshal(raw, &s); err == nil {
			return &s, nil
		}
		c.log.Warn("discarding undecodable promotion snapshot", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("redis get failed, loading from database", zap.String("key", key), zap.Error(err))
	}

	s, err := c.loader.Load(ctx, businessID)
	if err != nil {
		return nil, err
	}
	// redis keeps a key with zero expiration forever
	if c.ttl <= 0 {
		return s, nil
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return s, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
	return s, nil
}

func (c *RedisPromotionCache) Invalidate(ctx context.Context, businessID uuid.UUID) error {
	return c.client.Del(ctx, redisKey(businessID)).Err()
}
