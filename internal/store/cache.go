package store

import (
	"context"
	"encoding/json"
	"time"

	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/common/metrics"
	"campus-assistant/internal/models"

	"github.com/redis/go-redis/v9"
)

const hallCacheKey = "assistant:halls:snapshot"

// CachedStore is a Redis read-through layer over a HallReader. Cache failures
// degrade to the backing store and never surface to the caller.
type CachedStore struct {
	inner  HallReader
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore(inner HallReader, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func (c *CachedStore) Halls(ctx context.Context) ([]models.Hall, error) {
	cached, err := c.client.Get(ctx, hallCacheKey).Result()
	if err == nil {
		var halls []models.Hall
		if err := json.Unmarshal([]byte(cached), &halls); err == nil {
			metrics.HallCacheHits.WithLabelValues("hit").Inc()
			return halls, nil
		}
		// Corrupt entry; fall through and refresh it below.
		c.logger.Warn("discarding corrupt hall cache entry", map[string]interface{}{
			"key": hallCacheKey,
		})
	} else if err != redis.Nil {
		metrics.HallCacheHits.WithLabelValues("error").Inc()
		c.logger.Warn("hall cache read failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	metrics.HallCacheHits.WithLabelValues("miss").Inc()

	halls, err := c.inner.Halls(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(halls); err == nil {
		if err := c.client.Set(ctx, hallCacheKey, data, c.ttl).Err(); err != nil {
			c.logger.Warn("hall cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return halls, nil
}

// Invalidate drops the cached snapshot, forcing the next read to hit the
// backing store. Called by the seeder after reloading the collection.
func (c *CachedStore) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, hallCacheKey).Err()
}
