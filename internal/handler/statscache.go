package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/yourorg/shiftline/internal/infrastructure/redis"
	"github.com/yourorg/shiftline/pkg/cache"
)

const (
	statsCacheKey    = "dashboard:stats"
	statsCachePrefix = "dashboard:"
)

// StatsCache holds the dashboard payload between requests: in Redis
// when configured so instances share one cache, otherwise in process
// memory. Handlers that change payroll state invalidate it so the next
// stats read recomputes.
type StatsCache struct {
	redis  *redis.Client // nil when not configured
	local  *cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewStatsCache creates a stats cache over the given backends
func NewStatsCache(redisClient *redis.Client, local *cache.Cache, ttl time.Duration, logger *slog.Logger) *StatsCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsCache{redis: redisClient, local: local, ttl: ttl, logger: logger}
}

func (c *StatsCache) get(ctx context.Context) (StatsResponse, bool) {
	var resp StatsResponse

	if c.redis != nil {
		raw, err := c.redis.Get(ctx, statsCacheKey)
		if err == nil && json.Unmarshal([]byte(raw), &resp) == nil {
			return resp, true
		}
		return resp, false
	}

	if c.local != nil {
		if v, ok := c.local.Get(statsCacheKey); ok {
			if typed, ok := v.(StatsResponse); ok {
				return typed, true
			}
		}
	}
	return resp, false
}

func (c *StatsCache) store(ctx context.Context, resp StatsResponse) {
	if c.ttl <= 0 {
		return
	}

	if c.redis != nil {
		raw, err := json.Marshal(resp)
		if err == nil {
			if err := c.redis.Set(ctx, statsCacheKey, raw, c.ttl); err != nil {
				c.logger.Warn("failed to cache stats in redis", slog.String("error", err.Error()))
			}
		}
		return
	}

	if c.local != nil {
		c.local.Set(statsCacheKey, resp, c.ttl)
	}
}

// invalidate drops any cached dashboard payload
func (c *StatsCache) invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	if c.redis != nil {
		if err := c.redis.Delete(ctx, statsCacheKey); err != nil {
			c.logger.Warn("failed to invalidate stats in redis", slog.String("error", err.Error()))
		}
		return
	}

	if c.local != nil {
		c.local.Invalidate(statsCachePrefix)
	}
}
