package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"waste-routing-service/internal/domain"
	"waste-routing-service/internal/platform/obs"
)

// RedisStatsCache is a short-TTL cache for computed collector
// statistics. Stats are a derived read-only view, so staleness up to
// the TTL is acceptable and saves a repository scan per dashboard poll.
type RedisStatsCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisStatsCache{Client: client, TTL: ttl}
}

func statsKey(collectorID string) string {
	return "stats:collector:" + collectorID
}

// Get returns the cached stats for a collector, or (nil, false) on miss.
func (c *RedisStatsCache) Get(ctx context.Context, collectorID string) (_ *domain.CollectorStats, _ bool, err error) {
	defer obs.Time(ctx, "stats.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("stats cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, statsKey(collectorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("stats cache: get %q: %w", collectorID, err)
	}

	var stats domain.CollectorStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("stats cache: decode %q: %w", collectorID, err)
	}
	return &stats, true, nil
}

// Put stores the stats under the configured TTL.
func (c *RedisStatsCache) Put(ctx context.Context, collectorID string, stats *domain.CollectorStats) (err error) {
	defer obs.Time(ctx, "stats.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("stats cache: client is nil")
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache: encode %q: %w", collectorID, err)
	}

	if err := c.Client.Set(ctx, statsKey(collectorID), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("stats cache: set %q: %w", collectorID, err)
	}
	return nil
}
