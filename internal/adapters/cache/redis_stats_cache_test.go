package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"waste-routing-service/internal/domain"
)

func newTestCache(t *testing.T) (*RedisStatsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStatsCache(client, time.Minute), mr
}

func TestStatsCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	stats := &domain.CollectorStats{
		CollectorID:               "c-a",
		TotalAssigned:             7,
		Pending:                   2,
		InProgress:                1,
		CompletedToday:            3,
		EstimatedMinutesRemaining: 60,
	}

	if err := c.Put(ctx, "c-a", stats); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, hit, err := c.Get(ctx, "c-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if *got != *stats {
		t.Fatalf("got %+v, want %+v", got, stats)
	}
}

func TestStatsCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	got, hit, err := c.Get(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("miss must not be an error: %v", err)
	}
	if hit || got != nil {
		t.Fatalf("expected miss, got hit=%v stats=%+v", hit, got)
	}
}

func TestStatsCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "c-a", &domain.CollectorStats{CollectorID: "c-a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, hit, err := c.Get(ctx, "c-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Fatal("expected entry to expire")
	}
}
