package ports

import (
	"context"

	"waste-routing-service/internal/domain"
)

// Contract for caching computed collector statistics.
// A cache miss is (nil, false, nil), never an error.
type StatsCache interface {
	Get(ctx context.Context, collectorID string) (*domain.CollectorStats, bool, error)
	Put(ctx context.Context, collectorID string, stats *domain.CollectorStats) error
}
