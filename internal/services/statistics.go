package services

import (
	"context"
	"fmt"

	"waste-routing-service/internal/domain"
	"waste-routing-service/internal/ports"
)

// Flat per-stop average used for the dashboard time estimate. Coarser
// than EstimateCollectionMinutes on purpose: stats are read far more
// often than routes are planned.
const averageStopMinutes = 20

// CollectorStats aggregates one collector's reports for monitoring.
// Read-only: no repository mutation, safe under concurrent calls.
func CollectorStats(
	ctx context.Context,
	repo ports.ReportRepository,
	collectorID string,
	today ports.DayWindow,
) (*domain.CollectorStats, error) {
	reports, err := repo.FindByCollector(ctx, collectorID)
	if err != nil {
		return nil, fmt.Errorf("collector stats: find reports: %w", err)
	}

	stats := &domain.CollectorStats{CollectorID: collectorID}
	for _, r := range reports {
		stats.TotalAssigned++
		switch r.Status {
		case domain.StatusAssigned:
			stats.Pending++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusCollected:
			if r.CollectedAt != nil && today.Contains(*r.CollectedAt) {
				stats.CompletedToday++
			}
		}
	}
	stats.EstimatedMinutesRemaining = (stats.Pending + stats.InProgress) * averageStopMinutes

	return stats, nil
}
