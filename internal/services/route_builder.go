package services

import (
	"context"
	"fmt"
	"math"
	"slices"

	"waste-routing-service/internal/domain"
	"waste-routing-service/internal/ports"
)

// BuildRoute plans a visiting order for one collector's open reports
// using a greedy nearest-neighbor algorithm.
//
// The algorithm minimizes immediate travel distance at each step.
// It does not attempt global route optimization (e.g., VRP solvers).
// The design prioritizes determinism and simplicity over optimality.
func BuildRoute(
	ctx context.Context,
	repo ports.ReportRepository,
	collectorID string,
	start *domain.Coordinates,
) (*domain.Route, error) {
	reports, err := repo.FindOpenByCollector(ctx, collectorID)
	if err != nil {
		return nil, fmt.Errorf("build route: find open reports: %w", err)
	}

	if len(reports) == 0 {
		return &domain.Route{
			CollectorID:     collectorID,
			Stops:           []domain.RouteStop{},
			TotalDistanceKm: 0,
			TotalMinutes:    0,
		}, nil
	}

	// Repository ordering is not part of the contract; sort once so the
	// start fallback and tie-breaks are reproducible.
	slices.SortFunc(reports, func(a, b *domain.Report) int {
		if a.ReportID < b.ReportID {
			return -1
		}
		if a.ReportID > b.ReportID {
			return 1
		}
		return 0
	})

	current := reports[0].Location
	if start != nil {
		if err := start.Validate(); err != nil {
			return nil, fmt.Errorf("build route: %w", err)
		}
		current = *start
	}

	remaining := make(map[string]*domain.Report, len(reports))
	for _, r := range reports {
		remaining[r.ReportID] = r
	}

	stops := make([]domain.RouteStop, 0, len(reports))
	totalDistanceKm := 0.0
	totalMinutes := 0

	for len(remaining) > 0 {
		var best *domain.Report
		minDistance := math.MaxFloat64

		// Select next stop by minimum distance (greedy step).
		for _, r := range reports {
			if _, ok := remaining[r.ReportID]; !ok {
				continue
			}
			d := DistanceKm(current, r.Location)
			// Tie-breaker ensures deterministic ordering when distances
			// are equal: reports iterates in ascending ID order, so the
			// strict < keeps the lowest ID.
			if d < minDistance {
				minDistance = d
				best = r
			}
		}

		serviceMinutes := TravelTimeMinutes(minDistance) + EstimateCollectionMinutes(best)
		totalDistanceKm += minDistance
		totalMinutes += serviceMinutes

		stops = append(stops, domain.RouteStop{
			Report:             best,
			DistanceFromPrevKm: minDistance,
			ServiceMinutes:     serviceMinutes,
			CumulativeMinutes:  totalMinutes,
		})

		delete(remaining, best.ReportID)
		current = best.Location
	}

	routeStart := reports[0].Location
	if start != nil {
		routeStart = *start
	}

	return &domain.Route{
		CollectorID: collectorID,
		Start:       routeStart,
		Stops:       stops,
		// Legs stay unrounded; only the aggregate is rounded for display.
		TotalDistanceKm: math.Round(totalDistanceKm*100) / 100,
		TotalMinutes:    totalMinutes,
	}, nil
}
