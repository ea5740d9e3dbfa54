package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"waste-routing-service/internal/domain"
	"waste-routing-service/internal/ports"
)

// AssignOptions are independent policy flags for one auto-assignment run.
type AssignOptions struct {
	// Process critical reports first instead of oldest-first.
	ConsiderUrgency bool
	// Pick the least-loaded collector instead of rotating round-robin.
	BalanceWorkload bool
	// Accepted for contract compatibility; does not alter candidate
	// ordering in this version.
	PrioritizeProximity bool
	// Hard per-collector cap on open reports, at least 1.
	MaxPerCollector int
}

// AutoAssign distributes pending reports across active collectors.
//
// Reports are processed in policy order and each claim goes through the
// repository's atomic conditional transition, so a report concurrently
// claimed elsewhere is skipped rather than double-assigned. Transitions
// are applied independently: a mid-batch failure leaves all prior
// assignments intact.
func AutoAssign(
	ctx context.Context,
	repo ports.ReportRepository,
	collectors ports.CollectorRepository,
	clock ports.Clock,
	opts AssignOptions,
) (*domain.AssignmentBatch, error) {
	if opts.MaxPerCollector < 1 {
		return nil, errors.New("auto assign: MaxPerCollector must be at least 1")
	}

	pending, err := repo.FindPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("auto assign: find pending reports: %w", err)
	}
	if len(pending) == 0 {
		return &domain.AssignmentBatch{
			Assignments: []domain.Assignment{},
			Reason:      domain.ReasonNoPendingReports,
		}, nil
	}

	active, err := collectors.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("auto assign: find active collectors: %w", err)
	}
	if len(active) == 0 {
		return &domain.AssignmentBatch{
			Assignments: []domain.Assignment{},
			Unassigned:  len(pending),
			Reason:      domain.ReasonNoActiveCollectors,
		}, nil
	}

	orderReports(pending, opts.ConsiderUrgency)

	// Fixed collector order keeps both selection policies reproducible.
	slices.SortFunc(active, func(a, b *domain.Collector) int {
		if a.CollectorID < b.CollectorID {
			return -1
		}
		if a.CollectorID > b.CollectorID {
			return 1
		}
		return 0
	})

	// Seed running workload counters from current open report counts.
	workload := make(map[string]int, len(active))
	for _, c := range active {
		n, err := repo.CountByCollectorAndStatus(ctx, c.CollectorID,
			domain.StatusAssigned, domain.StatusInProgress)
		if err != nil {
			return nil, fmt.Errorf("auto assign: count workload for %q: %w", c.CollectorID, err)
		}
		workload[c.CollectorID] = n
	}

	batch := &domain.AssignmentBatch{
		Assignments: []domain.Assignment{},
		Reason:      domain.ReasonAssigned,
	}
	rr := 0

	for _, report := range pending {
		var chosen *domain.Collector
		if opts.BalanceWorkload {
			chosen = pickLeastLoaded(active, workload, opts.MaxPerCollector)
		} else {
			chosen, rr = pickRoundRobin(active, workload, opts.MaxPerCollector, rr)
		}
		if chosen == nil {
			// Every collector is at cap; the report stays pending.
			batch.Unassigned++
			continue
		}

		now := clock.Now()
		ok, err := repo.TryTransition(ctx, report.ReportID, domain.StatusPending, domain.StatusAssigned,
			ports.TransitionFields{
				AssignedCollector: &chosen.CollectorID,
				AssignedAt:        &now,
			})
		if err != nil {
			return batch, fmt.Errorf("auto assign: transition report %q: %w", report.ReportID, err)
		}
		if !ok {
			// Lost a concurrent claim; skip and continue.
			log.Printf("op=auto_assign report=%s outcome=skipped reason=already_claimed", report.ReportID)
			batch.Unassigned++
			continue
		}

		workload[chosen.CollectorID]++
		batch.Assignments = append(batch.Assignments, domain.Assignment{
			ReportID:    report.ReportID,
			CollectorID: chosen.CollectorID,
		})
	}

	return batch, nil
}

// orderReports sorts the pending pool in place: urgency descending with
// oldest-first ties when urgency matters, otherwise oldest-first with ID
// ties for full determinism.
func orderReports(reports []*domain.Report, considerUrgency bool) {
	slices.SortFunc(reports, func(a, b *domain.Report) int {
		if considerUrgency {
			if ra, rb := a.Urgency.Rank(), b.Urgency.Rank(); ra != rb {
				if ra > rb {
					return -1
				}
				return 1
			}
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if a.CreatedAt.Before(b.CreatedAt) {
				return -1
			}
			return 1
		}
		if a.ReportID < b.ReportID {
			return -1
		}
		if a.ReportID > b.ReportID {
			return 1
		}
		return 0
	})
}

// pickLeastLoaded returns the under-cap collector with the lowest
// workload counter, ties broken by collector ID via the pre-sorted
// slice order. Nil when everyone is at cap.
func pickLeastLoaded(active []*domain.Collector, workload map[string]int, maxOpen int) *domain.Collector {
	var best *domain.Collector
	for _, c := range active {
		n := workload[c.CollectorID]
		if n >= maxOpen {
			continue
		}
		if best == nil || n < workload[best.CollectorID] {
			best = c
		}
	}
	return best
}

// pickRoundRobin returns the next under-cap collector in rotation and
// the advanced cursor. Capped collectors are skipped in place so the
// rotation order survives within the batch. Nil when everyone is at cap.
func pickRoundRobin(active []*domain.Collector, workload map[string]int, maxOpen, cursor int) (*domain.Collector, int) {
	for i := 0; i < len(active); i++ {
		c := active[(cursor+i)%len(active)]
		if workload[c.CollectorID] >= maxOpen {
			continue
		}
		return c, (cursor + i + 1) % len(active)
	}
	return nil, cursor
}
