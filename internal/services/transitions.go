package services

import (
	"context"
	"fmt"

	"waste-routing-service/internal/domain"
	"waste-routing-service/internal/ports"
)

// CompletionDetails are the collector-supplied facts recorded when a
// pickup is completed.
type CompletionDetails struct {
	ActualQuantityKg   float64
	WasteTypeConfirmed bool
	Notes              string
}

// AssignReport claims a single pending report for a collector. It uses
// the same atomic conditional transition as AutoAssign, so it cannot
// double-claim against a concurrent batch run.
func AssignReport(
	ctx context.Context,
	repo ports.ReportRepository,
	clock ports.Clock,
	reportID, collectorID string,
) error {
	now := clock.Now()
	ok, err := repo.TryTransition(ctx, reportID, domain.StatusPending, domain.StatusAssigned,
		ports.TransitionFields{
			AssignedCollector: &collectorID,
			AssignedAt:        &now,
		})
	if err != nil {
		return fmt.Errorf("assign report %q: %w", reportID, err)
	}
	if !ok {
		return fmt.Errorf("assign report %q: not pending: %w", reportID, domain.ErrInvalidTransition)
	}
	return nil
}

// StartPickup moves a report from assigned to in_progress. Only the
// assigned collector may start it.
func StartPickup(
	ctx context.Context,
	repo ports.ReportRepository,
	reportID, collectorID string,
) error {
	report, err := repo.GetReport(ctx, reportID)
	if err != nil {
		return fmt.Errorf("start pickup %q: %w", reportID, err)
	}
	if report.AssignedCollector != collectorID {
		return fmt.Errorf("start pickup %q: collector %q is not the assignee: %w",
			reportID, collectorID, domain.ErrForbidden)
	}
	if report.Status != domain.StatusAssigned {
		return fmt.Errorf("start pickup %q: status is %q: %w",
			reportID, report.Status, domain.ErrInvalidTransition)
	}

	ok, err := repo.TryTransition(ctx, reportID, domain.StatusAssigned, domain.StatusInProgress, ports.TransitionFields{})
	if err != nil {
		return fmt.Errorf("start pickup %q: %w", reportID, err)
	}
	if !ok {
		// Status changed between the read and the update.
		return fmt.Errorf("start pickup %q: no longer assigned: %w", reportID, domain.ErrInvalidTransition)
	}
	return nil
}

// CompletePickup moves a report from in_progress to collected and
// records the completion details. Only the assigned collector may
// complete it.
func CompletePickup(
	ctx context.Context,
	repo ports.ReportRepository,
	clock ports.Clock,
	reportID, collectorID string,
	details CompletionDetails,
) error {
	report, err := repo.GetReport(ctx, reportID)
	if err != nil {
		return fmt.Errorf("complete pickup %q: %w", reportID, err)
	}
	if report.AssignedCollector != collectorID {
		return fmt.Errorf("complete pickup %q: collector %q is not the assignee: %w",
			reportID, collectorID, domain.ErrForbidden)
	}
	if report.Status != domain.StatusInProgress {
		return fmt.Errorf("complete pickup %q: status is %q: %w",
			reportID, report.Status, domain.ErrInvalidTransition)
	}

	now := clock.Now()
	ok, err := repo.TryTransition(ctx, reportID, domain.StatusInProgress, domain.StatusCollected,
		ports.TransitionFields{
			CollectedAt:        &now,
			ActualQuantityKg:   &details.ActualQuantityKg,
			WasteTypeConfirmed: &details.WasteTypeConfirmed,
			CollectorNotes:     &details.Notes,
		})
	if err != nil {
		return fmt.Errorf("complete pickup %q: %w", reportID, err)
	}
	if !ok {
		return fmt.Errorf("complete pickup %q: no longer in progress: %w", reportID, domain.ErrInvalidTransition)
	}
	return nil
}

// CancelReport moves a report to cancelled from any non-terminal state.
// Administrative action: no actor-identity requirement.
func CancelReport(
	ctx context.Context,
	repo ports.ReportRepository,
	reportID string,
) error {
	report, err := repo.GetReport(ctx, reportID)
	if err != nil {
		return fmt.Errorf("cancel report %q: %w", reportID, err)
	}
	if report.Status.Terminal() {
		return fmt.Errorf("cancel report %q: status %q is terminal: %w",
			reportID, report.Status, domain.ErrInvalidTransition)
	}

	ok, err := repo.TryTransition(ctx, reportID, report.Status, domain.StatusCancelled, ports.TransitionFields{})
	if err != nil {
		return fmt.Errorf("cancel report %q: %w", reportID, err)
	}
	if !ok {
		return fmt.Errorf("cancel report %q: status changed concurrently: %w", reportID, domain.ErrInvalidTransition)
	}
	return nil
}
