package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"waste-routing-service/internal/adapters/repositories"
	"waste-routing-service/internal/domain"
)

func TestPickupLifecycle(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock := fixedClock{base}

	repo.AddReport(pendingReport("r1", domain.UrgencyHigh, base))

	if err := AssignReport(context.Background(), repo, clock, "r1", "c-a"); err != nil {
		t.Fatalf("assign: unexpected error: %v", err)
	}

	r, err := repo.GetReport(context.Background(), "r1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != domain.StatusAssigned || r.AssignedCollector != "c-a" {
		t.Fatalf("after assign: status=%s collector=%q", r.Status, r.AssignedCollector)
	}
	if r.AssignedAt == nil || !r.AssignedAt.Equal(base) {
		t.Fatalf("assigned_at = %v, want %v", r.AssignedAt, base)
	}

	if err := StartPickup(context.Background(), repo, "r1", "c-a"); err != nil {
		t.Fatalf("start: unexpected error: %v", err)
	}

	details := CompletionDetails{ActualQuantityKg: 12.5, WasteTypeConfirmed: true, Notes: "two bags"}
	if err := CompletePickup(context.Background(), repo, clock, "r1", "c-a", details); err != nil {
		t.Fatalf("complete: unexpected error: %v", err)
	}

	r, err = repo.GetReport(context.Background(), "r1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != domain.StatusCollected {
		t.Fatalf("final status = %s, want collected", r.Status)
	}
	if r.CollectedAt == nil || r.ActualQuantityKg != 12.5 || !r.WasteTypeConfirmed || r.CollectorNotes != "two bags" {
		t.Fatalf("completion details not recorded: %+v", r)
	}
}

func TestStartPickupForbiddenForWrongCollector(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	r := pendingReport("r1", domain.UrgencyHigh, base)
	r.Status = domain.StatusAssigned
	r.AssignedCollector = "c-a"
	repo.AddReport(r)

	err := StartPickup(context.Background(), repo, "r1", "c-b")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCompletePickupRequiresInProgress(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	r := pendingReport("r1", domain.UrgencyHigh, base)
	r.Status = domain.StatusAssigned
	r.AssignedCollector = "c-a"
	repo.AddReport(r)

	err := CompletePickup(context.Background(), repo, fixedClock{base}, "r1", "c-a", CompletionDetails{})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestAssignReportNotPending(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock := fixedClock{base}

	repo.AddReport(pendingReport("r1", domain.UrgencyHigh, base))

	if err := AssignReport(context.Background(), repo, clock, "r1", "c-a"); err != nil {
		t.Fatalf("first assign: unexpected error: %v", err)
	}
	err := AssignReport(context.Background(), repo, clock, "r1", "c-b")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("second assign: expected ErrInvalidTransition, got %v", err)
	}

	// The first claim must stand.
	r, _ := repo.GetReport(context.Background(), "r1")
	if r.AssignedCollector != "c-a" {
		t.Fatalf("collector = %q, want c-a", r.AssignedCollector)
	}
}

func TestCancelReport(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	repo.AddReport(pendingReport("r1", domain.UrgencyLow, base))
	if err := CancelReport(context.Background(), repo, "r1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, _ := repo.GetReport(context.Background(), "r1")
	if r.Status != domain.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", r.Status)
	}

	// Terminal states cannot be cancelled again.
	err := CancelReport(context.Background(), repo, "r1")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransitionMissingReport(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	err := StartPickup(context.Background(), repo, "ghost", "c-a")
	if !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}
