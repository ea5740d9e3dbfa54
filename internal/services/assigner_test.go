package services

import (
	"context"
	"testing"
	"time"

	"waste-routing-service/internal/adapters/repositories"
	"waste-routing-service/internal/domain"
	"waste-routing-service/internal/ports"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) Today() ports.DayWindow {
	start := time.Date(c.now.Year(), c.now.Month(), c.now.Day(), 0, 0, 0, 0, c.now.Location())
	return ports.DayWindow{Start: start, End: start.AddDate(0, 0, 1)}
}

func pendingReport(id string, urgency domain.Urgency, createdAt time.Time) domain.Report {
	return domain.Report{
		ReportID:  id,
		Location:  domain.Coordinates{Lat: 1, Lon: 1},
		WasteType: domain.WasteMixed,
		Urgency:   urgency,
		Status:    domain.StatusPending,
		CreatedAt: createdAt,
	}
}

func TestAutoAssignUrgencyAndBalance(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	repo.AddReport(pendingReport("r-high", domain.UrgencyHigh, base))
	repo.AddReport(pendingReport("r-low", domain.UrgencyLow, base.Add(time.Minute)))
	repo.AddReport(pendingReport("r-critical", domain.UrgencyCritical, base.Add(2*time.Minute)))
	repo.AddCollector(domain.Collector{CollectorID: "c-a", Name: "A", Active: true})
	repo.AddCollector(domain.Collector{CollectorID: "c-b", Name: "B", Active: true})

	batch, err := AutoAssign(context.Background(), repo, repo, fixedClock{base}, AssignOptions{
		ConsiderUrgency: true,
		BalanceWorkload: true,
		MaxPerCollector: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(batch.Assignments) != 3 || batch.Unassigned != 0 {
		t.Fatalf("expected 3 assigned / 0 unassigned, got %d / %d", len(batch.Assignments), batch.Unassigned)
	}

	// Critical first to the lowest-ID collector, high to the other,
	// low back to c-a (both below cap, tie on workload breaks by ID).
	want := []domain.Assignment{
		{ReportID: "r-critical", CollectorID: "c-a"},
		{ReportID: "r-high", CollectorID: "c-b"},
		{ReportID: "r-low", CollectorID: "c-a"},
	}
	for i, w := range want {
		if batch.Assignments[i] != w {
			t.Fatalf("assignment %d = %+v, want %+v", i, batch.Assignments[i], w)
		}
	}

	for id, wantLoad := range map[string]int{"c-a": 2, "c-b": 1} {
		n, err := repo.CountByCollectorAndStatus(context.Background(), id,
			domain.StatusAssigned, domain.StatusInProgress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != wantLoad {
			t.Fatalf("collector %s workload = %d, want %d", id, n, wantLoad)
		}
	}
}

func TestAutoAssignRespectsCap(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		repo.AddReport(pendingReport(
			string(rune('a'+i)), domain.UrgencyMedium, base.Add(time.Duration(i)*time.Minute)))
	}
	repo.AddCollector(domain.Collector{CollectorID: "c-a", Active: true})
	repo.AddCollector(domain.Collector{CollectorID: "c-b", Active: true})

	batch, err := AutoAssign(context.Background(), repo, repo, fixedClock{base}, AssignOptions{
		BalanceWorkload: true,
		MaxPerCollector: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(batch.Assignments) != 4 {
		t.Fatalf("expected 4 assignments, got %d", len(batch.Assignments))
	}
	if batch.Unassigned != 1 {
		t.Fatalf("expected 1 unassigned, got %d", batch.Unassigned)
	}

	for _, id := range []string{"c-a", "c-b"} {
		n, err := repo.CountByCollectorAndStatus(context.Background(), id,
			domain.StatusAssigned, domain.StatusInProgress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n > 2 {
			t.Fatalf("collector %s exceeded cap: %d", id, n)
		}
	}
}

func TestAutoAssignBalancesPreexistingWorkload(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// c-a starts one report ahead; the balancer should even that out.
	existing := pendingReport("pre", domain.UrgencyMedium, base)
	existing.Status = domain.StatusInProgress
	existing.AssignedCollector = "c-a"
	repo.AddReport(existing)

	repo.AddReport(pendingReport("n1", domain.UrgencyMedium, base.Add(time.Minute)))
	repo.AddReport(pendingReport("n2", domain.UrgencyMedium, base.Add(2*time.Minute)))
	repo.AddCollector(domain.Collector{CollectorID: "c-a", Active: true})
	repo.AddCollector(domain.Collector{CollectorID: "c-b", Active: true})

	batch, err := AutoAssign(context.Background(), repo, repo, fixedClock{base}, AssignOptions{
		BalanceWorkload: true,
		MaxPerCollector: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(batch.Assignments))
	}
	if batch.Assignments[0].CollectorID != "c-b" {
		t.Fatalf("first assignment should go to the idle collector, got %q", batch.Assignments[0].CollectorID)
	}

	loadA, _ := repo.CountByCollectorAndStatus(context.Background(), "c-a",
		domain.StatusAssigned, domain.StatusInProgress)
	loadB, _ := repo.CountByCollectorAndStatus(context.Background(), "c-b",
		domain.StatusAssigned, domain.StatusInProgress)
	if diff := loadA - loadB; diff < -1 || diff > 1 {
		t.Fatalf("workloads differ by more than 1: a=%d b=%d", loadA, loadB)
	}
}

func TestAutoAssignRoundRobin(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	repo.AddReport(pendingReport("r1", domain.UrgencyMedium, base))
	repo.AddReport(pendingReport("r2", domain.UrgencyMedium, base.Add(time.Minute)))
	repo.AddReport(pendingReport("r3", domain.UrgencyMedium, base.Add(2*time.Minute)))
	repo.AddCollector(domain.Collector{CollectorID: "c-a", Active: true})
	repo.AddCollector(domain.Collector{CollectorID: "c-b", Active: true})

	batch, err := AutoAssign(context.Background(), repo, repo, fixedClock{base}, AssignOptions{
		MaxPerCollector: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"c-a", "c-b", "c-a"}
	for i, collectorID := range want {
		if batch.Assignments[i].CollectorID != collectorID {
			t.Fatalf("assignment %d went to %q, want %q", i, batch.Assignments[i].CollectorID, collectorID)
		}
	}
}

func TestAutoAssignSkipsInactiveCollectors(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	repo.AddReport(pendingReport("r1", domain.UrgencyMedium, base))
	repo.AddCollector(domain.Collector{CollectorID: "c-a", Active: false})
	repo.AddCollector(domain.Collector{CollectorID: "c-b", Active: true})

	batch, err := AutoAssign(context.Background(), repo, repo, fixedClock{base}, AssignOptions{
		BalanceWorkload: true,
		MaxPerCollector: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Assignments) != 1 || batch.Assignments[0].CollectorID != "c-b" {
		t.Fatalf("expected single assignment to c-b, got %+v", batch.Assignments)
	}
}

func TestAutoAssignNoCandidates(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// No pending reports.
	repo := repositories.NewMemoryRepository()
	repo.AddCollector(domain.Collector{CollectorID: "c-a", Active: true})

	batch, err := AutoAssign(context.Background(), repo, repo, fixedClock{base}, AssignOptions{MaxPerCollector: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch.Reason != domain.ReasonNoPendingReports || len(batch.Assignments) != 0 {
		t.Fatalf("expected no_pending_reports outcome, got %+v", batch)
	}

	// No active collectors.
	repo = repositories.NewMemoryRepository()
	repo.AddReport(pendingReport("r1", domain.UrgencyMedium, base))

	batch, err = AutoAssign(context.Background(), repo, repo, fixedClock{base}, AssignOptions{MaxPerCollector: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch.Reason != domain.ReasonNoActiveCollectors || batch.Unassigned != 1 {
		t.Fatalf("expected no_active_collectors outcome, got %+v", batch)
	}
}

func TestAutoAssignWithoutUrgencyUsesCreationOrder(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	repo.AddReport(pendingReport("newer", domain.UrgencyCritical, base.Add(time.Hour)))
	repo.AddReport(pendingReport("older", domain.UrgencyLow, base))
	repo.AddCollector(domain.Collector{CollectorID: "c-a", Active: true})

	batch, err := AutoAssign(context.Background(), repo, repo, fixedClock{base}, AssignOptions{
		MaxPerCollector: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch.Assignments[0].ReportID != "older" {
		t.Fatalf("without urgency the oldest report goes first, got %q", batch.Assignments[0].ReportID)
	}
}

func TestAutoAssignRejectsZeroCap(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	if _, err := AutoAssign(context.Background(), repo, repo, fixedClock{time.Now()}, AssignOptions{}); err == nil {
		t.Fatal("expected error for MaxPerCollector < 1")
	}
}
