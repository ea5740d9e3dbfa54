package repositories

import (
	"context"
	"sync"

	"waste-routing-service/internal/domain"
	"waste-routing-service/internal/ports"
)

// In-memory implementation of both repository ports.
//
// Backs the engine's tests and local demo runs. The single mutex makes
// TryTransition a true check-and-set, so the adapter honors the same
// no-double-claim guarantee the SQL and Mongo backends provide.
type MemoryRepository struct {
	mu         sync.Mutex
	reports    map[string]*domain.Report
	collectors map[string]*domain.Collector
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		reports:    make(map[string]*domain.Report),
		collectors: make(map[string]*domain.Collector),
	}
}

// AddReport stores a copy of the report.
func (m *MemoryRepository) AddReport(r domain.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.ReportID] = &r
}

// AddCollector stores a copy of the collector.
func (m *MemoryRepository) AddCollector(c domain.Collector) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collectors[c.CollectorID] = &c
}

func (m *MemoryRepository) GetReport(ctx context.Context, reportID string) (*domain.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[reportID]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MemoryRepository) FindOpenByCollector(ctx context.Context, collectorID string) ([]*domain.Report, error) {
	return m.filter(func(r *domain.Report) bool {
		return r.AssignedCollector == collectorID && r.Status.Open()
	}), nil
}

func (m *MemoryRepository) FindPending(ctx context.Context) ([]*domain.Report, error) {
	return m.filter(func(r *domain.Report) bool {
		return r.Status == domain.StatusPending
	}), nil
}

func (m *MemoryRepository) FindByCollector(ctx context.Context, collectorID string) ([]*domain.Report, error) {
	return m.filter(func(r *domain.Report) bool {
		return r.AssignedCollector == collectorID
	}), nil
}

func (m *MemoryRepository) CountByCollectorAndStatus(
	ctx context.Context,
	collectorID string,
	statuses ...domain.ReportStatus,
) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.reports {
		if r.AssignedCollector != collectorID {
			continue
		}
		for _, s := range statuses {
			if r.Status == s {
				n++
				break
			}
		}
	}
	return n, nil
}

func (m *MemoryRepository) TryTransition(
	ctx context.Context,
	reportID string,
	from, to domain.ReportStatus,
	fields ports.TransitionFields,
) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reports[reportID]
	if !ok {
		return false, domain.ErrReportNotFound
	}
	if r.Status != from || !from.CanTransition(to) {
		return false, nil
	}

	r.Status = to
	if fields.AssignedCollector != nil {
		r.AssignedCollector = *fields.AssignedCollector
	}
	if fields.AssignedAt != nil && r.AssignedAt == nil {
		t := *fields.AssignedAt
		r.AssignedAt = &t
	}
	if fields.CollectedAt != nil && r.CollectedAt == nil {
		t := *fields.CollectedAt
		r.CollectedAt = &t
	}
	if fields.ResolvedAt != nil && r.ResolvedAt == nil {
		t := *fields.ResolvedAt
		r.ResolvedAt = &t
	}
	if fields.ActualQuantityKg != nil {
		r.ActualQuantityKg = *fields.ActualQuantityKg
	}
	if fields.WasteTypeConfirmed != nil {
		r.WasteTypeConfirmed = *fields.WasteTypeConfirmed
	}
	if fields.CollectorNotes != nil {
		r.CollectorNotes = *fields.CollectorNotes
	}

	return true, nil
}

func (m *MemoryRepository) FindActive(ctx context.Context) ([]*domain.Collector, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Collector, 0, len(m.collectors))
	for _, c := range m.collectors {
		if c.Active {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryRepository) filter(keep func(*domain.Report) bool) []*domain.Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Report, 0, len(m.reports))
	for _, r := range m.reports {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out
}
