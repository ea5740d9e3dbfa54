package ports

import (
	"context"
	"time"

	"waste-routing-service/internal/domain"
)

// TransitionFields carries the write-once fields a status transition may
// set. Nil pointers leave the stored value untouched.
type TransitionFields struct {
	AssignedCollector  *string
	AssignedAt         *time.Time
	CollectedAt        *time.Time
	ResolvedAt         *time.Time
	ActualQuantityKg   *float64
	WasteTypeConfirmed *bool
	CollectorNotes     *string
}

// Port: a boundary for retrieving and transitioning Report entities.
//
// TryTransition is the engine's only mutation path. Implementations MUST
// apply it as an atomic check-and-set on the report's current status:
// the update happens only if the stored status still equals from, and
// the boolean reports whether it did. Two callers racing to claim the
// same pending report must never both succeed.
type ReportRepository interface {
	// Retrieve a single report by ID (domain.ErrReportNotFound if absent).
	GetReport(ctx context.Context, reportID string) (*domain.Report, error)
	// Retrieve a collector's reports with status in {assigned, in_progress}.
	FindOpenByCollector(ctx context.Context, collectorID string) ([]*domain.Report, error)
	// Retrieve all reports with status pending.
	FindPending(ctx context.Context) ([]*domain.Report, error)
	// Retrieve every report linked to a collector, any status.
	FindByCollector(ctx context.Context, collectorID string) ([]*domain.Report, error)
	// Count a collector's reports in any of the given statuses.
	CountByCollectorAndStatus(ctx context.Context, collectorID string, statuses ...domain.ReportStatus) (int, error)
	// Conditionally move a report from one status to another, setting
	// the given fields in the same atomic update. Returns false (no
	// error) when the precondition no longer holds.
	TryTransition(ctx context.Context, reportID string, from, to domain.ReportStatus, fields TransitionFields) (bool, error)
}
