package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"waste-routing-service/internal/domain"
	"waste-routing-service/internal/platform/obs"
	"waste-routing-service/internal/ports"
)

// Postgres-backed implementation of the ReportRepository port.
type PostgresReportRepository struct{ DB *sql.DB }

func NewPostgresReportRepository(db *sql.DB) *PostgresReportRepository {
	return &PostgresReportRepository{DB: db}
}

const reportColumns = `
	report_id,
	latitude,
	longitude,
	waste_type,
	urgency,
	status,
	assigned_collector,
	actual_quantity_kg,
	waste_type_confirmed,
	collector_notes,
	created_at,
	assigned_at,
	collected_at,
	resolved_at
`

func (p *PostgresReportRepository) GetReport(ctx context.Context, reportID string) (*domain.Report, error) {
	if p.DB == nil {
		return nil, errors.New("postgres report repository: DB is nil")
	}

	query := `SELECT ` + reportColumns + ` FROM reports WHERE report_id = $1;`
	report, err := scanReport(p.DB.QueryRowContext(ctx, query, reportID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get report %q: %w", reportID, domain.ErrReportNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get report %q: %w", reportID, err)
	}
	return report, nil
}

func (p *PostgresReportRepository) FindOpenByCollector(ctx context.Context, collectorID string) (_ []*domain.Report, err error) {
	defer obs.Time(ctx, "reports.FindOpenByCollector")(&err)

	query := `
	SELECT ` + reportColumns + `
	FROM reports
	WHERE assigned_collector = $1
		AND status IN ('assigned', 'in_progress')
	ORDER BY report_id;
	`
	return p.queryReports(ctx, query, collectorID)
}

func (p *PostgresReportRepository) FindPending(ctx context.Context) (_ []*domain.Report, err error) {
	defer obs.Time(ctx, "reports.FindPending")(&err)

	query := `
	SELECT ` + reportColumns + `
	FROM reports
	WHERE status = 'pending'
	ORDER BY created_at, report_id;
	`
	return p.queryReports(ctx, query)
}

func (p *PostgresReportRepository) FindByCollector(ctx context.Context, collectorID string) (_ []*domain.Report, err error) {
	defer obs.Time(ctx, "reports.FindByCollector")(&err)

	query := `
	SELECT ` + reportColumns + `
	FROM reports
	WHERE assigned_collector = $1
	ORDER BY report_id;
	`
	return p.queryReports(ctx, query, collectorID)
}

func (p *PostgresReportRepository) CountByCollectorAndStatus(
	ctx context.Context,
	collectorID string,
	statuses ...domain.ReportStatus,
) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	placeholders := make([]string, 0, len(statuses))
	args := []any{collectorID}
	for i, s := range statuses {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, string(s))
	}

	query := `
	SELECT COUNT(*)
	FROM reports
	WHERE assigned_collector = $1
		AND status IN (` + strings.Join(placeholders, ", ") + `);
	`

	var n int
	if err := p.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reports for %q: %w", collectorID, err)
	}
	return n, nil
}

// TryTransition applies the status change as one conditional UPDATE.
// The WHERE clause on the current status is what makes concurrent
// claims safe: only one of two racing updates can match the row.
func (p *PostgresReportRepository) TryTransition(
	ctx context.Context,
	reportID string,
	from, to domain.ReportStatus,
	fields ports.TransitionFields,
) (_ bool, err error) {
	defer obs.Time(ctx, "reports.TryTransition")(&err)

	if !from.CanTransition(to) {
		return false, nil
	}

	set := []string{"status = $3"}
	args := []any{reportID, string(from), string(to)}

	appendSet := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.AssignedCollector != nil {
		appendSet("assigned_collector", *fields.AssignedCollector)
	}
	if fields.AssignedAt != nil {
		// COALESCE keeps the timestamp write-once under replays.
		args = append(args, *fields.AssignedAt)
		set = append(set, fmt.Sprintf("assigned_at = COALESCE(assigned_at, $%d)", len(args)))
	}
	if fields.CollectedAt != nil {
		args = append(args, *fields.CollectedAt)
		set = append(set, fmt.Sprintf("collected_at = COALESCE(collected_at, $%d)", len(args)))
	}
	if fields.ResolvedAt != nil {
		args = append(args, *fields.ResolvedAt)
		set = append(set, fmt.Sprintf("resolved_at = COALESCE(resolved_at, $%d)", len(args)))
	}
	if fields.ActualQuantityKg != nil {
		appendSet("actual_quantity_kg", *fields.ActualQuantityKg)
	}
	if fields.WasteTypeConfirmed != nil {
		appendSet("waste_type_confirmed", *fields.WasteTypeConfirmed)
	}
	if fields.CollectorNotes != nil {
		appendSet("collector_notes", *fields.CollectorNotes)
	}

	query := `
	UPDATE reports
	SET ` + strings.Join(set, ", ") + `
	WHERE report_id = $1
		AND status = $2;
	`

	res, err := p.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("transition report %q %s -> %s: %w", reportID, from, to, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("transition report %q: rows affected: %w", reportID, err)
	}
	return affected > 0, nil
}

func (p *PostgresReportRepository) queryReports(ctx context.Context, query string, args ...any) ([]*domain.Report, error) {
	if p.DB == nil {
		return nil, errors.New("postgres report repository: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports table: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.Report, 0, 64)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report row iteration: %w", err)
	}
	return reports, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*domain.Report, error) {
	var r domain.Report
	var collector, notes sql.NullString
	var quantity sql.NullFloat64

	err := row.Scan(
		&r.ReportID,
		&r.Location.Lat,
		&r.Location.Lon,
		&r.WasteType,
		&r.Urgency,
		&r.Status,
		&collector,
		&quantity,
		&r.WasteTypeConfirmed,
		&notes,
		&r.CreatedAt,
		&r.AssignedAt,
		&r.CollectedAt,
		&r.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}

	r.AssignedCollector = collector.String
	r.ActualQuantityKg = quantity.Float64
	r.CollectorNotes = notes.String
	return &r, nil
}
