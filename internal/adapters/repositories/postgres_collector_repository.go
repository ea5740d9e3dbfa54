package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"waste-routing-service/internal/domain"
)

// Postgres-backed implementation of the CollectorRepository port.
type PostgresCollectorRepository struct{ DB *sql.DB }

func NewPostgresCollectorRepository(db *sql.DB) *PostgresCollectorRepository {
	return &PostgresCollectorRepository{DB: db}
}

// Return all collectors flagged active, in stable ID order.
func (p *PostgresCollectorRepository) FindActive(ctx context.Context) ([]*domain.Collector, error) {
	if p.DB == nil {
		return nil, errors.New("postgres collector repository: DB is nil")
	}

	query := `
	SELECT
		collector_id,
		name,
		active
	FROM collectors
	WHERE active
	ORDER BY collector_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find active collectors: query collectors table: %w", err)
	}
	defer rows.Close()

	collectors := make([]*domain.Collector, 0, 16)
	for rows.Next() {
		var c domain.Collector
		if err := rows.Scan(&c.CollectorID, &c.Name, &c.Active); err != nil {
			return nil, fmt.Errorf("find active collectors: scan row: %w", err)
		}
		collectors = append(collectors, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find active collectors: row iteration: %w", err)
	}
	return collectors, nil
}
