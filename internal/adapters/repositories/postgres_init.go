package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"waste-routing-service/internal/domain"
)

// Initialize the Postgres schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createReportsQuery := `
	CREATE TABLE IF NOT EXISTS reports (
		report_id TEXT PRIMARY KEY,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		waste_type TEXT NOT NULL,
		urgency TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		assigned_collector TEXT,
		actual_quantity_kg DOUBLE PRECISION,
		waste_type_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		collector_notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		assigned_at TIMESTAMPTZ,
		collected_at TIMESTAMPTZ,
		resolved_at TIMESTAMPTZ
	);
	`

	createCollectorsQuery := `
	CREATE TABLE IF NOT EXISTS collectors (
		collector_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	createStatusIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_reports_status
	ON reports(status);
	`

	createCollectorIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_reports_collector_status
	ON reports(assigned_collector, status);
	`

	statements := []string{
		createReportsQuery,
		createCollectorsQuery,
		createStatusIndexQuery,
		createCollectorIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ReportSeed struct {
	ReportID  string  `json:"report_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	WasteType string  `json:"waste_type"`
	Urgency   string  `json:"urgency"`
}

type CollectorSeed struct {
	CollectorID string `json:"collector_id"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
}

type SeedFile struct {
	Reports    []ReportSeed    `json:"reports"`
	Collectors []CollectorSeed `json:"collectors"`
}

// Populate the database with demo reports and collectors from a JSON
// file. Reports without an ID get a generated one; all seeded reports
// start pending.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed data: read %q: %w", jsonPath, err)
	}

	var data SeedFile
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed data: parse json: %w", err)
	}

	for i := range data.Reports {
		r := &data.Reports[i]
		if strings.TrimSpace(r.ReportID) == "" {
			r.ReportID = uuid.NewString()
		}
		loc := domain.Coordinates{Lat: r.Latitude, Lon: r.Longitude}
		if err := loc.Validate(); err != nil {
			return fmt.Errorf("seed data: report at index %d: %w", i, err)
		}
	}

	for i, c := range data.Collectors {
		if strings.TrimSpace(c.CollectorID) == "" {
			return fmt.Errorf("seed data: collector at index %d: collector_id cannot be empty", i)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed data: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	reportQuery := `
	INSERT INTO reports (
		report_id,
		latitude,
		longitude,
		waste_type,
		urgency,
		status,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, 'pending', $6)
	ON CONFLICT (report_id) DO NOTHING;
	`
	reportStmt, err := tx.Prepare(reportQuery)
	if err != nil {
		return fmt.Errorf("seed data: prepare report insert: %w", err)
	}
	defer reportStmt.Close()

	now := time.Now()
	for _, r := range data.Reports {
		if _, err := reportStmt.Exec(r.ReportID, r.Latitude, r.Longitude, r.WasteType, r.Urgency, now); err != nil {
			return fmt.Errorf("seed data: insert report_id=%s: %w", r.ReportID, err)
		}
	}

	collectorQuery := `
	INSERT INTO collectors (
		collector_id,
		name,
		active
	)
	VALUES ($1, $2, $3)
	ON CONFLICT (collector_id) DO UPDATE
	SET name = EXCLUDED.name,
		active = EXCLUDED.active;
	`
	collectorStmt, err := tx.Prepare(collectorQuery)
	if err != nil {
		return fmt.Errorf("seed data: prepare collector insert: %w", err)
	}
	defer collectorStmt.Close()

	for _, c := range data.Collectors {
		if _, err := collectorStmt.Exec(c.CollectorID, c.Name, c.Active); err != nil {
			return fmt.Errorf("seed data: insert collector_id=%s: %w", c.CollectorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed data: commit tx: %w", err)
	}

	return nil
}
