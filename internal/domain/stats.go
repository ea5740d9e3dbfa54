package domain

// CollectorStats is a read-only aggregate of one collector's reports,
// intended for dashboard display. EstimatedMinutesRemaining uses a flat
// per-stop average rather than the per-report service estimate: it is a
// cheap figure for monitoring, not a routing input.
type CollectorStats struct {
	CollectorID               string `json:"collector_id"`
	TotalAssigned             int    `json:"total_assigned"`
	Pending                   int    `json:"pending"`
	InProgress                int    `json:"in_progress"`
	CompletedToday            int    `json:"completed_today"`
	EstimatedMinutesRemaining int    `json:"estimated_minutes_remaining"`
}
