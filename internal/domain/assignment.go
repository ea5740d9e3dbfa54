package domain

// AssignmentReason explains a zero-assignment outcome. Neither case is
// an error: an empty pool and an empty roster are both valid states.
type AssignmentReason string

const (
	ReasonAssigned           AssignmentReason = "assigned"
	ReasonNoPendingReports   AssignmentReason = "no_pending_reports"
	ReasonNoActiveCollectors AssignmentReason = "no_active_collectors"
)

// A single report→collector pairing produced by auto-assignment.
type Assignment struct {
	ReportID    string
	CollectorID string
}

// AssignmentBatch is the result of one auto-assignment run: the pairs
// that were applied plus the count of reports left pending (capped-out
// collectors or lost concurrent claims).
type AssignmentBatch struct {
	Assignments []Assignment
	Unassigned  int
	Reason      AssignmentReason
}
