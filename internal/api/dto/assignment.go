package dto

type AutoAssignRequest struct {
	ConsiderUrgency     bool `json:"consider_urgency"`
	BalanceWorkload     bool `json:"balance_workload"`
	PrioritizeProximity bool `json:"prioritize_proximity"`
	MaxPerCollector     int  `json:"max_per_collector"`
}

type AssignmentResponse struct {
	ReportID    string `json:"report_id"`
	CollectorID string `json:"collector_id"`
}

type AutoAssignResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	Unassigned  int                  `json:"unassigned"`
	Reason      string               `json:"reason"`
}

type AssignReportRequest struct {
	CollectorID string `json:"collector_id"`
}

type StartPickupRequest struct {
	CollectorID string `json:"collector_id"`
}

type CompletePickupRequest struct {
	CollectorID        string  `json:"collector_id"`
	ActualQuantityKg   float64 `json:"actual_quantity_kg"`
	WasteTypeConfirmed bool    `json:"waste_type_confirmed"`
	Notes              string  `json:"notes"`
}
