package dto

import "time"

type ReportResponse struct {
	ReportID          string     `json:"report_id"`
	Latitude          float64    `json:"latitude"`
	Longitude         float64    `json:"longitude"`
	WasteType         string     `json:"waste_type"`
	Urgency           string     `json:"urgency"`
	Status            string     `json:"status"`
	AssignedCollector string     `json:"assigned_collector,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	AssignedAt        *time.Time `json:"assigned_at,omitempty"`
	CollectedAt       *time.Time `json:"collected_at,omitempty"`
}

type ListReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
}
