package domain

import (
	"errors"
	"time"
)

// Sentinel errors shared across the engine and its adapters.
var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrForbidden          = errors.New("forbidden")
	ErrReportNotFound     = errors.New("report not found")
)

type WasteType string

const (
	WasteOrganic    WasteType = "organic"
	WastePlastic    WasteType = "plastic"
	WastePaper      WasteType = "paper"
	WasteMetal      WasteType = "metal"
	WasteGlass      WasteType = "glass"
	WasteElectronic WasteType = "electronic"
	WasteHazardous  WasteType = "hazardous"
	WasteMixed      WasteType = "mixed"
	WasteOther      WasteType = "other"
)

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Rank orders urgencies: critical > high > medium > low.
// Unknown values rank below low so malformed data never jumps the queue.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 4
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	}
	return 0
}

type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusAssigned   ReportStatus = "assigned"
	StatusInProgress ReportStatus = "in_progress"
	StatusCollected  ReportStatus = "collected"
	StatusResolved   ReportStatus = "resolved"
	StatusCancelled  ReportStatus = "cancelled"
)

// Terminal reports the statuses a report can never leave.
func (s ReportStatus) Terminal() bool {
	return s == StatusCollected || s == StatusResolved || s == StatusCancelled
}

// Open reports whether a report still counts toward a collector's
// workload and route.
func (s ReportStatus) Open() bool {
	return s == StatusAssigned || s == StatusInProgress
}

// CanTransition is the single source of truth for the report status
// machine: pending → assigned → in_progress → {collected, resolved},
// with cancellation allowed from any non-terminal state.
func (s ReportStatus) CanTransition(to ReportStatus) bool {
	if to == StatusCancelled {
		return !s.Terminal()
	}
	switch s {
	case StatusPending:
		return to == StatusAssigned
	case StatusAssigned:
		return to == StatusInProgress
	case StatusInProgress:
		return to == StatusCollected || to == StatusResolved
	}
	return false
}

// Represents a single geotagged waste-pickup request.
// Status timestamps are write-once: each is set by exactly one
// transition and never rewritten afterwards.
type Report struct {
	ReportID           string
	Location           Coordinates
	WasteType          WasteType
	Urgency            Urgency
	Status             ReportStatus
	AssignedCollector  string
	ActualQuantityKg   float64
	WasteTypeConfirmed bool
	CollectorNotes     string
	CreatedAt          time.Time
	AssignedAt         *time.Time
	CollectedAt        *time.Time
	ResolvedAt         *time.Time
}
