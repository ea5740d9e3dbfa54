package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"waste-routing-service/internal/api/dto"
	"waste-routing-service/internal/domain"
	"waste-routing-service/internal/ports"
	"waste-routing-service/internal/services"
)

// AssignmentHandler exposes batch auto-assignment and the single-report
// lifecycle transitions.
type AssignmentHandler struct {
	Repo                   ports.ReportRepository
	Collectors             ports.CollectorRepository
	Clock                  ports.Clock
	DefaultMaxPerCollector int
}

// AutoAssign distributes all pending reports across active collectors.
func (h *AssignmentHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	var req dto.AutoAssignRequest
	if !decodeBody(w, r, &req) {
		return
	}

	maxPer := req.MaxPerCollector
	if maxPer == 0 {
		maxPer = h.DefaultMaxPerCollector
	}
	if maxPer < 1 {
		writeError(w, r, http.StatusBadRequest, "max_per_collector must be at least 1")
		return
	}

	batch, err := services.AutoAssign(r.Context(), h.Repo, h.Collectors, h.Clock, services.AssignOptions{
		ConsiderUrgency:     req.ConsiderUrgency,
		BalanceWorkload:     req.BalanceWorkload,
		PrioritizeProximity: req.PrioritizeProximity,
		MaxPerCollector:     maxPer,
	})
	if err != nil {
		log.Printf("auto assign failed: err=%v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.AutoAssignResponse{
		Assignments: make([]dto.AssignmentResponse, 0, len(batch.Assignments)),
		Unassigned:  batch.Unassigned,
		Reason:      string(batch.Reason),
	}
	for _, a := range batch.Assignments {
		res.Assignments = append(res.Assignments, dto.AssignmentResponse{
			ReportID:    a.ReportID,
			CollectorID: a.CollectorID,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Assign claims one pending report for a collector.
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	reportID := r.PathValue("id")

	var req dto.AssignReportRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.CollectorID == "" {
		writeError(w, r, http.StatusBadRequest, "collector_id is required")
		return
	}

	err := services.AssignReport(r.Context(), h.Repo, h.Clock, reportID, req.CollectorID)
	if !writeTransitionResult(w, r, err) {
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "assigned"})
}

// Start moves an assigned report to in_progress.
func (h *AssignmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	reportID := r.PathValue("id")

	var req dto.StartPickupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.CollectorID == "" {
		writeError(w, r, http.StatusBadRequest, "collector_id is required")
		return
	}

	err := services.StartPickup(r.Context(), h.Repo, reportID, req.CollectorID)
	if !writeTransitionResult(w, r, err) {
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "in_progress"})
}

// Complete moves an in_progress report to collected.
func (h *AssignmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	reportID := r.PathValue("id")

	var req dto.CompletePickupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.CollectorID == "" {
		writeError(w, r, http.StatusBadRequest, "collector_id is required")
		return
	}

	err := services.CompletePickup(r.Context(), h.Repo, h.Clock, reportID, req.CollectorID,
		services.CompletionDetails{
			ActualQuantityKg:   req.ActualQuantityKg,
			WasteTypeConfirmed: req.WasteTypeConfirmed,
			Notes:              req.Notes,
		})
	if !writeTransitionResult(w, r, err) {
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "collected"})
}

// Cancel is the administrative cancellation path.
func (h *AssignmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	reportID := r.PathValue("id")

	err := services.CancelReport(r.Context(), h.Repo, reportID)
	if !writeTransitionResult(w, r, err) {
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "cancelled"})
}

// decodeBody parses a single-object JSON body, rejecting unknown fields
// and trailing content. Returns false after writing the error response.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeTransitionResult maps domain errors onto HTTP statuses. Returns
// true when the transition succeeded.
func writeTransitionResult(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, domain.ErrReportNotFound):
		writeError(w, r, http.StatusNotFound, "report not found")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, r, http.StatusForbidden, "collector is not the assignee")
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, r, http.StatusConflict, "report status does not allow this transition")
	default:
		log.Printf("transition failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
	return false
}
