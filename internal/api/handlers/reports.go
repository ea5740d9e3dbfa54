package handlers

import (
	"log"
	"net/http"

	"waste-routing-service/internal/api/dto"
	"waste-routing-service/internal/ports"
)

// ReportHandler exposes read-only report retrieval endpoints.
type ReportHandler struct {
	Repo ports.ReportRepository
}

// Pending lists every report still awaiting assignment.
func (h *ReportHandler) Pending(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Repo.FindPending(r.Context())
	if err != nil {
		log.Printf("list pending reports failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListReportsResponse{
		Reports: make([]dto.ReportResponse, 0, len(reports)),
	}
	for _, rep := range reports {
		res.Reports = append(res.Reports, dto.ReportResponse{
			ReportID:          rep.ReportID,
			Latitude:          rep.Location.Lat,
			Longitude:         rep.Location.Lon,
			WasteType:         string(rep.WasteType),
			Urgency:           string(rep.Urgency),
			Status:            string(rep.Status),
			AssignedCollector: rep.AssignedCollector,
			CreatedAt:         rep.CreatedAt,
			AssignedAt:        rep.AssignedAt,
			CollectedAt:       rep.CollectedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
