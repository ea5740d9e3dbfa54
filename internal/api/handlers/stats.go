package handlers

import (
	"log"
	"net/http"

	"waste-routing-service/internal/ports"
	"waste-routing-service/internal/services"
)

// StatsHandler exposes per-collector monitoring aggregates, optionally
// fronted by a short-TTL cache.
type StatsHandler struct {
	Repo  ports.ReportRepository
	Clock ports.Clock
	Cache ports.StatsCache
}

func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	collectorID := r.PathValue("id")
	if collectorID == "" {
		writeError(w, r, http.StatusBadRequest, "collector id is required")
		return
	}

	if h.Cache != nil {
		cached, hit, err := h.Cache.Get(r.Context(), collectorID)
		if err != nil {
			// Cache trouble degrades to a repository read.
			log.Printf("stats cache get failed: collector=%s err=%v", collectorID, err)
		} else if hit {
			writeJSON(w, r, http.StatusOK, cached)
			return
		}
	}

	stats, err := services.CollectorStats(r.Context(), h.Repo, collectorID, h.Clock.Today())
	if err != nil {
		log.Printf("collector stats failed: collector=%s err=%v", collectorID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.Cache != nil {
		if err := h.Cache.Put(r.Context(), collectorID, stats); err != nil {
			log.Printf("stats cache put failed: collector=%s err=%v", collectorID, err)
		}
	}

	writeJSON(w, r, http.StatusOK, stats)
}
