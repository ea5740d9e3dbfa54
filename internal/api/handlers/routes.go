package handlers

import (
	"log"
	"net/http"
	"strconv"

	"waste-routing-service/internal/api/dto"
	"waste-routing-service/internal/domain"
	"waste-routing-service/internal/ports"
	"waste-routing-service/internal/services"
)

// RouteHandler exposes per-collector route planning.
type RouteHandler struct {
	Repo ports.ReportRepository
}

// Route computes the collector's current visiting order. Optional
// lat/lon query parameters override the start location (e.g. the
// collector's live position); both must be present together.
func (h *RouteHandler) Route(w http.ResponseWriter, r *http.Request) {
	collectorID := r.PathValue("id")
	if collectorID == "" {
		writeError(w, r, http.StatusBadRequest, "collector id is required")
		return
	}

	var start *domain.Coordinates
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	if latStr != "" || lonStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lon, errLon := strconv.ParseFloat(lonStr, 64)
		if errLat != nil || errLon != nil {
			writeError(w, r, http.StatusBadRequest, "lat and lon must both be valid numbers")
			return
		}
		c := domain.Coordinates{Lat: lat, Lon: lon}
		if err := c.Validate(); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		start = &c
	}

	route, err := services.BuildRoute(r.Context(), h.Repo, collectorID, start)
	if err != nil {
		log.Printf("build route failed: collector=%s err=%v", collectorID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.RouteResponse{
		CollectorID:     route.CollectorID,
		StartLatitude:   route.Start.Lat,
		StartLongitude:  route.Start.Lon,
		TotalDistanceKm: route.TotalDistanceKm,
		TotalMinutes:    route.TotalMinutes,
		Stops:           make([]dto.RouteStopResponse, 0, len(route.Stops)),
	}
	for _, s := range route.Stops {
		res.Stops = append(res.Stops, dto.RouteStopResponse{
			ReportID:           s.Report.ReportID,
			Latitude:           s.Report.Location.Lat,
			Longitude:          s.Report.Location.Lon,
			WasteType:          string(s.Report.WasteType),
			Urgency:            string(s.Report.Urgency),
			DistanceFromPrevKm: s.DistanceFromPrevKm,
			ServiceMinutes:     s.ServiceMinutes,
			CumulativeMinutes:  s.CumulativeMinutes,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
