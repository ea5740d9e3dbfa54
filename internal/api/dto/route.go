package dto

type RouteStopResponse struct {
	ReportID           string  `json:"report_id"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	WasteType          string  `json:"waste_type"`
	Urgency            string  `json:"urgency"`
	DistanceFromPrevKm float64 `json:"distance_from_prev_km"`
	ServiceMinutes     int     `json:"service_minutes"`
	CumulativeMinutes  int     `json:"cumulative_minutes"`
}

type RouteResponse struct {
	CollectorID     string              `json:"collector_id"`
	StartLatitude   float64             `json:"start_latitude"`
	StartLongitude  float64             `json:"start_longitude"`
	TotalDistanceKm float64             `json:"total_distance_km"`
	TotalMinutes    int                 `json:"total_minutes"`
	Stops           []RouteStopResponse `json:"stops"`
}
