package domain

import "testing"

func TestStatusTransitions(t *testing.T) {
	allowed := []struct {
		from ReportStatus
		to   ReportStatus
	}{
		{StatusPending, StatusAssigned},
		{StatusAssigned, StatusInProgress},
		{StatusInProgress, StatusCollected},
		{StatusInProgress, StatusResolved},
		{StatusPending, StatusCancelled},
		{StatusAssigned, StatusCancelled},
		{StatusInProgress, StatusCancelled},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransition(tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct {
		from ReportStatus
		to   ReportStatus
	}{
		{StatusPending, StatusInProgress},
		{StatusPending, StatusCollected},
		{StatusAssigned, StatusCollected},
		{StatusCollected, StatusAssigned},
		{StatusCollected, StatusCancelled},
		{StatusResolved, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusInProgress, StatusAssigned},
	}
	for _, tc := range denied {
		if tc.from.CanTransition(tc.to) {
			t.Errorf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	for _, s := range []ReportStatus{StatusCollected, StatusResolved, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("expected %s to be terminal", s)
		}
		if s.Open() {
			t.Errorf("expected %s not to be open", s)
		}
	}

	for _, s := range []ReportStatus{StatusAssigned, StatusInProgress} {
		if !s.Open() {
			t.Errorf("expected %s to be open", s)
		}
	}

	if StatusPending.Open() || StatusPending.Terminal() {
		t.Error("pending must be neither open nor terminal")
	}
}

func TestUrgencyRankOrdering(t *testing.T) {
	order := []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("expected %s to outrank %s", order[i], order[i-1])
		}
	}

	if Urgency("bogus").Rank() >= UrgencyLow.Rank() {
		t.Error("unknown urgency must rank below low")
	}
}

func TestCoordinatesValidate(t *testing.T) {
	if err := (Coordinates{Lat: 45, Lon: -120}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Coordinates{Lat: 90, Lon: 180}).Validate(); err != nil {
		t.Fatalf("boundary coordinates must be valid: %v", err)
	}

	if err := (Coordinates{Lat: 90.0001, Lon: 0}).Validate(); err == nil {
		t.Error("expected latitude out of range error")
	}
	if err := (Coordinates{Lat: 0, Lon: -180.5}).Validate(); err == nil {
		t.Error("expected longitude out of range error")
	}
}
