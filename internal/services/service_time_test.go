package services

import (
	"testing"

	"waste-routing-service/internal/domain"
)

func TestEstimateCollectionMinutes(t *testing.T) {
	base := &domain.Report{WasteType: domain.WastePlastic, Urgency: domain.UrgencyLow}
	if got := EstimateCollectionMinutes(base); got != 15 {
		t.Fatalf("base estimate = %d, want 15", got)
	}

	hazardousCritical := &domain.Report{WasteType: domain.WasteHazardous, Urgency: domain.UrgencyCritical}
	if got := EstimateCollectionMinutes(hazardousCritical); got != 45 {
		t.Fatalf("hazardous+critical estimate = %d, want 45", got)
	}

	electronicHigh := &domain.Report{WasteType: domain.WasteElectronic, Urgency: domain.UrgencyHigh}
	if got := EstimateCollectionMinutes(electronicHigh); got != 30 {
		t.Fatalf("electronic+high estimate = %d, want 30", got)
	}

	mixedMedium := &domain.Report{WasteType: domain.WasteMixed, Urgency: domain.UrgencyMedium}
	if got := EstimateCollectionMinutes(mixedMedium); got != 20 {
		t.Fatalf("mixed+medium estimate = %d, want 20", got)
	}
}

func TestEstimateIsDeterministic(t *testing.T) {
	r := &domain.Report{WasteType: domain.WasteHazardous, Urgency: domain.UrgencyHigh}
	first := EstimateCollectionMinutes(r)
	for i := 0; i < 10; i++ {
		if got := EstimateCollectionMinutes(r); got != first {
			t.Fatalf("estimate changed between calls: %d vs %d", got, first)
		}
	}
}
