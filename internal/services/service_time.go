package services

import "waste-routing-service/internal/domain"

const baseCollectionMinutes = 15

// EstimateCollectionMinutes returns the expected on-site service time
// for one report. Deterministic: base time plus additive surcharges for
// the waste category and the urgency tier.
func EstimateCollectionMinutes(report *domain.Report) int {
	minutes := baseCollectionMinutes

	switch report.WasteType {
	case domain.WasteHazardous:
		minutes += 20
	case domain.WasteElectronic:
		minutes += 10
	case domain.WasteMixed:
		minutes += 5
	}

	switch report.Urgency {
	case domain.UrgencyCritical:
		minutes += 10
	case domain.UrgencyHigh:
		minutes += 5
	}

	return minutes
}
