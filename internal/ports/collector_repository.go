package ports

import (
	"context"

	"waste-routing-service/internal/domain"
)

// Port: a boundary for retrieving Collector entities.
type CollectorRepository interface {
	// Retrieve all collectors eligible for assignment.
	FindActive(ctx context.Context) ([]*domain.Collector, error)
}
