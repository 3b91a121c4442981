package repository

import (
	"context"

	"zapshift/internal/domain"
)

// RiderRepository defines the persistence operations for riders.
type RiderRepository interface {
	// Create persists a new rider application.
	Create(ctx context.Context, rider *domain.Rider) error

	// GetByID retrieves a rider by ID.
	GetByID(ctx context.Context, id string) (*domain.Rider, error)

	// List retrieves riders, optionally filtered by application status.
	List(ctx context.Context, status domain.ApplicationStatus) ([]*domain.Rider, error)

	// UpdateApplication sets the application status and work status of a rider.
	UpdateApplication(ctx context.Context, id string, status domain.ApplicationStatus, work domain.WorkStatus) error

	// UpdateWorkStatus sets only the work status of a rider.
	UpdateWorkStatus(ctx context.Context, id string, work domain.WorkStatus) error
}
