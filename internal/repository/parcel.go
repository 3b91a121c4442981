package repository

import (
	"context"

	"zapshift/internal/domain"
)

// ParcelRepository defines the persistence operations for parcels.
type ParcelRepository interface {
	// Create persists a new parcel.
	Create(ctx context.Context, parcel *domain.Parcel) error

	// GetByID retrieves a parcel by ID.
	GetByID(ctx context.Context, id string) (*domain.Parcel, error)

	// List retrieves parcels newest first, optionally filtered by sender email.
	List(ctx context.Context, senderEmail string) ([]*domain.Parcel, error)

	// Delete removes a parcel.
	Delete(ctx context.Context, id string) error

	// MarkPaid sets payment status to paid, delivery status to
	// pending-pickup and stores the tracking id. A tracking id already on
	// the parcel is never overwritten; the call is then a no-op.
	MarkPaid(ctx context.Context, id, trackingID string) error

	// AssignRider binds a rider to the parcel and moves its delivery
	// status to rider-assigned.
	AssignRider(ctx context.Context, id string, rider *domain.Rider) error
}
