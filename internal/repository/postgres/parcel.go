package postgres

import (
	"context"
	"database/sql"
	"errors"

	"zapshift/internal/domain"
	"zapshift/internal/repository"
)

// ParcelRepository is a PostgreSQL implementation of repository.ParcelRepository.
type ParcelRepository struct {
	q Querier
}

// NewParcelRepository creates a new PostgreSQL parcel repository.
func NewParcelRepository(db *sql.DB) *ParcelRepository {
	return &ParcelRepository{q: db}
}

// NewParcelRepositoryWithTx creates a parcel repository using a transaction.
func NewParcelRepositoryWithTx(tx *sql.Tx) *ParcelRepository {
	return &ParcelRepository{q: tx}
}

const parcelColumns = `id, name, sender_email, receiver_name, receiver_address, cost, payment_status, delivery_status, tracking_id, rider_id, rider_name, rider_email, created_at`

// Create persists a new parcel.
func (r *ParcelRepository) Create(ctx context.Context, parcel *domain.Parcel) error {
	query := `
		INSERT INTO parcels (id, name, sender_email, receiver_name, receiver_address, cost, payment_status, delivery_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		parcel.ID,
		parcel.Name,
		parcel.SenderEmail,
		parcel.ReceiverName,
		parcel.ReceiverAddress,
		parcel.Cost,
		parcel.PaymentStatus,
		parcel.DeliveryStatus,
		parcel.CreatedAt,
	)

	return err
}

// GetByID retrieves a parcel by ID.
func (r *ParcelRepository) GetByID(ctx context.Context, id string) (*domain.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels WHERE id = $1`

	parcel, err := scanParcel(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return parcel, nil
}

// List retrieves parcels newest first, optionally filtered by sender email.
func (r *ParcelRepository) List(ctx context.Context, senderEmail string) ([]*domain.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels ORDER BY created_at DESC`
	args := []any{}
	if senderEmail != "" {
		query = `SELECT ` + parcelColumns + ` FROM parcels WHERE sender_email = $1 ORDER BY created_at DESC`
		args = append(args, senderEmail)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parcels []*domain.Parcel
	for rows.Next() {
		parcel, err := scanParcel(rows)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, parcel)
	}
	return parcels, rows.Err()
}

// Delete removes a parcel.
func (r *ParcelRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM parcels WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// MarkPaid records a successful payment on the parcel. The tracking_id
// guard keeps an already-issued tracking id from ever being overwritten,
// so a replayed reconciliation leaves the parcel untouched.
func (r *ParcelRepository) MarkPaid(ctx context.Context, id, trackingID string) error {
	query := `
		UPDATE parcels
		SET payment_status = $1, delivery_status = $2, tracking_id = $3
		WHERE id = $4 AND tracking_id IS NULL
	`

	result, err := r.q.ExecContext(ctx, query, domain.ParcelPaid, domain.DeliveryPendingPickup, trackingID, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		// Distinguish "already paid" (fine) from "no such parcel".
		var exists bool
		err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM parcels WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
	}

	return nil
}

// AssignRider binds a rider to the parcel and moves its delivery status to
// rider-assigned.
func (r *ParcelRepository) AssignRider(ctx context.Context, id string, rider *domain.Rider) error {
	query := `
		UPDATE parcels
		SET delivery_status = $1, rider_id = $2, rider_name = $3, rider_email = $4
		WHERE id = $5
	`

	result, err := r.q.ExecContext(ctx, query, domain.DeliveryRiderAssigned, rider.ID, rider.Name, rider.Email, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanParcel(s scanner) (*domain.Parcel, error) {
	var parcel domain.Parcel
	var trackingID, riderID, riderName, riderEmail sql.NullString

	err := s.Scan(
		&parcel.ID,
		&parcel.Name,
		&parcel.SenderEmail,
		&parcel.ReceiverName,
		&parcel.ReceiverAddress,
		&parcel.Cost,
		&parcel.PaymentStatus,
		&parcel.DeliveryStatus,
		&trackingID,
		&riderID,
		&riderName,
		&riderEmail,
		&parcel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	parcel.TrackingID = trackingID.String
	parcel.RiderID = riderID.String
	parcel.RiderName = riderName.String
	parcel.RiderEmail = riderEmail.String

	return &parcel, nil
}
