package postgres

import (
	"context"
	"database/sql"
	"errors"

	"zapshift/internal/domain"
	"zapshift/internal/repository"
)

// RiderRepository is a PostgreSQL implementation of repository.RiderRepository.
type RiderRepository struct {
	q Querier
}

// NewRiderRepository creates a new PostgreSQL rider repository.
func NewRiderRepository(db *sql.DB) *RiderRepository {
	return &RiderRepository{q: db}
}

// NewRiderRepositoryWithTx creates a rider repository using a transaction.
func NewRiderRepositoryWithTx(tx *sql.Tx) *RiderRepository {
	return &RiderRepository{q: tx}
}

// Create persists a new rider application.
func (r *RiderRepository) Create(ctx context.Context, rider *domain.Rider) error {
	query := `
		INSERT INTO riders (id, name, email, district, status, work_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		rider.ID,
		rider.Name,
		rider.Email,
		rider.District,
		rider.Status,
		rider.WorkStatus,
		rider.CreatedAt,
	)

	return err
}

// GetByID retrieves a rider by ID.
func (r *RiderRepository) GetByID(ctx context.Context, id string) (*domain.Rider, error) {
	query := `SELECT id, name, email, district, status, work_status, created_at FROM riders WHERE id = $1`

	var rider domain.Rider
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&rider.ID,
		&rider.Name,
		&rider.Email,
		&rider.District,
		&rider.Status,
		&rider.WorkStatus,
		&rider.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &rider, nil
}

// List retrieves riders, optionally filtered by application status.
func (r *RiderRepository) List(ctx context.Context, status domain.ApplicationStatus) ([]*domain.Rider, error) {
	query := `SELECT id, name, email, district, status, work_status, created_at FROM riders ORDER BY created_at DESC`
	args := []any{}
	if status != "" {
		query = `SELECT id, name, email, district, status, work_status, created_at FROM riders WHERE status = $1 ORDER BY created_at DESC`
		args = append(args, status)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var riders []*domain.Rider
	for rows.Next() {
		var rider domain.Rider
		if err := rows.Scan(
			&rider.ID,
			&rider.Name,
			&rider.Email,
			&rider.District,
			&rider.Status,
			&rider.WorkStatus,
			&rider.CreatedAt,
		); err != nil {
			return nil, err
		}
		riders = append(riders, &rider)
	}
	return riders, rows.Err()
}

// UpdateApplication sets the application status and work status of a rider.
func (r *RiderRepository) UpdateApplication(ctx context.Context, id string, status domain.ApplicationStatus, work domain.WorkStatus) error {
	query := `UPDATE riders SET status = $1, work_status = $2 WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, status, work, id)
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

// UpdateWorkStatus sets only the work status of a rider.
func (r *RiderRepository) UpdateWorkStatus(ctx context.Context, id string, work domain.WorkStatus) error {
	query := `UPDATE riders SET work_status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, work, id)
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
