package postgres

import (
	"context"
	"database/sql"
	"errors"

	"zapshift/internal/domain"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

// CreateIfAbsent inserts the payment unless one already exists for the
// transaction id. ON CONFLICT DO NOTHING on the transaction_id key makes
// the insert a single atomic conditional write: among concurrent
// reconciliation attempts exactly one inserts, the rest see zero rows
// affected.
func (r *PaymentRepository) CreateIfAbsent(ctx context.Context, payment *domain.Payment) (bool, error) {
	query := `
		INSERT INTO payments (transaction_id, amount, currency, customer_email, parcel_id, parcel_name, status, tracking_id, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (transaction_id) DO NOTHING
	`

	result, err := r.q.ExecContext(ctx, query,
		payment.TransactionID,
		payment.Amount,
		payment.Currency,
		payment.CustomerEmail,
		payment.ParcelID,
		payment.ParcelName,
		payment.Status,
		payment.TrackingID,
		payment.PaidAt,
	)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

// GetByTransactionID retrieves a payment by transaction id.
// Returns nil if no payment exists for the id.
func (r *PaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	query := `
		SELECT transaction_id, amount, currency, customer_email, parcel_id, parcel_name, status, tracking_id, paid_at
		FROM payments WHERE transaction_id = $1
	`

	var payment domain.Payment
	err := r.q.QueryRowContext(ctx, query, transactionID).Scan(
		&payment.TransactionID,
		&payment.Amount,
		&payment.Currency,
		&payment.CustomerEmail,
		&payment.ParcelID,
		&payment.ParcelName,
		&payment.Status,
		&payment.TrackingID,
		&payment.PaidAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &payment, nil
}

// List retrieves payments newest first, optionally filtered by customer email.
func (r *PaymentRepository) List(ctx context.Context, customerEmail string) ([]*domain.Payment, error) {
	query := `
		SELECT transaction_id, amount, currency, customer_email, parcel_id, parcel_name, status, tracking_id, paid_at
		FROM payments ORDER BY paid_at DESC
	`
	args := []any{}
	if customerEmail != "" {
		query = `
			SELECT transaction_id, amount, currency, customer_email, parcel_id, parcel_name, status, tracking_id, paid_at
			FROM payments WHERE customer_email = $1 ORDER BY paid_at DESC
		`
		args = append(args, customerEmail)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(
			&payment.TransactionID,
			&payment.Amount,
			&payment.Currency,
			&payment.CustomerEmail,
			&payment.ParcelID,
			&payment.ParcelName,
			&payment.Status,
			&payment.TrackingID,
			&payment.PaidAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}
	return payments, rows.Err()
}
