package repository

import (
	"context"

	"zapshift/internal/domain"
)

// PaymentRepository defines the persistence operations for payments.
type PaymentRepository interface {
	// CreateIfAbsent atomically inserts the payment unless a record with
	// the same transaction id already exists. It reports whether the row
	// was inserted. This single conditional write is the idempotency
	// anchor for payment reconciliation; callers must not substitute a
	// lookup-then-insert sequence.
	CreateIfAbsent(ctx context.Context, payment *domain.Payment) (bool, error)

	// GetByTransactionID retrieves a payment by transaction id.
	// Returns nil if no payment exists for the id.
	GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)

	// List retrieves payments newest first, optionally filtered by
	// customer email.
	List(ctx context.Context, customerEmail string) ([]*domain.Payment, error)
}
