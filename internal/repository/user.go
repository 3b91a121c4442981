package repository

import (
	"context"

	"zapshift/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetAll retrieves all users, newest first.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// UpdateRole sets the role of the user with the given email.
	UpdateRole(ctx context.Context, email string, role domain.Role) error
}
