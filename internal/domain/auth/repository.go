package auth

import (
	"context"

	"factura/internal/core/id"
)

// Repository defines user persistence.
type Repository interface {
	// Create inserts a new user. A duplicate email yields a
	// DUPLICATE_ENTRY error.
	Create(ctx context.Context, u *User) error

	// GetByEmail loads a user by login email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID loads a user by id
	GetByID(ctx context.Context, userID id.ID) (*User, error)
}
