// Package auth provides user registration, login and JWT issuing.
// Each registered user owns their catalogs and invoices; the user id
// is the ownerID the rest of the system scopes by.
package auth

import (
	"context"
	"regexp"

	"factura/internal/core/apperror"
	"factura/internal/core/entity"
)

const minPasswordLength = 8

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User is a registered account.
type User struct {
	entity.BaseEntity

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Email is the login identifier, unique across all users
	Email string `db:"email" json:"email"`

	// PasswordHash is the bcrypt hash, never serialized
	PasswordHash string `db:"password_hash" json:"-"`
}

// Validate implements entity.Validatable.
func (u *User) Validate(ctx context.Context) error {
	if u.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if !emailRE.MatchString(u.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	if u.PasswordHash == "" {
		return apperror.NewValidation("password is required").
			WithDetail("field", "password")
	}

	return nil
}
