// Package customer provides the Customer catalog.
// Customers are the billing counterparties an owner issues invoices to.
package customer

import (
	"context"
	"regexp"

	"factura/internal/core/apperror"
	"factura/internal/core/entity"
	"factura/internal/core/id"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Customer represents a billing counterparty owned by a single user.
// Immutable with respect to the invoice engine: invoices reference
// customers but never modify them.
type Customer struct {
	entity.BaseEntity
	entity.Owned

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Address is the billing address
	Address *string `db:"address" json:"address,omitempty"`

	// GSTIN is the customer's tax registration number
	GSTIN *string `db:"gstin" json:"gstin,omitempty"`
}

// New creates a new Customer for the given owner.
func New(ownerID id.ID, name string) *Customer {
	return &Customer{
		BaseEntity: entity.NewBaseEntity(),
		Owned:      entity.Owned{OwnerID: ownerID},
		Name:       name,
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if id.IsNil(c.OwnerID) {
		return apperror.NewValidation("owner is required").
			WithDetail("field", "ownerId")
	}

	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
