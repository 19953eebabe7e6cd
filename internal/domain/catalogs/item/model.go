// Package item provides the Item catalog.
// Items carry the unit price used for invoice pricing and the on-hand
// stock balance maintained by the stock ledger.
package item

import (
	"context"

	"factura/internal/core/apperror"
	"factura/internal/core/entity"
	"factura/internal/core/id"
	"factura/internal/core/types"
)

// Item represents a sellable good or service owned by a single user.
type Item struct {
	entity.BaseEntity
	entity.Owned

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Unit is the unit of measure (e.g. "pcs", "kg")
	Unit string `db:"unit" json:"unit"`

	// Price is the current unit price. Invoices snapshot this value at
	// build time; later price changes do not affect existing invoices.
	Price types.Money `db:"price" json:"price"`

	// Stock is the on-hand quantity. Only the stock ledger mutates it.
	Stock int64 `db:"stock" json:"stock"`
}

// New creates a new Item for the given owner.
func New(ownerID id.ID, name string, price types.Money, stock int64) *Item {
	return &Item{
		BaseEntity: entity.NewBaseEntity(),
		Owned:      entity.Owned{OwnerID: ownerID},
		Name:       name,
		Unit:       "pcs",
		Price:      price,
		Stock:      stock,
	}
}

// Validate implements entity.Validatable.
func (i *Item) Validate(ctx context.Context) error {
	if id.IsNil(i.OwnerID) {
		return apperror.NewValidation("owner is required").
			WithDetail("field", "ownerId")
	}

	if i.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if i.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "price")
	}

	if i.Stock < 0 {
		return apperror.NewValidation("stock must not be negative").
			WithDetail("field", "stock")
	}

	return nil
}
