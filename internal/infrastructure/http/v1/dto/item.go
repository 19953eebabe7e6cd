package dto

import (
	"factura/internal/core/types"
)

// ItemRequest creates or updates an item. Stock is honored on create
// only; once the item exists, stock moves through invoices.
type ItemRequest struct {
	Name  string      `json:"name" binding:"required"`
	Unit  string      `json:"unit"`
	Price types.Money `json:"price"`
	Stock int64       `json:"stock"`
}
