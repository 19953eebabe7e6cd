package dto

import (
	"factura/internal/core/id"
	"factura/internal/domain/invoice"
)

// InvoiceLineRequest is one requested invoice row.
type InvoiceLineRequest struct {
	ItemID   id.ID `json:"itemId" binding:"required"`
	Quantity int64 `json:"quantity"`
}

// InvoiceRequest builds or revises an invoice.
type InvoiceRequest struct {
	CustomerID id.ID                `json:"customerId" binding:"required"`
	Items      []InvoiceLineRequest `json:"items"`
}

// LineInputs converts the request rows to the service input form.
func (r *InvoiceRequest) LineInputs() []invoice.LineInput {
	inputs := make([]invoice.LineInput, len(r.Items))
	for i, it := range r.Items {
		inputs[i] = invoice.LineInput{ItemID: it.ItemID, Quantity: it.Quantity}
	}
	return inputs
}
