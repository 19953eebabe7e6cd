package invoice

import (
	"context"

	"factura/internal/core/id"
	"factura/internal/domain"
)

// Repository defines invoice persistence. Create and Update write the
// header and all lines together and are meant to run inside the
// service's transaction.
type Repository interface {
	// Create inserts the invoice with its lines
	Create(ctx context.Context, inv *Invoice) error

	// GetByID loads the invoice with lines within the owner's data
	GetByID(ctx context.Context, ownerID, invoiceID id.ID) (*Invoice, error)

	// Update rewrites the header and replaces all lines
	Update(ctx context.Context, ownerID id.ID, inv *Invoice) error

	// List loads the owner's invoices (headers only, no lines)
	List(ctx context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[*Invoice], error)
}
