package reports

import (
	"context"
	"time"

	"factura/internal/core/id"
	"factura/internal/core/types"
)

// Repository defines the read queries behind reports. Summary queries
// left-join customers; a missing customer yields an empty CustomerName
// which the service replaces with the placeholder.
type Repository interface {
	// InvoicesByDateRange loads summaries with invoice_date in the
	// closed interval [from, to], newest first.
	InvoicesByDateRange(ctx context.Context, ownerID id.ID, from, to time.Time) ([]InvoiceSummary, error)

	// InvoicesByCustomer loads all summaries of one customer, newest first
	InvoicesByCustomer(ctx context.Context, ownerID, customerID id.ID) ([]InvoiceSummary, error)

	// RecentInvoices loads the latest summaries up to limit
	RecentInvoices(ctx context.Context, ownerID id.ID, limit int) ([]InvoiceSummary, error)

	// CountCustomers returns the owner's customer count
	CountCustomers(ctx context.Context, ownerID id.ID) (int64, error)

	// CountItems returns the owner's item count
	CountItems(ctx context.Context, ownerID id.ID) (int64, error)

	// CountInvoices returns the owner's invoice count
	CountInvoices(ctx context.Context, ownerID id.ID) (int64, error)

	// SumSales returns the sum of all grand totals
	SumSales(ctx context.Context, ownerID id.ID) (types.Money, error)

	// SumSalesSince returns the sum of grand totals with
	// invoice_date >= since
	SumSalesSince(ctx context.Context, ownerID id.ID, since time.Time) (types.Money, error)
}
