package reports

import (
	"context"
	"time"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/core/tx"
	"factura/internal/core/types"
)

// Service aggregates sales data for reporting. All reads of one report
// run inside a single read-only transaction for a consistent snapshot.
type Service struct {
	txm  tx.ReadOnlyManager
	repo Repository
	now  func() time.Time
}

// NewService creates a new reports service.
func NewService(txm tx.ReadOnlyManager, repo Repository) *Service {
	return &Service{txm: txm, repo: repo, now: time.Now}
}

// SalesByDateRange reports all invoices with invoice_date in the closed
// interval [from, to] and their total. Invoices dated exactly on either
// bound are included.
func (s *Service) SalesByDateRange(ctx context.Context, ownerID id.ID, from, to time.Time) (*SalesReport, error) {
	if to.Before(from) {
		return nil, apperror.NewValidation("'to' date must not precede 'from' date").
			WithDetail("from", from).
			WithDetail("to", to)
	}

	report := &SalesReport{From: from, To: to, TotalSales: types.ZeroMoney()}

	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		invoices, err := s.repo.InvoicesByDateRange(ctx, ownerID, from, to)
		if err != nil {
			return err
		}
		report.Invoices = resolveNames(invoices)
		report.TotalSales = sumTotals(invoices)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// SalesByCustomer reports all invoices billed to one customer. The
// customer may already be deleted; the report then carries the
// placeholder name but still lists the invoices.
func (s *Service) SalesByCustomer(ctx context.Context, ownerID, customerID id.ID) (*CustomerSalesReport, error) {
	report := &CustomerSalesReport{
		CustomerID:   customerID,
		CustomerName: PlaceholderCustomerName,
		TotalSales:   types.ZeroMoney(),
	}

	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		invoices, err := s.repo.InvoicesByCustomer(ctx, ownerID, customerID)
		if err != nil {
			return err
		}
		report.Invoices = resolveNames(invoices)
		report.TotalSales = sumTotals(invoices)
		for _, inv := range invoices {
			if inv.CustomerName != "" {
				report.CustomerName = inv.CustomerName
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// DashboardStats aggregates the landing-page numbers: catalog counts,
// lifetime and today's sales, and the five most recent invoices.
func (s *Service) DashboardStats(ctx context.Context, ownerID id.ID) (*DashboardStats, error) {
	stats := &DashboardStats{
		TotalSales: types.ZeroMoney(),
		TodaySales: types.ZeroMoney(),
	}

	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if stats.TotalCustomers, err = s.repo.CountCustomers(ctx, ownerID); err != nil {
			return err
		}
		if stats.TotalItems, err = s.repo.CountItems(ctx, ownerID); err != nil {
			return err
		}
		if stats.TotalInvoices, err = s.repo.CountInvoices(ctx, ownerID); err != nil {
			return err
		}
		if stats.TotalSales, err = s.repo.SumSales(ctx, ownerID); err != nil {
			return err
		}

		startOfDay := s.startOfToday()
		if stats.TodaySales, err = s.repo.SumSalesSince(ctx, ownerID, startOfDay); err != nil {
			return err
		}

		recent, err := s.repo.RecentInvoices(ctx, ownerID, 5)
		if err != nil {
			return err
		}
		stats.RecentInvoices = resolveNames(recent)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) startOfToday() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func resolveNames(invoices []InvoiceSummary) []InvoiceSummary {
	out := make([]InvoiceSummary, len(invoices))
	for i, inv := range invoices {
		if inv.CustomerName == "" {
			inv.CustomerName = PlaceholderCustomerName
		}
		out[i] = inv
	}
	return out
}

func sumTotals(invoices []InvoiceSummary) types.Money {
	total := types.ZeroMoney()
	for _, inv := range invoices {
		total = total.Add(inv.GrandTotal)
	}
	return total
}
