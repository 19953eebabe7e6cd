// Package reports provides read-only sales aggregation over posted
// invoices. Reports never mutate state and read each invoice's stored
// totals; nothing is repriced at report time.
package reports

import (
	"time"

	"factura/internal/core/id"
	"factura/internal/core/types"
)

// PlaceholderCustomerName is shown when an invoice references a
// customer that has since been deleted.
const PlaceholderCustomerName = "Unknown Customer"

// InvoiceSummary is one invoice row in a report, with the customer name
// resolved at read time.
type InvoiceSummary struct {
	ID           id.ID       `db:"id" json:"id"`
	Number       string      `db:"number" json:"number"`
	InvoiceDate  time.Time   `db:"invoice_date" json:"invoiceDate"`
	CustomerID   id.ID       `db:"customer_id" json:"customerId"`
	CustomerName string      `db:"customer_name" json:"customerName"`
	GrandTotal   types.Money `db:"grand_total" json:"grandTotal"`
}

// SalesReport aggregates invoices over a closed date interval.
type SalesReport struct {
	From       time.Time        `json:"from"`
	To         time.Time        `json:"to"`
	Invoices   []InvoiceSummary `json:"invoices"`
	TotalSales types.Money      `json:"totalSales"`
}

// CustomerSalesReport aggregates all invoices of one customer.
type CustomerSalesReport struct {
	CustomerID   id.ID            `json:"customerId"`
	CustomerName string           `json:"customerName"`
	Invoices     []InvoiceSummary `json:"invoices"`
	TotalSales   types.Money      `json:"totalSales"`
}

// DashboardStats is the landing-page aggregate.
type DashboardStats struct {
	TotalCustomers int64            `json:"totalCustomers"`
	TotalItems     int64            `json:"totalItems"`
	TotalInvoices  int64            `json:"totalInvoices"`
	TotalSales     types.Money      `json:"totalSales"`
	TodaySales     types.Money      `json:"todaySales"`
	RecentInvoices []InvoiceSummary `json:"recentInvoices"`
}
