// Package report_repo provides the PostgreSQL read queries behind
// sales reports. Customer names are resolved with a LEFT JOIN so
// invoices of deleted customers still appear; the missing name comes
// back empty and the service substitutes the placeholder.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"factura/internal/core/id"
	"factura/internal/core/types"
	"factura/internal/domain/reports"
	"factura/internal/infrastructure/storage/postgres"
)

var summaryCols = []string{
	"i.id",
	"i.number",
	"i.invoice_date",
	"i.customer_id",
	"COALESCE(c.name, '') AS customer_name",
	"i.grand_total",
}

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *ReportRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ReportRepo) summarySelect(ownerID id.ID) squirrel.SelectBuilder {
	return r.Builder().
		Select(summaryCols...).
		From("invoices i").
		LeftJoin("customers c ON c.id = i.customer_id").
		Where(squirrel.Eq{"i.owner_id": ownerID})
}

// InvoicesByDateRange loads summaries with invoice_date in the closed
// interval [from, to], newest first.
func (r *ReportRepo) InvoicesByDateRange(ctx context.Context, ownerID id.ID, from, to time.Time) ([]reports.InvoiceSummary, error) {
	q := r.summarySelect(ownerID).
		Where(squirrel.GtOrEq{"i.invoice_date": from}).
		Where(squirrel.LtOrEq{"i.invoice_date": to}).
		OrderBy("i.invoice_date DESC", "i.number DESC")

	return r.selectSummaries(ctx, q)
}

// InvoicesByCustomer loads all summaries of one customer, newest first.
func (r *ReportRepo) InvoicesByCustomer(ctx context.Context, ownerID, customerID id.ID) ([]reports.InvoiceSummary, error) {
	q := r.summarySelect(ownerID).
		Where(squirrel.Eq{"i.customer_id": customerID}).
		OrderBy("i.invoice_date DESC", "i.number DESC")

	return r.selectSummaries(ctx, q)
}

// RecentInvoices loads the latest summaries up to limit.
func (r *ReportRepo) RecentInvoices(ctx context.Context, ownerID id.ID, limit int) ([]reports.InvoiceSummary, error) {
	q := r.summarySelect(ownerID).
		OrderBy("i.created_at DESC").
		Limit(uint64(limit))

	return r.selectSummaries(ctx, q)
}

// CountCustomers returns the owner's customer count.
func (r *ReportRepo) CountCustomers(ctx context.Context, ownerID id.ID) (int64, error) {
	return r.count(ctx, "customers", ownerID)
}

// CountItems returns the owner's item count.
func (r *ReportRepo) CountItems(ctx context.Context, ownerID id.ID) (int64, error) {
	return r.count(ctx, "items", ownerID)
}

// CountInvoices returns the owner's invoice count.
func (r *ReportRepo) CountInvoices(ctx context.Context, ownerID id.ID) (int64, error) {
	return r.count(ctx, "invoices", ownerID)
}

// SumSales returns the sum of all grand totals.
func (r *ReportRepo) SumSales(ctx context.Context, ownerID id.ID) (types.Money, error) {
	q := r.Builder().
		Select("COALESCE(SUM(grand_total), 0)").
		From("invoices").
		Where(squirrel.Eq{"owner_id": ownerID})

	return r.sum(ctx, q)
}

// SumSalesSince returns the sum of grand totals with invoice_date >= since.
func (r *ReportRepo) SumSalesSince(ctx context.Context, ownerID id.ID, since time.Time) (types.Money, error) {
	q := r.Builder().
		Select("COALESCE(SUM(grand_total), 0)").
		From("invoices").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.GtOrEq{"invoice_date": since})

	return r.sum(ctx, q)
}

func (r *ReportRepo) selectSummaries(ctx context.Context, q squirrel.SelectBuilder) ([]reports.InvoiceSummary, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []reports.InvoiceSummary
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select summaries: %w", err)
	}
	return items, nil
}

func (r *ReportRepo) count(ctx context.Context, table string, ownerID id.ID) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (r *ReportRepo) sum(ctx context.Context, q squirrel.SelectBuilder) (types.Money, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return types.ZeroMoney(), fmt.Errorf("build sum query: %w", err)
	}

	var total types.Money
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return types.ZeroMoney(), fmt.Errorf("sum sales: %w", err)
	}
	return total, nil
}

var _ reports.Repository = (*ReportRepo)(nil)
