// Package invoice_repo provides PostgreSQL persistence for invoices.
// Header and lines are always written together; callers run these
// methods inside the invoice service's transaction.
package invoice_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain"
	"factura/internal/domain/invoice"
	"factura/internal/infrastructure/storage/postgres"
)

var headerCols = postgres.ExtractDBColumns[invoice.Invoice]()

var lineCols = []string{
	"id", "invoice_id", "line_no", "item_id", "item_name", "unit_price", "quantity", "total",
}

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	txm *postgres.TxManager
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txm *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{txm: txm}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *InvoiceRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the invoice header and all lines.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	data := postgres.StructToMap(inv)

	headerData := make(map[string]any, len(headerCols))
	for _, col := range headerCols {
		if val, ok := data[col]; ok {
			headerData[col] = val
		}
	}

	q := r.Builder().
		Insert("invoices").
		SetMap(headerData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice: %w", postgres.MapSerializationFailure(err))
	}

	return r.insertLines(ctx, inv.Lines)
}

// GetByID loads the invoice with lines within the owner's data.
func (r *InvoiceRepo) GetByID(ctx context.Context, ownerID, invoiceID id.ID) (*invoice.Invoice, error) {
	q := r.Builder().
		Select(headerCols...).
		From("invoices").
		Where(squirrel.Eq{"id": invoiceID}).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	inv := &invoice.Invoice{}
	if err := pgxscan.Get(ctx, querier, inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", invoiceID.String())
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	lq := r.Builder().
		Select(lineCols...).
		From("invoice_lines").
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("line_no ASC")

	sql, args, err = lq.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &inv.Lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}

	return inv, nil
}

// Update rewrites the header with optimistic locking and replaces all
// lines.
func (r *InvoiceRepo) Update(ctx context.Context, ownerID id.ID, inv *invoice.Invoice) error {
	q := r.Builder().
		Update("invoices").
		Set("customer_id", inv.CustomerID).
		Set("invoice_date", inv.InvoiceDate).
		Set("sub_total", inv.SubTotal).
		Set("grand_total", inv.GrandTotal).
		Set("updated_at", inv.UpdatedAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": inv.ID}).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"version": inv.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update invoice: %w", postgres.MapSerializationFailure(err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConflict("invoice was modified concurrently").
			WithDetail("id", inv.ID)
	}
	inv.SetVersion(inv.Version + 1)

	dq := r.Builder().
		Delete("invoice_lines").
		Where(squirrel.Eq{"invoice_id": inv.ID})

	sql, args, err = dq.ToSql()
	if err != nil {
		return fmt.Errorf("build delete lines: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}

	return r.insertLines(ctx, inv.Lines)
}

// List loads the owner's invoice headers with pagination, newest first.
func (r *InvoiceRepo) List(ctx context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
	result := domain.ListResult[*invoice.Invoice]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.Builder().
		Select(headerCols...).
		From("invoices").
		Where(squirrel.Eq{"owner_id": ownerID})

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}

	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count invoices: %w", err)
	}

	q = q.OrderBy("invoice_date DESC", "number DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list invoices: %w", err)
	}

	return result, nil
}

func (r *InvoiceRepo) insertLines(ctx context.Context, lines []*invoice.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert("invoice_lines").
		Columns(lineCols...)

	for _, l := range lines {
		q = q.Values(l.ID, l.InvoiceID, l.LineNo, l.ItemID, l.ItemName, l.UnitPrice, l.Quantity, l.Total)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice lines: %w", postgres.MapSerializationFailure(err))
	}

	return nil
}

var _ invoice.Repository = (*InvoiceRepo)(nil)
