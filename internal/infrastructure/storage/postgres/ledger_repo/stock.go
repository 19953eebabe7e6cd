// Package ledger_repo provides the PostgreSQL stock balance store.
// The conditional decrement is the single point where stock is taken;
// the WHERE guard makes concurrent takers of the same item resolve to
// at most as many winners as the balance covers.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"factura/internal/core/id"
	"factura/internal/domain/ledger"
	"factura/internal/infrastructure/storage/postgres"
)

// StockRepo implements ledger.Repository on the items table.
type StockRepo struct {
	txm *postgres.TxManager
}

// NewStockRepo creates a new stock repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{txm: txm}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *StockRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// DecrementIfAvailable takes qty from the item's stock only when the
// balance covers it. The stock >= qty predicate keeps the balance from
// ever going negative regardless of interleaving.
func (r *StockRepo) DecrementIfAvailable(ctx context.Context, ownerID, itemID id.ID, qty int64) (bool, error) {
	q := r.Builder().
		Update("items").
		Set("stock", squirrel.Expr("stock - ?", qty)).
		Where(squirrel.Eq{"id": itemID}).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.GtOrEq{"stock": qty})

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build decrement: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", postgres.MapSerializationFailure(err))
	}

	return result.RowsAffected() > 0, nil
}

// Increment returns qty to the item's stock.
func (r *StockRepo) Increment(ctx context.Context, ownerID, itemID id.ID, qty int64) (bool, error) {
	q := r.Builder().
		Update("items").
		Set("stock", squirrel.Expr("stock + ?", qty)).
		Where(squirrel.Eq{"id": itemID}).
		Where(squirrel.Eq{"owner_id": ownerID})

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build increment: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("increment stock: %w", postgres.MapSerializationFailure(err))
	}

	return result.RowsAffected() > 0, nil
}

// GetStock reads the current balance, nil when the item is absent.
func (r *StockRepo) GetStock(ctx context.Context, ownerID, itemID id.ID) (*ledger.StockView, error) {
	q := r.Builder().
		Select("id", "name", "stock").
		From("items").
		Where(squirrel.Eq{"id": itemID}).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var view ledger.StockView
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &view, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}

	return &view, nil
}

var _ ledger.Repository = (*StockRepo)(nil)
