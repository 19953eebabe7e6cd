package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"factura/internal/core/apperror"
	"factura/internal/core/id"
	"factura/internal/domain/catalogs/item"
	"factura/internal/infrastructure/storage/postgres"
)

// ItemRepo implements item.Repository. Catalog updates here never
// write the stock column; stock moves only through the ledger repo.
type ItemRepo struct {
	*BaseRepo[*item.Item]
	txm *postgres.TxManager
}

// NewItemRepo creates a new item repository.
func NewItemRepo(txm *postgres.TxManager) *ItemRepo {
	return &ItemRepo{
		BaseRepo: NewBaseRepo(
			txm,
			"items",
			"item",
			postgres.ExtractDBColumns[item.Item](),
			[]string{"name"},
			func() *item.Item { return &item.Item{} },
		),
		txm: txm,
	}
}

// Update overrides the base update to exclude the stock column.
func (r *ItemRepo) Update(ctx context.Context, ownerID id.ID, it *item.Item) error {
	q := r.Builder().
		Update("items").
		Set("name", it.Name).
		Set("unit", it.Unit).
		Set("price", it.Price).
		Set("updated_at", it.UpdatedAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": it.ID}).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"version": it.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update items: %w", err)
	}

	if result.RowsAffected() == 0 {
		exists, err := r.exists(ctx, ownerID, it)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NewNotFound("item", it.ID.String())
		}
		return apperror.NewConflict("entity was modified concurrently").
			WithDetail("entity", "item").
			WithDetail("id", it.ID)
	}
	it.SetVersion(it.Version + 1)

	return nil
}

var _ item.Repository = (*ItemRepo)(nil)
