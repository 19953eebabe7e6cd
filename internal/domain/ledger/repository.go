// Package ledger maintains on-hand stock balances for items.
// All stock movement goes through this package; catalog updates never
// touch the stock column.
package ledger

import (
	"context"

	"factura/internal/core/id"
)

// StockView is a read snapshot of an item's stock balance.
type StockView struct {
	ItemID id.ID  `db:"id"`
	Name   string `db:"name"`
	Stock  int64  `db:"stock"`
}

// Repository defines stock balance persistence.
// Implementations must be safe to call inside a caller-managed
// transaction: the conditional decrement is the concurrency guard.
type Repository interface {
	// DecrementIfAvailable atomically subtracts qty from the item's
	// stock when the balance covers it. Returns false without changing
	// anything when the item is absent, foreign-owned, or short.
	DecrementIfAvailable(ctx context.Context, ownerID, itemID id.ID, qty int64) (bool, error)

	// Increment adds qty back to the item's stock. Returns false when
	// the item no longer exists.
	Increment(ctx context.Context, ownerID, itemID id.ID, qty int64) (bool, error)

	// GetStock reads the current balance, nil when the item is absent
	// or foreign-owned.
	GetStock(ctx context.Context, ownerID, itemID id.ID) (*StockView, error)
}
